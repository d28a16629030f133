// Package renderer fetches and renders web pages for capture. The
// static renderer works from fetched HTML alone; the browser renderer
// drives a real browser so CSS-in-JS styling and computed layout are
// available to the extraction script.
package renderer

import (
	"context"
	"time"

	"sitecap/internal/capture"
	"sitecap/internal/model"
)

// Request describes one page render.
type Request struct {
	URL       string
	Viewport  model.ViewportConfig
	Headers   map[string]string
	Timeout   time.Duration
	UserAgent string
}

// Result is the rendered page. Elements and ScrollHeight are populated
// only by the browser renderer, whose in-page script extracts computed
// styles and real bounding boxes; the static pipeline derives elements
// from HTML afterwards.
type Result struct {
	URL          string
	Title        string
	HTML         string
	Status       int
	Engine       string
	Elements     []capture.ElementRecord
	ScrollHeight float64
}

// Renderer renders a URL at a viewport.
type Renderer interface {
	Render(ctx context.Context, req Request) (*Result, error)
}
