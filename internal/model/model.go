// Package model defines the wire payloads returned by the capture API.
package model

import (
	"time"

	"sitecap/internal/capture"
	"sitecap/internal/figma"
)

// ViewportConfig names one device viewport a capture renders at.
type ViewportConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Device string `json:"device"`
}

// Viewport presets. Desktop is the default when a request names no
// viewport.
var viewportPresets = map[string]ViewportConfig{
	"desktop": {Width: 1440, Height: 900, Device: "desktop"},
	"tablet":  {Width: 768, Height: 1024, Device: "tablet"},
	"mobile":  {Width: 375, Height: 667, Device: "mobile"},
}

// DefaultViewport is the desktop preset.
func DefaultViewport() ViewportConfig {
	return viewportPresets["desktop"]
}

// ViewportByName looks up a preset by device name.
func ViewportByName(name string) (ViewportConfig, bool) {
	vp, ok := viewportPresets[name]
	return vp, ok
}

// SupportedViewports lists the preset names in canonical order.
func SupportedViewports() []string {
	return []string{"desktop", "tablet", "mobile"}
}

// PageInfo is the page-level metadata block of a capture. TotalHeight
// is the real scroll height when a browser rendered the page, and a
// content-derived estimate otherwise.
type PageInfo struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Description    string  `json:"description,omitempty"`
	Language       string  `json:"language,omitempty"`
	Charset        string  `json:"charset,omitempty"`
	ViewportWidth  int     `json:"viewport_width"`
	ViewportHeight int     `json:"viewport_height"`
	TotalHeight    float64 `json:"total_height"`
}

// CaptureMetadata records how and when a capture ran.
type CaptureMetadata struct {
	CapturedAt time.Time `json:"capturedAt"`
	DurationMS int64     `json:"durationMs"`
	Engine     string    `json:"engine"`
	Status     int       `json:"httpStatus,omitempty"`
}

// CaptureResult is the full payload for one URL at one viewport.
type CaptureResult struct {
	URL           string                    `json:"url"`
	Device        string                    `json:"device"`
	Viewport      ViewportConfig            `json:"viewport"`
	Page          PageInfo                  `json:"page"`
	Elements      []capture.ElementRecord   `json:"elements"`
	Fonts         []string                  `json:"fonts"`
	FigmaFonts    []string                  `json:"figma_fonts"`
	TextStyles    []capture.TypographyStyle `json:"text_styles"`
	Design        *figma.DesignModel        `json:"design"`
	TotalElements int                       `json:"totalElements"`
	Markdown      string                    `json:"markdown,omitempty"`
	Metadata      CaptureMetadata           `json:"metadata"`
}

// ResponsiveResult is the payload for a multi-viewport capture. Each
// viewport captures independently; a failed viewport records its error
// string in place of a result, and TotalViewports counts the captures
// that succeeded.
type ResponsiveResult struct {
	URL            string                    `json:"url"`
	Viewports      map[string]*CaptureResult `json:"viewports"`
	Errors         map[string]string         `json:"errors,omitempty"`
	CaptureTime    time.Time                 `json:"capture_time"`
	TotalViewports int                       `json:"total_viewports"`
}
