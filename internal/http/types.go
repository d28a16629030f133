package http

import (
	"sitecap/internal/model"
)

// CaptureRequest is the input to POST /api/capture and
// /api/capture-responsive. Viewports entries are either preset names
// ("desktop", "tablet", "mobile") or objects with width/height/device.
type CaptureRequest struct {
	URL       string `json:"url"`
	Viewport  any    `json:"viewport,omitempty"`
	Viewports []any  `json:"viewports,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// parseViewport normalizes one viewport value: a preset name string or
// an object carrying width/height and an optional device label.
func parseViewport(v any) (model.ViewportConfig, bool) {
	switch val := v.(type) {
	case string:
		return model.ViewportByName(val)
	case map[string]any:
		vp := model.ViewportConfig{}
		if w, ok := val["width"].(float64); ok {
			vp.Width = int(w)
		}
		if h, ok := val["height"].(float64); ok {
			vp.Height = int(h)
		}
		if d, ok := val["device"].(string); ok {
			vp.Device = d
		}
		if vp.Width <= 0 || vp.Height <= 0 {
			return model.ViewportConfig{}, false
		}
		if vp.Device == "" {
			vp.Device = "custom"
		}
		return vp, true
	default:
		return model.ViewportConfig{}, false
	}
}

// parseViewports normalizes the list form, dropping entries that do
// not resolve. An empty or absent list falls back to all presets.
func parseViewports(list []any) []model.ViewportConfig {
	if len(list) == 0 {
		out := make([]model.ViewportConfig, 0, 3)
		for _, name := range model.SupportedViewports() {
			vp, _ := model.ViewportByName(name)
			out = append(out, vp)
		}
		return out
	}
	var out []model.ViewportConfig
	for _, v := range list {
		if vp, ok := parseViewport(v); ok {
			out = append(out, vp)
		}
	}
	return out
}
