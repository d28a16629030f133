package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"sitecap/internal/config"
	"sitecap/internal/model"
)

type stubCaptureService struct {
	err     error
	failDev map[string]bool
}

func (s *stubCaptureService) Capture(_ context.Context, rawURL string, vp model.ViewportConfig) (*model.CaptureResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.failDev[vp.Device] {
		return nil, errors.New("render failed")
	}
	return &model.CaptureResult{
		URL:      rawURL,
		Device:   vp.Device,
		Viewport: vp,
		Metadata: model.CaptureMetadata{Engine: "static"},
	}, nil
}

func (s *stubCaptureService) CaptureResponsive(ctx context.Context, rawURL string, vps []model.ViewportConfig) *model.ResponsiveResult {
	out := &model.ResponsiveResult{
		URL:       rawURL,
		Viewports: map[string]*model.CaptureResult{},
	}
	for _, vp := range vps {
		res, err := s.Capture(ctx, rawURL, vp)
		if err != nil {
			if out.Errors == nil {
				out.Errors = map[string]string{}
			}
			out.Errors[vp.Device] = err.Error()
			continue
		}
		out.Viewports[vp.Device] = res
	}
	out.TotalViewports = len(out.Viewports)
	return out
}

func testServer(t *testing.T, svc *stubCaptureService, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Fetcher.TimeoutMs = 1000
	if mutate != nil {
		mutate(cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, svc, nil, logger)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	data, _ := io.ReadAll(resp.Body)
	rec.Body = bytes.NewBuffer(data)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestCaptureMissingURL(t *testing.T) {
	s := testServer(t, &stubCaptureService{}, nil)
	rec := postJSON(t, s, "/api/capture", map[string]any{})
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var e ErrorResponse
	decodeBody(t, rec, &e)
	if e.Error != "URL is required" {
		t.Fatalf("error = %q", e.Error)
	}
}

func TestCaptureInvalidURL(t *testing.T) {
	s := testServer(t, &stubCaptureService{}, nil)
	for _, bad := range []string{"not a url", "example.com/path", "/relative/only"} {
		rec := postJSON(t, s, "/api/capture", map[string]any{"url": bad})
		if rec.Code != 400 {
			t.Fatalf("status for %q = %d, want 400", bad, rec.Code)
		}
		var e ErrorResponse
		decodeBody(t, rec, &e)
		if e.Error != "Invalid URL format" {
			t.Fatalf("error for %q = %q", bad, e.Error)
		}
	}
}

func TestCaptureDefaultsToDesktop(t *testing.T) {
	s := testServer(t, &stubCaptureService{}, nil)
	rec := postJSON(t, s, "/api/capture", map[string]any{"url": "https://example.com"})
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var res model.CaptureResult
	decodeBody(t, rec, &res)
	if res.Device != "desktop" || res.Viewport.Width != 1440 || res.Viewport.Height != 900 {
		t.Fatalf("unexpected viewport: %+v", res.Viewport)
	}
}

func TestCaptureNamedViewport(t *testing.T) {
	s := testServer(t, &stubCaptureService{}, nil)
	rec := postJSON(t, s, "/api/capture", map[string]any{"url": "https://example.com", "viewport": "mobile"})
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res model.CaptureResult
	decodeBody(t, rec, &res)
	if res.Viewport.Width != 375 || res.Viewport.Height != 667 {
		t.Fatalf("unexpected mobile viewport: %+v", res.Viewport)
	}
}

func TestCaptureServiceFailure(t *testing.T) {
	s := testServer(t, &stubCaptureService{err: errors.New("fetch failed")}, nil)
	rec := postJSON(t, s, "/api/capture", map[string]any{"url": "https://example.com"})
	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestCaptureResponsiveDefaultsToAllPresets(t *testing.T) {
	s := testServer(t, &stubCaptureService{}, nil)
	rec := postJSON(t, s, "/api/capture-responsive", map[string]any{"url": "https://example.com"})
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res model.ResponsiveResult
	decodeBody(t, rec, &res)
	if res.TotalViewports != 3 || len(res.Viewports) != 3 {
		t.Fatalf("unexpected responsive result: total=%d captured=%d", res.TotalViewports, len(res.Viewports))
	}
}

func TestCaptureResponsivePartialFailure(t *testing.T) {
	s := testServer(t, &stubCaptureService{failDev: map[string]bool{"tablet": true}}, nil)
	rec := postJSON(t, s, "/api/capture-responsive", map[string]any{
		"url":       "https://example.com",
		"viewports": []any{"desktop", "tablet"},
	})
	if rec.Code != 200 {
		t.Fatalf("partial failure should still be 200, got %d", rec.Code)
	}
	var res model.ResponsiveResult
	decodeBody(t, rec, &res)
	if len(res.Viewports) != 1 || res.Viewports["desktop"] == nil {
		t.Fatalf("unexpected viewports: %+v", res.Viewports)
	}
	if res.TotalViewports != 1 {
		t.Fatalf("total_viewports = %d, want the successful count 1", res.TotalViewports)
	}
	if res.Errors["tablet"] == "" {
		t.Fatalf("expected tablet error, got %+v", res.Errors)
	}
}

func TestCaptureResponsiveTotalFailure(t *testing.T) {
	s := testServer(t, &stubCaptureService{err: errors.New("down")}, nil)
	rec := postJSON(t, s, "/api/capture-responsive", map[string]any{"url": "https://example.com"})
	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var e ErrorResponse
	decodeBody(t, rec, &e)
	if e.Error != "Failed to capture any viewports" {
		t.Fatalf("error = %q", e.Error)
	}
}

func TestHealth(t *testing.T) {
	s := testServer(t, &stubCaptureService{}, nil)
	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Status    string   `json:"status"`
		Viewports []string `json:"supported_viewports"`
		Features  []string `json:"features"`
	}
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" || len(body.Viewports) != 3 || len(body.Features) != 3 {
		t.Fatalf("unexpected health body: %+v", body)
	}
}

func TestCapturesWithoutStore(t *testing.T) {
	s := testServer(t, &stubCaptureService{}, nil)
	req := httptest.NewRequest("GET", "/api/captures", nil)
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 503 {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	s := testServer(t, &stubCaptureService{}, func(cfg *config.Config) {
		cfg.Auth.Enabled = true
		cfg.Auth.APIKey = "sitecap_test_key"
	})

	rec := postJSON(t, s, "/api/capture", map[string]any{"url": "https://example.com"})
	if rec.Code != 401 {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}

	raw, _ := json.Marshal(map[string]any{"url": "https://example.com"})
	req := httptest.NewRequest("POST", "/api/capture", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sitecap_test_key")
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status with token = %d, want 200", resp.StatusCode)
	}
}
