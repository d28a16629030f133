// Package services holds the core, non-HTTP capture logic: rendering a
// page, extracting its element records, and assembling the design
// model payload.
package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	htmlmd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"sitecap/internal/capture"
	"sitecap/internal/config"
	"sitecap/internal/figma"
	"sitecap/internal/metrics"
	"sitecap/internal/model"
	"sitecap/internal/renderer"
	"sitecap/internal/store"
)

// CaptureService renders pages and turns them into design-model
// payloads.
type CaptureService interface {
	Capture(ctx context.Context, rawURL string, viewport model.ViewportConfig) (*model.CaptureResult, error)
	CaptureResponsive(ctx context.Context, rawURL string, viewports []model.ViewportConfig) *model.ResponsiveResult
}

type captureService struct {
	cfg     *config.Config
	static  renderer.Renderer
	browser renderer.Renderer
	store   *store.Store
	log     *slog.Logger
}

// NewCaptureService wires the renderers from configuration. The
// browser renderer is only constructed when rod is enabled; the store
// may be nil when no database is configured.
func NewCaptureService(cfg *config.Config, st *store.Store, log *slog.Logger) CaptureService {
	timeout := time.Duration(cfg.Fetcher.TimeoutMs) * time.Millisecond

	svc := &captureService{
		cfg:    cfg,
		static: renderer.NewStaticRenderer(timeout, cfg.Robots.Respect),
		store:  st,
		log:    log,
	}
	if cfg.Rod.Enabled {
		rodTimeout := timeout
		if cfg.Rod.TimeoutMs > 0 {
			rodTimeout = time.Duration(cfg.Rod.TimeoutMs) * time.Millisecond
		}
		svc.browser = renderer.NewRodRenderer(cfg.Rod.BrowserURL, rodTimeout)
	}
	return svc
}

func (s *captureService) Capture(ctx context.Context, rawURL string, viewport model.ViewportConfig) (*model.CaptureResult, error) {
	start := time.Now()

	req := renderer.Request{
		URL:       rawURL,
		Viewport:  viewport,
		Timeout:   time.Duration(s.cfg.Fetcher.TimeoutMs) * time.Millisecond,
		UserAgent: s.cfg.Fetcher.UserAgent,
	}

	res, err := s.render(ctx, req)
	if err != nil {
		metrics.RecordCapture("static", viewport.Device, 0, false)
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.HTML))
	if err != nil {
		metrics.RecordCapture(res.Engine, viewport.Device, 0, false)
		return nil, err
	}

	records := res.Elements
	if records == nil {
		w := capture.NewWalker()
		w.MaxDepth = s.cfg.Capture.MaxDepth
		w.MaxElements = s.cfg.Capture.MaxElements
		w.TextLimit = s.cfg.Capture.TextLimit
		w.HTMLLimit = s.cfg.Capture.HTMLLimit
		records = w.Walk(doc)
	}

	fonts := capture.CollectFonts(records)
	colors := capture.CollectColors(records, rawStyleText(doc))
	textStyles := capture.CollectTextStyles(records)
	images := capture.CollectImages(doc, res.URL)

	design := figma.BuildModel(records, figma.Aggregates{
		Fonts:      fonts,
		Colors:     colors,
		TextStyles: textStyles,
		Images:     images,
	})

	result := &model.CaptureResult{
		URL:           res.URL,
		Device:        viewport.Device,
		Viewport:      viewport,
		Page:          pageInfo(doc, res, viewport, records),
		Elements:      records,
		Fonts:         fonts,
		FigmaFonts:    figma.MapFonts(fonts),
		TextStyles:    textStyles,
		Design:        design,
		TotalElements: len(records),
		Metadata: model.CaptureMetadata{
			CapturedAt: start.UTC(),
			DurationMS: time.Since(start).Milliseconds(),
			Engine:     res.Engine,
			Status:     res.Status,
		},
	}

	if s.cfg.Capture.IncludeMarkdown {
		converter := htmlmd.NewConverter("", true, nil)
		if md, err := converter.ConvertString(res.HTML); err == nil {
			result.Markdown = md
		}
	}

	metrics.RecordCapture(res.Engine, viewport.Device, len(records), true)
	s.log.Info("capture complete",
		"url", res.URL,
		"device", viewport.Device,
		"engine", res.Engine,
		"elements", len(records),
		"duration_ms", result.Metadata.DurationMS,
	)

	s.persist(ctx, result)
	return result, nil
}

// render prefers the browser engine when configured and falls back to
// the static fetcher on browser failure.
func (s *captureService) render(ctx context.Context, req renderer.Request) (*renderer.Result, error) {
	if s.browser != nil {
		res, err := s.browser.Render(ctx, req)
		if err == nil {
			return res, nil
		}
		s.log.Warn("browser render failed, falling back to static", "url", req.URL, "error", err)
	}
	return s.static.Render(ctx, req)
}

func (s *captureService) CaptureResponsive(ctx context.Context, rawURL string, viewports []model.ViewportConfig) *model.ResponsiveResult {
	out := &model.ResponsiveResult{
		URL:         rawURL,
		Viewports:   map[string]*model.CaptureResult{},
		CaptureTime: time.Now().UTC(),
	}

	for _, vp := range viewports {
		res, err := s.Capture(ctx, rawURL, vp)
		if err != nil {
			s.log.Warn("viewport capture failed", "url", rawURL, "device", vp.Device, "error", err)
			if out.Errors == nil {
				out.Errors = map[string]string{}
			}
			out.Errors[vp.Device] = err.Error()
			continue
		}
		out.Viewports[vp.Device] = res
	}

	// total_viewports counts successful captures, not requested ones.
	out.TotalViewports = len(out.Viewports)
	return out
}

// persist writes a history row when a store is configured. Failures
// are logged but never fail the capture.
func (s *captureService) persist(ctx context.Context, res *model.CaptureResult) {
	if s.store == nil {
		return
	}
	summary := map[string]any{
		"totalElements": res.TotalElements,
		"fonts":         res.FigmaFonts,
		"totalColors":   res.Design.Summary.TotalColors,
		"totalShapes":   res.Design.Summary.TotalShapes,
		"totalText":     res.Design.Summary.TotalTextElements,
	}
	if _, err := s.store.InsertCapture(ctx, res.URL, res.Device, res.Metadata.Engine, res.TotalElements, res.Metadata.DurationMS, summary); err != nil {
		s.log.Warn("failed to persist capture", "url", res.URL, "error", err)
	}
}

func pageInfo(doc *goquery.Document, res *renderer.Result, vp model.ViewportConfig, records []capture.ElementRecord) model.PageInfo {
	info := model.PageInfo{
		Title:          res.Title,
		URL:            res.URL,
		ViewportWidth:  vp.Width,
		ViewportHeight: vp.Height,
	}
	if info.Title == "" {
		info.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	info.Description = doc.Find("meta[name=description]").AttrOr("content", "")
	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		info.Language = lang
	}
	if charset, ok := doc.Find("meta[charset]").First().Attr("charset"); ok {
		info.Charset = charset
	}

	info.TotalHeight = res.ScrollHeight
	if info.TotalHeight == 0 {
		info.TotalHeight = estimateScrollHeight(records, vp)
	}
	return info
}

// estimateScrollHeight derives a scroll height from the lowest element
// edge when no browser measured the page, floored at the viewport
// height.
func estimateScrollHeight(records []capture.ElementRecord, vp model.ViewportConfig) float64 {
	h := float64(vp.Height)
	for _, rec := range records {
		if edge := rec.Position.Y + rec.Position.Height; edge > h {
			h = edge
		}
	}
	return h
}

// rawStyleText concatenates stylesheet text and inline style attribute
// values so the color scanner can see colors outside element records.
func rawStyleText(doc *goquery.Document) string {
	var b strings.Builder
	doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.Text())
		b.WriteString("\n")
	})
	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.AttrOr("style", ""))
		b.WriteString("\n")
	})
	return b.String()
}
