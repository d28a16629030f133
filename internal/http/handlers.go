package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sitecap/internal/model"
	"sitecap/internal/services"
	"sitecap/internal/store"
)

// Version is the reported API version.
const Version = "1.0.0"

func captureHandler(c *fiber.Ctx) error {
	var req CaptureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "URL is required"})
	}
	if strings.TrimSpace(req.URL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "URL is required"})
	}
	if !validURL(req.URL) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid URL format"})
	}

	viewport := model.DefaultViewport()
	if req.Viewport != nil {
		if vp, ok := parseViewport(req.Viewport); ok {
			viewport = vp
		}
	}

	svc := c.Locals("captureService").(services.CaptureService)
	result, err := svc.Capture(c.Context(), req.URL, viewport)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.JSON(result)
}

func captureResponsiveHandler(c *fiber.Ctx) error {
	var req CaptureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "URL is required"})
	}
	if strings.TrimSpace(req.URL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "URL is required"})
	}
	if !validURL(req.URL) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid URL format"})
	}

	viewports := parseViewports(req.Viewports)
	if len(viewports) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "No valid viewports requested"})
	}

	svc := c.Locals("captureService").(services.CaptureService)
	result := svc.CaptureResponsive(c.Context(), req.URL, viewports)
	if len(result.Viewports) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Failed to capture any viewports"})
	}
	return c.JSON(result)
}

func capturesHandler(c *fiber.Ctx) error {
	stVal := c.Locals("store")
	st, ok := stVal.(*store.Store)
	if !ok || st == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "Capture history is not configured"})
	}

	rows, err := st.ListRecent(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.JSON(fiber.Map{"captures": rows, "total": len(rows)})
}

func healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":              "healthy",
		"message":             "Website capture service is running",
		"supported_viewports": model.SupportedViewports(),
		"features":            []string{"responsive_capture", "full_css_extraction", "font_mapping"},
	})
}

func indexHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "sitecap",
		"version": Version,
		"endpoints": fiber.Map{
			"capture":            "POST /api/capture",
			"capture_responsive": "POST /api/capture-responsive",
			"captures":           "GET /api/captures",
			"health":             "GET /health",
			"metrics":            "GET /metrics",
		},
		"viewports": model.SupportedViewports(),
	})
}

// validURL requires a parseable URL with both a scheme and a host.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
