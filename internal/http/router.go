// Package http exposes the capture service over a fiber HTTP API.
package http

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sitecap/internal/config"
	"sitecap/internal/metrics"
	"sitecap/internal/services"
	"sitecap/internal/store"
)

type Server struct {
	app    *fiber.App
	config *config.Config
	logger *slog.Logger
}

// NewServer builds the fiber app with all routes and middleware. The
// store may be nil when no database is configured.
func NewServer(cfg *config.Config, svc services.CaptureService, st *store.Store, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout: time.Duration(cfg.Fetcher.TimeoutMs) * time.Millisecond * 2,
	})

	app.Use(cors.New())

	// Inject config, store, and the capture service for handlers
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		if st != nil {
			c.Locals("store", st)
		}
		c.Locals("captureService", svc)
		return c.Next()
	})

	// Request logging + metrics middleware
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals("request_id", reqID)

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()
		method := c.Method()
		path := c.Path()

		metrics.RecordRequest(method, path, status, latency.Milliseconds())

		if logger != nil {
			logger.Info("request",
				"request_id", reqID,
				"method", method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
			)
		}

		return err
	})

	app.Get("/", indexHandler)
	app.Get("/health", healthHandler)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		c.Type("text/plain")
		return c.SendString(metrics.Export())
	})

	authMw := authMiddleware(cfg)
	rateMw := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.RateLimit.Enabled && cfg.Redis.URL != "" {
		if opt, err := redis.ParseURL(cfg.Redis.URL); err == nil {
			rateMw = rateLimitMiddleware(cfg, redis.NewClient(opt))
		}
	}

	api := app.Group("/api", authMw, rateMw)
	api.Post("/capture", captureHandler)
	api.Post("/capture-responsive", captureResponsiveHandler)
	api.Get("/captures", capturesHandler)

	return &Server{
		app:    app,
		config: cfg,
		logger: logger,
	}
}

func (s *Server) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	return s.app.Listen(addr)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
