package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"sitecap/internal/config"
)

// authMiddleware validates the Authorization: Bearer <key> header
// against the configured static API key.
func authMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.Auth.Enabled {
			return c.Next()
		}

		rawAuth := c.Get("Authorization")
		if rawAuth == "" || !strings.HasPrefix(rawAuth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Missing Authorization Bearer token",
			})
		}

		token := strings.TrimSpace(strings.TrimPrefix(rawAuth, "Bearer "))
		if token == "" || token != cfg.Auth.APIKey {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Invalid API key",
			})
		}
		return c.Next()
	}
}

// rateLimitMiddleware enforces a simple per-minute fixed-window rate
// limit per client IP using Redis.
func rateLimitMiddleware(cfg *config.Config, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.RateLimit.Enabled || cfg.RateLimit.DefaultPerMinute <= 0 {
			return c.Next()
		}

		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%d", c.IP(), window)

		count, err := rdb.Incr(c.Context(), key).Result()
		if err != nil {
			// Redis being down never blocks requests.
			return c.Next()
		}
		if count == 1 {
			rdb.Expire(c.Context(), key, time.Minute)
		}
		if count > int64(cfg.RateLimit.DefaultPerMinute) {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Error: "Rate limit exceeded",
			})
		}
		return c.Next()
	}
}
