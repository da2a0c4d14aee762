package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/library-service/internal/config"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis. When
// Redis is unreachable requests pass through; limiting is best effort.
func RateLimiter(client *redis.Client, logger *zap.Logger, cfg config.RateLimitConfig) fiber.Handler {
	limit := int64(cfg.Requests)
	window := cfg.Window()

	return func(c *fiber.Ctx) error {
		if client == nil || limit <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s", c.IP())
		ctx := c.UserContext()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Debug("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.Debug("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > limit {
			return apperrors.NewTooManyRequests("too many requests, please try again later")
		}
		return c.Next()
	}
}
