package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"griyapasar/internal/infrastructure/ratelimit"
	"griyapasar/pkg/logger"
)

// RateLimit builds middleware over one shared limiter. Authenticated requests
// are keyed by uid, anonymous ones by client IP.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if uid, ok := c.Get("uid").(string); ok && uid != "" {
				key = uid
			}

			allowed, wait := limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit: key=%s action=%s", key, action)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(wait.Seconds()) + 1,
				})
			}

			return next(c)
		}
	}
}
