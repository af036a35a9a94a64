package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"sproutswap/internal/infrastructure/ratelimit"
	"sproutswap/pkg/errors"
	"sproutswap/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles the named action per authenticated user, falling back to
// the caller's IP for unauthenticated routes.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, _ := c.Get("uid").(string)
			if key == "" {
				key = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				return response.Error(c, errors.TooManyRequests(
					fmt.Sprintf("Rate limit exceeded, retry in %s", wait.Round(time.Second)), wait))
			}

			return next(c)
		}
	}
}
