package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/api/metrics"
)

// AttemptLimiter counts an attempt for key and reports whether it is allowed.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// LoginThrottle limits login attempts per client IP. Limiter errors let the
// request through.
func LoginThrottle(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("login throttle unavailable")
				return next(c)
			}
			if !allowed {
				metrics.LoginThrottledTotal.Inc()
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, gateResponse{Message: "too many login attempts"})
			}
			return next(c)
		}
	}
}
