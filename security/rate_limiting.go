package security

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/redis/go-redis/v9"
)

const loginRatePrefix = "ratelimit:login:"

// LoginRateLimiter throttles login attempts per client IP with a fixed
// window counter in Redis.
type LoginRateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewLoginRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *LoginRateLimiter {
	return &LoginRateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
	}
}

// Middleware rejects clients over the limit with 429. Redis being down fails
// open: a broken limiter must not lock everyone out of login.
func (rl *LoginRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := loginRatePrefix + c.RealIP()

			count, err := rl.redis.Incr(ctx, key).Result()
			if err != nil {
				slog.Warn("login rate limiter unavailable", "error", err)
				return next(c)
			}
			if count == 1 {
				if err := rl.redis.Expire(ctx, key, rl.window).Err(); err != nil {
					slog.Warn("failed to set rate limit window", "error", err)
				}
			}

			if count > int64(rl.limit) {
				slog.Warn("login rate limit exceeded", "ip", c.RealIP(), "count", count)
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "로그인 시도가 너무 많아요. 잠시 후 다시 시도해주세요.",
				})
			}

			return next(c)
		}
	}
}
