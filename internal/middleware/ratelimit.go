package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitMiddleware counts requests per owner (or ip before auth) in a
// fixed window. Redis errors let the request through.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) fiber.Handler {
	if window < time.Second {
		window = time.Minute
	}
	return func(c *fiber.Ctx) error {
		who := GetOwnerID(c)
		if who == "" {
			who = c.IP()
		}
		key := fmt.Sprintf("ihub:rl:%s:%d", who, time.Now().Unix()/int64(window.Seconds()))

		var incr *redis.IntCmd
		_, err := rdb.TxPipelined(c.UserContext(), func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(c.UserContext(), key)
			pipe.Expire(c.UserContext(), key, window)
			return nil
		})
		if err != nil {
			log.Warn("rate limit check failed", zap.Error(err))
			return c.Next()
		}

		if remaining := int64(limit) - incr.Val(); remaining >= 0 {
			c.Set("X-RateLimit-Remaining", fmt.Sprint(remaining))
			return c.Next()
		}
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":  "rate limit exceeded",
			"reason": "rate_limited",
		})
	}
}
