package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/auth"
	"github.com/influencehub/backend/internal/config"
	"go.uber.org/zap"
)

const CtxOwnerID = "owner_id"

// AuthMiddleware resolves the caller's owner identity from a bearer token.
// With the in-memory store a request without a token acts as the local owner.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			if !cfg.UsePostgres() {
				c.Locals(CtxOwnerID, cfg.LocalOwnerID)
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxOwnerID, claims.OwnerID)
		return c.Next()
	}
}

func GetOwnerID(c *fiber.Ctx) string {
	id, _ := c.Locals(CtxOwnerID).(string)
	return id
}
