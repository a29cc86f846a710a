package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/auth"
	"github.com/influencehub/backend/internal/config"
	"github.com/influencehub/backend/internal/http/dto"
	"go.uber.org/zap"
)

// AuthHandler issues tokens for local development. Deployments backed by
// Postgres get their tokens from the external identity provider.
type AuthHandler struct {
	cfg *config.Config
	log *zap.Logger
}

func NewAuthHandler(cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, log: log}
}

func (h *AuthHandler) IssueLocalToken(c *fiber.Ctx) error {
	if h.cfg.UsePostgres() {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "local tokens are disabled"})
	}

	var req dto.AuthTokenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	owner := strings.TrimSpace(req.OwnerID)
	if owner == "" {
		owner = h.cfg.LocalOwnerID
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, owner, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.AuthResponse{Token: token, OwnerID: owner})
}
