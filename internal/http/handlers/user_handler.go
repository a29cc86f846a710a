package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/middleware"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	profileService *services.ProfileService
	log            *zap.Logger
}

func NewUserHandler(profileService *services.ProfileService, log *zap.Logger) *UserHandler {
	return &UserHandler{profileService: profileService, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	p, err := h.profileService.Get(c.UserContext(), middleware.GetOwnerID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, p)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req models.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	p, err := h.profileService.Upsert(c.UserContext(), middleware.GetOwnerID(c), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, p)
}
