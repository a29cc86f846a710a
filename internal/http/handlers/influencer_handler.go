package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/http/dto"
	"github.com/influencehub/backend/internal/middleware"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/services"
	"go.uber.org/zap"
)

type InfluencerHandler struct {
	influencerService *services.InfluencerService
	log               *zap.Logger
}

func NewInfluencerHandler(influencerService *services.InfluencerService, log *zap.Logger) *InfluencerHandler {
	return &InfluencerHandler{influencerService: influencerService, log: log}
}

func (h *InfluencerHandler) ListInfluencers(c *fiber.Ctx) error {
	list, err := h.influencerService.List(c.UserContext(), middleware.GetOwnerID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, list)
}

func (h *InfluencerHandler) GetInfluencer(c *fiber.Ctx) error {
	inf, err := h.influencerService.Get(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, inf)
}

func (h *InfluencerHandler) CreateInfluencer(c *fiber.Ctx) error {
	var req services.InfluencerInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	inf, err := h.influencerService.Create(c.UserContext(), middleware.GetOwnerID(c), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, inf)
}

func (h *InfluencerHandler) UpdateInfluencer(c *fiber.Ctx) error {
	var req models.InfluencerPatch
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	inf, err := h.influencerService.Update(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, inf)
}

func (h *InfluencerHandler) DeleteInfluencer(c *fiber.Ctx) error {
	if err := h.influencerService.Delete(c.UserContext(), middleware.GetOwnerID(c), c.Params("id")); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *InfluencerHandler) ListCampaigns(c *fiber.Ctx) error {
	links, err := h.influencerService.Campaigns(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, links)
}

func (h *InfluencerHandler) GetPerformance(c *fiber.Ctx) error {
	perf, err := h.influencerService.Performance(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, perf)
}
