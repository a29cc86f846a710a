package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/http/dto"
	"github.com/influencehub/backend/internal/middleware"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/services"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.campaignService.List(c.UserContext(), middleware.GetOwnerID(c), c.Query("status"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, campaigns)
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	campaign, err := h.campaignService.Get(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, campaign)
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req services.CampaignInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	campaign, err := h.campaignService.Create(c.UserContext(), middleware.GetOwnerID(c), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	var req models.CampaignPatch
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	campaign, err := h.campaignService.Update(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, campaign)
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	if err := h.campaignService.Delete(c.UserContext(), middleware.GetOwnerID(c), c.Params("id")); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *CampaignHandler) ListInfluencers(c *fiber.Ctx) error {
	links, err := h.campaignService.ListInfluencers(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, links)
}

func (h *CampaignHandler) ListSubmissions(c *fiber.Ctx) error {
	subs, err := h.campaignService.ListSubmissions(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, subs)
}

// AssignInfluencer answers 201 for a new link and 200 when the pair was
// already linked.
func (h *CampaignHandler) AssignInfluencer(c *fiber.Ctx) error {
	var req dto.AssignInfluencerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	link, isNew, err := h.campaignService.Assign(c.UserContext(), middleware.GetOwnerID(c), models.AssignInput{
		CampaignID:   c.Params("id"),
		InfluencerID: req.InfluencerID,
		Role:         req.Role,
		AgreedFee:    req.AgreedFee,
	})
	if err != nil {
		return fail(c, h.log, err)
	}

	resp := dto.AssignResponse{Link: link, Created: isNew}
	if isNew {
		return created(c, resp)
	}
	return ok(c, resp)
}
