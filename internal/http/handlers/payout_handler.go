package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/middleware"
	"github.com/influencehub/backend/internal/services"
	"go.uber.org/zap"
)

type PayoutHandler struct {
	payoutService *services.PayoutService
	log           *zap.Logger
}

func NewPayoutHandler(payoutService *services.PayoutService, log *zap.Logger) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService, log: log}
}

func (h *PayoutHandler) ListPayouts(c *fiber.Ctx) error {
	payouts, err := h.payoutService.List(c.UserContext(), middleware.GetOwnerID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, payouts)
}

func (h *PayoutHandler) MarkPaid(c *fiber.Ctx) error {
	payout, err := h.payoutService.MarkPaid(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, payout)
}
