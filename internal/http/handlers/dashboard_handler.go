package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/http/dto"
	"github.com/influencehub/backend/internal/middleware"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/services"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	log              *zap.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, log: log}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.dashboardService.Dashboard(c.UserContext(), middleware.GetOwnerID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, dto.DashboardResponse{Dashboard: d, Counts: d.Counts()})
}

// GetAnalytics reads ?range=7|30, defaulting to 7.
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	r := models.AnalyticsRange(c.QueryInt("range", int(models.AnalyticsRange7)))
	a, err := h.dashboardService.Analytics(c.UserContext(), middleware.GetOwnerID(c), r)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, a)
}
