package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/http/dto"
	"github.com/influencehub/backend/internal/middleware"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/services"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
	reminderService   *services.ReminderService
	log               *zap.Logger
}

func NewSubmissionHandler(submissionService *services.SubmissionService, reminderService *services.ReminderService, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, reminderService: reminderService, log: log}
}

func (h *SubmissionHandler) ListSubmissions(c *fiber.Ctx) error {
	subs, err := h.submissionService.List(c.UserContext(), middleware.GetOwnerID(c), c.Query("status"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, subs)
}

func (h *SubmissionHandler) GetSubmission(c *fiber.Ctx) error {
	sub, err := h.submissionService.Get(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, sub)
}

func (h *SubmissionHandler) CreateSubmission(c *fiber.Ctx) error {
	var req models.SubmissionInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	sub, err := h.submissionService.Create(c.UserContext(), middleware.GetOwnerID(c), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, sub)
}

func (h *SubmissionHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateSubmissionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	sub, err := h.submissionService.UpdateStatus(c.UserContext(), middleware.GetOwnerID(c), c.Params("id"), req.Status, req.Feedback)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, sub)
}

// DueSoon lists open submissions inside the reminder window.
func (h *SubmissionHandler) DueSoon(c *fiber.Ctx) error {
	subs, err := h.reminderService.DueSoon(c.UserContext(), middleware.GetOwnerID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, subs)
}
