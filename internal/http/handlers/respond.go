package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/http/dto"
	"github.com/influencehub/backend/internal/middleware"
	"go.uber.org/zap"
)

// fail writes err as an ErrorResponse with the status its reason maps to.
// Internal and persistence failures are logged and their text withheld.
func fail(c *fiber.Ctx, log *zap.Logger, err error) error {
	resp := dto.ErrorResponse{
		Error:     err.Error(),
		Reason:    apperr.Reason(err),
		RequestID: middleware.GetRequestID(c),
	}

	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
		resp.Error = verr.Message
	}

	status := apperr.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("request_id", resp.RequestID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		resp.Error = "internal error"
		if errors.Is(err, apperr.ErrPersistence) {
			resp.Error = "storage unavailable"
		}
	}
	return c.Status(status).JSON(resp)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:     msg,
		Reason:    apperr.ReasonValidation,
		RequestID: middleware.GetRequestID(c),
	})
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: data})
}
