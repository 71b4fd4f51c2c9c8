package helpers

import (
	"court-booking-service/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Kind       errors.Kind `json:"kind"`
	ConflictID string      `json:"conflict_id,omitempty"`
}

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return RespStatus(ctx, log, fiber.StatusOK, data, message)
}

func RespStatus(ctx *fiber.Ctx, log *otelzap.Logger, status int, data interface{}, message string) error {
	return ctx.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	code := errors.HTTPCode(err)
	kind := errors.KindOf(err)

	msg := err.Error()
	var ce *errors.CustomError
	body := &ErrorBody{Kind: kind}
	if errors.As(err, &ce) {
		msg = ce.Message
		body.ConflictID = ce.ConflictID
	}
	if code >= fiber.StatusInternalServerError {
		if log != nil {
			log.Ctx(ctx.UserContext()).Error("internal error", zap.Error(err))
		}
		msg = "internal server error"
	}

	return ctx.Status(code).JSON(Response{
		Success: false,
		Message: msg,
		Error:   body,
	})
}
