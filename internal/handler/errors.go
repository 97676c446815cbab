package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shapecalc/shapecalc/internal/dto"
	"github.com/shapecalc/shapecalc/internal/middleware"
	apperrors "github.com/shapecalc/shapecalc/internal/pkg/errors"
)

// ErrorHandler renders errors that reach fiber in the {detail} error shape
func ErrorHandler(logger *zap.Logger, sentryEnabled bool) fiber.ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		code := apperrors.GetStatusCode(err)
		body := dto.NewErrorResponse(err)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			body = dto.ErrorResponse{Detail: fe.Message}
			if code == fiber.StatusNotFound {
				body = dto.NewErrorResponse(apperrors.NotFound(fe.Message))
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request error",
				zap.Int("status", code),
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			if sentryEnabled {
				middleware.CaptureError(c, err)
			}
		}

		return c.Status(code).JSON(body)
	}
}
