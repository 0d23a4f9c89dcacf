package serverutils

import (
	"errors"

	"careerpilot-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps every error escaping a handler onto the
// response taxonomy: 401, 404, 400, 413, 429, 500. Internal detail is
// logged server-side only.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if log != nil {
			log.Error("HTTP", "Unhandled handler error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(500, "Internal server error"))
	}
}
