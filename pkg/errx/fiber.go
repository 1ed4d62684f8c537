package errx

import (
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FiberErrorHandler converts returned errors into JSON responses
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (unknown route, body limit, ...)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	if e, ok := As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Error("request failed",
				zap.String("path", c.Path()),
				zap.String("code", e.Code),
				zap.Error(err),
			)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %+v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    TypeInternal,
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
