package statsapi

import (
	"github.com/Abraxas-365/jobboard/recruitment/stats/statssrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for aggregate statistics
type Handlers struct {
	service *statssrv.Service
}

func NewHandlers(service *statssrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetStatistics returns the cached counts
// GET /statistics
func (h *Handlers) GetStatistics(c *fiber.Ctx) error {
	s, err := h.service.GetStatistics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// RegisterRoutes registers the statistics route
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/statistics", handlers.GetStatistics)
}
