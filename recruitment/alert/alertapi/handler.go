package alertapi

import (
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/validatex"
	"github.com/Abraxas-365/jobboard/recruitment/alert"
	"github.com/Abraxas-365/jobboard/recruitment/alert/alertsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job alerts
type Handlers struct {
	service *alertsrv.AlertService
}

// NewHandlers creates a new job alert handlers instance
func NewHandlers(service *alertsrv.AlertService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListAlerts lists the caller's alerts
// GET /job-alerts
func (h *Handlers) ListAlerts(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()

	alerts, err := h.service.ListAlerts(c.UserContext(), authContext, pagination)
	if err != nil {
		return err
	}
	return c.JSON(alerts)
}

// CreateAlert creates an alert owned by the caller
// POST /job-alerts
func (h *Handlers) CreateAlert(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req alert.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	created, err := h.service.CreateAlert(c.UserContext(), authContext, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetAlert retrieves one of the caller's alerts
// GET /job-alerts/:id
func (h *Handlers) GetAlert(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	found, err := h.service.GetAlert(c.UserContext(), authContext, kernel.NewJobAlertID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(found)
}

// UpdateAlert partially updates an alert
// PUT /job-alerts/:id
func (h *Handlers) UpdateAlert(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req alert.UpdateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.UpdateAlert(c.UserContext(), authContext, kernel.NewJobAlertID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteAlert deletes an alert
// DELETE /job-alerts/:id
func (h *Handlers) DeleteAlert(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.DeleteAlert(c.UserContext(), authContext, kernel.NewJobAlertID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all job alert routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	alerts := app.Group("/job-alerts", mw.Authenticate())

	alerts.Get("/", handlers.ListAlerts)
	alerts.Post("/", handlers.CreateAlert)
	alerts.Get("/:id", handlers.GetAlert)
	alerts.Put("/:id", handlers.UpdateAlert)
	alerts.Delete("/:id", handlers.DeleteAlert)
}
