package savedjobapi

import (
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/validatex"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob/savedjobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for saved jobs
type Handlers struct {
	service *savedjobsrv.SavedJobService
}

// NewHandlers creates a new saved job handlers instance
func NewHandlers(service *savedjobsrv.SavedJobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListSavedJobs lists the caller's saved jobs
// GET /saved-jobs
func (h *Handlers) ListSavedJobs(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()

	saved, err := h.service.ListSavedJobs(c.UserContext(), authContext, pagination)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

// SaveJob bookmarks a job
// POST /saved-jobs
func (h *Handlers) SaveJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req savedjob.SaveJobRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	saved, err := h.service.SaveJob(c.UserContext(), authContext, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// UnsaveJob removes a bookmark
// DELETE /saved-jobs/:id
func (h *Handlers) UnsaveJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.UnsaveJob(c.UserContext(), authContext, kernel.NewSavedJobID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all saved job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	saved := app.Group("/saved-jobs", mw.Authenticate())

	saved.Get("/", handlers.ListSavedJobs)
	saved.Post("/", handlers.SaveJob)
	saved.Delete("/:id", handlers.UnsaveJob)
}
