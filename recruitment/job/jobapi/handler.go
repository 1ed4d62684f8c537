package jobapi

import (
	"net"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/validatex"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListJobs lists active jobs with filtering, search, ordering and pagination
// GET /jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	filter, err := job.ParseFilter(c.Queries())
	if err != nil {
		return err
	}

	jobs, err := h.service.ListJobs(c.UserContext(), job.ListJobsRequest{
		Filter:     filter,
		Ordering:   job.ParseOrdering(c.Query("ordering")),
		Pagination: parsePaginationOptions(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// CreateJob creates a job posted by the caller
// POST /jobs/create
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	created, err := h.service.CreateJob(c.UserContext(), authContext, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetJob returns a job and tracks the view
// GET /jobs/:slug
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	detail, err := h.service.GetJob(
		c.UserContext(),
		kernel.Slug(c.Params("slug")),
		auth.ViewerID(c),
		clientIP(c),
		c.Get(fiber.HeaderUserAgent),
	)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// UpdateJob partially updates a job
// PUT /jobs/:slug
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.UpdateJob(c.UserContext(), authContext, kernel.Slug(c.Params("slug")), req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteJob deletes a job
// DELETE /jobs/:slug
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.DeleteJob(c.UserContext(), authContext, kernel.Slug(c.Params("slug"))); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Helper Functions
// ============================================================================

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// clientIP prefers the first X-Forwarded-For entry when it is a valid address
func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		first := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	return c.IP()
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	jobs := app.Group("/jobs")

	jobs.Get("/", handlers.ListJobs)
	jobs.Post("/create", mw.Authenticate(), handlers.CreateJob)
	jobs.Get("/:slug", mw.OptionalAuthenticate(), handlers.GetJob)
	jobs.Put("/:slug", mw.Authenticate(), handlers.UpdateJob)
	jobs.Delete("/:slug", mw.Authenticate(), handlers.DeleteJob)
}
