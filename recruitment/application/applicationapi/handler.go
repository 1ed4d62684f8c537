package applicationapi

import (
	"io"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/validatex"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateApplication applies the caller to a job
// POST /applications
func (h *Handlers) CreateApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req application.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	created, err := h.service.CreateApplication(c.UserContext(), authContext, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListApplications lists the applications visible to the caller
// GET /applications
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	applications, err := h.service.ListApplications(
		c.UserContext(),
		authContext,
		application.ParseOrdering(c.Query("ordering")),
		parsePaginationOptions(c),
	)
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// GetApplication retrieves one application
// GET /applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	app, err := h.service.GetApplication(c.UserContext(), authContext, kernel.NewApplicationID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// UpdateApplication changes status and reviewer notes
// PATCH /applications/:id
func (h *Handlers) UpdateApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req application.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.UpdateApplication(c.UserContext(), authContext, kernel.NewApplicationID(c.Params("id")), req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// UploadResume stores the resume for the caller's application
// POST /applications/:id/resume
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return application.ErrInvalidRequest().WithDetail("file_error", err.Error())
	}
	if file.Size > applicationsrv.MaxResumeSize {
		return application.ErrFileSizeTooLarge().
			WithDetail("file_size", file.Size).
			WithDetail("max_size", applicationsrv.MaxResumeSize)
	}

	fileContent, err := file.Open()
	if err != nil {
		return application.ErrInvalidRequest().WithDetail("file_open_error", err.Error())
	}
	defer fileContent.Close()

	fileData, err := io.ReadAll(fileContent)
	if err != nil {
		return errx.Wrap(err, "failed to read upload", errx.TypeInternal)
	}

	updated, err := h.service.UploadResume(
		c.UserContext(),
		authContext,
		kernel.NewApplicationID(c.Params("id")),
		file.Filename,
		fileData,
	)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DownloadResume streams the stored resume
// GET /applications/:id/resume
func (h *Handlers) DownloadResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	stream, filename, err := h.service.DownloadResume(c.UserContext(), authContext, kernel.NewApplicationID(c.Params("id")))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)

	// fasthttp closes the stream once the body is written
	return c.SendStream(stream)
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

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	applications := app.Group("/applications", mw.Authenticate())

	applications.Get("/", handlers.ListApplications)
	applications.Post("/", handlers.CreateApplication)
	applications.Get("/:id", handlers.GetApplication)
	applications.Patch("/:id", handlers.UpdateApplication)
	applications.Post("/:id/resume", handlers.UploadResume)
	applications.Get("/:id/resume", handlers.DownloadResume)
}
