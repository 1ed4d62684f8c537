package catalogapi

import (
	"io"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/validatex"
	"github.com/Abraxas-365/jobboard/recruitment/catalog"
	"github.com/Abraxas-365/jobboard/recruitment/catalog/catalogsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for categories, job types and companies
type Handlers struct {
	service *catalogsrv.CatalogService
}

// NewHandlers creates a new catalog handlers instance
func NewHandlers(service *catalogsrv.CatalogService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// termHandlers binds the term endpoints to one kind
type termHandlers struct {
	kind    catalog.Kind
	service *catalogsrv.CatalogService
}

// List lists terms with search, ordering and pagination
// GET /categories, GET /job-types
func (h termHandlers) List(c *fiber.Ctx) error {
	terms, err := h.service.ListTerms(c.UserContext(), h.kind, parseListRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(terms)
}

// Get retrieves one term
// GET /categories/:id, GET /job-types/:id
func (h termHandlers) Get(c *fiber.Ctx) error {
	term, err := h.service.GetTerm(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(term)
}

// Create creates a term
// POST /categories, POST /job-types
func (h termHandlers) Create(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req catalog.TermRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	created, err := h.service.CreateTerm(c.UserContext(), authContext, h.kind, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update partially updates a term
// PUT /categories/:id, PUT /job-types/:id
func (h termHandlers) Update(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req catalog.UpdateTermRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateTerm(c.UserContext(), authContext, h.kind, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// Delete deletes a term and its jobs
// DELETE /categories/:id, DELETE /job-types/:id
func (h termHandlers) Delete(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.DeleteTerm(c.UserContext(), authContext, h.kind, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCompanies lists companies
// GET /companies
func (h *Handlers) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.service.ListCompanies(c.UserContext(), parseListRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(companies)
}

// GetCompany retrieves one company
// GET /companies/:id
func (h *Handlers) GetCompany(c *fiber.Ctx) error {
	company, err := h.service.GetCompany(c.UserContext(), kernel.NewCompanyID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(company)
}

// CreateCompany creates a company
// POST /companies
func (h *Handlers) CreateCompany(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req catalog.CreateCompanyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	created, err := h.service.CreateCompany(c.UserContext(), authContext, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateCompany partially updates a company
// PUT /companies/:id
func (h *Handlers) UpdateCompany(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req catalog.UpdateCompanyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateCompany(c.UserContext(), authContext, kernel.NewCompanyID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteCompany deletes a company and its jobs
// DELETE /companies/:id
func (h *Handlers) DeleteCompany(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.DeleteCompany(c.UserContext(), authContext, kernel.NewCompanyID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadLogo replaces the company logo
// POST /companies/:id/logo
func (h *Handlers) UploadLogo(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return errx.New("logo file is required", errx.TypeValidation).WithDetail("file_error", err.Error())
	}
	if file.Size > catalogsrv.MaxLogoSize {
		return catalog.ErrLogoTooLarge().
			WithDetail("file_size", file.Size).
			WithDetail("max_size", catalogsrv.MaxLogoSize)
	}

	fileContent, err := file.Open()
	if err != nil {
		return errx.Wrap(err, "failed to open upload", errx.TypeInternal)
	}
	defer fileContent.Close()

	fileData, err := io.ReadAll(fileContent)
	if err != nil {
		return errx.Wrap(err, "failed to read upload", errx.TypeInternal)
	}

	updated, err := h.service.UploadLogo(c.UserContext(), authContext, kernel.NewCompanyID(c.Params("id")), file.Filename, fileData)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// ============================================================================
// Helper Functions
// ============================================================================

func parseListRequest(c *fiber.Ctx) catalog.ListRequest {
	return catalog.ListRequest{
		Search:   c.Query("search"),
		Ordering: catalog.ParseOrdering(c.Query("ordering")),
		Pagination: kernel.PaginationOptions{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
		}.Normalize(),
	}
}

func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	return validatex.Struct(req)
}

func registerTerms(router fiber.Router, h termHandlers, mw *auth.TokenMiddleware) {
	router.Get("/", h.List)
	router.Post("/", mw.Authenticate(), h.Create)
	router.Get("/:id", h.Get)
	router.Put("/:id", mw.Authenticate(), h.Update)
	router.Delete("/:id", mw.Authenticate(), h.Delete)
}

// RegisterRoutes registers all catalog routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	registerTerms(app.Group("/categories"), termHandlers{kind: catalog.KindCategory, service: handlers.service}, mw)
	registerTerms(app.Group("/job-types"), termHandlers{kind: catalog.KindJobType, service: handlers.service}, mw)

	companies := app.Group("/companies")
	companies.Get("/", handlers.ListCompanies)
	companies.Post("/", mw.Authenticate(), handlers.CreateCompany)
	companies.Get("/:id", handlers.GetCompany)
	companies.Put("/:id", mw.Authenticate(), handlers.UpdateCompany)
	companies.Delete("/:id", mw.Authenticate(), handlers.DeleteCompany)
	companies.Post("/:id/logo", mw.Authenticate(), handlers.UploadLogo)
}
