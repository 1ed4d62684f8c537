package catalogsrv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxLogoSize is the largest accepted company logo
const MaxLogoSize = 5 * 1024 * 1024

var logoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// CatalogService manages the reference data jobs point at: categories,
// job types and companies. Reads are public, writes need a signed-in caller.
type CatalogService struct {
	terms      map[catalog.Kind]catalog.TermRepository
	companies  catalog.CompanyRepository
	fileSystem fsx.FileSystem
	now        func() time.Time
}

// NewCatalogService creates a new instance of the catalog service
func NewCatalogService(
	categoryRepo catalog.TermRepository,
	jobTypeRepo catalog.TermRepository,
	companyRepo catalog.CompanyRepository,
	fileSystem fsx.FileSystem,
) *CatalogService {
	return &CatalogService{
		terms: map[catalog.Kind]catalog.TermRepository{
			categoryRepo.Kind(): categoryRepo,
			jobTypeRepo.Kind():  jobTypeRepo,
		},
		companies:  companyRepo,
		fileSystem: fileSystem,
		now:        time.Now,
	}
}

func (s *CatalogService) termRepo(kind catalog.Kind) (catalog.TermRepository, error) {
	repo, ok := s.terms[kind]
	if !ok {
		return nil, errx.New(fmt.Sprintf("no repository for %s", kind), errx.TypeInternal)
	}
	return repo, nil
}

// ============================================================================
// Categories and job types
// ============================================================================

func (s *CatalogService) ListTerms(ctx context.Context, kind catalog.Kind, req catalog.ListRequest) (*kernel.Paginated[catalog.TermResponse], error) {
	repo, err := s.termRepo(kind)
	if err != nil {
		return nil, err
	}

	page, err := repo.List(ctx, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list terms", errx.TypeInternal)
	}
	return kernel.MapPaginated(page, catalog.NewTermResponse), nil
}

func (s *CatalogService) GetTerm(ctx context.Context, kind catalog.Kind, id string) (*catalog.TermResponse, error) {
	repo, err := s.termRepo(kind)
	if err != nil {
		return nil, err
	}

	term, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get term", errx.TypeInternal)
	}
	resp := catalog.NewTermResponse(*term)
	return &resp, nil
}

func (s *CatalogService) CreateTerm(ctx context.Context, ac *auth.AuthContext, kind catalog.Kind, req catalog.TermRequest) (*catalog.TermResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}
	repo, err := s.termRepo(kind)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := checkTermName(kind, name); err != nil {
		return nil, err
	}

	now := s.now()
	term := &catalog.Term{
		ID:          uuid.NewString(),
		Kind:        kind,
		Name:        name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, term); err != nil {
		return nil, errx.Wrap(err, "failed to create term", errx.TypeInternal)
	}

	logx.Info("catalog term created", zap.String("kind", string(kind)), zap.String("id", term.ID), zap.String("name", name))

	resp := catalog.NewTermResponse(*term)
	return &resp, nil
}

func (s *CatalogService) UpdateTerm(ctx context.Context, ac *auth.AuthContext, kind catalog.Kind, id string, req catalog.UpdateTermRequest) (*catalog.TermResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}
	repo, err := s.termRepo(kind)
	if err != nil {
		return nil, err
	}

	term, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get term", errx.TypeInternal)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := checkTermName(kind, name); err != nil {
			return nil, err
		}
		term.Name = name
	}
	if req.Description != nil {
		term.Description = *req.Description
	}
	term.UpdatedAt = s.now()

	if err := repo.Update(ctx, term); err != nil {
		return nil, errx.Wrap(err, "failed to update term", errx.TypeInternal)
	}

	resp := catalog.NewTermResponse(*term)
	return &resp, nil
}

// DeleteTerm removes a term together with every job that references it
func (s *CatalogService) DeleteTerm(ctx context.Context, ac *auth.AuthContext, kind catalog.Kind, id string) error {
	if !ac.IsAuthenticated() {
		return auth.ErrMissingToken()
	}
	repo, err := s.termRepo(kind)
	if err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete term", errx.TypeInternal)
	}

	logx.Info("catalog term deleted", zap.String("kind", string(kind)), zap.String("id", id), zap.String("by", ac.UserID.String()))
	return nil
}

func checkTermName(kind catalog.Kind, name string) error {
	if name == "" {
		return errx.New("name is required", errx.TypeValidation).WithDetail("field", "name")
	}
	if limit := kind.MaxNameLength(); len([]rune(name)) > limit {
		return catalog.ErrNameTooLong().WithDetail("max_length", limit)
	}
	return nil
}

// ============================================================================
// Companies
// ============================================================================

func (s *CatalogService) ListCompanies(ctx context.Context, req catalog.ListRequest) (*kernel.Paginated[catalog.CompanyResponse], error) {
	page, err := s.companies.List(ctx, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list companies", errx.TypeInternal)
	}
	return kernel.MapPaginated(page, catalog.NewCompanyResponse), nil
}

func (s *CatalogService) GetCompany(ctx context.Context, id kernel.CompanyID) (*catalog.CompanyResponse, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}
	resp := catalog.NewCompanyResponse(*company)
	return &resp, nil
}

func (s *CatalogService) CreateCompany(ctx context.Context, ac *auth.AuthContext, req catalog.CreateCompanyRequest) (*catalog.CompanyResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	now := s.now()
	company := &catalog.Company{
		ID:          kernel.NewCompanyID(uuid.NewString()),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
		Size:        req.Size,
		Industry:    req.Industry,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, errx.Wrap(err, "failed to create company", errx.TypeInternal)
	}

	logx.Info("company created", zap.String("company_id", company.ID.String()), zap.String("name", company.Name))

	resp := catalog.NewCompanyResponse(*company)
	return &resp, nil
}

func (s *CatalogService) UpdateCompany(ctx context.Context, ac *auth.AuthContext, id kernel.CompanyID, req catalog.UpdateCompanyRequest) (*catalog.CompanyResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}

	if req.Name != nil {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Location != nil {
		company.Location = *req.Location
	}
	if req.Size != nil {
		company.Size = *req.Size
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	company.UpdatedAt = s.now()

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, errx.Wrap(err, "failed to update company", errx.TypeInternal)
	}

	resp := catalog.NewCompanyResponse(*company)
	return &resp, nil
}

// DeleteCompany removes the company, its jobs and its stored logo
func (s *CatalogService) DeleteCompany(ctx context.Context, ac *auth.AuthContext, id kernel.CompanyID) error {
	if !ac.IsAuthenticated() {
		return auth.ErrMissingToken()
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}

	if err := s.companies.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete company", errx.TypeInternal)
	}

	if company.HasLogo() {
		if err := s.fileSystem.DeleteFile(ctx, company.LogoPath.String()); err != nil {
			logx.Warn("failed to delete company logo", zap.String("path", company.LogoPath.String()), zap.Error(err))
		}
	}

	logx.Info("company deleted", zap.String("company_id", id.String()), zap.String("by", ac.UserID.String()))
	return nil
}

// UploadLogo stores a new logo and replaces the previous one
func (s *CatalogService) UploadLogo(ctx context.Context, ac *auth.AuthContext, id kernel.CompanyID, fileName string, data []byte) (*catalog.CompanyResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}
	if len(data) > MaxLogoSize {
		return nil, catalog.ErrLogoTooLarge().
			WithDetail("file_size", len(data)).
			WithDetail("max_size", MaxLogoSize)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !logoExtensions[ext] {
		return nil, catalog.ErrInvalidLogo().WithDetail("extension", ext)
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}
	previous := company.LogoPath

	storagePath := s.fileSystem.Join("company_logos", id.String(), fmt.Sprintf("%d%s", s.now().Unix(), ext))
	if err := s.fileSystem.WriteFile(ctx, storagePath, data); err != nil {
		return nil, errx.Wrap(err, "failed to upload logo", errx.TypeExternal)
	}

	company.LogoPath = kernel.BlobPath(storagePath)
	company.UpdatedAt = s.now()

	if err := s.companies.Update(ctx, company); err != nil {
		_ = s.fileSystem.DeleteFile(context.Background(), storagePath)
		return nil, errx.Wrap(err, "failed to update company", errx.TypeInternal)
	}

	if !previous.IsEmpty() && previous.String() != storagePath {
		if err := s.fileSystem.DeleteFile(ctx, previous.String()); err != nil {
			logx.Warn("failed to delete previous logo", zap.String("path", previous.String()), zap.Error(err))
		}
	}

	resp := catalog.NewCompanyResponse(*company)
	return &resp, nil
}
