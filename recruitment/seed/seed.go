// Package seed fills an empty database with a demo catalog, a staff account
// and a handful of active job postings. Every entity goes through the same
// services the HTTP API uses. Running it twice is a no-op.
package seed

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/catalog"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	Username  = "testuser"
	Email     = "test@example.com"
	Password  = "testpass123"
	jobExpiry = 30 * 24 * time.Hour
)

// Catalog is the part of the catalog service the seeder needs
type Catalog interface {
	ListTerms(ctx context.Context, kind catalog.Kind, req catalog.ListRequest) (*kernel.Paginated[catalog.TermResponse], error)
	CreateTerm(ctx context.Context, ac *auth.AuthContext, kind catalog.Kind, req catalog.TermRequest) (*catalog.TermResponse, error)
	ListCompanies(ctx context.Context, req catalog.ListRequest) (*kernel.Paginated[catalog.CompanyResponse], error)
	CreateCompany(ctx context.Context, ac *auth.AuthContext, req catalog.CreateCompanyRequest) (*catalog.CompanyResponse, error)
}

// Jobs is the part of the job service the seeder needs
type Jobs interface {
	ListJobs(ctx context.Context, req job.ListJobsRequest) (*job.PaginatedJobsResponse, error)
	CreateJob(ctx context.Context, ac *auth.AuthContext, req job.CreateJobRequest) (*job.JobDetailResponse, error)
}

// Summary counts what one run created
type Summary struct {
	Categories int
	JobTypes   int
	Companies  int
	Jobs       int
	User       bool
}

type Seeder struct {
	catalog   Catalog
	jobs      Jobs
	users     user.UserRepository
	passwords auth.PasswordService
	now       func() time.Time
}

func NewSeeder(catalogs Catalog, jobs Jobs, users user.UserRepository, passwords auth.PasswordService) *Seeder {
	return &Seeder{
		catalog:   catalogs,
		jobs:      jobs,
		users:     users,
		passwords: passwords,
		now:       time.Now,
	}
}

// Run creates whatever sample data is missing
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	owner, created, err := s.ensureUser(ctx)
	if err != nil {
		return nil, err
	}
	sum.User = created
	ac := &auth.AuthContext{
		UserID:   &owner.ID,
		Username: owner.Username,
		Email:    owner.Email,
		IsStaff:  owner.IsStaff,
	}

	categoryIDs, n, err := s.ensureTerms(ctx, ac, catalog.KindCategory, categories)
	if err != nil {
		return nil, err
	}
	sum.Categories = n

	jobTypeIDs, n, err := s.ensureTerms(ctx, ac, catalog.KindJobType, jobTypes)
	if err != nil {
		return nil, err
	}
	sum.JobTypes = n

	companyIDs := make([]kernel.CompanyID, len(companies))
	for i, req := range companies {
		id, made, err := s.ensureCompany(ctx, ac, req)
		if err != nil {
			return nil, err
		}
		companyIDs[i] = id
		if made {
			sum.Companies++
		}
	}

	expires := s.now().Add(jobExpiry)
	for _, sj := range jobs {
		req := job.CreateJobRequest{
			Title:            sj.Title,
			Description:      sj.Description,
			Requirements:     sj.Requirements,
			Responsibilities: sj.Responsibilities,
			Benefits:         sj.Benefits,
			CompanyID:        companyIDs[sj.Company],
			CategoryID:       kernel.NewCategoryID(categoryIDs[sj.Category]),
			JobTypeID:        kernel.NewJobTypeID(jobTypeIDs[sj.JobType]),
			Location:         sj.Location,
			IsRemote:         sj.IsRemote,
			SalaryMin:        amount(sj.SalaryMin),
			SalaryMax:        amount(sj.SalaryMax),
			ExperienceLevel:  sj.Level,
			Status:           job.StatusActive,
			ExpiresAt:        &expires,
			Tags:             sj.Tags,
		}
		made, err := s.ensureJob(ctx, ac, req)
		if err != nil {
			return nil, err
		}
		if made {
			sum.Jobs++
		}
	}

	logx.Info("sample data loaded",
		zap.Int("categories", sum.Categories),
		zap.Int("job_types", sum.JobTypes),
		zap.Int("companies", sum.Companies),
		zap.Int("jobs", sum.Jobs),
		zap.Bool("user_created", sum.User),
	)
	return sum, nil
}

func (s *Seeder) ensureUser(ctx context.Context) (*user.User, bool, error) {
	existing, err := s.users.FindByUsername(ctx, Username)
	if err == nil {
		return existing, false, nil
	}
	if !errx.IsType(err, errx.TypeNotFound) {
		return nil, false, err
	}

	hash, err := s.passwords.Hash(Password)
	if err != nil {
		return nil, false, err
	}
	u := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Username:     Username,
		Email:        kernel.Email(Email),
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		IsStaff:      true,
		IsActive:     true,
		DateJoined:   s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	logx.Info("sample user created", zap.String("username", Username))
	return u, true, nil
}

// ensureTerms returns the IDs of every term in order and how many were new
func (s *Seeder) ensureTerms(ctx context.Context, ac *auth.AuthContext, kind catalog.Kind, terms []catalog.TermRequest) ([]string, int, error) {
	ids := make([]string, len(terms))
	created := 0
	for i, req := range terms {
		page, err := s.catalog.ListTerms(ctx, kind, catalog.ListRequest{
			Search:     req.Name,
			Pagination: kernel.PaginationOptions{Page: 1, PageSize: kernel.MaxPageSize},
		})
		if err != nil {
			return nil, 0, err
		}
		if found, ok := findTerm(page.Items, req.Name); ok {
			ids[i] = found.ID
			continue
		}

		term, err := s.catalog.CreateTerm(ctx, ac, kind, req)
		if err != nil {
			return nil, 0, err
		}
		ids[i] = term.ID
		created++
	}
	return ids, created, nil
}

func (s *Seeder) ensureCompany(ctx context.Context, ac *auth.AuthContext, req catalog.CreateCompanyRequest) (kernel.CompanyID, bool, error) {
	page, err := s.catalog.ListCompanies(ctx, catalog.ListRequest{
		Search:     req.Name,
		Pagination: kernel.PaginationOptions{Page: 1, PageSize: kernel.MaxPageSize},
	})
	if err != nil {
		return "", false, err
	}
	for _, c := range page.Items {
		if strings.EqualFold(c.Name, req.Name) {
			return c.ID, false, nil
		}
	}

	company, err := s.catalog.CreateCompany(ctx, ac, req)
	if err != nil {
		return "", false, err
	}
	return company.ID, true, nil
}

// ensureJob treats a posting as present when the company already lists one with the same title
func (s *Seeder) ensureJob(ctx context.Context, ac *auth.AuthContext, req job.CreateJobRequest) (bool, error) {
	page, err := s.jobs.ListJobs(ctx, job.ListJobsRequest{
		Filter:     job.Filter{Search: req.Title, CompanyID: req.CompanyID},
		Pagination: kernel.PaginationOptions{Page: 1, PageSize: kernel.MaxPageSize},
	})
	if err != nil {
		return false, err
	}
	for _, j := range page.Items {
		if strings.EqualFold(j.Title, req.Title) {
			return false, nil
		}
	}

	if _, err := s.jobs.CreateJob(ctx, ac, req); err != nil {
		return false, err
	}
	return true, nil
}

func findTerm(items []catalog.TermResponse, name string) (catalog.TermResponse, bool) {
	for _, t := range items {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return catalog.TermResponse{}, false
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
