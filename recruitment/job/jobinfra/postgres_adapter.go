package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID                string              `db:"id"`
	Title             string              `db:"title"`
	Description       string              `db:"description"`
	Requirements      string              `db:"requirements"`
	Responsibilities  string              `db:"responsibilities"`
	Benefits          sql.NullString      `db:"benefits"`
	CompanyID         string              `db:"company_id"`
	CategoryID        string              `db:"category_id"`
	JobTypeID         string              `db:"job_type_id"`
	PostedBy          string              `db:"posted_by"`
	Location          string              `db:"location"`
	IsRemote          bool                `db:"is_remote"`
	SalaryMin         decimal.NullDecimal `db:"salary_min"`
	SalaryMax         decimal.NullDecimal `db:"salary_max"`
	Currency          string              `db:"currency"`
	ExperienceLevel   string              `db:"experience_level"`
	Status            string              `db:"status"`
	CreatedAt         time.Time           `db:"created_at"`
	UpdatedAt         time.Time           `db:"updated_at"`
	ExpiresAt         *time.Time          `db:"expires_at"`
	Slug              string              `db:"slug"`
	Tags              sql.NullString      `db:"tags"`
	ViewsCount        int                 `db:"views_count"`
	ApplicationsCount int                 `db:"applications_count"`
}

// listingModel is a job row joined with its reference data
type listingModel struct {
	jobModel
	CompanyName       string `db:"company_name"`
	CompanyLocation   string `db:"company_location"`
	CompanyLogoURL    string `db:"company_logo_url"`
	CompanyJobsCount  int    `db:"company_jobs_count"`
	CategoryName      string `db:"category_name"`
	CategoryJobsCount int    `db:"category_jobs_count"`
	JobTypeName       string `db:"job_type_name"`
	JobTypeJobsCount  int    `db:"job_type_jobs_count"`
	PostedByUsername  string `db:"posted_by_username"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (m *jobModel) toEntity() *job.Job {
	return &job.Job{
		ID:                kernel.JobID(m.ID),
		Title:             m.Title,
		Description:       m.Description,
		Requirements:      m.Requirements,
		Responsibilities:  m.Responsibilities,
		Benefits:          m.Benefits.String,
		CompanyID:         kernel.CompanyID(m.CompanyID),
		CategoryID:        kernel.CategoryID(m.CategoryID),
		JobTypeID:         kernel.JobTypeID(m.JobTypeID),
		PostedBy:          kernel.UserID(m.PostedBy),
		Location:          m.Location,
		IsRemote:          m.IsRemote,
		SalaryMin:         m.SalaryMin,
		SalaryMax:         m.SalaryMax,
		Currency:          m.Currency,
		ExperienceLevel:   job.ExperienceLevel(m.ExperienceLevel),
		Status:            job.Status(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		ExpiresAt:         m.ExpiresAt,
		Slug:              kernel.Slug(m.Slug),
		Tags:              m.Tags.String,
		ViewsCount:        m.ViewsCount,
		ApplicationsCount: m.ApplicationsCount,
	}
}

func (m *listingModel) toListing() *job.Listing {
	return &job.Listing{
		Job: *m.jobModel.toEntity(),
		Company: job.CompanySummary{
			ID:        kernel.CompanyID(m.CompanyID),
			Name:      m.CompanyName,
			Location:  m.CompanyLocation,
			LogoURL:   kernel.BlobPath(m.CompanyLogoURL),
			JobsCount: m.CompanyJobsCount,
		},
		Category: job.CategorySummary{
			ID:        kernel.CategoryID(m.CategoryID),
			Name:      m.CategoryName,
			JobsCount: m.CategoryJobsCount,
		},
		JobType: job.JobTypeSummary{
			ID:        kernel.JobTypeID(m.JobTypeID),
			Name:      m.JobTypeName,
			JobsCount: m.JobTypeJobsCount,
		},
		PostedByName: m.PostedByUsername,
	}
}

func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:                j.ID.String(),
		Title:             j.Title,
		Description:       j.Description,
		Requirements:      j.Requirements,
		Responsibilities:  j.Responsibilities,
		Benefits:          nullString(j.Benefits),
		CompanyID:         j.CompanyID.String(),
		CategoryID:        j.CategoryID.String(),
		JobTypeID:         j.JobTypeID.String(),
		PostedBy:          j.PostedBy.String(),
		Location:          j.Location,
		IsRemote:          j.IsRemote,
		SalaryMin:         j.SalaryMin,
		SalaryMax:         j.SalaryMax,
		Currency:          j.Currency,
		ExperienceLevel:   string(j.ExperienceLevel),
		Status:            string(j.Status),
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
		ExpiresAt:         j.ExpiresAt,
		Slug:              j.Slug.String(),
		Tags:              nullString(j.Tags),
		ViewsCount:        j.ViewsCount,
		ApplicationsCount: j.ApplicationsCount,
	}
}

// ============================================================================
// Queries
// ============================================================================

const jobColumns = `
	j.id, j.title, j.description, j.requirements, j.responsibilities, j.benefits,
	j.company_id, j.category_id, j.job_type_id, j.posted_by, j.location, j.is_remote,
	j.salary_min, j.salary_max, j.currency, j.experience_level, j.status,
	j.created_at, j.updated_at, j.expires_at, j.slug, j.tags,
	j.views_count, j.applications_count`

const listingFrom = `
	FROM jobs j
	JOIN companies c ON c.id = j.company_id
	JOIN categories cat ON cat.id = j.category_id
	JOIN job_types jt ON jt.id = j.job_type_id
	JOIN users u ON u.id = j.posted_by`

const selectListing = `
	SELECT ` + jobColumns + `,
		c.name AS company_name,
		COALESCE(c.location, '') AS company_location,
		COALESCE(c.logo_url, '') AS company_logo_url,
		(SELECT COUNT(*) FROM jobs x WHERE x.company_id = c.id AND x.status = 'active') AS company_jobs_count,
		cat.name AS category_name,
		(SELECT COUNT(*) FROM jobs x WHERE x.category_id = cat.id AND x.status = 'active') AS category_jobs_count,
		jt.name AS job_type_name,
		(SELECT COUNT(*) FROM jobs x WHERE x.job_type_id = jt.id AND x.status = 'active') AS job_type_jobs_count,
		u.username AS posted_by_username` + listingFrom

// ============================================================================
// Repository Implementation
// ============================================================================

func mapWriteError(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return job.ErrSlugTaken().WithDetail("constraint", pqErr.Constraint)
		case "23503": // foreign_key_violation
			return job.ErrInvalidReference().WithDetail("constraint", pqErr.Constraint)
		case "23514": // check_violation
			if pqErr.Constraint == "jobs_salary_range" {
				return job.ErrInvalidSalaryRange()
			}
		}
	}
	return fmt.Errorf("failed to %s job: %w", action, err)
}

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	query := `
		INSERT INTO jobs (
			id, title, description, requirements, responsibilities, benefits,
			company_id, category_id, job_type_id, posted_by, location, is_remote,
			salary_min, salary_max, currency, experience_level, status,
			created_at, updated_at, expires_at, slug, tags,
			views_count, applications_count
		) VALUES (
			:id, :title, :description, :requirements, :responsibilities, :benefits,
			:company_id, :category_id, :job_type_id, :posted_by, :location, :is_remote,
			:salary_min, :salary_max, :currency, :experience_level, :status,
			:created_at, :updated_at, :expires_at, :slug, :tags,
			0, 0
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(jobEntity)); err != nil {
		return mapWriteError(err, "create")
	}
	return nil
}

// Update updates the client-editable columns. Counters and slug are never written here.
func (r *PostgresJobRepository) Update(ctx context.Context, jobEntity *job.Job) error {
	query := `
		UPDATE jobs SET
			title = :title,
			description = :description,
			requirements = :requirements,
			responsibilities = :responsibilities,
			benefits = :benefits,
			category_id = :category_id,
			job_type_id = :job_type_id,
			location = :location,
			is_remote = :is_remote,
			salary_min = :salary_min,
			salary_max = :salary_max,
			currency = :currency,
			experience_level = :experience_level,
			status = :status,
			expires_at = :expires_at,
			tags = :tags,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, fromEntity(jobEntity))
	if err != nil {
		return mapWriteError(err, "update")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}
	return nil
}

// Delete deletes a job by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}
	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var model jobModel
	err := r.db.GetContext(ctx, &model, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}
	return model.toEntity(), nil
}

// GetListingBySlug retrieves a job with its reference data
func (r *PostgresJobRepository) GetListingBySlug(ctx context.Context, slug kernel.Slug) (*job.Listing, error) {
	var model listingModel
	err := r.db.GetContext(ctx, &model, selectListing+` WHERE j.slug = $1`, slug.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("slug", slug.String())
		}
		return nil, fmt.Errorf("failed to get job by slug: %w", err)
	}
	return model.toListing(), nil
}

// ListActive runs the public listing query
func (r *PostgresJobRepository) ListActive(ctx context.Context, req job.ListJobsRequest, now time.Time) (*kernel.Paginated[job.Listing], error) {
	pagination := req.Pagination.Normalize()

	w := &whereBuilder{}
	applyVisibility(w, now)
	applyFilter(w, req.Filter)
	where := w.sql()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+listingFrom+where, w.args...); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	limitArg := w.next(pagination.PageSize)
	offsetArg := w.next(pagination.Offset())
	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT %s OFFSET %s",
		selectListing, where, orderClause(req.Ordering), limitArg, offsetArg)

	var models []listingModel
	if err := r.db.SelectContext(ctx, &models, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	listings := make([]job.Listing, 0, len(models))
	for i := range models {
		listings = append(listings, *models[i].toListing())
	}
	return kernel.NewPaginated(listings, pagination, total), nil
}

// SlugExists checks whether a slug is already used
func (r *PostgresJobRepository) SlugExists(ctx context.Context, slug kernel.Slug) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM jobs WHERE slug = $1)`, slug.String())
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// CompanyName resolves a company for slug derivation
func (r *PostgresJobRepository) CompanyName(ctx context.Context, id kernel.CompanyID) (string, error) {
	var name string
	err := r.db.GetContext(ctx, &name, `SELECT name FROM companies WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", job.ErrInvalidReference().WithDetail("company_id", id.String())
		}
		return "", fmt.Errorf("failed to get company name: %w", err)
	}
	return name, nil
}
