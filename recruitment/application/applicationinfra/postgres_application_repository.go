package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type applicationModel struct {
	ID               string              `db:"id"`
	JobID            string              `db:"job_id"`
	ApplicantID      string              `db:"applicant_id"`
	CoverLetter      string              `db:"cover_letter"`
	ResumeURL        sql.NullString      `db:"resume_url"`
	Status           string              `db:"status"`
	Phone            sql.NullString      `db:"phone"`
	Email            string              `db:"email"`
	LinkedInURL      sql.NullString      `db:"linkedin_url"`
	PortfolioURL     sql.NullString      `db:"portfolio_url"`
	ExpectedSalary   decimal.NullDecimal `db:"expected_salary"`
	AvailabilityDate *time.Time          `db:"availability_date"`
	Notes            sql.NullString      `db:"notes"`
	AppliedAt        time.Time           `db:"applied_at"`
	UpdatedAt        time.Time           `db:"updated_at"`
	ReviewedAt       *time.Time          `db:"reviewed_at"`
}

type detailsModel struct {
	applicationModel
	JobTitle          string `db:"job_title"`
	JobSlug           string `db:"job_slug"`
	JobStatus         string `db:"job_status"`
	JobPostedBy       string `db:"job_posted_by"`
	CompanyName       string `db:"company_name"`
	ApplicantUsername string `db:"applicant_username"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (m *applicationModel) toEntity() *application.Application {
	var available *kernel.Date
	if m.AvailabilityDate != nil {
		d := kernel.NewDate(*m.AvailabilityDate)
		available = &d
	}
	return &application.Application{
		ID:               kernel.ApplicationID(m.ID),
		JobID:            kernel.JobID(m.JobID),
		ApplicantID:      kernel.UserID(m.ApplicantID),
		CoverLetter:      m.CoverLetter,
		ResumePath:       kernel.BlobPath(m.ResumeURL.String),
		Status:           application.Status(m.Status),
		Phone:            m.Phone.String,
		Email:            kernel.Email(m.Email),
		LinkedInURL:      m.LinkedInURL.String,
		PortfolioURL:     m.PortfolioURL.String,
		ExpectedSalary:   m.ExpectedSalary,
		AvailabilityDate: available,
		Notes:            m.Notes.String,
		AppliedAt:        m.AppliedAt,
		UpdatedAt:        m.UpdatedAt,
		ReviewedAt:       m.ReviewedAt,
	}
}

func (m *detailsModel) toDetails() *application.Details {
	return &application.Details{
		Application: *m.applicationModel.toEntity(),
		Job: application.JobSummary{
			ID:          kernel.JobID(m.JobID),
			Title:       m.JobTitle,
			Slug:        kernel.Slug(m.JobSlug),
			CompanyName: m.CompanyName,
			Status:      m.JobStatus,
			PostedBy:    kernel.UserID(m.JobPostedBy),
		},
		ApplicantName: m.ApplicantUsername,
	}
}

func fromEntity(a *application.Application) *applicationModel {
	var available *time.Time
	if a.AvailabilityDate != nil {
		t := a.AvailabilityDate.Time
		available = &t
	}
	return &applicationModel{
		ID:               a.ID.String(),
		JobID:            a.JobID.String(),
		ApplicantID:      a.ApplicantID.String(),
		CoverLetter:      a.CoverLetter,
		ResumeURL:        nullString(a.ResumePath.String()),
		Status:           string(a.Status),
		Phone:            nullString(a.Phone),
		Email:            a.Email.String(),
		LinkedInURL:      nullString(a.LinkedInURL),
		PortfolioURL:     nullString(a.PortfolioURL),
		ExpectedSalary:   a.ExpectedSalary,
		AvailabilityDate: available,
		Notes:            nullString(a.Notes),
		AppliedAt:        a.AppliedAt,
		UpdatedAt:        a.UpdatedAt,
		ReviewedAt:       a.ReviewedAt,
	}
}

const selectDetails = `
	SELECT
		a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url, a.status,
		a.phone, a.email, a.linkedin_url, a.portfolio_url, a.expected_salary,
		a.availability_date, a.notes, a.applied_at, a.updated_at, a.reviewed_at,
		j.title AS job_title, j.slug AS job_slug, j.status AS job_status,
		j.posted_by AS job_posted_by, c.name AS company_name,
		u.username AS applicant_username
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
	JOIN users u ON u.id = a.applicant_id`

var orderClauses = map[application.Ordering]string{
	application.OrderAppliedAsc:  "a.applied_at ASC",
	application.OrderAppliedDesc: "a.applied_at DESC",
	application.OrderStatusAsc:   "a.status ASC",
	application.OrderStatusDesc:  "a.status DESC",
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, applicant_id, cover_letter, resume_url, status,
			phone, email, linkedin_url, portfolio_url, expected_salary,
			availability_date, notes, applied_at, updated_at, reviewed_at
		) VALUES (
			:id, :job_id, :applicant_id, :cover_letter, :resume_url, :status,
			:phone, :email, :linkedin_url, :portfolio_url, :expected_salary,
			:availability_date, :notes, :applied_at, :updated_at, :reviewed_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(app)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return application.ErrApplicationAlreadyExists().WithDetail("job_id", app.JobID.String())
			case "23503": // foreign_key_violation
				return application.ErrJobNotFound().WithDetail("job_id", app.JobID.String())
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// Update updates the reviewer-managed columns
func (r *PostgresApplicationRepository) Update(ctx context.Context, app *application.Application) error {
	query := `
		UPDATE applications SET
			status = :status,
			notes = :notes,
			resume_url = :resume_url,
			reviewed_at = :reviewed_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, fromEntity(app))
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound()
	}
	return nil
}

// GetDetails retrieves an application with job and applicant
func (r *PostgresApplicationRepository) GetDetails(ctx context.Context, id kernel.ApplicationID) (*application.Details, error) {
	var model detailsModel
	if err := r.db.GetContext(ctx, &model, selectDetails+` WHERE a.id = $1`, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return model.toDetails(), nil
}

// List retrieves applications with pagination
func (r *PostgresApplicationRepository) List(ctx context.Context, req application.ListApplicationsRequest) (*kernel.Paginated[application.Details], error) {
	pagination := req.Pagination.Normalize()

	where := ""
	args := []any{}
	argCount := 0
	if req.ApplicantID != nil {
		argCount++
		where = fmt.Sprintf(" WHERE a.applicant_id = $%d", argCount)
		args = append(args, req.ApplicantID.String())
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applications a`+where, args...); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	order, ok := orderClauses[req.Ordering]
	if !ok {
		order = orderClauses[application.DefaultOrdering]
	}

	query := fmt.Sprintf("%s%s ORDER BY %s, a.id ASC LIMIT $%d OFFSET $%d",
		selectDetails, where, order, argCount+1, argCount+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	var models []detailsModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	items := make([]application.Details, 0, len(models))
	for i := range models {
		items = append(items, *models[i].toDetails())
	}
	return kernel.NewPaginated(items, pagination, total), nil
}

// RefreshJobCount recomputes the denormalized applications_count
func (r *PostgresApplicationRepository) RefreshJobCount(ctx context.Context, jobID kernel.JobID) (int, error) {
	query := `
		UPDATE jobs
		SET applications_count = (SELECT COUNT(*) FROM applications WHERE job_id = $1)
		WHERE id = $1
		RETURNING applications_count
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, jobID.String()); err != nil {
		return 0, fmt.Errorf("failed to refresh applications_count: %w", err)
	}
	return count, nil
}
