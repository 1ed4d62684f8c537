package savedjobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSavedJobRepository implements savedjob.Repository using PostgreSQL
type PostgresSavedJobRepository struct {
	db *sqlx.DB
}

// NewPostgresSavedJobRepository creates a new PostgreSQL saved job repository
func NewPostgresSavedJobRepository(db *sqlx.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type savedJobModel struct {
	ID      string    `db:"id"`
	UserID  string    `db:"user_id"`
	JobID   string    `db:"job_id"`
	SavedAt time.Time `db:"saved_at"`
}

type entryModel struct {
	savedJobModel
	JobTitle    string `db:"job_title"`
	JobSlug     string `db:"job_slug"`
	JobLocation string `db:"job_location"`
	JobIsRemote bool   `db:"job_is_remote"`
	JobStatus   string `db:"job_status"`
	CompanyName string `db:"company_name"`
}

func (m *savedJobModel) toEntity() *savedjob.SavedJob {
	return &savedjob.SavedJob{
		ID:      kernel.SavedJobID(m.ID),
		UserID:  kernel.UserID(m.UserID),
		JobID:   kernel.JobID(m.JobID),
		SavedAt: m.SavedAt,
	}
}

func (m *entryModel) toEntry() *savedjob.Entry {
	return &savedjob.Entry{
		SavedJob: *m.savedJobModel.toEntity(),
		Job: savedjob.JobSummary{
			ID:          kernel.JobID(m.JobID),
			Title:       m.JobTitle,
			Slug:        kernel.Slug(m.JobSlug),
			CompanyName: m.CompanyName,
			Location:    m.JobLocation,
			IsRemote:    m.JobIsRemote,
			Status:      m.JobStatus,
		},
	}
}

const selectEntries = `
	SELECT
		s.id, s.user_id, s.job_id, s.saved_at,
		j.title AS job_title, j.slug AS job_slug, j.location AS job_location,
		j.is_remote AS job_is_remote, j.status AS job_status,
		c.name AS company_name
	FROM saved_jobs s
	JOIN jobs j ON j.id = s.job_id
	JOIN companies c ON c.id = j.company_id`

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresSavedJobRepository) Create(ctx context.Context, s *savedjob.SavedJob) error {
	query := `
		INSERT INTO saved_jobs (id, user_id, job_id, saved_at)
		VALUES (:id, :user_id, :job_id, :saved_at)
	`

	model := savedJobModel{
		ID:      s.ID.String(),
		UserID:  s.UserID.String(),
		JobID:   s.JobID.String(),
		SavedAt: s.SavedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return savedjob.ErrAlreadySaved().WithDetail("job_id", s.JobID.String())
			case "23503": // foreign_key_violation
				return savedjob.ErrJobNotFound().WithDetail("job_id", s.JobID.String())
			}
		}
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, id kernel.SavedJobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete saved job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return savedjob.ErrSavedJobNotFound().WithDetail("saved_job_id", id.String())
	}
	return nil
}

func (r *PostgresSavedJobRepository) GetByID(ctx context.Context, id kernel.SavedJobID) (*savedjob.SavedJob, error) {
	var model savedJobModel
	query := `SELECT id, user_id, job_id, saved_at FROM saved_jobs WHERE id = $1`
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, savedjob.ErrSavedJobNotFound().WithDetail("saved_job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get saved job: %w", err)
	}
	return model.toEntity(), nil
}

func (r *PostgresSavedJobRepository) GetEntry(ctx context.Context, id kernel.SavedJobID) (*savedjob.Entry, error) {
	var model entryModel
	if err := r.db.GetContext(ctx, &model, selectEntries+` WHERE s.id = $1`, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, savedjob.ErrSavedJobNotFound().WithDetail("saved_job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get saved job: %w", err)
	}
	return model.toEntry(), nil
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[savedjob.Entry], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to count saved jobs: %w", err)
	}

	query := selectEntries + ` WHERE s.user_id = $1 ORDER BY s.saved_at DESC, s.id ASC LIMIT $2 OFFSET $3`

	var models []entryModel
	if err := r.db.SelectContext(ctx, &models, query, userID.String(), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}

	items := make([]savedjob.Entry, 0, len(models))
	for i := range models {
		items = append(items, *models[i].toEntry())
	}
	return kernel.NewPaginated(items, pagination, total), nil
}
