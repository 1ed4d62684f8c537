package alertinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/alert"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresAlertRepository implements alert.Repository using PostgreSQL
type PostgresAlertRepository struct {
	db *sqlx.DB
}

// NewPostgresAlertRepository creates a new PostgreSQL job alert repository
func NewPostgresAlertRepository(db *sqlx.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type alertModel struct {
	ID               string              `db:"id"`
	UserID           string              `db:"user_id"`
	Name             string              `db:"name"`
	Keywords         sql.NullString      `db:"keywords"`
	Locations        sql.NullString      `db:"locations"`
	ExperienceLevels sql.NullString      `db:"experience_levels"`
	SalaryMin        decimal.NullDecimal `db:"salary_min"`
	IsRemote         bool                `db:"is_remote"`
	Frequency        string              `db:"frequency"`
	IsActive         bool                `db:"is_active"`
	CreatedAt        time.Time           `db:"created_at"`
	LastSent         *time.Time          `db:"last_sent"`
}

func (m *alertModel) toEntity() alert.JobAlert {
	return alert.JobAlert{
		ID:               kernel.JobAlertID(m.ID),
		UserID:           kernel.UserID(m.UserID),
		Name:             m.Name,
		Keywords:         m.Keywords.String,
		Locations:        m.Locations.String,
		ExperienceLevels: m.ExperienceLevels.String,
		SalaryMin:        m.SalaryMin,
		IsRemote:         m.IsRemote,
		Frequency:        alert.Frequency(m.Frequency),
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		LastSent:         m.LastSent,
	}
}

func fromEntity(a *alert.JobAlert) *alertModel {
	return &alertModel{
		ID:               a.ID.String(),
		UserID:           a.UserID.String(),
		Name:             a.Name,
		Keywords:         nullString(a.Keywords),
		Locations:        nullString(a.Locations),
		ExperienceLevels: nullString(a.ExperienceLevels),
		SalaryMin:        a.SalaryMin,
		IsRemote:         a.IsRemote,
		Frequency:        string(a.Frequency),
		IsActive:         a.IsActive,
		CreatedAt:        a.CreatedAt,
		LastSent:         a.LastSent,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// linkModel is one row of either link table joined with the target name
type linkModel struct {
	AlertID string `db:"job_alert_id"`
	ID      string `db:"id"`
	Name    string `db:"name"`
}

const alertColumns = `
	id, user_id, name, keywords, locations, experience_levels, salary_min,
	is_remote, frequency, is_active, created_at, last_sent`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create inserts the alert and its links in one transaction
func (r *PostgresAlertRepository) Create(ctx context.Context, a *alert.JobAlert) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO job_alerts (` + alertColumns + `)
		VALUES (
			:id, :user_id, :name, :keywords, :locations, :experience_levels, :salary_min,
			:is_remote, :frequency, :is_active, :created_at, :last_sent
		)
	`
	if _, err := tx.NamedExecContext(ctx, query, fromEntity(a)); err != nil {
		return fmt.Errorf("failed to create job alert: %w", err)
	}

	if err := insertLinks(ctx, tx, a); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit job alert: %w", err)
	}
	return nil
}

// Update rewrites the alert and replaces its links in one transaction
func (r *PostgresAlertRepository) Update(ctx context.Context, a *alert.JobAlert) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE job_alerts SET
			name = :name,
			keywords = :keywords,
			locations = :locations,
			experience_levels = :experience_levels,
			salary_min = :salary_min,
			is_remote = :is_remote,
			frequency = :frequency,
			is_active = :is_active
		WHERE id = :id
	`
	result, err := tx.NamedExecContext(ctx, query, fromEntity(a))
	if err != nil {
		return fmt.Errorf("failed to update job alert: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return alert.ErrAlertNotFound().WithDetail("alert_id", a.ID.String())
	}

	for _, table := range []string{"job_alert_categories", "job_alert_job_types"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE job_alert_id = $1`, a.ID.String()); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertLinks(ctx, tx, a); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit job alert: %w", err)
	}
	return nil
}

func insertLinks(ctx context.Context, tx *sqlx.Tx, a *alert.JobAlert) error {
	categoryIDs := make([]string, 0, len(a.CategoryIDs))
	for _, id := range a.CategoryIDs {
		categoryIDs = append(categoryIDs, id.String())
	}
	jobTypeIDs := make([]string, 0, len(a.JobTypeIDs))
	for _, id := range a.JobTypeIDs {
		jobTypeIDs = append(jobTypeIDs, id.String())
	}

	links := []struct {
		query string
		ids   []string
	}{
		{`INSERT INTO job_alert_categories (job_alert_id, category_id)
			SELECT $1, id FROM unnest($2::text[]) AS id ON CONFLICT DO NOTHING`, categoryIDs},
		{`INSERT INTO job_alert_job_types (job_alert_id, job_type_id)
			SELECT $1, id FROM unnest($2::text[]) AS id ON CONFLICT DO NOTHING`, jobTypeIDs},
	}

	for _, link := range links {
		if len(link.ids) == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, link.query, a.ID.String(), pq.Array(link.ids)); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
				return alert.ErrInvalidReference().WithDetail("constraint", pqErr.Constraint)
			}
			return fmt.Errorf("failed to link job alert: %w", err)
		}
	}
	return nil
}

func (r *PostgresAlertRepository) Delete(ctx context.Context, id kernel.JobAlertID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_alerts WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete job alert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return alert.ErrAlertNotFound().WithDetail("alert_id", id.String())
	}
	return nil
}

func (r *PostgresAlertRepository) GetDetails(ctx context.Context, id kernel.JobAlertID) (*alert.Details, error) {
	var model alertModel
	query := `SELECT` + alertColumns + ` FROM job_alerts WHERE id = $1`
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, alert.ErrAlertNotFound().WithDetail("alert_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job alert: %w", err)
	}

	details, err := r.withLinks(ctx, []alertModel{model})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (r *PostgresAlertRepository) ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[alert.Details], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM job_alerts WHERE user_id = $1`, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to count job alerts: %w", err)
	}

	query := `SELECT` + alertColumns + `
		FROM job_alerts
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	var models []alertModel
	if err := r.db.SelectContext(ctx, &models, query, userID.String(), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list job alerts: %w", err)
	}

	items, err := r.withLinks(ctx, models)
	if err != nil {
		return nil, err
	}
	return kernel.NewPaginated(items, pagination, total), nil
}

// withLinks loads the categories and job types of all given alerts with one
// query per link table
func (r *PostgresAlertRepository) withLinks(ctx context.Context, models []alertModel) ([]alert.Details, error) {
	items := make([]alert.Details, 0, len(models))
	if len(models) == 0 {
		return items, nil
	}

	ids := make([]string, 0, len(models))
	for i := range models {
		ids = append(ids, models[i].ID)
	}

	var categories []linkModel
	categoryQuery := `
		SELECT l.job_alert_id, c.id, c.name
		FROM job_alert_categories l
		JOIN categories c ON c.id = l.category_id
		WHERE l.job_alert_id = ANY($1)
		ORDER BY c.name`
	if err := r.db.SelectContext(ctx, &categories, categoryQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to load alert categories: %w", err)
	}

	var jobTypes []linkModel
	jobTypeQuery := `
		SELECT l.job_alert_id, jt.id, jt.name
		FROM job_alert_job_types l
		JOIN job_types jt ON jt.id = l.job_type_id
		WHERE l.job_alert_id = ANY($1)
		ORDER BY jt.name`
	if err := r.db.SelectContext(ctx, &jobTypes, jobTypeQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to load alert job types: %w", err)
	}

	byAlert := make(map[string]*alert.Details, len(models))
	for i := range models {
		items = append(items, alert.Details{JobAlert: models[i].toEntity()})
	}
	for i := range items {
		byAlert[items[i].ID.String()] = &items[i]
	}

	for _, link := range categories {
		d := byAlert[link.AlertID]
		d.Categories = append(d.Categories, alert.Ref{ID: link.ID, Name: link.Name})
		d.CategoryIDs = append(d.CategoryIDs, kernel.CategoryID(link.ID))
	}
	for _, link := range jobTypes {
		d := byAlert[link.AlertID]
		d.JobTypes = append(d.JobTypes, alert.Ref{ID: link.ID, Name: link.Name})
		d.JobTypeIDs = append(d.JobTypeIDs, kernel.JobTypeID(link.ID))
	}

	return items, nil
}
