package jobinfra

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresViewTracker implements job.ViewTracker
type PostgresViewTracker struct {
	db *sqlx.DB
}

func NewPostgresViewTracker(db *sqlx.DB) *PostgresViewTracker {
	return &PostgresViewTracker{db: db}
}

// RecordView inserts the view unless the (job, ip, viewer) tuple was
// already seen, and bumps views_count in the same transaction when it was new.
func (t *PostgresViewTracker) RecordView(ctx context.Context, v job.View) (bool, error) {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin view tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var viewer any
	if v.UserID != nil {
		viewer = v.UserID.String()
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO job_views (id, job_id, user_id, ip_address, user_agent, viewed_at)
		SELECT $1, $2, $3::text, $4::inet, $5, $6::timestamptz
		WHERE NOT EXISTS (
			SELECT 1 FROM job_views
			WHERE job_id = $2 AND ip_address = $4::inet AND user_id IS NOT DISTINCT FROM $3::text
		)`,
		uuid.NewString(), v.JobID.String(), viewer, v.IPAddress, v.UserAgent, v.ViewedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert job view: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if inserted == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE jobs SET views_count = views_count + 1 WHERE id = $1`, v.JobID.String()); err != nil {
		return false, fmt.Errorf("failed to increment views_count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit job view: %w", err)
	}
	return true, nil
}
