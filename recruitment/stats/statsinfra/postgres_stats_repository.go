package statsinfra

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/jobboard/recruitment/stats"
	"github.com/jmoiron/sqlx"
)

// PostgresStatsRepository implements stats.Repository using PostgreSQL
type PostgresStatsRepository struct {
	db *sqlx.DB
}

// NewPostgresStatsRepository creates a new PostgreSQL statistics repository
func NewPostgresStatsRepository(db *sqlx.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{
		db: db,
	}
}

// Count computes all four totals in a single round trip. Active means
// status 'active'; expiry is not considered here.
func (r *PostgresStatsRepository) Count(ctx context.Context) (*stats.Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM jobs WHERE status = 'active') AS total_active_jobs,
			(SELECT COUNT(*) FROM companies) AS total_companies,
			(SELECT COUNT(*) FROM applications) AS total_applications,
			(SELECT COUNT(*) FROM categories) AS total_categories
	`

	var s stats.Statistics
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return nil, fmt.Errorf("failed to count statistics: %w", err)
	}
	return &s, nil
}
