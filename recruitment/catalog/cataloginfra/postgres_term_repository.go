package cataloginfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/pgutil"
	"github.com/Abraxas-365/jobboard/recruitment/catalog"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// termTable describes where a kind of term lives and how jobs reference it
type termTable struct {
	name      string
	jobColumn string
}

var termTables = map[catalog.Kind]termTable{
	catalog.KindCategory: {name: "categories", jobColumn: "category_id"},
	catalog.KindJobType:  {name: "job_types", jobColumn: "job_type_id"},
}

// PostgresTermRepository implements catalog.TermRepository for one kind
type PostgresTermRepository struct {
	db    *sqlx.DB
	kind  catalog.Kind
	table termTable
}

// NewPostgresTermRepository creates a repository over the table of kind
func NewPostgresTermRepository(db *sqlx.DB, kind catalog.Kind) *PostgresTermRepository {
	table, ok := termTables[kind]
	if !ok {
		panic(fmt.Sprintf("cataloginfra: unknown term kind %q", kind))
	}
	return &PostgresTermRepository{
		db:    db,
		kind:  kind,
		table: table,
	}
}

// NewPostgresCategoryRepository creates the repository for categories
func NewPostgresCategoryRepository(db *sqlx.DB) *PostgresTermRepository {
	return NewPostgresTermRepository(db, catalog.KindCategory)
}

// NewPostgresJobTypeRepository creates the repository for job types
func NewPostgresJobTypeRepository(db *sqlx.DB) *PostgresTermRepository {
	return NewPostgresTermRepository(db, catalog.KindJobType)
}

func (r *PostgresTermRepository) Kind() catalog.Kind {
	return r.kind
}

// ============================================================================
// Database Model
// ============================================================================

type termModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	JobsCount   int            `db:"jobs_count"`
}

func (m *termModel) toEntity(kind catalog.Kind) *catalog.Term {
	return &catalog.Term{
		ID:          m.ID,
		Kind:        kind,
		Name:        m.Name,
		Description: m.Description.String,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		JobsCount:   m.JobsCount,
	}
}

func termFromEntity(t *catalog.Term) *termModel {
	return &termModel{
		ID:          t.ID,
		Name:        t.Name,
		Description: nullString(t.Description),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var termOrderClauses = map[catalog.Ordering]string{
	catalog.OrderNameAsc:     "t.name ASC",
	catalog.OrderNameDesc:    "t.name DESC",
	catalog.OrderCreatedAsc:  "t.created_at ASC",
	catalog.OrderCreatedDesc: "t.created_at DESC",
}

func (r *PostgresTermRepository) selectTerms() string {
	return fmt.Sprintf(`
	SELECT
		t.id, t.name, t.description, t.created_at, t.updated_at,
		(SELECT COUNT(*) FROM jobs j WHERE j.%s = t.id AND j.status = 'active') AS jobs_count
	FROM %s t`, r.table.jobColumn, r.table.name)
}

func (r *PostgresTermRepository) mapWriteError(err error, t *catalog.Term) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
		return catalog.ErrNameTaken().WithDetail("name", t.Name)
	}
	return nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresTermRepository) Create(ctx context.Context, t *catalog.Term) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, created_at, updated_at)
		VALUES (:id, :name, :description, :created_at, :updated_at)
	`, r.table.name)

	if _, err := r.db.NamedExecContext(ctx, query, termFromEntity(t)); err != nil {
		if domainErr := r.mapWriteError(err, t); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("failed to create %s: %w", r.kind, err)
	}
	return nil
}

func (r *PostgresTermRepository) Update(ctx context.Context, t *catalog.Term) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			name = :name,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
	`, r.table.name)

	result, err := r.db.NamedExecContext(ctx, query, termFromEntity(t))
	if err != nil {
		if domainErr := r.mapWriteError(err, t); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("failed to update %s: %w", r.kind, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return catalog.ErrNotFound(r.kind).WithDetail("id", t.ID)
	}
	return nil
}

func (r *PostgresTermRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table.name), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.kind, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return catalog.ErrNotFound(r.kind).WithDetail("id", id)
	}
	return nil
}

func (r *PostgresTermRepository) GetByID(ctx context.Context, id string) (*catalog.Term, error) {
	var model termModel
	if err := r.db.GetContext(ctx, &model, r.selectTerms()+` WHERE t.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound(r.kind).WithDetail("id", id)
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.kind, err)
	}
	return model.toEntity(r.kind), nil
}

// List searches name and description
func (r *PostgresTermRepository) List(ctx context.Context, req catalog.ListRequest) (*kernel.Paginated[catalog.Term], error) {
	pagination := req.Pagination.Normalize()

	where := ""
	args := []any{}
	argCount := 0
	if req.Search != "" {
		argCount++
		where = fmt.Sprintf(" WHERE (t.name ILIKE $%[1]d OR t.description ILIKE $%[1]d)", argCount)
		args = append(args, pgutil.ContainsPattern(req.Search))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf(`SELECT COUNT(*) FROM %s t`, r.table.name)+where, args...); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", r.table.name, err)
	}

	order, ok := termOrderClauses[req.Ordering]
	if !ok {
		order = termOrderClauses[catalog.DefaultOrdering]
	}

	query := fmt.Sprintf("%s%s ORDER BY %s, t.id ASC LIMIT $%d OFFSET $%d",
		r.selectTerms(), where, order, argCount+1, argCount+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	var models []termModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table.name, err)
	}

	items := make([]catalog.Term, 0, len(models))
	for i := range models {
		items = append(items, *models[i].toEntity(r.kind))
	}
	return kernel.NewPaginated(items, pagination, total), nil
}
