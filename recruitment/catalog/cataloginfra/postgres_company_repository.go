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
)

// PostgresCompanyRepository implements catalog.CompanyRepository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sqlx.DB
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type companyModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Website     sql.NullString `db:"website"`
	LogoURL     sql.NullString `db:"logo_url"`
	Location    sql.NullString `db:"location"`
	Size        sql.NullString `db:"size"`
	Industry    sql.NullString `db:"industry"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	JobsCount   int            `db:"jobs_count"`
}

func (m *companyModel) toEntity() *catalog.Company {
	return &catalog.Company{
		ID:          kernel.CompanyID(m.ID),
		Name:        m.Name,
		Description: m.Description.String,
		Website:     m.Website.String,
		LogoPath:    kernel.BlobPath(m.LogoURL.String),
		Location:    m.Location.String,
		Size:        m.Size.String,
		Industry:    m.Industry.String,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		JobsCount:   m.JobsCount,
	}
}

func companyFromEntity(c *catalog.Company) *companyModel {
	return &companyModel{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: nullString(c.Description),
		Website:     nullString(c.Website),
		LogoURL:     nullString(c.LogoPath.String()),
		Location:    nullString(c.Location),
		Size:        nullString(c.Size),
		Industry:    nullString(c.Industry),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

const selectCompanies = `
	SELECT
		t.id, t.name, t.description, t.website, t.logo_url, t.location,
		t.size, t.industry, t.created_at, t.updated_at,
		(SELECT COUNT(*) FROM jobs j WHERE j.company_id = t.id AND j.status = 'active') AS jobs_count
	FROM companies t`

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresCompanyRepository) Create(ctx context.Context, c *catalog.Company) error {
	query := `
		INSERT INTO companies (
			id, name, description, website, logo_url, location,
			size, industry, created_at, updated_at
		) VALUES (
			:id, :name, :description, :website, :logo_url, :location,
			:size, :industry, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, companyFromEntity(c)); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c *catalog.Company) error {
	query := `
		UPDATE companies SET
			name = :name,
			description = :description,
			website = :website,
			logo_url = :logo_url,
			location = :location,
			size = :size,
			industry = :industry,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, companyFromEntity(c))
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return catalog.ErrCompanyNotFound().WithDetail("company_id", c.ID.String())
	}
	return nil
}

func (r *PostgresCompanyRepository) Delete(ctx context.Context, id kernel.CompanyID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return catalog.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	return nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*catalog.Company, error) {
	var model companyModel
	if err := r.db.GetContext(ctx, &model, selectCompanies+` WHERE t.id = $1`, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrCompanyNotFound().WithDetail("company_id", id.String())
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return model.toEntity(), nil
}

// List searches name, description, industry and location
func (r *PostgresCompanyRepository) List(ctx context.Context, req catalog.ListRequest) (*kernel.Paginated[catalog.Company], error) {
	pagination := req.Pagination.Normalize()

	where := ""
	args := []any{}
	argCount := 0
	if req.Search != "" {
		argCount++
		where = fmt.Sprintf(
			" WHERE (t.name ILIKE $%[1]d OR t.description ILIKE $%[1]d OR t.industry ILIKE $%[1]d OR t.location ILIKE $%[1]d)",
			argCount)
		args = append(args, pgutil.ContainsPattern(req.Search))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM companies t`+where, args...); err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}

	order, ok := termOrderClauses[req.Ordering]
	if !ok {
		order = termOrderClauses[catalog.DefaultOrdering]
	}

	query := fmt.Sprintf("%s%s ORDER BY %s, t.id ASC LIMIT $%d OFFSET $%d",
		selectCompanies, where, order, argCount+1, argCount+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	var models []companyModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	items := make([]catalog.Company, 0, len(models))
	for i := range models {
		items = append(items, *models[i].toEntity())
	}
	return kernel.NewPaginated(items, pagination, total), nil
}
