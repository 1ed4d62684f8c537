package catalog

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// TermRepository stores one kind of term; a repository is bound to its kind
// at construction
type TermRepository interface {
	Kind() Kind

	// Create inserts a term; a duplicate name returns ErrNameTaken
	Create(ctx context.Context, term *Term) error
	Update(ctx context.Context, term *Term) error

	// Delete removes the term and, through the foreign key, its jobs
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (*Term, error)
	List(ctx context.Context, req ListRequest) (*kernel.Paginated[Term], error)
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id kernel.CompanyID) error
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)
	List(ctx context.Context, req ListRequest) (*kernel.Paginated[Company], error)
}
