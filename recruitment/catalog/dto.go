package catalog

import (
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Ordering selects the sort order of catalog listings
type Ordering string

const (
	OrderNameAsc     Ordering = "name"
	OrderNameDesc    Ordering = "-name"
	OrderCreatedAsc  Ordering = "created_at"
	OrderCreatedDesc Ordering = "-created_at"

	DefaultOrdering = OrderNameAsc
)

// ParseOrdering falls back to ordering by name for unknown values
func ParseOrdering(raw string) Ordering {
	switch o := Ordering(strings.TrimSpace(raw)); o {
	case OrderNameAsc, OrderNameDesc, OrderCreatedAsc, OrderCreatedDesc:
		return o
	}
	return DefaultOrdering
}

// ListRequest - DTO for listing terms or companies
type ListRequest struct {
	Search     string
	Ordering   Ordering
	Pagination kernel.PaginationOptions
}

// TermRequest - DTO for creating or replacing a category or job type
type TermRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// UpdateTermRequest - DTO for partially updating a term
type UpdateTermRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// CreateCompanyRequest - DTO for creating a company
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Website     string `json:"website" validate:"omitempty,url"`
	Location    string `json:"location" validate:"max=200"`
	Size        string `json:"size" validate:"max=50"`
	Industry    string `json:"industry" validate:"max=100"`
}

// UpdateCompanyRequest - DTO for partially updating a company
type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	Size        *string `json:"size" validate:"omitempty,max=50"`
	Industry    *string `json:"industry" validate:"omitempty,max=100"`
}

// TermResponse - DTO for returning a category or job type
type TermResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JobsCount   int       `json:"jobs_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyResponse - DTO for returning a company
type CompanyResponse struct {
	ID          kernel.CompanyID `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Website     string           `json:"website"`
	LogoURL     kernel.BlobPath  `json:"logo_url,omitempty"`
	Location    string           `json:"location"`
	Size        string           `json:"size"`
	Industry    string           `json:"industry"`
	JobsCount   int              `json:"jobs_count"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewTermResponse(t Term) TermResponse {
	return TermResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		JobsCount:   t.JobsCount,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		LogoURL:     c.LogoPath,
		Location:    c.Location,
		Size:        c.Size,
		Industry:    c.Industry,
		JobsCount:   c.JobsCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
