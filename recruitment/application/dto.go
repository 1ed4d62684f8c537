package application

import (
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/shopspring/decimal"
)

// CreateApplicationRequest - DTO for applying to a job. The applicant is
// always the caller.
type CreateApplicationRequest struct {
	JobID            kernel.JobID     `json:"job_id" validate:"required"`
	CoverLetter      string           `json:"cover_letter" validate:"required"`
	Phone            string           `json:"phone" validate:"max=20"`
	Email            string           `json:"email" validate:"omitempty,email"`
	LinkedInURL      string           `json:"linkedin_url" validate:"omitempty,url"`
	PortfolioURL     string           `json:"portfolio_url" validate:"omitempty,url"`
	ExpectedSalary   *decimal.Decimal `json:"expected_salary"`
	AvailabilityDate *kernel.Date     `json:"availability_date"`
}

// UpdateApplicationRequest - DTO for a reviewer update
type UpdateApplicationRequest struct {
	Status *Status `json:"status" validate:"omitempty,oneof=pending reviewed shortlisted interviewed rejected accepted withdrawn"`
	Notes  *string `json:"notes"`
}

// Ordering selects the sort order of application listings
type Ordering string

const (
	OrderAppliedAsc  Ordering = "applied_at"
	OrderAppliedDesc Ordering = "-applied_at"
	OrderStatusAsc   Ordering = "status"
	OrderStatusDesc  Ordering = "-status"

	DefaultOrdering = OrderAppliedDesc
)

// ParseOrdering falls back to the default for unknown values
func ParseOrdering(raw string) Ordering {
	switch o := Ordering(strings.TrimSpace(raw)); o {
	case OrderAppliedAsc, OrderAppliedDesc, OrderStatusAsc, OrderStatusDesc:
		return o
	}
	return DefaultOrdering
}

// ListApplicationsRequest - DTO for listing applications
type ListApplicationsRequest struct {
	ApplicantID *kernel.UserID
	Ordering    Ordering
	Pagination  kernel.PaginationOptions
}

// ApplicationResponse - DTO for returning application data
type ApplicationResponse struct {
	ID               kernel.ApplicationID `json:"id"`
	Job              JobSummary           `json:"job"`
	Applicant        string               `json:"applicant"`
	CoverLetter      string               `json:"cover_letter"`
	ResumeURL        kernel.BlobPath      `json:"resume_url,omitempty"`
	Status           Status               `json:"status"`
	Phone            string               `json:"phone"`
	Email            kernel.Email         `json:"email"`
	LinkedInURL      string               `json:"linkedin_url"`
	PortfolioURL     string               `json:"portfolio_url"`
	ExpectedSalary   *decimal.Decimal     `json:"expected_salary"`
	AvailabilityDate *kernel.Date         `json:"availability_date"`
	Notes            string               `json:"notes"`
	AppliedAt        time.Time            `json:"applied_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	ReviewedAt       *time.Time           `json:"reviewed_at"`
}

type PaginatedApplicationsResponse = kernel.Paginated[ApplicationResponse]

func NewApplicationResponse(d Details) ApplicationResponse {
	var salary *decimal.Decimal
	if d.ExpectedSalary.Valid {
		v := d.ExpectedSalary.Decimal
		salary = &v
	}
	return ApplicationResponse{
		ID:               d.ID,
		Job:              d.Job,
		Applicant:        d.ApplicantName,
		CoverLetter:      d.CoverLetter,
		ResumeURL:        d.ResumePath,
		Status:           d.Status,
		Phone:            d.Phone,
		Email:            d.Email,
		LinkedInURL:      d.LinkedInURL,
		PortfolioURL:     d.PortfolioURL,
		ExpectedSalary:   salary,
		AvailabilityDate: d.AvailabilityDate,
		Notes:            d.Notes,
		AppliedAt:        d.AppliedAt,
		UpdatedAt:        d.UpdatedAt,
		ReviewedAt:       d.ReviewedAt,
	}
}
