package job

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/shopspring/decimal"
)

// CreateJobRequest - DTO for posting a new job
type CreateJobRequest struct {
	Title            string            `json:"title" validate:"required,max=200"`
	Description      string            `json:"description" validate:"required"`
	Requirements     string            `json:"requirements" validate:"required"`
	Responsibilities string            `json:"responsibilities" validate:"required"`
	Benefits         string            `json:"benefits"`
	CompanyID        kernel.CompanyID  `json:"company_id" validate:"required"`
	CategoryID       kernel.CategoryID `json:"category_id" validate:"required"`
	JobTypeID        kernel.JobTypeID  `json:"job_type_id" validate:"required"`
	Location         string            `json:"location" validate:"required,max=200"`
	IsRemote         bool              `json:"is_remote"`
	SalaryMin        *decimal.Decimal  `json:"salary_min"`
	SalaryMax        *decimal.Decimal  `json:"salary_max"`
	Currency         string            `json:"currency" validate:"omitempty,len=3"`
	ExperienceLevel  ExperienceLevel   `json:"experience_level" validate:"required,oneof=entry mid senior executive"`
	Status           Status            `json:"status" validate:"omitempty,oneof=active paused closed draft"`
	ExpiresAt        *time.Time        `json:"expires_at"`
	Tags             string            `json:"tags" validate:"max=500"`
}

// UpdateJobRequest - DTO for a partial update; nil fields are left unchanged
type UpdateJobRequest struct {
	Title            *string            `json:"title" validate:"omitempty,min=1,max=200"`
	Description      *string            `json:"description" validate:"omitempty,min=1"`
	Requirements     *string            `json:"requirements" validate:"omitempty,min=1"`
	Responsibilities *string            `json:"responsibilities" validate:"omitempty,min=1"`
	Benefits         *string            `json:"benefits"`
	CategoryID       *kernel.CategoryID `json:"category_id" validate:"omitempty,min=1"`
	JobTypeID        *kernel.JobTypeID  `json:"job_type_id" validate:"omitempty,min=1"`
	Location         *string            `json:"location" validate:"omitempty,min=1,max=200"`
	IsRemote         *bool              `json:"is_remote"`
	SalaryMin        *decimal.Decimal   `json:"salary_min"`
	SalaryMax        *decimal.Decimal   `json:"salary_max"`
	Currency         *string            `json:"currency" validate:"omitempty,len=3"`
	ExperienceLevel  *ExperienceLevel   `json:"experience_level" validate:"omitempty,oneof=entry mid senior executive"`
	Status           *Status            `json:"status" validate:"omitempty,oneof=active paused closed draft"`
	ExpiresAt        *time.Time         `json:"expires_at"`
	Tags             *string            `json:"tags" validate:"omitempty,max=500"`
}

// ListJobsRequest - the public listing query
type ListJobsRequest struct {
	Filter     Filter
	Ordering   Ordering
	Pagination kernel.PaginationOptions
}

// JobResponse - DTO for job listings
type JobResponse struct {
	ID                kernel.JobID     `json:"id"`
	Title             string           `json:"title"`
	Slug              kernel.Slug      `json:"slug"`
	Company           CompanySummary   `json:"company"`
	Category          CategorySummary  `json:"category"`
	JobType           JobTypeSummary   `json:"job_type"`
	PostedBy          string           `json:"posted_by"`
	Location          string           `json:"location"`
	IsRemote          bool             `json:"is_remote"`
	SalaryMin         *decimal.Decimal `json:"salary_min"`
	SalaryMax         *decimal.Decimal `json:"salary_max"`
	Currency          string           `json:"currency"`
	ExperienceLevel   ExperienceLevel  `json:"experience_level"`
	Status            Status           `json:"status"`
	Tags              string           `json:"tags"`
	ViewsCount        int              `json:"views_count"`
	ApplicationsCount int              `json:"applications_count"`
	IsExpired         bool             `json:"is_expired"`
	IsActive          bool             `json:"is_active"`
	CreatedAt         time.Time        `json:"created_at"`
	ExpiresAt         *time.Time       `json:"expires_at"`
}

// JobDetailResponse - DTO for the job detail page
type JobDetailResponse struct {
	JobResponse
	Description      string    `json:"description"`
	Requirements     string    `json:"requirements"`
	Responsibilities string    `json:"responsibilities"`
	Benefits         string    `json:"benefits"`
	TagsList         []string  `json:"tags_list"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PaginatedJobsResponse = kernel.Paginated[JobResponse]

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// NewJobResponse renders a listing, evaluating expiry against now
func NewJobResponse(l Listing, now time.Time) JobResponse {
	return JobResponse{
		ID:                l.ID,
		Title:             l.Title,
		Slug:              l.Slug,
		Company:           l.Company,
		Category:          l.Category,
		JobType:           l.JobType,
		PostedBy:          l.PostedByName,
		Location:          l.Location,
		IsRemote:          l.IsRemote,
		SalaryMin:         nullable(l.SalaryMin),
		SalaryMax:         nullable(l.SalaryMax),
		Currency:          l.Currency,
		ExperienceLevel:   l.ExperienceLevel,
		Status:            l.Status,
		Tags:              l.Tags,
		ViewsCount:        l.ViewsCount,
		ApplicationsCount: l.ApplicationsCount,
		IsExpired:         l.IsExpired(now),
		IsActive:          l.IsActive(now),
		CreatedAt:         l.CreatedAt,
		ExpiresAt:         l.ExpiresAt,
	}
}

func NewJobDetailResponse(l Listing, now time.Time) JobDetailResponse {
	return JobDetailResponse{
		JobResponse:      NewJobResponse(l, now),
		Description:      l.Description,
		Requirements:     l.Requirements,
		Responsibilities: l.Responsibilities,
		Benefits:         l.Benefits,
		TagsList:         l.TagList(),
		UpdatedAt:        l.UpdatedAt,
	}
}
