package alert

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/shopspring/decimal"
)

// CreateAlertRequest - DTO for creating a job alert
type CreateAlertRequest struct {
	Name             string              `json:"name" validate:"required,max=100"`
	Keywords         string              `json:"keywords" validate:"max=500"`
	Locations        string              `json:"locations" validate:"max=500"`
	ExperienceLevels string              `json:"experience_levels" validate:"max=100"`
	SalaryMin        *decimal.Decimal    `json:"salary_min"`
	IsRemote         bool                `json:"is_remote"`
	Frequency        Frequency           `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	IsActive         *bool               `json:"is_active"`
	CategoryIDs      []kernel.CategoryID `json:"category_ids" validate:"omitempty,dive,required"`
	JobTypeIDs       []kernel.JobTypeID  `json:"job_type_ids" validate:"omitempty,dive,required"`
}

// UpdateAlertRequest - DTO for partially updating a job alert. Link lists
// replace the current set when present and are left alone when absent.
type UpdateAlertRequest struct {
	Name             *string              `json:"name" validate:"omitempty,min=1,max=100"`
	Keywords         *string              `json:"keywords" validate:"omitempty,max=500"`
	Locations        *string              `json:"locations" validate:"omitempty,max=500"`
	ExperienceLevels *string              `json:"experience_levels" validate:"omitempty,max=100"`
	SalaryMin        *decimal.Decimal     `json:"salary_min"`
	IsRemote         *bool                `json:"is_remote"`
	Frequency        *Frequency           `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	IsActive         *bool                `json:"is_active"`
	CategoryIDs      *[]kernel.CategoryID `json:"category_ids"`
	JobTypeIDs       *[]kernel.JobTypeID  `json:"job_type_ids"`
}

// AlertResponse - DTO for returning a job alert
type AlertResponse struct {
	ID               kernel.JobAlertID `json:"id"`
	Name             string            `json:"name"`
	Keywords         string            `json:"keywords"`
	Categories       []Ref             `json:"categories"`
	Locations        string            `json:"locations"`
	JobTypes         []Ref             `json:"job_types"`
	ExperienceLevels string            `json:"experience_levels"`
	SalaryMin        *decimal.Decimal  `json:"salary_min"`
	IsRemote         bool              `json:"is_remote"`
	Frequency        Frequency         `json:"frequency"`
	IsActive         bool              `json:"is_active"`
	CreatedAt        time.Time         `json:"created_at"`
	LastSent         *time.Time        `json:"last_sent"`
}

type PaginatedAlertsResponse = kernel.Paginated[AlertResponse]

func NewAlertResponse(d Details) AlertResponse {
	var salary *decimal.Decimal
	if d.SalaryMin.Valid {
		v := d.SalaryMin.Decimal
		salary = &v
	}
	categories, jobTypes := d.Categories, d.JobTypes
	if categories == nil {
		categories = []Ref{}
	}
	if jobTypes == nil {
		jobTypes = []Ref{}
	}
	return AlertResponse{
		ID:               d.ID,
		Name:             d.Name,
		Keywords:         d.Keywords,
		Categories:       categories,
		Locations:        d.Locations,
		JobTypes:         jobTypes,
		ExperienceLevels: d.ExperienceLevels,
		SalaryMin:        salary,
		IsRemote:         d.IsRemote,
		Frequency:        d.Frequency,
		IsActive:         d.IsActive,
		CreatedAt:        d.CreatedAt,
		LastSent:         d.LastSent,
	}
}
