package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/shopspring/decimal"
)

// Status represents the publication state of a job posting
type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusClosed, StatusDraft:
		return true
	}
	return false
}

// ExperienceLevel is the seniority a posting targets
type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

func (l ExperienceLevel) IsValid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelExecutive:
		return true
	}
	return false
}

const DefaultCurrency = "USD"

type Job struct {
	ID                kernel.JobID
	Title             string
	Description       string
	Requirements      string
	Responsibilities  string
	Benefits          string
	CompanyID         kernel.CompanyID
	CategoryID        kernel.CategoryID
	JobTypeID         kernel.JobTypeID
	PostedBy          kernel.UserID
	Location          string
	IsRemote          bool
	SalaryMin         decimal.NullDecimal
	SalaryMax         decimal.NullDecimal
	Currency          string
	ExperienceLevel   ExperienceLevel
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ExpiresAt         *time.Time
	Slug              kernel.Slug
	Tags              string
	ViewsCount        int
	ApplicationsCount int
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsExpired reports whether the expiry date has been reached
func (j *Job) IsExpired(now time.Time) bool {
	return j.ExpiresAt != nil && !now.Before(*j.ExpiresAt)
}

// IsActive reports whether the job is published and not expired
func (j *Job) IsActive(now time.Time) bool {
	return j.Status == StatusActive && !j.IsExpired(now)
}

// TagList explodes the comma-separated tag column
func (j *Job) TagList() []string {
	return SplitTags(j.Tags)
}

// ValidateSalary enforces salary_min <= salary_max when both are set
func (j *Job) ValidateSalary() error {
	if j.SalaryMin.Valid && j.SalaryMax.Valid && j.SalaryMin.Decimal.GreaterThan(j.SalaryMax.Decimal) {
		return ErrInvalidSalaryRange().
			WithDetail("salary_min", j.SalaryMin.Decimal.String()).
			WithDetail("salary_max", j.SalaryMax.Decimal.String())
	}
	return nil
}

// ValidateExpiry requires a set expiry to lie in the future
func (j *Job) ValidateExpiry(now time.Time) error {
	if j.ExpiresAt != nil && !j.ExpiresAt.After(now) {
		return ErrExpiryInPast().WithDetail("expires_at", j.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// Validate checks the invariants that hold whenever a job is saved
func (j *Job) Validate(now time.Time) error {
	if err := j.ValidateSalary(); err != nil {
		return err
	}
	return j.ValidateExpiry(now)
}

// SplitTags splits on commas, trims each token and drops empty ones
func SplitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ============================================================================
// Read models
// ============================================================================

type CompanySummary struct {
	ID        kernel.CompanyID `json:"id"`
	Name      string           `json:"name"`
	Location  string           `json:"location,omitempty"`
	LogoURL   kernel.BlobPath  `json:"logo_url,omitempty"`
	JobsCount int              `json:"jobs_count"`
}

type CategorySummary struct {
	ID        kernel.CategoryID `json:"id"`
	Name      string            `json:"name"`
	JobsCount int               `json:"jobs_count"`
}

type JobTypeSummary struct {
	ID        kernel.JobTypeID `json:"id"`
	Name      string           `json:"name"`
	JobsCount int              `json:"jobs_count"`
}

// Listing is a job joined with its reference data
type Listing struct {
	Job
	Company      CompanySummary
	Category     CategorySummary
	JobType      JobTypeSummary
	PostedByName string
}

// View is one detail-page access to record
type View struct {
	JobID     kernel.JobID
	UserID    *kernel.UserID
	IPAddress string
	UserAgent string
	ViewedAt  time.Time
}
