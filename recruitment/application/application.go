package application

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/shopspring/decimal"
)

// Status represents where an application is in the hiring process
type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusInterviewed Status = "interviewed"
	StatusRejected    Status = "rejected"
	StatusAccepted    Status = "accepted"
	StatusWithdrawn   Status = "withdrawn"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusInterviewed,
		StatusRejected, StatusAccepted, StatusWithdrawn:
		return true
	}
	return false
}

type Application struct {
	ID               kernel.ApplicationID
	JobID            kernel.JobID
	ApplicantID      kernel.UserID
	CoverLetter      string
	ResumePath       kernel.BlobPath
	Status           Status
	Phone            string
	Email            kernel.Email
	LinkedInURL      string
	PortfolioURL     string
	ExpectedSalary   decimal.NullDecimal
	AvailabilityDate *kernel.Date
	Notes            string
	AppliedAt        time.Time
	UpdatedAt        time.Time
	ReviewedAt       *time.Time
}

// ============================================================================
// Domain Methods
// ============================================================================

// Review records a reviewer decision; setting a status always stamps reviewed_at
func (a *Application) Review(status *Status, notes *string, now time.Time) {
	if status != nil {
		a.Status = *status
		a.ReviewedAt = &now
	}
	if notes != nil {
		a.Notes = *notes
	}
	a.UpdatedAt = now
}

func (a *Application) HasResume() bool {
	return !a.ResumePath.IsEmpty()
}

// JobSummary is the part of the job shown next to an application
type JobSummary struct {
	ID          kernel.JobID  `json:"id"`
	Title       string        `json:"title"`
	Slug        kernel.Slug   `json:"slug"`
	CompanyName string        `json:"company_name"`
	Status      string        `json:"status"`
	PostedBy    kernel.UserID `json:"-"`
}

// Details is an application joined with its job and applicant
type Details struct {
	Application
	Job           JobSummary
	ApplicantName string
}
