package alert

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/shopspring/decimal"
)

// Frequency is how often an alert would be delivered. Delivery itself
// happens outside this service; only last_sent is stored.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"

	DefaultFrequency = FrequencyWeekly
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// JobAlert is a saved search a user wants to be notified about
type JobAlert struct {
	ID               kernel.JobAlertID
	UserID           kernel.UserID
	Name             string
	Keywords         string
	Locations        string
	ExperienceLevels string
	SalaryMin        decimal.NullDecimal
	IsRemote         bool
	Frequency        Frequency
	IsActive         bool
	CreatedAt        time.Time
	LastSent         *time.Time
	CategoryIDs      []kernel.CategoryID
	JobTypeIDs       []kernel.JobTypeID
}

func (a *JobAlert) IsOwnedBy(userID kernel.UserID) bool {
	return a.UserID == userID
}

// Ref names a linked category or job type
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Details is an alert with the names of its linked categories and job types
type Details struct {
	JobAlert
	Categories []Ref
	JobTypes   []Ref
}
