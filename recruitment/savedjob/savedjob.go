package savedjob

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// SavedJob is a job bookmarked by a user; a user saves a job at most once
type SavedJob struct {
	ID      kernel.SavedJobID
	UserID  kernel.UserID
	JobID   kernel.JobID
	SavedAt time.Time
}

func (s *SavedJob) IsOwnedBy(userID kernel.UserID) bool {
	return s.UserID == userID
}

// JobSummary is the part of the job shown in a user's saved list
type JobSummary struct {
	ID          kernel.JobID `json:"id"`
	Title       string       `json:"title"`
	Slug        kernel.Slug  `json:"slug"`
	CompanyName string       `json:"company_name"`
	Location    string       `json:"location"`
	IsRemote    bool         `json:"is_remote"`
	Status      string       `json:"status"`
}

// Entry is a saved job with its job
type Entry struct {
	SavedJob
	Job JobSummary
}
