package savedjob

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// SaveJobRequest - DTO for bookmarking a job
type SaveJobRequest struct {
	JobID kernel.JobID `json:"job_id" validate:"required"`
}

// SavedJobResponse - DTO for returning a bookmark
type SavedJobResponse struct {
	ID      kernel.SavedJobID `json:"id"`
	Job     JobSummary        `json:"job"`
	SavedAt time.Time         `json:"saved_at"`
}

type PaginatedSavedJobsResponse = kernel.Paginated[SavedJobResponse]

func NewSavedJobResponse(e Entry) SavedJobResponse {
	return SavedJobResponse{
		ID:      e.ID,
		Job:     e.Job,
		SavedAt: e.SavedAt,
	}
}
