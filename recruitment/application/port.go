package application

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create inserts an application. A second application by the same
	// applicant to the same job returns ErrApplicationAlreadyExists.
	Create(ctx context.Context, application *Application) error

	// Update persists status, notes, resume and review timestamps
	Update(ctx context.Context, application *Application) error

	// GetDetails retrieves an application with its job and applicant
	GetDetails(ctx context.Context, id kernel.ApplicationID) (*Details, error)

	// List returns applications, restricted to one applicant when ApplicantID is set
	List(ctx context.Context, req ListApplicationsRequest) (*kernel.Paginated[Details], error)

	// RefreshJobCount recomputes jobs.applications_count from all of the
	// job's applications regardless of status and returns the new value
	RefreshJobCount(ctx context.Context, jobID kernel.JobID) (int, error)
}
