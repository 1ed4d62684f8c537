package alert

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create inserts the alert and its category and job type links atomically
	Create(ctx context.Context, alert *JobAlert) error

	// Update rewrites the alert columns and replaces both link sets
	Update(ctx context.Context, alert *JobAlert) error

	Delete(ctx context.Context, id kernel.JobAlertID) error
	GetDetails(ctx context.Context, id kernel.JobAlertID) (*Details, error)

	// ListByUser returns the user's alerts, newest first
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Details], error)
}
