package job

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create inserts a new job. A slug collision returns ErrSlugTaken.
	Create(ctx context.Context, job *Job) error

	// Update persists the editable columns of an existing job
	Update(ctx context.Context, job *Job) error

	// Delete removes a job together with its applications, views and saves
	Delete(ctx context.Context, id kernel.JobID) error

	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// GetListingBySlug returns a job of any status joined with its reference data
	GetListingBySlug(ctx context.Context, slug kernel.Slug) (*Listing, error)

	// ListActive returns active, unexpired jobs matching the request
	ListActive(ctx context.Context, req ListJobsRequest, now time.Time) (*kernel.Paginated[Listing], error)

	SlugExists(ctx context.Context, slug kernel.Slug) (bool, error)
}

// ViewTracker records detail-page views at most once per (job, ip, viewer)
type ViewTracker interface {
	// RecordView reports whether a new view was stored and counted
	RecordView(ctx context.Context, view View) (bool, error)
}

// CompanyNames resolves the company name used when deriving slugs
type CompanyNames interface {
	CompanyName(ctx context.Context, id kernel.CompanyID) (string, error)
}
