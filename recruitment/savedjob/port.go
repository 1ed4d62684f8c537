package savedjob

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create stores a bookmark; saving the same job twice returns ErrAlreadySaved
	Create(ctx context.Context, saved *SavedJob) error

	Delete(ctx context.Context, id kernel.SavedJobID) error
	GetByID(ctx context.Context, id kernel.SavedJobID) (*SavedJob, error)
	GetEntry(ctx context.Context, id kernel.SavedJobID) (*Entry, error)

	// ListByUser returns the user's bookmarks, newest first
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Entry], error)
}
