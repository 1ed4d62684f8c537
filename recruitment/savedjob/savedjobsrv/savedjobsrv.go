package savedjobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob"
	"github.com/google/uuid"
)

// SavedJobService manages a user's bookmarked jobs
type SavedJobService struct {
	repo savedjob.Repository
	now  func() time.Time
}

// NewSavedJobService creates a new instance of the saved job service
func NewSavedJobService(repo savedjob.Repository) *SavedJobService {
	return &SavedJobService{
		repo: repo,
		now:  time.Now,
	}
}

// ListSavedJobs lists the caller's bookmarks
func (s *SavedJobService) ListSavedJobs(ctx context.Context, ac *auth.AuthContext, pagination kernel.PaginationOptions) (*savedjob.PaginatedSavedJobsResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	page, err := s.repo.ListByUser(ctx, *ac.UserID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list saved jobs", errx.TypeInternal)
	}
	return kernel.MapPaginated(page, savedjob.NewSavedJobResponse), nil
}

// SaveJob bookmarks a job for the caller
func (s *SavedJobService) SaveJob(ctx context.Context, ac *auth.AuthContext, req savedjob.SaveJobRequest) (*savedjob.SavedJobResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	saved := &savedjob.SavedJob{
		ID:      kernel.NewSavedJobID(uuid.NewString()),
		UserID:  *ac.UserID,
		JobID:   req.JobID,
		SavedAt: s.now(),
	}
	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, errx.Wrap(err, "failed to save job", errx.TypeInternal)
	}

	entry, err := s.repo.GetEntry(ctx, saved.ID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load saved job", errx.TypeInternal)
	}
	resp := savedjob.NewSavedJobResponse(*entry)
	return &resp, nil
}

// UnsaveJob removes one of the caller's bookmarks
func (s *SavedJobService) UnsaveJob(ctx context.Context, ac *auth.AuthContext, id kernel.SavedJobID) error {
	if !ac.IsAuthenticated() {
		return auth.ErrMissingToken()
	}

	saved, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to get saved job", errx.TypeInternal)
	}
	if !saved.IsOwnedBy(*ac.UserID) {
		return savedjob.ErrNotOwner()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete saved job", errx.TypeInternal)
	}
	return nil
}
