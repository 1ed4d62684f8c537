package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxSlugAttempts bounds the -2, -3... suffix search
const maxSlugAttempts = 50

// JobService provides business operations for jobs
type JobService struct {
	repo      job.Repository
	views     job.ViewTracker
	companies job.CompanyNames
	now       func() time.Time
}

// NewJobService creates a new instance of the job service
func NewJobService(
	repo job.Repository,
	views job.ViewTracker,
	companies job.CompanyNames,
) *JobService {
	return &JobService{
		repo:      repo,
		views:     views,
		companies: companies,
		now:       time.Now,
	}
}

// ListJobs returns a page of active, unexpired jobs
func (s *JobService) ListJobs(ctx context.Context, req job.ListJobsRequest) (*job.PaginatedJobsResponse, error) {
	now := s.now()
	listings, err := s.repo.ListActive(ctx, req, now)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	return kernel.MapPaginated(listings, func(l job.Listing) job.JobResponse {
		return job.NewJobResponse(l, now)
	}), nil
}

// GetJob returns the detail of a job and records the view. Tracking
// failures are logged and never fail the request.
func (s *JobService) GetJob(ctx context.Context, slug kernel.Slug, viewer *kernel.UserID, ip, userAgent string) (*job.JobDetailResponse, error) {
	listing, err := s.repo.GetListingBySlug(ctx, slug)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}

	now := s.now()
	counted, err := s.views.RecordView(ctx, job.View{
		JobID:     listing.ID,
		UserID:    viewer,
		IPAddress: ip,
		UserAgent: userAgent,
		ViewedAt:  now,
	})
	if err != nil {
		logx.Warn("failed to record job view",
			zap.String("job_id", listing.ID.String()),
			zap.String("ip", ip),
			zap.Error(err),
		)
	}
	if counted {
		listing.ViewsCount++
	}

	resp := job.NewJobDetailResponse(*listing, now)
	return &resp, nil
}

// CreateJob posts a job owned by the caller
func (s *JobService) CreateJob(ctx context.Context, ac *auth.AuthContext, req job.CreateJobRequest) (*job.JobDetailResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	now := s.now()
	newJob := &job.Job{
		ID:               kernel.NewJobID(uuid.NewString()),
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		CompanyID:        req.CompanyID,
		CategoryID:       req.CategoryID,
		JobTypeID:        req.JobTypeID,
		PostedBy:         *ac.UserID,
		Location:         req.Location,
		IsRemote:         req.IsRemote,
		SalaryMin:        toNull(req.SalaryMin),
		SalaryMax:        toNull(req.SalaryMax),
		Currency:         strings.ToUpper(req.Currency),
		ExperienceLevel:  req.ExperienceLevel,
		Status:           req.Status,
		CreatedAt:        now,
		UpdatedAt:        now,
		ExpiresAt:        req.ExpiresAt,
		Tags:             req.Tags,
	}
	if newJob.Currency == "" {
		newJob.Currency = job.DefaultCurrency
	}
	if newJob.Status == "" {
		newJob.Status = job.StatusDraft
	}

	if err := newJob.Validate(now); err != nil {
		return nil, err
	}

	companyName, err := s.companies.CompanyName(ctx, req.CompanyID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to resolve company", errx.TypeInternal)
	}

	slug, err := s.uniqueSlug(ctx, job.BaseSlug(newJob.Title, companyName))
	if err != nil {
		return nil, err
	}
	newJob.Slug = slug

	if err := s.repo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	logx.Info("job created",
		zap.String("job_id", newJob.ID.String()),
		zap.String("slug", slug.String()),
		zap.String("posted_by", newJob.PostedBy.String()),
	)

	return s.detail(ctx, slug)
}

// UpdateJob applies a partial update. Only the poster or staff may edit.
func (s *JobService) UpdateJob(ctx context.Context, ac *auth.AuthContext, slug kernel.Slug, req job.UpdateJobRequest) (*job.JobDetailResponse, error) {
	listing, err := s.repo.GetListingBySlug(ctx, slug)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !auth.CanManage(ac, listing.PostedBy) {
		return nil, job.ErrNotOwner()
	}

	j := listing.Job
	applyUpdate(&j, req)

	now := s.now()
	if err := j.Validate(now); err != nil {
		return nil, err
	}
	j.UpdatedAt = now

	if err := s.repo.Update(ctx, &j); err != nil {
		return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	return s.detail(ctx, slug)
}

// DeleteJob removes a job. Only the poster or staff may delete.
func (s *JobService) DeleteJob(ctx context.Context, ac *auth.AuthContext, slug kernel.Slug) error {
	listing, err := s.repo.GetListingBySlug(ctx, slug)
	if err != nil {
		return errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !auth.CanManage(ac, listing.PostedBy) {
		return job.ErrNotOwner()
	}

	if err := s.repo.Delete(ctx, listing.ID); err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}

	logx.Info("job deleted", zap.String("job_id", listing.ID.String()), zap.String("by", ac.UserID.String()))
	return nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *JobService) uniqueSlug(ctx context.Context, base kernel.Slug) (kernel.Slug, error) {
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := job.SlugCandidate(base, n)
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", errx.Wrap(err, "failed to check slug", errx.TypeInternal)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", job.ErrSlugTaken().WithDetail("slug", base.String())
}

func (s *JobService) detail(ctx context.Context, slug kernel.Slug) (*job.JobDetailResponse, error) {
	listing, err := s.repo.GetListingBySlug(ctx, slug)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load job", errx.TypeInternal)
	}
	resp := job.NewJobDetailResponse(*listing, s.now())
	return &resp, nil
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func applyUpdate(j *job.Job, req job.UpdateJobRequest) {
	if req.Title != nil {
		j.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		j.Requirements = *req.Requirements
	}
	if req.Responsibilities != nil {
		j.Responsibilities = *req.Responsibilities
	}
	if req.Benefits != nil {
		j.Benefits = *req.Benefits
	}
	if req.CategoryID != nil {
		j.CategoryID = *req.CategoryID
	}
	if req.JobTypeID != nil {
		j.JobTypeID = *req.JobTypeID
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.IsRemote != nil {
		j.IsRemote = *req.IsRemote
	}
	if req.SalaryMin != nil {
		j.SalaryMin = toNull(req.SalaryMin)
	}
	if req.SalaryMax != nil {
		j.SalaryMax = toNull(req.SalaryMax)
	}
	if req.Currency != nil {
		j.Currency = strings.ToUpper(*req.Currency)
	}
	if req.ExperienceLevel != nil {
		j.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Status != nil {
		j.Status = *req.Status
	}
	if req.ExpiresAt != nil {
		j.ExpiresAt = req.ExpiresAt
	}
	if req.Tags != nil {
		j.Tags = *req.Tags
	}
}
