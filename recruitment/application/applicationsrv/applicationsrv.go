package applicationsrv

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxResumeSize is the largest accepted resume upload
const MaxResumeSize = 10 * 1024 * 1024

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ApplicationService provides business operations for applications
type ApplicationService struct {
	applicationRepo application.Repository
	userRepo        user.UserRepository
	fileSystem      fsx.FileSystem
	now             func() time.Time
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	userRepo user.UserRepository,
	fileSystem fsx.FileSystem,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		fileSystem:      fileSystem,
		now:             time.Now,
	}
}

// CreateApplication applies the caller to a job and refreshes the job's
// applications_count
func (s *ApplicationService) CreateApplication(ctx context.Context, ac *auth.AuthContext, req application.CreateApplicationRequest) (*application.ApplicationResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	applicant, err := s.userRepo.FindByID(ctx, *ac.UserID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load applicant", errx.TypeInternal)
	}

	email := kernel.Email(req.Email).Normalize()
	if email == "" {
		email = applicant.Email
	}

	var salary decimal.NullDecimal
	if req.ExpectedSalary != nil {
		salary = decimal.NewNullDecimal(*req.ExpectedSalary)
	}

	now := s.now()
	app := &application.Application{
		ID:               kernel.NewApplicationID(uuid.NewString()),
		JobID:            req.JobID,
		ApplicantID:      applicant.ID,
		CoverLetter:      req.CoverLetter,
		Status:           application.StatusPending,
		Phone:            req.Phone,
		Email:            email,
		LinkedInURL:      req.LinkedInURL,
		PortfolioURL:     req.PortfolioURL,
		ExpectedSalary:   salary,
		AvailabilityDate: req.AvailabilityDate,
		AppliedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	count, err := s.applicationRepo.RefreshJobCount(ctx, app.JobID)
	if err != nil {
		logx.Warn("failed to refresh applications_count",
			zap.String("job_id", app.JobID.String()),
			zap.Error(err),
		)
	} else {
		logx.Debug("applications_count refreshed", zap.String("job_id", app.JobID.String()), zap.Int("count", count))
	}

	return s.response(ctx, app.ID)
}

// ListApplications lists all applications for staff and the caller's own otherwise
func (s *ApplicationService) ListApplications(ctx context.Context, ac *auth.AuthContext, ordering application.Ordering, pagination kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	req := application.ListApplicationsRequest{
		Ordering:   ordering,
		Pagination: pagination,
	}
	if !ac.IsStaff {
		req.ApplicantID = ac.UserID
	}

	page, err := s.applicationRepo.List(ctx, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	return kernel.MapPaginated(page, application.NewApplicationResponse), nil
}

// GetApplication is visible to the applicant, the job poster and staff
func (s *ApplicationService) GetApplication(ctx context.Context, ac *auth.AuthContext, id kernel.ApplicationID) (*application.ApplicationResponse, error) {
	details, err := s.authorized(ctx, ac, id, true)
	if err != nil {
		return nil, err
	}
	resp := application.NewApplicationResponse(*details)
	return &resp, nil
}

// UpdateApplication lets the job poster or staff review an application
func (s *ApplicationService) UpdateApplication(ctx context.Context, ac *auth.AuthContext, id kernel.ApplicationID, req application.UpdateApplicationRequest) (*application.ApplicationResponse, error) {
	details, err := s.authorized(ctx, ac, id, false)
	if err != nil {
		return nil, err
	}

	app := details.Application
	app.Review(req.Status, req.Notes, s.now())

	if err := s.applicationRepo.Update(ctx, &app); err != nil {
		return nil, errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}

	if req.Status != nil {
		logx.Info("application reviewed",
			zap.String("application_id", id.String()),
			zap.String("status", string(*req.Status)),
			zap.String("reviewer", ac.UserID.String()),
		)
	}

	return s.response(ctx, id)
}

// UploadResume stores a resume for the caller's own application,
// replacing any previous file
func (s *ApplicationService) UploadResume(ctx context.Context, ac *auth.AuthContext, id kernel.ApplicationID, fileName string, data []byte) (*application.ApplicationResponse, error) {
	if len(data) > MaxResumeSize {
		return nil, application.ErrFileSizeTooLarge().
			WithDetail("file_size", len(data)).
			WithDetail("max_size", MaxResumeSize)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !resumeExtensions[ext] {
		return nil, application.ErrInvalidFileType().
			WithDetail("extension", ext).
			WithDetail("allowed_types", "pdf, doc, docx")
	}

	details, err := s.authorized(ctx, ac, id, true)
	if err != nil {
		return nil, err
	}
	if details.ApplicantID != *ac.UserID {
		return nil, application.ErrInsufficientPermissions().WithDetail("reason", "only the applicant can upload a resume")
	}

	app := details.Application
	previous := app.ResumePath

	storagePath := s.fileSystem.Join("resumes", app.ID.String(), fmt.Sprintf("%d%s", s.now().Unix(), ext))
	if err := s.fileSystem.WriteFile(ctx, storagePath, data); err != nil {
		return nil, errx.Wrap(err, "failed to upload resume", errx.TypeExternal)
	}

	app.ResumePath = kernel.BlobPath(storagePath)
	app.UpdatedAt = s.now()

	if err := s.applicationRepo.Update(ctx, &app); err != nil {
		// Cleanup uploaded file on failure
		_ = s.fileSystem.DeleteFile(context.Background(), storagePath)
		return nil, errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}

	if !previous.IsEmpty() && previous.String() != storagePath {
		if err := s.fileSystem.DeleteFile(ctx, previous.String()); err != nil {
			logx.Warn("failed to delete previous resume", zap.String("path", previous.String()), zap.Error(err))
		}
	}

	return s.response(ctx, id)
}

// DownloadResume streams the resume to the applicant, the job poster or staff
func (s *ApplicationService) DownloadResume(ctx context.Context, ac *auth.AuthContext, id kernel.ApplicationID) (io.ReadCloser, string, error) {
	details, err := s.authorized(ctx, ac, id, true)
	if err != nil {
		return nil, "", err
	}
	if !details.HasResume() {
		return nil, "", application.ErrResumeNotFound().WithDetail("application_id", id.String())
	}

	stream, err := s.fileSystem.ReadFileStream(ctx, details.ResumePath.String())
	if err != nil {
		return nil, "", errx.Wrap(err, "failed to download resume", errx.TypeExternal).
			WithDetail("path", details.ResumePath.String())
	}

	return stream, path.Base(details.ResumePath.String()), nil
}

// ============================================================================
// Helper Methods
// ============================================================================

// authorized loads an application the caller may act on. The job poster and
// staff always qualify; the applicant only when applicantAllowed.
func (s *ApplicationService) authorized(ctx context.Context, ac *auth.AuthContext, id kernel.ApplicationID, applicantAllowed bool) (*application.Details, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	details, err := s.applicationRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get application", errx.TypeInternal)
	}

	if auth.CanManage(ac, details.Job.PostedBy) {
		return details, nil
	}
	if applicantAllowed && auth.RelationTo(ac, details.ApplicantID) == auth.RelationOwner {
		return details, nil
	}
	return nil, application.ErrInsufficientPermissions()
}

func (s *ApplicationService) response(ctx context.Context, id kernel.ApplicationID) (*application.ApplicationResponse, error) {
	details, err := s.applicationRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load application", errx.TypeInternal)
	}
	resp := application.NewApplicationResponse(*details)
	return &resp, nil
}
