package alertsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/alert"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertService manages the caller's job alerts
type AlertService struct {
	repo alert.Repository
	now  func() time.Time
}

// NewAlertService creates a new instance of the job alert service
func NewAlertService(repo alert.Repository) *AlertService {
	return &AlertService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *AlertService) ListAlerts(ctx context.Context, ac *auth.AuthContext, pagination kernel.PaginationOptions) (*alert.PaginatedAlertsResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	page, err := s.repo.ListByUser(ctx, *ac.UserID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job alerts", errx.TypeInternal)
	}
	return kernel.MapPaginated(page, alert.NewAlertResponse), nil
}

func (s *AlertService) CreateAlert(ctx context.Context, ac *auth.AuthContext, req alert.CreateAlertRequest) (*alert.AlertResponse, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = alert.DefaultFrequency
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	a := &alert.JobAlert{
		ID:               kernel.NewJobAlertID(uuid.NewString()),
		UserID:           *ac.UserID,
		Name:             strings.TrimSpace(req.Name),
		Keywords:         req.Keywords,
		Locations:        req.Locations,
		ExperienceLevels: req.ExperienceLevels,
		SalaryMin:        toNull(req.SalaryMin),
		IsRemote:         req.IsRemote,
		Frequency:        frequency,
		IsActive:         active,
		CreatedAt:        s.now(),
		CategoryIDs:      dedupe(req.CategoryIDs),
		JobTypeIDs:       dedupe(req.JobTypeIDs),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, errx.Wrap(err, "failed to create job alert", errx.TypeInternal)
	}

	return s.response(ctx, a.ID)
}

func (s *AlertService) GetAlert(ctx context.Context, ac *auth.AuthContext, id kernel.JobAlertID) (*alert.AlertResponse, error) {
	details, err := s.owned(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	resp := alert.NewAlertResponse(*details)
	return &resp, nil
}

// UpdateAlert applies the provided fields; link lists replace the current
// set only when present in the request
func (s *AlertService) UpdateAlert(ctx context.Context, ac *auth.AuthContext, id kernel.JobAlertID, req alert.UpdateAlertRequest) (*alert.AlertResponse, error) {
	details, err := s.owned(ctx, ac, id)
	if err != nil {
		return nil, err
	}

	a := details.JobAlert
	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Keywords != nil {
		a.Keywords = *req.Keywords
	}
	if req.Locations != nil {
		a.Locations = *req.Locations
	}
	if req.ExperienceLevels != nil {
		a.ExperienceLevels = *req.ExperienceLevels
	}
	if req.SalaryMin != nil {
		a.SalaryMin = toNull(req.SalaryMin)
	}
	if req.IsRemote != nil {
		a.IsRemote = *req.IsRemote
	}
	if req.Frequency != nil {
		a.Frequency = *req.Frequency
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if req.CategoryIDs != nil {
		a.CategoryIDs = dedupe(*req.CategoryIDs)
	}
	if req.JobTypeIDs != nil {
		a.JobTypeIDs = dedupe(*req.JobTypeIDs)
	}

	if err := s.repo.Update(ctx, &a); err != nil {
		return nil, errx.Wrap(err, "failed to update job alert", errx.TypeInternal)
	}

	return s.response(ctx, id)
}

func (s *AlertService) DeleteAlert(ctx context.Context, ac *auth.AuthContext, id kernel.JobAlertID) error {
	if _, err := s.owned(ctx, ac, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete job alert", errx.TypeInternal)
	}
	return nil
}

// ============================================================================
// Helper Methods
// ============================================================================

// owned loads an alert that belongs to the caller
func (s *AlertService) owned(ctx context.Context, ac *auth.AuthContext, id kernel.JobAlertID) (*alert.Details, error) {
	if !ac.IsAuthenticated() {
		return nil, auth.ErrMissingToken()
	}

	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job alert", errx.TypeInternal)
	}
	if !details.IsOwnedBy(*ac.UserID) {
		return nil, alert.ErrNotOwner()
	}
	return details, nil
}

func (s *AlertService) response(ctx context.Context, id kernel.JobAlertID) (*alert.AlertResponse, error) {
	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load job alert", errx.TypeInternal)
	}
	resp := alert.NewAlertResponse(*details)
	return &resp, nil
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func dedupe[T comparable](ids []T) []T {
	seen := make(map[T]bool, len(ids))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
