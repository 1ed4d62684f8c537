package savedjobapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob/savedjobsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	saved []savedjob.SavedJob
}

func (m *memoryRepo) Create(ctx context.Context, s *savedjob.SavedJob) error {
	for _, existing := range m.saved {
		if existing.UserID == s.UserID && existing.JobID == s.JobID {
			return savedjob.ErrAlreadySaved()
		}
	}
	m.saved = append(m.saved, *s)
	return nil
}
func (m *memoryRepo) Delete(ctx context.Context, id kernel.SavedJobID) error { return nil }
func (m *memoryRepo) GetByID(ctx context.Context, id kernel.SavedJobID) (*savedjob.SavedJob, error) {
	for _, s := range m.saved {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, savedjob.ErrSavedJobNotFound()
}
func (m *memoryRepo) GetEntry(ctx context.Context, id kernel.SavedJobID) (*savedjob.Entry, error) {
	s, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &savedjob.Entry{SavedJob: *s}, nil
}
func (m *memoryRepo) ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[savedjob.Entry], error) {
	return kernel.NewPaginated([]savedjob.Entry{}, pagination, 0), nil
}

func TestSavedJobRoutes(t *testing.T) {
	tokens := auth.NewJWTService("secret", time.Hour, 2*time.Hour, "jobboard")
	app := fiber.New(fiber.Config{ErrorHandler: errx.FiberErrorHandler})
	RegisterRoutes(app, NewHandlers(savedjobsrv.NewSavedJobService(&memoryRepo{})), auth.NewTokenMiddleware(tokens))

	pair, err := tokens.GeneratePair(&user.User{ID: "u-1", Username: "ana", Email: "ana@example.com", IsActive: true})
	require.NoError(t, err)

	post := func(body string, token string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/saved-jobs", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, http.StatusUnauthorized, post(`{"job_id":"j-1"}`, "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, post(`{}`, pair.AccessToken).StatusCode)
	assert.Equal(t, http.StatusCreated, post(`{"job_id":"j-1"}`, pair.AccessToken).StatusCode)

	resp := post(`{"job_id":"j-1"}`, pair.AccessToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "SAVED_JOB.ALREADY_SAVED", body["code"])

	req := httptest.NewRequest(http.MethodGet, "/saved-jobs/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
