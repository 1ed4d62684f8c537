package jobapi

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
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo serves a single published job
type stubRepo struct {
	listing job.Listing
	created []*job.Job
	lastReq job.ListJobsRequest
}

func (s *stubRepo) Create(ctx context.Context, j *job.Job) error {
	s.created = append(s.created, j)
	s.listing = job.Listing{Job: *j}
	return nil
}
func (s *stubRepo) Update(ctx context.Context, j *job.Job) error      { return nil }
func (s *stubRepo) Delete(ctx context.Context, id kernel.JobID) error { return nil }
func (s *stubRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	return &s.listing.Job, nil
}
func (s *stubRepo) GetListingBySlug(ctx context.Context, slug kernel.Slug) (*job.Listing, error) {
	if slug != s.listing.Slug {
		return nil, job.ErrJobNotFound()
	}
	l := s.listing
	return &l, nil
}
func (s *stubRepo) ListActive(ctx context.Context, req job.ListJobsRequest, now time.Time) (*kernel.Paginated[job.Listing], error) {
	s.lastReq = req
	return kernel.NewPaginated([]job.Listing{s.listing}, req.Pagination, 1), nil
}
func (s *stubRepo) SlugExists(ctx context.Context, slug kernel.Slug) (bool, error) { return false, nil }

type recordingTracker struct{ views []job.View }

func (r *recordingTracker) RecordView(ctx context.Context, v job.View) (bool, error) {
	r.views = append(r.views, v)
	return true, nil
}

type companies struct{}

func (companies) CompanyName(ctx context.Context, id kernel.CompanyID) (string, error) {
	return "TechCorp", nil
}

type testEnv struct {
	app     *fiber.App
	repo    *stubRepo
	tracker *recordingTracker
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := &stubRepo{listing: job.Listing{Job: job.Job{
		ID: "j-1", Slug: "go-dev-techcorp", Title: "Go Dev", Status: job.StatusActive, PostedBy: "u-1",
	}}}
	tracker := &recordingTracker{}
	tokens := auth.NewJWTService("secret", time.Hour, 2*time.Hour, "jobboard")

	app := fiber.New(fiber.Config{ErrorHandler: errx.FiberErrorHandler})
	RegisterRoutes(app, NewHandlers(jobsrv.NewJobService(repo, tracker, companies{})), auth.NewTokenMiddleware(tokens))

	pair, err := tokens.GeneratePair(&user.User{ID: "u-1", Username: "ana", Email: "ana@example.com", IsActive: true})
	require.NoError(t, err)

	return &testEnv{app: app, repo: repo, tracker: tracker, token: pair.AccessToken}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	body := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestListJobsParsesQuery(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/jobs/?search=go&tags=go,,k8s&ordering=-views_count&page=2&page_size=500", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "go", env.repo.lastReq.Filter.Search)
	assert.Equal(t, []string{"go", "k8s"}, env.repo.lastReq.Filter.Tags)
	assert.Equal(t, job.OrderViewsDesc, env.repo.lastReq.Ordering)
	assert.Equal(t, kernel.PaginationOptions{Page: 2, PageSize: kernel.DefaultPageSize}, env.repo.lastReq.Pagination)
	assert.Len(t, body["items"], 1)
}

func TestListJobsHugePageStaysInRange(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/jobs?page=922337203685477581", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := env.repo.lastReq.Pagination
	assert.Equal(t, kernel.MaxPage, got.Page)
	assert.Positive(t, got.Offset())
}

func TestListJobsRejectsInvalidLevel(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/jobs?experience_level=intern", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "JOB.INVALID_FILTER", body["code"])
}

func TestGetJobTracksForwardedIP(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/jobs/go-dev-techcorp", nil)
	req.Header.Set("X-Forwarded-For", " 203.0.113.5 , 10.0.0.1")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", "Bearer "+env.token)

	resp, body := env.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["views_count"])

	require.Len(t, env.tracker.views, 1)
	v := env.tracker.views[0]
	assert.Equal(t, "203.0.113.5", v.IPAddress)
	assert.Equal(t, "test-agent", v.UserAgent)
	require.NotNil(t, v.UserID)
	assert.Equal(t, kernel.UserID("u-1"), *v.UserID)
}

func TestGetJobAnonymousAndUnknown(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/jobs/go-dev-techcorp/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, env.tracker.views, 1)
	assert.Nil(t, env.tracker.views[0].UserID)

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/jobs/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func jsonRequest(t *testing.T, method, path string, body any, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestCreateJob(t *testing.T) {
	env := newTestEnv(t)
	payload := map[string]any{
		"title": "Platform Engineer", "description": "d", "requirements": "r", "responsibilities": "s",
		"company_id": "co-1", "category_id": "cat-1", "job_type_id": "jt-1", "location": "Lima",
		"experience_level": "mid", "salary_min": 50000, "salary_max": 40000,
	}

	resp, _ := env.do(t, jsonRequest(t, http.MethodPost, "/jobs/create", payload, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/jobs/create", payload, env.token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "JOB.INVALID_SALARY_RANGE", body["code"])

	payload["salary_max"] = "90000.00"
	resp, body = env.do(t, jsonRequest(t, http.MethodPost, "/jobs/create", payload, env.token))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "platform-engineer-techcorp", body["slug"])
	require.Len(t, env.repo.created, 1)
	assert.Equal(t, kernel.UserID("u-1"), env.repo.created[0].PostedBy)
	assert.Equal(t, job.StatusDraft, env.repo.created[0].Status)
}

func TestCreateJobValidatesBody(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/jobs/create", map[string]any{"title": "x"}, env.token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION.INVALID_INPUT", body["code"])
}

func TestDeleteJobRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	tokens := auth.NewJWTService("secret", time.Hour, 2*time.Hour, "jobboard")
	pair, err := tokens.GeneratePair(&user.User{ID: "u-2", Username: "bo", Email: "bo@example.com", IsActive: true})
	require.NoError(t, err)

	resp, _ := env.do(t, jsonRequest(t, http.MethodDelete, "/jobs/go-dev-techcorp", nil, pair.AccessToken))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, jsonRequest(t, http.MethodDelete, "/jobs/go-dev-techcorp", nil, env.token))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
