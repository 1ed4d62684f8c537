package applicationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo keeps applications for a single job posted by "poster"
type memoryRepo struct {
	apps map[kernel.ApplicationID]application.Application
}

func (m *memoryRepo) Create(ctx context.Context, a *application.Application) error {
	for _, existing := range m.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return application.ErrApplicationAlreadyExists()
		}
	}
	m.apps[a.ID] = *a
	return nil
}

func (m *memoryRepo) Update(ctx context.Context, a *application.Application) error {
	m.apps[a.ID] = *a
	return nil
}

func (m *memoryRepo) GetDetails(ctx context.Context, id kernel.ApplicationID) (*application.Details, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	return &application.Details{
		Application:   a,
		Job:           application.JobSummary{ID: a.JobID, Title: "Go Dev", PostedBy: "poster"},
		ApplicantName: a.ApplicantID.String(),
	}, nil
}

func (m *memoryRepo) List(ctx context.Context, req application.ListApplicationsRequest) (*kernel.Paginated[application.Details], error) {
	var items []application.Details
	for _, a := range m.apps {
		if req.ApplicantID == nil || a.ApplicantID == *req.ApplicantID {
			items = append(items, application.Details{Application: a})
		}
	}
	return kernel.NewPaginated(items, req.Pagination, len(items)), nil
}

func (m *memoryRepo) RefreshJobCount(ctx context.Context, jobID kernel.JobID) (int, error) {
	return len(m.apps), nil
}

type users struct{}

func (users) Create(ctx context.Context, u *user.User) error { return nil }
func (users) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return &user.User{ID: id, Username: id.String(), Email: kernel.Email(id.String() + "@example.com")}, nil
}
func (users) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}
func (users) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}

type testEnv struct {
	app    *fiber.App
	tokens map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	repo := &memoryRepo{apps: map[kernel.ApplicationID]application.Application{}}
	jwt := auth.NewJWTService("secret", time.Hour, 2*time.Hour, "jobboard")

	app := fiber.New(fiber.Config{ErrorHandler: errx.FiberErrorHandler})
	RegisterRoutes(app, NewHandlers(applicationsrv.NewApplicationService(repo, users{}, fs)), auth.NewTokenMiddleware(jwt))

	tokens := map[string]string{}
	for _, name := range []string{"applicant", "poster", "stranger"} {
		pair, err := jwt.GeneratePair(&user.User{ID: kernel.UserID(name), Username: name, Email: kernel.Email(name + "@example.com"), IsActive: true})
		require.NoError(t, err)
		tokens[name] = pair.AccessToken
	}

	return &testEnv{app: app, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, req *http.Request, who string) (*http.Response, map[string]any) {
	t.Helper()
	if who != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[who])
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	body := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, path, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (e *testEnv) apply(t *testing.T) string {
	t.Helper()
	resp, body := e.do(t, jsonRequest(t, http.MethodPost, "/applications", map[string]any{
		"job_id":            "job-1",
		"cover_letter":      "Hire me",
		"availability_date": "2026-04-01",
	}), "applicant")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "2026-04-01", body["availability_date"])
	return body["id"].(string)
}

func TestApplicationsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/applications", nil), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateApplicationFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.apply(t)

	resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/applications", map[string]any{
		"job_id":       "job-1",
		"cover_letter": "Again",
	}), "applicant")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "APPLICATION.ALREADY_EXISTS", body["code"])

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/applications", nil), "stranger")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["items"])

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/applications/"+id, nil), "stranger")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/applications/"+id, nil), "poster")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateApplicationValidatesBody(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/applications", map[string]any{
		"job_id":       "job-1",
		"cover_letter": "Hi",
		"linkedin_url": "not a url",
	}), "applicant")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION.INVALID_INPUT", body["code"])
}

func TestReviewApplication(t *testing.T) {
	env := newTestEnv(t)
	id := env.apply(t)

	resp, _ := env.do(t, jsonRequest(t, http.MethodPatch, "/applications/"+id, map[string]any{"status": "accepted"}), "applicant")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.do(t, jsonRequest(t, http.MethodPatch, "/applications/"+id, map[string]any{"status": "hired"}), "poster")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION.INVALID_INPUT", body["code"])

	resp, body = env.do(t, jsonRequest(t, http.MethodPatch, "/applications/"+id, map[string]any{
		"status": "interviewed",
		"notes":  "Good call",
	}), "poster")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "interviewed", body["status"])
	assert.NotNil(t, body["reviewed_at"])
}

func TestResumeUploadAndDownload(t *testing.T) {
	env := newTestEnv(t)
	id := env.apply(t)
	path := "/applications/" + id + "/resume"

	resp, body := env.do(t, uploadRequest(t, path, "resume", "cv.png", []byte("img")), "applicant")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "APPLICATION.INVALID_FILE_TYPE", body["code"])

	resp, body = env.do(t, uploadRequest(t, path, "file", "cv.pdf", []byte("%PDF")), "applicant")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "APPLICATION.INVALID_REQUEST", body["code"])

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, path, nil), "poster")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = env.do(t, uploadRequest(t, path, "resume", "cv.pdf", []byte("%PDF-1.7")), "applicant")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["resume_url"])

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+env.tokens["poster"])
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")
	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(content))
}
