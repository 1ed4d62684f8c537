package applicationsrv

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	posterID    = kernel.NewUserID("poster")
	applicantID = kernel.NewUserID("applicant")
	strangerID  = kernel.NewUserID("stranger")
	jobID       = kernel.NewJobID("job-1")
)

type fakeRepo struct {
	mu         sync.Mutex
	apps       map[kernel.ApplicationID]application.Application
	jobs       map[kernel.JobID]application.JobSummary
	counts     map[kernel.JobID]int
	updateErr  error
	refreshErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		apps: map[kernel.ApplicationID]application.Application{},
		jobs: map[kernel.JobID]application.JobSummary{
			jobID: {ID: jobID, Title: "Backend Engineer", Slug: "backend-engineer-acme", PostedBy: posterID},
		},
		counts: map[kernel.JobID]int{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, a *application.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[a.JobID]; !ok {
		return application.ErrJobNotFound()
	}
	for _, existing := range f.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return application.ErrApplicationAlreadyExists()
		}
	}
	f.apps[a.ID] = *a
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, a *application.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.apps[a.ID] = *a
	return nil
}

func (f *fakeRepo) GetDetails(ctx context.Context, id kernel.ApplicationID) (*application.Details, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	return &application.Details{Application: a, Job: f.jobs[a.JobID], ApplicantName: a.ApplicantID.String()}, nil
}

func (f *fakeRepo) List(ctx context.Context, req application.ListApplicationsRequest) (*kernel.Paginated[application.Details], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []application.Details
	for _, a := range f.apps {
		if req.ApplicantID != nil && a.ApplicantID != *req.ApplicantID {
			continue
		}
		items = append(items, application.Details{Application: a, Job: f.jobs[a.JobID]})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return kernel.NewPaginated(items, req.Pagination, len(items)), nil
}

func (f *fakeRepo) RefreshJobCount(ctx context.Context, id kernel.JobID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshErr != nil {
		return 0, f.refreshErr
	}
	n := 0
	for _, a := range f.apps {
		if a.JobID == id {
			n++
		}
	}
	f.counts[id] = n
	return n, nil
}

type fakeUsers struct {
	users map[kernel.UserID]*user.User
}

func (f *fakeUsers) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUsers) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}

func caller(id kernel.UserID, staff bool) *auth.AuthContext {
	return &auth.AuthContext{UserID: &id, Username: id.String(), IsStaff: staff}
}

func newService(t *testing.T) (*ApplicationService, *fakeRepo) {
	t.Helper()
	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	repo := newFakeRepo()
	users := &fakeUsers{users: map[kernel.UserID]*user.User{}}
	for _, id := range []kernel.UserID{posterID, applicantID, strangerID} {
		users.users[id] = &user.User{ID: id, Username: id.String(), Email: kernel.Email(id.String() + "@example.com")}
	}

	svc := NewApplicationService(repo, users, fs)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, repo
}

func apply(t *testing.T, svc *ApplicationService) *application.ApplicationResponse {
	t.Helper()
	resp, err := svc.CreateApplication(context.Background(), caller(applicantID, false), application.CreateApplicationRequest{
		JobID:       jobID,
		CoverLetter: "I would love to join.",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateApplication(t *testing.T) {
	svc, repo := newService(t)

	resp := apply(t, svc)
	assert.Equal(t, application.StatusPending, resp.Status)
	assert.Equal(t, kernel.Email("applicant@example.com"), resp.Email)
	assert.Equal(t, 1, repo.counts[jobID])

	_, err := svc.CreateApplication(context.Background(), caller(applicantID, false), application.CreateApplicationRequest{
		JobID:       jobID,
		CoverLetter: "Again",
	})
	assert.True(t, errx.IsType(err, errx.TypeConflict))

	_, err = svc.CreateApplication(context.Background(), caller(strangerID, false), application.CreateApplicationRequest{
		JobID:       kernel.NewJobID("missing"),
		CoverLetter: "Hello",
	})
	assert.ErrorIs(t, err, application.ErrJobNotFound())
}

func TestCreateApplicationSurvivesCounterFailure(t *testing.T) {
	svc, repo := newService(t)
	repo.refreshErr = errors.New("deadlock detected")

	resp := apply(t, svc)
	assert.Equal(t, application.StatusPending, resp.Status)
}

func TestCreateApplicationRequiresCaller(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.CreateApplication(context.Background(), nil, application.CreateApplicationRequest{JobID: jobID})
	assert.ErrorIs(t, err, auth.ErrMissingToken())
}

func TestListApplicationsByRole(t *testing.T) {
	svc, _ := newService(t)
	apply(t, svc)
	_, err := svc.CreateApplication(context.Background(), caller(strangerID, false), application.CreateApplicationRequest{
		JobID:       jobID,
		CoverLetter: "Me too",
	})
	require.NoError(t, err)

	page := kernel.PaginationOptions{Page: 1, PageSize: 20}

	own, err := svc.ListApplications(context.Background(), caller(applicantID, false), application.DefaultOrdering, page)
	require.NoError(t, err)
	require.Len(t, own.Items, 1)
	assert.Equal(t, jobID, own.Items[0].Job.ID)

	all, err := svc.ListApplications(context.Background(), caller(kernel.NewUserID("admin"), true), application.DefaultOrdering, page)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestGetApplicationVisibility(t *testing.T) {
	svc, _ := newService(t)
	created := apply(t, svc)

	for _, ac := range []*auth.AuthContext{caller(applicantID, false), caller(posterID, false), caller(strangerID, true)} {
		_, err := svc.GetApplication(context.Background(), ac, created.ID)
		assert.NoError(t, err, ac.Username)
	}

	_, err := svc.GetApplication(context.Background(), caller(strangerID, false), created.ID)
	assert.ErrorIs(t, err, application.ErrInsufficientPermissions())
}

func TestUpdateApplicationStampsReview(t *testing.T) {
	svc, _ := newService(t)
	created := apply(t, svc)

	status := application.StatusShortlisted
	notes := "Strong Go background"

	_, err := svc.UpdateApplication(context.Background(), caller(applicantID, false), created.ID, application.UpdateApplicationRequest{Status: &status})
	assert.ErrorIs(t, err, application.ErrInsufficientPermissions())

	updated, err := svc.UpdateApplication(context.Background(), caller(posterID, false), created.ID, application.UpdateApplicationRequest{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)
	assert.Equal(t, notes, updated.Notes)
	require.NotNil(t, updated.ReviewedAt)

	onlyNotes := "Call on Monday"
	again, err := svc.UpdateApplication(context.Background(), caller(posterID, false), created.ID, application.UpdateApplicationRequest{Notes: &onlyNotes})
	require.NoError(t, err)
	assert.Equal(t, *updated.ReviewedAt, *again.ReviewedAt)
}

func TestUploadResume(t *testing.T) {
	svc, _ := newService(t)
	created := apply(t, svc)
	ctx := context.Background()

	_, err := svc.UploadResume(ctx, caller(applicantID, false), created.ID, "cv.exe", []byte("MZ"))
	assert.ErrorIs(t, err, application.ErrInvalidFileType())

	_, err = svc.UploadResume(ctx, caller(applicantID, false), created.ID, "cv.pdf", make([]byte, MaxResumeSize+1))
	assert.ErrorIs(t, err, application.ErrFileSizeTooLarge())

	_, err = svc.UploadResume(ctx, caller(posterID, false), created.ID, "cv.pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, application.ErrInsufficientPermissions())

	first, err := svc.UploadResume(ctx, caller(applicantID, false), created.ID, "cv.PDF", []byte("%PDF-1"))
	require.NoError(t, err)
	require.False(t, first.ResumeURL.IsEmpty())

	second, err := svc.UploadResume(ctx, caller(applicantID, false), created.ID, "cv.docx", []byte("PK"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ResumeURL, second.ResumeURL)

	exists, err := svc.fileSystem.Exists(ctx, first.ResumeURL.String())
	require.NoError(t, err)
	assert.False(t, exists, "previous resume should be removed")

	stream, name, err := svc.DownloadResume(ctx, caller(posterID, false), created.ID)
	require.NoError(t, err)
	defer stream.Close()
	body, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(body))
	assert.Contains(t, name, ".docx")
}

type recordingFS struct {
	fsx.FileSystem
	written []string
}

func (r *recordingFS) WriteFile(ctx context.Context, p string, data []byte) error {
	r.written = append(r.written, p)
	return r.FileSystem.WriteFile(ctx, p, data)
}

func TestUploadResumeCleansUpOnUpdateFailure(t *testing.T) {
	svc, repo := newService(t)
	created := apply(t, svc)

	rec := &recordingFS{FileSystem: svc.fileSystem}
	svc.fileSystem = rec
	repo.updateErr = errors.New("connection reset")

	_, err := svc.UploadResume(context.Background(), caller(applicantID, false), created.ID, "cv.pdf", []byte("%PDF"))
	require.Error(t, err)
	require.Len(t, rec.written, 1)

	exists, err := rec.Exists(context.Background(), rec.written[0])
	require.NoError(t, err)
	assert.False(t, exists)
}
