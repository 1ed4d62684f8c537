package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	mu    sync.Mutex
	users map[kernel.UserID]*user.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[kernel.UserID]*user.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken()
		}
		if existing.Email == u.Email {
			return user.ErrEmailTaken()
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound()
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func (m *memUsers) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	tokens := NewJWTService("secret", 15*time.Minute, time.Hour, "jobboard")
	handlers := NewAuthHandlers(newMemUsers(), tokens, NewBcryptPasswordService(4))

	app := fiber.New(fiber.Config{ErrorHandler: errx.FiberErrorHandler})
	handlers.RegisterRoutes(app, NewTokenMiddleware(tokens))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestRegisterLoginRefreshMe(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/register", map[string]string{
		"username": "ana", "email": "Ana@Example.com", "password": "s3cretpass", "first_name": "Ana",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ana@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/register", map[string]string{
		"username": "ana", "email": "other@example.com", "password": "s3cretpass",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"username": "ana@example.com", "password": "s3cretpass",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	access := body["access"].(string)
	refresh := body["refresh"].(string)

	resp, body = doJSON(t, app, http.MethodGet, "/auth/me", nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana", body["username"])

	resp, _ = doJSON(t, app, http.MethodGet, "/auth/me", nil, refresh)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/refresh", map[string]string{"refresh": access}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/auth/refresh", map[string]string{"refresh": refresh}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/auth/register", map[string]string{
		"username": "ana", "email": "ana@example.com", "password": "s3cretpass",
	}, "")

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"username": "ana", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, string(CodeInvalidCredentials), body["code"])

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"username": "nobody", "password": "whatever1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware(t *testing.T) {
	tokens := NewJWTService("secret", 15*time.Minute, time.Hour, "jobboard")
	mw := NewTokenMiddleware(tokens)

	app := fiber.New(fiber.Config{ErrorHandler: errx.FiberErrorHandler})
	app.Get("/optional", mw.OptionalAuthenticate(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": ViewerID(c) != nil})
	})

	member, err := tokens.GeneratePair(&user.User{ID: "u-1", Username: "ana"})
	require.NoError(t, err)

	_, body := doJSON(t, app, http.MethodGet, "/optional", nil, "")
	assert.Equal(t, false, body["authenticated"])

	_, body = doJSON(t, app, http.MethodGet, "/optional", nil, member.AccessToken)
	assert.Equal(t, true, body["authenticated"])

	resp, _ := doJSON(t, app, http.MethodGet, "/optional", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
