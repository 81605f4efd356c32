package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/healthsync-service/internal/auth"
	"github.com/spec-kit/healthsync-service/internal/config"
	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/service"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(context.Context, *domain.User) error { return nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(context.Context) ([]domain.User, error)           { return nil, nil }
func (f *fakeUserRepo) SetRole(context.Context, string, domain.Role) error    { return nil }
func (f *fakeUserRepo) SetEmailVerified(context.Context, string) error        { return nil }
func (f *fakeUserRepo) Count(context.Context) (int64, error)                  { return 0, nil }
func (f *fakeUserRepo) CountCreatedSince(context.Context, int) (int64, error) { return 0, nil }

type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func (f *fakeRevocations) Revoke(_ context.Context, jti, _ string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = struct{}{}
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[jti]
	return ok, nil
}

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()

	users := &fakeUserRepo{users: map[string]*domain.User{}}
	revocations := &fakeRevocations{revoked: map[string]struct{}{}}

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenTTLHours: 24,
		BcryptCost:          bcrypt.MinCost,
	}, service.AuthDependencies{
		UserRepo:       users,
		RevocationRepo: revocations,
	})

	handler := NewAuthHandler(authService, nil)
	middleware := auth.NewAuthMiddleware(authService.TokenManager(), users, revocations)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) (err error) {
		defer func() {
			if err != nil {
				de := apperrors.ToDomainError(err)
				c.Status(de.HTTPStatus)
				err = c.JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
			}
		}()
		return c.Next()
	})
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	app.Post("/api/auth/logout", middleware.Handle, handler.Logout)
	app.Get("/api/auth/profile", middleware.Handle, handler.Profile)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestAuthLifecycle_LogoutRevokesToken(t *testing.T) {
	app := newAuthTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "u@x.com",
		"password": "pw123",
		"name":     "U",
		"age":      30,
		"gender":   "male",
		"history":  "none",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "u@x.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	authData, ok := body["auth"].(map[string]any)
	require.True(t, ok)
	token, _ := authData["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "u@x.com", user["email"])
	_, hasHash := user["password_hash"]
	require.False(t, hasHash, "password hash must never be serialized")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The same token is now rejected everywhere.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_DoesNotRevealWhichFieldFailed(t *testing.T) {
	app := newAuthTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "u@x.com",
		"password": "pw123",
		"name":     "U",
		"age":      30,
		"gender":   "male",
		"history":  "none",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, badPassword := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "u@x.com",
		"password": "wrong",
	})
	_, unknownEmail := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ghost@x.com",
		"password": "pw123",
	})
	require.Equal(t, badPassword["error"], unknownEmail["error"])
}
