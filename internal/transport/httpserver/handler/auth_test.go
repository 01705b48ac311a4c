package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authdomain "amparo-go/internal/domain/auth"
	"amparo-go/pkg/logger"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*authdomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*authdomain.User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *authdomain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return authdomain.ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*authdomain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}

func (r *fakeUserRepo) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func newAuthHandlers(t *testing.T) *Handlers {
	t.Helper()
	svc := authdomain.NewService(newFakeUserRepo(), "test-secret", time.Hour)
	require.NoError(t, svc.EnsureBootstrapUser(context.Background(), "admin@example.org", "bootstrap-pass"))
	return New(logger.NewFromEnv(), svc, nil, nil, nil, nil, nil, nil)
}

func TestLoginHandlerSuccess(t *testing.T) {
	handlers := newAuthHandlers(t)

	body := `{"email":"admin@example.org","password":"bootstrap-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		StatusCode int     `json:"status_code"`
		Token      string  `json:"token"`
		User       userDTO `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	require.Equal(t, http.StatusOK, payload.StatusCode)
	require.NotEmpty(t, payload.Token)
	require.Equal(t, "admin@example.org", payload.User.Email)
	require.Equal(t, authdomain.RoleAdmin, payload.User.Role)
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	handlers := newAuthHandlers(t)

	body := `{"email":"admin@example.org","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var payload errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	require.Equal(t, http.StatusUnauthorized, payload.StatusCode)
	require.Equal(t, "invalid credentials", payload.Error)
}

func TestLoginHandlerValidation(t *testing.T) {
	handlers := newAuthHandlers(t)

	body := `{"email":"not-an-email","password":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.Login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	require.Contains(t, payload.Fields, "email")
	require.Contains(t, payload.Fields, "password")
}

func TestLoginHandlerUnknownField(t *testing.T) {
	handlers := newAuthHandlers(t)

	body := `{"email":"admin@example.org","password":"bootstrap-pass","extra":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.Login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
