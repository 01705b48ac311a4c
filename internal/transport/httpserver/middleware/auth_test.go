package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"amparo-go/internal/domain/auth"
	"amparo-go/pkg/logger"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	actors map[string]auth.Actor
}

func (v *fakeVerifier) VerifyToken(token string) (auth.Actor, error) {
	actor, ok := v.actors[token]
	if !ok {
		return auth.Actor{}, auth.ErrInvalidToken
	}
	return actor, nil
}

func newTestChain(next http.Handler) http.Handler {
	verifier := &fakeVerifier{actors: map[string]auth.Actor{
		"staff-token":  {UserID: "u1", Role: auth.RoleAttendant},
		"viewer-token": {UserID: "u2", Role: auth.RoleViewer},
	}}
	authMW := NewAuth(verifier, logger.NewFromEnv())
	return authMW.Middleware(StaffOrReadOnly(next))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeEnvelope(t, rec)
	require.Equal(t, float64(http.StatusForbidden), body["status_code"])
	require.Equal(t, "authentication required", body["error"])
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "invalid token", decodeEnvelope(t, rec)["error"])
}

func TestAuthMiddlewarePassesActor(t *testing.T) {
	var seen auth.Actor
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		seen = actor
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
	req.Header.Set("Authorization", "Bearer staff-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u1", seen.UserID)
	require.Equal(t, auth.RoleAttendant, seen.Role)
}

func TestStaffOrReadOnlyViewerCanRead(t *testing.T) {
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
	req.Header.Set("Authorization", "Bearer viewer-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStaffOrReadOnlyViewerCannotWrite(t *testing.T) {
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPut, "/api/families/f1", nil)
	req.Header.Set("Authorization", "Bearer viewer-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "insufficient role", decodeEnvelope(t, rec)["error"])
}

func TestStaffOrReadOnlyStaffCanWrite(t *testing.T) {
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/families", nil)
	req.Header.Set("Authorization", "Bearer staff-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}
