package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"amparo-go/internal/domain/auth"
	"amparo-go/pkg/logger"
)

type contextKey int

const actorKey contextKey = iota

// TokenVerifier turns a bearer token into the actor it identifies.
type TokenVerifier interface {
	VerifyToken(token string) (auth.Actor, error)
}

type Auth struct {
	verifier TokenVerifier
	log      logger.Logger
}

func NewAuth(verifier TokenVerifier, log logger.Logger) *Auth {
	return &Auth{verifier: verifier, log: log}
}

// Middleware requires a valid bearer token and stores the resulting actor
// in the request context. Requests without credentials are rejected with a
// 403 envelope.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			forbidden(w, "authentication required")
			return
		}

		actor, err := a.verifier.VerifyToken(token)
		if err != nil {
			a.log.Debug("auth: token rejected", "err", err)
			forbidden(w, "invalid token")
			return
		}

		ctx := WithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffOrReadOnly lets any authenticated actor read but requires a staff
// role for mutating methods. The services check the same rule again; this
// gate just fails the request before any body is decoded.
func StaffOrReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.IsStaff() {
			forbidden(w, "insufficient role")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithActor(ctx context.Context, actor auth.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) (auth.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(auth.Actor)
	if !ok || actor.UserID == "" {
		return auth.Actor{}, false
	}
	return actor, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func forbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status_code": http.StatusForbidden,
		"error":       message,
	})
}
