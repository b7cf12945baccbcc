package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rezkam/catalog/internal/application/auth"
	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/http/response"
)

// Authenticator resolves an API key to the caller's scope.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (domain.Scope, error)
}

// Auth is HTTP middleware for API key authentication.
type Auth struct {
	authenticator Authenticator
}

// NewAuth creates a new auth middleware.
func NewAuth(authenticator Authenticator) *Auth {
	return &Auth{authenticator: authenticator}
}

// Validate checks the bearer API key and stores the caller's scope in the
// request context. Every failure is a 401; the reason is only logged.
func (a *Auth) Validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			reject(w, r, slog.LevelWarn, "missing Authorization header", nil)
			return
		}
		apiKey, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			reject(w, r, slog.LevelWarn, "invalid Authorization header format, expected: Bearer <token>", nil)
			return
		}

		scope, err := a.authenticator.Authenticate(r.Context(), apiKey)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidAPIKeyFormat):
			reject(w, r, slog.LevelWarn, "invalid or expired API key", nil)
			return
		default:
			reject(w, r, slog.LevelError, "invalid or expired API key", err)
			return
		}

		slog.DebugContext(r.Context(), "authenticated",
			"path", r.URL.Path,
			"account_id", scope.AccountID,
			"admin", scope.Admin)

		next.ServeHTTP(w, r.WithContext(auth.WithScope(r.Context(), scope)))
	})
}

func reject(w http.ResponseWriter, r *http.Request, level slog.Level, msg string, err error) {
	attrs := []any{"path", r.URL.Path, "method", r.Method, "reason", msg}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	slog.Log(r.Context(), level, "authentication failed", attrs...)
	response.Unauthorized(w, msg)
}
