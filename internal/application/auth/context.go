package auth

import (
	"context"

	"github.com/rezkam/catalog/internal/domain"
)

type scopeKey struct{}

// WithScope returns a copy of ctx carrying the caller's scope.
func WithScope(ctx context.Context, s domain.Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFromContext returns the scope stored by WithScope.
func ScopeFromContext(ctx context.Context) (domain.Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(domain.Scope)
	return s, ok
}
