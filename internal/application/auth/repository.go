package auth

import (
	"context"
	"time"

	"github.com/rezkam/catalog/internal/domain"
)

// Repository defines storage operations for authentication.
type Repository interface {
	// FindByShortToken retrieves an API key by its short token.
	// Returns domain.ErrNotFound if no key matches.
	FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error)

	// UpdateLastUsed updates the last used timestamp for an API key.
	UpdateLastUsed(ctx context.Context, keyID string, timestamp time.Time) error

	// Create stores a new API key.
	Create(ctx context.Context, key *domain.APIKey) error
}
