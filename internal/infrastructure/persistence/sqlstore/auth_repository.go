package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/catalog/internal/domain"
)

// === Auth Repository Implementation ===
// Implements application/auth.Repository interface (3 methods)

const apiKeyColumns = "id, key_type, service, version, short_token, long_secret_hash, name, account_id, role, is_active, created_at, last_used_at, expires_at"

func apiKeyTargets(k *domain.APIKey) []any {
	return []any{
		&k.ID, &k.KeyType, &k.Service, &k.Version, &k.ShortToken, &k.LongSecretHash,
		&k.Name, &k.AccountID, (*string)(&k.Role), &k.IsActive,
		(*dbTime)(&k.CreatedAt), nullTime{&k.LastUsedAt}, nullTime{&k.ExpiresAt},
	}
}

// FindByShortToken retrieves an API key by its short token for validation.
func (s *Store) FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error) {
	var key domain.APIKey
	err := s.queryRow(ctx,
		"SELECT "+apiKeyColumns+" FROM api_keys WHERE short_token = ?", shortToken).
		Scan(apiKeyTargets(&key)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: API key", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}
	return &key, nil
}

// UpdateLastUsed updates the last used timestamp for an API key.
// Only updates if the new timestamp is later than the current value (or current value is NULL).
// Returns success (nil) if timestamp is not later (idempotent behavior).
// Returns ErrNotFound if the API key doesn't exist.
func (s *Store) UpdateLastUsed(ctx context.Context, keyID string, timestamp time.Time) error {
	if _, err := uuid.Parse(keyID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}

	result, err := s.exec(ctx,
		"UPDATE api_keys SET last_used_at = ? WHERE id = ? AND (last_used_at IS NULL OR last_used_at < ?)",
		dbTime(timestamp), keyID, dbTime(timestamp))
	if err != nil {
		return fmt.Errorf("failed to update last used: %w", err)
	}

	if err := checkRowsAffected(result, "api key", keyID); err == nil || !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	// Either key doesn't exist OR timestamp wasn't later
	var exists int
	err = s.queryRow(ctx, "SELECT COUNT(*) FROM api_keys WHERE id = ?", keyID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check key existence: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: API key", domain.ErrNotFound)
	}
	// Key exists, timestamp just wasn't later - idempotent success
	return nil
}

// Create creates a new API key in storage.
func (s *Store) Create(ctx context.Context, key *domain.APIKey) error {
	if _, err := uuid.Parse(key.ID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}

	_, err := s.exec(ctx,
		"INSERT INTO api_keys ("+apiKeyColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		values(apiKeyTargets(key))...)
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}
	return nil
}
