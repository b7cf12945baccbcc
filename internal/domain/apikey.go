package domain

import "time"

// APIKey authenticates a caller as an account with a role.
//
// Keys use a split-token layout: ShortToken is stored in clear for lookup
// and LongSecretHash is the BLAKE2b-256 hash of the secret part. The full
// key is only shown once, at creation.
type APIKey struct {
	ID             string
	KeyType        string // "sk" = secret key
	Service        string
	Version        string
	ShortToken     string
	LongSecretHash string
	Name           string
	AccountID      string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	LastUsedAt     *time.Time
	ExpiresAt      *time.Time
}

// Scope returns the visibility window granted by the key.
func (k *APIKey) Scope() Scope {
	if k.Role == RoleAdmin {
		return AdminScope()
	}
	return AccountScope(k.AccountID)
}
