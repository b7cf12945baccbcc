// Package keygen generates, parses and hashes catalog API keys.
//
// Keys follow {type}-{service}-{version}-{short}-{secret}, for example
// sk-catalog-v1-a3f5d8c2b4e6-8h3k2jf9s7d6f5g4h3j2k1m0n9p8q7r6s5t4u3v2w1x.
// The short token is stored in clear for lookup; only the BLAKE2b-256 hash
// of the secret is stored.
package keygen

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/rezkam/catalog/internal/domain"
)

const (
	secretBytes     = 32 // 43 chars in unpadded base64
	shortTokenBytes = 6  // 12 hex chars
)

// Parts are the components of an API key.
type Parts struct {
	KeyType    string
	Service    string
	Version    string
	ShortToken string
	Secret     string
	FullKey    string
}

// Generate creates a new key. The short token is derived from the hash of
// the secret, so it inherits the secret's entropy.
func Generate(keyType, service, version string) (*Parts, error) {
	for _, p := range []string{keyType, service, version} {
		if p == "" || strings.Contains(p, "-") {
			return nil, fmt.Errorf("%w: prefix part %q must be non-empty and contain no '-'", domain.ErrInvalidAPIKeyFormat, p)
		}
	}

	raw := make([]byte, secretBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)

	sum := blake2b.Sum256([]byte(secret))
	short := hex.EncodeToString(sum[:shortTokenBytes])

	return &Parts{
		KeyType:    keyType,
		Service:    service,
		Version:    version,
		ShortToken: short,
		Secret:     secret,
		FullKey:    strings.Join([]string{keyType, service, version, short, secret}, "-"),
	}, nil
}

// Parse splits a key into its parts. The secret is base64url and may itself
// contain '-', so only the first four separators are significant.
func Parse(apiKey string) (*Parts, error) {
	parts := strings.SplitN(apiKey, "-", 5)
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 5 parts, got %d", domain.ErrInvalidAPIKeyFormat, len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: part %d is empty", domain.ErrInvalidAPIKeyFormat, i+1)
		}
	}

	return &Parts{
		KeyType:    parts[0],
		Service:    parts[1],
		Version:    parts[2],
		ShortToken: parts[3],
		Secret:     parts[4],
		FullKey:    apiKey,
	}, nil
}

// Display returns the key with its secret masked.
func (p *Parts) Display() string {
	return fmt.Sprintf("%s-%s-%s-%s-****", p.KeyType, p.Service, p.Version, p.ShortToken)
}

// HashSecret returns the hex-encoded BLAKE2b-256 hash of secret.
func HashSecret(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifySecret compares secret against a stored hash in constant time.
func VerifySecret(secret, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashSecret(secret)), []byte(storedHash)) == 1
}

// Mask returns a loggable form of a key.
func Mask(apiKey string) string {
	p, err := Parse(apiKey)
	if err != nil {
		return "***"
	}
	return p.KeyType + "-***"
}
