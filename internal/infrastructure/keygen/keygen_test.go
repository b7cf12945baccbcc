package keygen_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/keygen"
)

func TestGenerate_UniqueShortTokens(t *testing.T) {
	const numKeys = 1000
	seen := make(map[string]struct{}, numKeys)

	for range numKeys {
		p, err := keygen.Generate("sk", "catalog", "v1")
		require.NoError(t, err)
		_, dup := seen[p.ShortToken]
		require.False(t, dup, "duplicate short token %s", p.ShortToken)
		seen[p.ShortToken] = struct{}{}
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	p, err := keygen.Generate("sk", "catalog", "v1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.FullKey, "sk-catalog-v1-"))
	assert.Len(t, p.ShortToken, 12)
	assert.Len(t, p.Secret, 43)

	parsed, err := keygen.Parse(p.FullKey)
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestGenerate_RejectsBadPrefix(t *testing.T) {
	_, err := keygen.Generate("sk", "my-catalog", "v1")
	assert.True(t, errors.Is(err, domain.ErrInvalidAPIKeyFormat))

	_, err = keygen.Generate("", "catalog", "v1")
	assert.True(t, errors.Is(err, domain.ErrInvalidAPIKeyFormat))
}

func TestParse_SecretWithHyphens(t *testing.T) {
	p, err := keygen.Parse("sk-catalog-v1-a3f5d8c2b4e6-ab-cd_ef")
	require.NoError(t, err)

	assert.Equal(t, "sk", p.KeyType)
	assert.Equal(t, "catalog", p.Service)
	assert.Equal(t, "v1", p.Version)
	assert.Equal(t, "a3f5d8c2b4e6", p.ShortToken)
	assert.Equal(t, "ab-cd_ef", p.Secret)
	assert.Equal(t, "sk-catalog-v1-a3f5d8c2b4e6-****", p.Display())
}

func TestParse_InvalidFormat(t *testing.T) {
	tests := []string{
		"",
		"sk-catalog-v1",
		"sk-catalog-v1-short",
		"sk--v1-short-secret",
		"sk-catalog-v1-short-",
	}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := keygen.Parse(key)
			assert.True(t, errors.Is(err, domain.ErrInvalidAPIKeyFormat))
		})
	}
}

func TestVerifySecret(t *testing.T) {
	hash := keygen.HashSecret("s3cret")

	assert.Len(t, hash, 64)
	assert.True(t, keygen.VerifySecret("s3cret", hash))
	assert.False(t, keygen.VerifySecret("other", hash))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "sk-***", keygen.Mask("sk-catalog-v1-short-secret"))
	assert.Equal(t, "***", keygen.Mask("garbage"))
}
