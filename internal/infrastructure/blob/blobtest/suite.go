// Package blobtest holds the behaviour every picture content store must
// show.
package blobtest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/domain"
)

// Store is a content store that can enumerate its keys.
type Store interface {
	catalog.ContentStore
	List(ctx context.Context) ([]string, error)
}

func read(t *testing.T, s Store, key string) string {
	t.Helper()
	rc, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

// Run runs the suite. setup returns a fresh, empty store for each subtest.
func Run(t *testing.T, setup func(t *testing.T) Store) {
	t.Run("PutAndGet", func(t *testing.T) {
		s := setup(t)
		key := uuid.NewString()

		n, err := s.Put(context.Background(), key, strings.NewReader("png bytes"), "image/png")

		require.NoError(t, err)
		assert.Equal(t, int64(9), n)
		assert.Equal(t, "png bytes", read(t, s, key))
	})

	t.Run("PutReplaces", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()
		key := uuid.NewString()
		_, err := s.Put(ctx, key, strings.NewReader("old"), "image/png")
		require.NoError(t, err)

		_, err = s.Put(ctx, key, strings.NewReader("new"), "image/png")

		require.NoError(t, err)
		assert.Equal(t, "new", read(t, s, key))
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := setup(t)

		_, err := s.Get(context.Background(), uuid.NewString())

		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})

	t.Run("Copy", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()
		src, dst := uuid.NewString(), uuid.NewString()
		_, err := s.Put(ctx, src, strings.NewReader("poster"), "image/jpeg")
		require.NoError(t, err)

		require.NoError(t, s.Copy(ctx, src, dst))

		assert.Equal(t, "poster", read(t, s, dst))
		assert.Equal(t, "poster", read(t, s, src))
	})

	t.Run("CopyMissing", func(t *testing.T) {
		s := setup(t)

		err := s.Copy(context.Background(), uuid.NewString(), uuid.NewString())

		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()
		key := uuid.NewString()
		_, err := s.Put(ctx, key, strings.NewReader("x"), "image/png")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, key))
		require.NoError(t, s.Delete(ctx, key))

		_, err = s.Get(ctx, key)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("List", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()
		a, b := uuid.NewString(), uuid.NewString()
		for _, k := range []string{a, b} {
			_, err := s.Put(ctx, k, strings.NewReader(k), "image/png")
			require.NoError(t, err)
		}

		keys, err := s.List(ctx)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a, b}, keys)
	})

	t.Run("RejectsUnsafeKeys", func(t *testing.T) {
		s := setup(t)
		for _, key := range []string{"", "..", "a/b", `a\b`} {
			_, err := s.Put(context.Background(), key, strings.NewReader("x"), "image/png")
			assert.True(t, errors.Is(err, domain.ErrInvalidID), "key %q: %v", key, err)
		}
	})
}
