// Package fs keeps picture content as files in one directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/blob"
)

const tmpSuffix = ".tmp"

// Store is a filesystem-based picture content store.
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

// NewStore creates a new filesystem store.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.baseDir, key)
}

// Put writes r under key, replacing previous content. The file appears
// atomically once fully written.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, _ string) (int64, error) {
	if err := blob.CheckKey(key); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.baseDir, key+"-*"+tmpSuffix)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return 0, fmt.Errorf("failed to store file: %w", err)
	}
	return n, nil
}

// Get opens the content stored under key.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := blob.CheckKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NotFound("picture content", key)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return f, nil
}

// Copy duplicates the content of srcKey under dstKey.
func (s *Store) Copy(ctx context.Context, srcKey, dstKey string) error {
	src, err := s.Get(ctx, srcKey)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = s.Put(ctx, dstKey, src, "")
	return err
}

// Delete removes key. A missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := blob.CheckKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns every stored key in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), tmpSuffix) {
			continue
		}
		keys = append(keys, entry.Name())
	}
	sort.Strings(keys)
	return keys, nil
}
