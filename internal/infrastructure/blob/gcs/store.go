// Package gcs keeps picture content as objects in a Google Cloud Storage
// bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/blob"
)

// Store is a GCS-based picture content store.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewStore creates a new GCS store.
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS).
func NewStore(ctx context.Context, bucketName, prefix string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return NewStoreWithClient(client, bucketName, prefix), nil
}

// NewStoreWithClient uses an existing client.
func NewStoreWithClient(client *storage.Client, bucketName, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucketName,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) objectName(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func (s *Store) object(key string) *storage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(s.objectName(key))
}

// Put uploads r under key with the given content type.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	if err := blob.CheckKey(key); err != nil {
		return 0, err
	}

	w := s.object(key).NewWriter(ctx)
	w.ContentType = contentType
	n, err := io.Copy(w, r)
	if err != nil {
		w.Close()
		return 0, fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize object: %w", err)
	}
	return n, nil
}

// Get opens the object stored under key.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := blob.CheckKey(key); err != nil {
		return nil, err
	}

	r, err := s.object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, domain.NotFound("picture content", key)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return r, nil
}

// Copy duplicates srcKey under dstKey server side.
func (s *Store) Copy(ctx context.Context, srcKey, dstKey string) error {
	if err := blob.CheckKey(srcKey); err != nil {
		return err
	}
	if err := blob.CheckKey(dstKey); err != nil {
		return err
	}

	if _, err := s.object(dstKey).CopierFrom(s.object(srcKey)).Run(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return domain.NotFound("picture content", srcKey)
		}
		return fmt.Errorf("failed to copy object: %w", err)
	}
	return nil
}

// Delete removes key. A missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := blob.CheckKey(key); err != nil {
		return err
	}

	if err := s.object(key).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// List returns every key under the store's prefix.
func (s *Store) List(ctx context.Context) ([]string, error) {
	q := &storage.Query{}
	if s.prefix != "" {
		q.Prefix = s.prefix + "/"
	}
	it := s.client.Bucket(s.bucket).Objects(ctx, q)

	var keys []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		keys = append(keys, strings.TrimPrefix(attrs.Name, q.Prefix))
	}
	return keys, nil
}
