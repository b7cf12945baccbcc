package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rezkam/catalog/internal/domain"
)

// Pictures manages picture metadata through the ordering engine and the
// picture bytes through a ContentStore keyed by picture id.
type Pictures struct {
	*Movables[*domain.Picture]
	content ContentStore
}

func newPictures(repo Repository, content ContentStore, ops *operations, now func() time.Time) *Pictures {
	p := &Pictures{content: content}
	p.Movables = newMovables("picture", repo, Repository.Pictures, hooks[*domain.Picture]{
		onDuplicate: func(ctx context.Context, _ Repository, orig, dup *domain.Picture) error {
			err := content.Copy(ctx, orig.ID, dup.ID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		},
		// content is dropped only once the row delete is committed
		afterRemove: func(ctx context.Context, pic *domain.Picture) {
			if err := content.Delete(ctx, pic.ID); err != nil {
				slog.WarnContext(ctx, "failed to delete picture content",
					"picture_id", pic.ID,
					"error", err)
			}
		},
		// content metadata only changes through PutContent
		keep: func(existing, pic *domain.Picture) {
			pic.ContentType = existing.ContentType
			pic.Size = existing.Size
		},
	}, ops, now)
	return p
}

// PutContent stores the bytes of picture id and records their type and size.
func (p *Pictures) PutContent(ctx context.Context, scope domain.Scope, id, contentType string, body io.Reader) (pic *domain.Picture, err error) {
	defer func() { p.ops.record(ctx, p.kind, "put_content", err) }()

	if !strings.HasPrefix(contentType, "image/") {
		var v domain.ValidationErrors
		v.Add("content_type", "must be an image type")
		return nil, v
	}

	// buffer first so an oversized upload never replaces stored bytes
	data, err := io.ReadAll(io.LimitReader(body, domain.MaxPictureSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read picture content: %w", err)
	}
	if len(data) > domain.MaxPictureSize {
		var v domain.ValidationErrors
		v.Add("size", "must be between 0 and 5 MiB")
		return nil, v
	}

	err = p.repo.Atomic(ctx, func(r Repository) error {
		c := r.Pictures()
		var err error
		pic, err = c.FindByID(ctx, scope, id)
		if err != nil {
			return err
		}

		pic.ContentType = contentType
		pic.Size = int64(len(data))
		pic.Stamp(p.now())
		if err := c.Save(ctx, pic); err != nil {
			return err
		}
		if _, err := p.content.Put(ctx, id, bytes.NewReader(data), contentType); err != nil {
			return fmt.Errorf("failed to store picture content: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pic, nil
}

// Content opens the bytes of picture id.
func (p *Pictures) Content(ctx context.Context, scope domain.Scope, id string) (_ *domain.Picture, _ io.ReadCloser, err error) {
	defer func() { p.ops.record(ctx, p.kind, "get_content", err) }()

	pic, err := p.coll(p.repo).FindByID(ctx, scope, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := p.content.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return pic, rc, nil
}
