package catalog

import (
	"context"
	"io"
	"time"

	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/ordering"
)

// Entity is a catalog record managed through the ordering engine.
// T is the pointer type itself, for example *domain.Movie.
type Entity[T any] interface {
	ordering.Movable
	GetOrdered() *domain.Ordered
	Stamp(now time.Time)
	Clone() T
	Validate() error
}

// child is implemented by entities nested under a parent record.
type child interface {
	SetParentID(id string)
}

// Collection is the storage contract for one entity kind.
//
// Lookups taking a scope only return records visible in it. A record of
// another owner is reported as domain.ErrNotFound, the same as a missing one.
type Collection[T any] interface {
	// FindAll returns every record visible in scope, ordered by owner,
	// parent and position.
	FindAll(ctx context.Context, scope domain.Scope) ([]T, error)

	// FindByParent returns the visible children of parentID in position order.
	FindByParent(ctx context.Context, scope domain.Scope, parentID string) ([]T, error)

	// FindByID returns domain.ErrNotFound when id is missing or not visible.
	FindByID(ctx context.Context, scope domain.Scope, id string) (T, error)

	// FindSiblings returns the sibling set (ownerID, parentID) in position
	// order. An empty ownerID selects global records.
	FindSiblings(ctx context.Context, ownerID, parentID string) ([]T, error)

	// Save inserts or updates items. Items with an empty id get a fresh id,
	// written back to the item.
	Save(ctx context.Context, items ...T) error

	// Delete removes one record and, through cascading keys, its children.
	Delete(ctx context.Context, id string) error
}

// Repository gives access to every collection. Collections obtained inside
// Atomic share one transaction.
type Repository interface {
	Movies() Collection[*domain.Movie]
	Shows() Collection[*domain.Show]
	Seasons() Collection[*domain.Season]
	Episodes() Collection[*domain.Episode]
	Games() Collection[*domain.Game]
	Cheats() Collection[*domain.Cheat]
	Music() Collection[*domain.Music]
	Songs() Collection[*domain.Song]
	Programs() Collection[*domain.Program]
	Pictures() Collection[*domain.Picture]
	Genres() Collection[*domain.Genre]

	// Atomic runs fn in a transaction. It commits when fn returns nil.
	Atomic(ctx context.Context, fn func(r Repository) error) error
}

// ContentStore keeps picture bytes keyed by picture id.
type ContentStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	// Get returns domain.ErrNotFound for a missing key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Copy(ctx context.Context, srcKey, dstKey string) error
	// Delete succeeds when the key does not exist.
	Delete(ctx context.Context, key string) error
}
