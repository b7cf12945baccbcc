// Package catalog implements the catalog operations on top of the ordering
// engine: scoped lookups, append-on-add, moves, deep duplication and
// recursive position reindexing for every entity kind.
package catalog

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/rezkam/catalog/internal/domain"
)

// Config holds optional service dependencies.
type Config struct {
	// Meter records catalog.operations. Defaults to the global meter.
	Meter metric.Meter
	// Now returns the current time. Defaults to time.Now in UTC.
	Now func() time.Time
}

// Service groups the per-kind services.
type Service struct {
	Movies   *Movables[*domain.Movie]
	Shows    *Movables[*domain.Show]
	Seasons  *Movables[*domain.Season]
	Episodes *Movables[*domain.Episode]
	Games    *Movables[*domain.Game]
	Music    *Movables[*domain.Music]
	Songs    *Movables[*domain.Song]
	Programs *Movables[*domain.Program]
	Genres   *Movables[*domain.Genre]
	Pictures *Pictures
	Cheats   *Cheats
}

// NewService wires every kind to repo. content keeps picture bytes.
func NewService(repo Repository, content ContentStore, cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	ops := newOperations(cfg.Meter)

	s := &Service{}

	s.Episodes = newMovables("episode", repo, Repository.Episodes, hooks[*domain.Episode]{
		parentOwner: parentOwner("season", Repository.Seasons),
		measure:     func(e *domain.Episode) (int, int) { return 0, e.Length },
	}, ops, now)

	s.Seasons = newMovables("season", repo, Repository.Seasons, hooks[*domain.Season]{
		parentOwner: parentOwner("show", Repository.Shows),
		onDuplicate: func(ctx context.Context, r Repository, orig, dup *domain.Season) error {
			return copyChildren(ctx, r.Episodes(), orig.ID, dup.ID, nil)
		},
		onReindex: s.Episodes.reindex,
	}, ops, now)

	s.Shows = newMovables("show", repo, Repository.Shows, hooks[*domain.Show]{
		references: func(ctx context.Context, r Repository, scope domain.Scope, sh *domain.Show) error {
			return checkReferences(ctx, r, scope, sh.GenreIDs, sh.PictureID)
		},
		onDuplicate: func(ctx context.Context, r Repository, orig, dup *domain.Show) error {
			return copyChildren(ctx, r.Seasons(), orig.ID, dup.ID, func(from, to *domain.Season) error {
				return copyChildren(ctx, r.Episodes(), from.ID, to.ID, nil)
			})
		},
		onReindex: s.Seasons.reindex,
	}, ops, now)

	s.Movies = newMovables("movie", repo, Repository.Movies, hooks[*domain.Movie]{
		references: func(ctx context.Context, r Repository, scope domain.Scope, m *domain.Movie) error {
			return checkReferences(ctx, r, scope, m.GenreIDs, m.PictureID)
		},
		measure: func(m *domain.Movie) (int, int) { return m.MediaCount(), m.Length() },
	}, ops, now)

	s.Games = newMovables("game", repo, Repository.Games, hooks[*domain.Game]{
		onDuplicate: func(ctx context.Context, r Repository, orig, dup *domain.Game) error {
			return copyChildren(ctx, r.Cheats(), orig.ID, dup.ID, nil)
		},
		measure: func(g *domain.Game) (int, int) { return g.MediaCount, 0 },
	}, ops, now)

	s.Songs = newMovables("song", repo, Repository.Songs, hooks[*domain.Song]{
		parentOwner: parentOwner("music", Repository.Music),
		measure:     func(so *domain.Song) (int, int) { return 0, so.Length },
	}, ops, now)

	s.Music = newMovables("music", repo, Repository.Music, hooks[*domain.Music]{
		onDuplicate: func(ctx context.Context, r Repository, orig, dup *domain.Music) error {
			return copyChildren(ctx, r.Songs(), orig.ID, dup.ID, nil)
		},
		onReindex: s.Songs.reindex,
		measure:   func(mu *domain.Music) (int, int) { return mu.MediaCount, 0 },
	}, ops, now)

	s.Programs = newMovables("program", repo, Repository.Programs, hooks[*domain.Program]{
		measure: func(p *domain.Program) (int, int) { return p.MediaCount, 0 },
	}, ops, now)

	s.Genres = newMovables("genre", repo, Repository.Genres, hooks[*domain.Genre]{
		onRemove: func(ctx context.Context, r Repository, g *domain.Genre) error {
			if err := dropGenre(ctx, r.Movies(), g.ID, func(m *domain.Movie) *[]string { return &m.GenreIDs }); err != nil {
				return err
			}
			return dropGenre(ctx, r.Shows(), g.ID, func(sh *domain.Show) *[]string { return &sh.GenreIDs })
		},
	}, ops, now)

	s.Pictures = newPictures(repo, content, ops, now)
	s.Cheats = &Cheats{repo: repo, ops: ops, now: now}

	return s
}

// parentOwner resolves a parent record of the given kind and returns its
// owner, which nested records inherit.
func parentOwner[P Entity[P]](kind string, coll func(Repository) Collection[P]) func(context.Context, Repository, domain.Scope, string) (string, error) {
	return func(ctx context.Context, r Repository, scope domain.Scope, parentID string) (string, error) {
		if parentID == "" {
			var v domain.ValidationErrors
			v.Add(kind+"_id", "required field missing")
			return "", v
		}
		p, err := coll(r).FindByID(ctx, scope, parentID)
		if err != nil {
			return "", err
		}
		return p.GetOwnerID(), nil
	}
}

// checkReferences verifies that referenced genres and the picture are
// visible in scope. Missing references are joined into one error.
func checkReferences(ctx context.Context, r Repository, scope domain.Scope, genreIDs []string, pictureID string) error {
	var errs []error
	for _, id := range genreIDs {
		if _, err := r.Genres().FindByID(ctx, scope, id); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			errs = append(errs, err)
		}
	}
	if pictureID != "" {
		if _, err := r.Pictures().FindByID(ctx, scope, pictureID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// dropGenre removes genreID from the genre list of every record in coll.
func dropGenre[T Entity[T]](ctx context.Context, coll Collection[T], genreID string, genres func(T) *[]string) error {
	items, err := coll.FindAll(ctx, domain.AdminScope())
	if err != nil {
		return err
	}
	for _, it := range items {
		ids := genres(it)
		if !slices.Contains(*ids, genreID) {
			continue
		}
		*ids = slices.DeleteFunc(*ids, func(id string) bool { return id == genreID })
		if err := coll.Save(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// copyChildren deep-copies the children of fromParent under toParent. The
// copies keep every field, position included, and get fresh ids. each runs
// after a child copy has been saved.
func copyChildren[T Entity[T]](ctx context.Context, coll Collection[T], fromParent, toParent string, each func(from, to T) error) error {
	kids, err := coll.FindByParent(ctx, domain.AdminScope(), fromParent)
	if err != nil {
		return err
	}
	for _, k := range kids {
		dup := k.Clone()
		dup.GetOrdered().ID = ""
		if ch, ok := any(dup).(child); ok {
			ch.SetParentID(toParent)
		}
		if err := coll.Save(ctx, dup); err != nil {
			return err
		}
		if each != nil {
			if err := each(k, dup); err != nil {
				return err
			}
		}
	}
	return nil
}
