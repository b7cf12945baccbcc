package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/rezkam/catalog/internal/domain"
)

const cheatKind = "cheat"

// Cheats manages the single cheat sheet of a game. Access follows the
// game: a cheat is visible exactly when its game is.
type Cheats struct {
	repo Repository
	ops  *operations
	now  func() time.Time
}

func findCheat(ctx context.Context, r Repository, scope domain.Scope, gameID string) (*domain.Game, *domain.Cheat, error) {
	game, err := r.Games().FindByID(ctx, scope, gameID)
	if err != nil {
		return nil, nil, err
	}
	cheats, err := r.Cheats().FindByParent(ctx, scope, gameID)
	if err != nil {
		return nil, nil, err
	}
	if len(cheats) == 0 {
		return game, nil, domain.NotFound(cheatKind, gameID)
	}
	return game, cheats[0], nil
}

// Get returns the cheat of game gameID.
func (c *Cheats) Get(ctx context.Context, scope domain.Scope, gameID string) (cheat *domain.Cheat, err error) {
	defer func() { c.ops.record(ctx, cheatKind, "get", err) }()

	err = c.repo.Atomic(ctx, func(r Repository) error {
		var err error
		_, cheat, err = findCheat(ctx, r, scope, gameID)
		return err
	})
	return cheat, err
}

// Add attaches cheat to game gameID. A game has at most one cheat.
func (c *Cheats) Add(ctx context.Context, scope domain.Scope, gameID string, cheat *domain.Cheat) (_ *domain.Cheat, err error) {
	defer func() { c.ops.record(ctx, cheatKind, "add", err) }()

	verr := cheat.Validate()
	err = c.repo.Atomic(ctx, func(r Repository) error {
		game, existing, ferr := findCheat(ctx, r, scope, gameID)
		if existing != nil {
			return domain.ErrCheatExists
		}
		if errors.Is(ferr, domain.ErrNotFound) && game != nil {
			ferr = nil
		}
		if err := report(verr, ferr); err != nil {
			return err
		}

		cheat.Ordered = domain.Ordered{OwnerID: game.OwnerID}
		cheat.GameID = game.ID
		cheat.Stamp(c.now())
		return r.Cheats().Save(ctx, cheat)
	})
	if err != nil {
		return nil, err
	}
	return cheat, nil
}

// Update replaces the cheat of game gameID.
func (c *Cheats) Update(ctx context.Context, scope domain.Scope, gameID string, cheat *domain.Cheat) (_ *domain.Cheat, err error) {
	defer func() { c.ops.record(ctx, cheatKind, "update", err) }()

	verr := cheat.Validate()
	err = c.repo.Atomic(ctx, func(r Repository) error {
		_, existing, ferr := findCheat(ctx, r, scope, gameID)
		if err := report(verr, ferr); err != nil {
			return err
		}

		cheat.Ordered = existing.Ordered
		cheat.GameID = existing.GameID
		cheat.Stamp(c.now())
		return r.Cheats().Save(ctx, cheat)
	})
	if err != nil {
		return nil, err
	}
	return cheat, nil
}

// Remove deletes the cheat of game gameID.
func (c *Cheats) Remove(ctx context.Context, scope domain.Scope, gameID string) (err error) {
	defer func() { c.ops.record(ctx, cheatKind, "remove", err) }()

	return c.repo.Atomic(ctx, func(r Repository) error {
		_, existing, err := findCheat(ctx, r, scope, gameID)
		if err != nil {
			return err
		}
		return r.Cheats().Delete(ctx, existing.ID)
	})
}
