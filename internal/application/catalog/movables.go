package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/ordering"
)

// Stats summarises the records of one kind visible in a scope.
type Stats struct {
	Count  int
	Media  int // total media count
	Length int // total length in the kind's unit
}

// hooks adapt the generic operations to one entity kind. Every hook runs
// inside the operation's transaction.
type hooks[T any] struct {
	// parentOwner resolves the parent of a nested record in scope and
	// returns its owner. Nil for top-level kinds.
	parentOwner func(ctx context.Context, r Repository, scope domain.Scope, parentID string) (string, error)
	// references checks the records an item points to.
	references  func(ctx context.Context, r Repository, scope domain.Scope, item T) error
	onDuplicate func(ctx context.Context, r Repository, orig, dup T) error
	onRemove    func(ctx context.Context, r Repository, item T) error
	// afterRemove runs once the removal is committed.
	afterRemove func(ctx context.Context, item T)
	// onReindex reindexes descendant levels.
	onReindex func(ctx context.Context, r Repository, scope domain.Scope) error
	// keep copies fields an update must not change from existing to item.
	keep    func(existing, item T)
	measure func(item T) (media, length int)
}

// Movables implements the operations shared by every ordered entity kind.
type Movables[T Entity[T]] struct {
	kind  string
	repo  Repository
	coll  func(r Repository) Collection[T]
	hooks hooks[T]
	ops   *operations
	now   func() time.Time
}

func newMovables[T Entity[T]](kind string, repo Repository, coll func(Repository) Collection[T], h hooks[T], ops *operations, now func() time.Time) *Movables[T] {
	return &Movables[T]{kind: kind, repo: repo, coll: coll, hooks: h, ops: ops, now: now}
}

// Kind returns the entity kind name, for example "movie".
func (m *Movables[T]) Kind() string {
	return m.kind
}

// Nested reports whether records of this kind live under a parent.
func (m *Movables[T]) Nested() bool {
	return m.hooks.parentOwner != nil
}

// reportable reports whether err belongs in an aggregated failure report.
func reportable(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrMoveBoundary)
}

// report joins field and structural failures into one error. A failure of
// any other kind is returned on its own.
func report(errs ...error) error {
	for _, err := range errs {
		if err != nil && !reportable(err) {
			return err
		}
	}
	return errors.Join(errs...)
}

// Get returns one record visible in scope.
func (m *Movables[T]) Get(ctx context.Context, scope domain.Scope, id string) (item T, err error) {
	defer func() { m.ops.record(ctx, m.kind, "get", err) }()
	return m.coll(m.repo).FindByID(ctx, scope, id)
}

// GetAll returns every record visible in scope in position order.
func (m *Movables[T]) GetAll(ctx context.Context, scope domain.Scope) (items []T, err error) {
	defer func() { m.ops.record(ctx, m.kind, "get_all", err) }()
	return m.coll(m.repo).FindAll(ctx, scope)
}

// Find returns the ordered children of parentID. The parent must be visible.
func (m *Movables[T]) Find(ctx context.Context, scope domain.Scope, parentID string) (items []T, err error) {
	defer func() { m.ops.record(ctx, m.kind, "find", err) }()
	if !m.Nested() {
		return nil, domain.NotFound(m.kind+" parent", parentID)
	}
	err = m.repo.Atomic(ctx, func(r Repository) error {
		if _, err := m.hooks.parentOwner(ctx, r, scope, parentID); err != nil {
			return err
		}
		var err error
		items, err = m.coll(r).FindByParent(ctx, scope, parentID)
		return err
	})
	return items, err
}

// Add stores a new record at the end of its sibling set. Nested records
// take the owner of their parent; top-level records the scope's owner.
func (m *Movables[T]) Add(ctx context.Context, scope domain.Scope, item T) (_ T, err error) {
	defer func() { m.ops.record(ctx, m.kind, "add", err) }()

	verr := item.Validate()
	o := item.GetOrdered()
	o.ID = ""

	err = m.repo.Atomic(ctx, func(r Repository) error {
		owner := scope.Owner(o.OwnerID)
		parentID := item.GetParentID()

		var perr, rerr error
		if m.hooks.parentOwner != nil {
			owner, perr = m.hooks.parentOwner(ctx, r, scope, parentID)
		}
		if m.hooks.references != nil {
			rerr = m.hooks.references(ctx, r, scope, item)
		}
		if err := report(verr, perr, rerr); err != nil {
			return err
		}

		c := m.coll(r)
		siblings, err := c.FindSiblings(ctx, owner, parentID)
		if err != nil {
			return err
		}

		o.OwnerID = owner
		o.CreatedAt = time.Time{}
		item.SetPosition(ordering.AppendPosition(siblings))
		item.Stamp(m.now())
		return c.Save(ctx, item)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Update replaces the mutable fields of record id with those of item.
// Identity, owner, parent and creation time are kept. The position is kept
// unless position is given, in which case the record is placed at that index
// of its sibling set and the set is renumbered densely.
func (m *Movables[T]) Update(ctx context.Context, scope domain.Scope, id string, item T, position *int) (_ T, err error) {
	defer func() { m.ops.record(ctx, m.kind, "update", err) }()

	verr := item.Validate()
	if position != nil && *position < 0 {
		var v domain.ValidationErrors
		v.Add("position", "must not be negative")
		verr = errors.Join(verr, v)
	}

	err = m.repo.Atomic(ctx, func(r Repository) error {
		c := m.coll(r)
		existing, ferr := c.FindByID(ctx, scope, id)

		var rerr error
		if m.hooks.references != nil {
			rerr = m.hooks.references(ctx, r, scope, item)
		}
		if err := report(verr, ferr, rerr); err != nil {
			return err
		}

		*item.GetOrdered() = *existing.GetOrdered()
		if ch, ok := any(item).(child); ok {
			ch.SetParentID(existing.GetParentID())
		}
		if m.hooks.keep != nil {
			m.hooks.keep(existing, item)
		}
		item.Stamp(m.now())

		changed := []T{item}
		if position != nil && *position != existing.GetPosition() {
			siblings, err := c.FindSiblings(ctx, existing.GetOwnerID(), existing.GetParentID())
			if err != nil {
				return err
			}
			if i := ordering.Locate(siblings, id); i >= 0 {
				siblings[i] = item
			}
			moved, err := ordering.Place(siblings, id, *position)
			if err != nil {
				return err
			}
			changed = append(changed, without(moved, id)...)
		}
		return c.Save(ctx, changed...)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

func without[T ordering.Movable](items []T, id string) []T {
	out := items[:0:0]
	for _, it := range items {
		if it.GetID() != id {
			out = append(out, it)
		}
	}
	return out
}

// Remove deletes record id and its children. Remaining siblings keep their
// positions; UpdatePositions closes the gap.
func (m *Movables[T]) Remove(ctx context.Context, scope domain.Scope, id string) (err error) {
	defer func() { m.ops.record(ctx, m.kind, "remove", err) }()

	var removed T
	err = m.repo.Atomic(ctx, func(r Repository) error {
		c := m.coll(r)
		item, err := c.FindByID(ctx, scope, id)
		if err != nil {
			return err
		}
		if m.hooks.onRemove != nil {
			if err := m.hooks.onRemove(ctx, r, item); err != nil {
				return err
			}
		}
		if err := c.Delete(ctx, id); err != nil {
			return err
		}
		removed = item
		return nil
	})
	if err != nil {
		return err
	}
	if m.hooks.afterRemove != nil {
		m.hooks.afterRemove(ctx, removed)
	}
	return nil
}

// Duplicate stores a deep copy of record id with fresh identities. Scalar
// fields, owner and timestamps are copied; children keep their positions;
// the copy itself is appended to the original's sibling set.
func (m *Movables[T]) Duplicate(ctx context.Context, scope domain.Scope, id string) (dup T, err error) {
	defer func() { m.ops.record(ctx, m.kind, "duplicate", err) }()

	err = m.repo.Atomic(ctx, func(r Repository) error {
		c := m.coll(r)
		orig, err := c.FindByID(ctx, scope, id)
		if err != nil {
			return err
		}
		siblings, err := c.FindSiblings(ctx, orig.GetOwnerID(), orig.GetParentID())
		if err != nil {
			return err
		}

		dup = orig.Clone()
		dup.GetOrdered().ID = ""
		dup.SetPosition(ordering.AppendPosition(siblings))
		if err := c.Save(ctx, dup); err != nil {
			return err
		}
		if m.hooks.onDuplicate != nil {
			return m.hooks.onDuplicate(ctx, r, orig, dup)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return dup, nil
}

// MoveUp swaps record id with its predecessor.
func (m *Movables[T]) MoveUp(ctx context.Context, scope domain.Scope, id string) error {
	return m.move(ctx, scope, id, ordering.Up)
}

// MoveDown swaps record id with its successor.
func (m *Movables[T]) MoveDown(ctx context.Context, scope domain.Scope, id string) error {
	return m.move(ctx, scope, id, ordering.Down)
}

func (m *Movables[T]) move(ctx context.Context, scope domain.Scope, id string, dir ordering.Direction) (err error) {
	defer func() { m.ops.record(ctx, m.kind, "move_"+dir.String(), err) }()

	return m.repo.Atomic(ctx, func(r Repository) error {
		c := m.coll(r)
		item, err := c.FindByID(ctx, scope, id)
		if err != nil {
			return err
		}
		siblings, err := c.FindSiblings(ctx, item.GetOwnerID(), item.GetParentID())
		if err != nil {
			return err
		}
		a, b, err := ordering.Move(siblings, id, dir)
		if err != nil {
			return err
		}
		return c.Save(ctx, a, b)
	})
}

// UpdatePositions renumbers every sibling set visible in scope to 0..n-1
// and does the same for every descendant level.
func (m *Movables[T]) UpdatePositions(ctx context.Context, scope domain.Scope) (err error) {
	defer func() { m.ops.record(ctx, m.kind, "update_positions", err) }()

	return m.repo.Atomic(ctx, func(r Repository) error {
		return m.reindex(ctx, r, scope)
	})
}

func (m *Movables[T]) reindex(ctx context.Context, r Repository, scope domain.Scope) error {
	c := m.coll(r)
	items, err := c.FindAll(ctx, scope)
	if err != nil {
		return err
	}
	if changed := ordering.ReindexAll(items); len(changed) > 0 {
		if err := c.Save(ctx, changed...); err != nil {
			return err
		}
	}
	if m.hooks.onReindex != nil {
		return m.hooks.onReindex(ctx, r, scope)
	}
	return nil
}

// Stats counts the records visible in scope.
func (m *Movables[T]) Stats(ctx context.Context, scope domain.Scope) (s Stats, err error) {
	defer func() { m.ops.record(ctx, m.kind, "stats", err) }()

	items, err := m.coll(m.repo).FindAll(ctx, scope)
	if err != nil {
		return Stats{}, err
	}
	s.Count = len(items)
	if m.hooks.measure != nil {
		for _, it := range items {
			media, length := m.hooks.measure(it)
			s.Media += media
			s.Length += length
		}
	}
	return s, nil
}

// Integrity reports the state of every sibling set visible in scope.
func (m *Movables[T]) Integrity(ctx context.Context, scope domain.Scope) (reports []ordering.SetReport, err error) {
	defer func() { m.ops.record(ctx, m.kind, "integrity", err) }()

	items, err := m.coll(m.repo).FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}
	return ordering.Audit(items), nil
}
