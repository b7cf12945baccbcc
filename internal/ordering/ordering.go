// Package ordering maintains dense positions inside sibling sets.
//
// A sibling set is every item of one kind sharing an owner and a parent.
// Positions within a set form 0..n-1. The functions in this package are pure:
// they sort, renumber and swap positions in memory and return the items the
// caller has to persist.
package ordering

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rezkam/catalog/internal/domain"
)

// Movable is an item that takes part in a sibling set.
type Movable interface {
	GetID() string
	GetOwnerID() string
	GetParentID() string
	GetPosition() int
	SetPosition(position int)
}

// SetKey identifies a sibling set within one kind.
type SetKey struct {
	OwnerID  string
	ParentID string
}

func (k SetKey) String() string {
	return fmt.Sprintf("owner=%q parent=%q", k.OwnerID, k.ParentID)
}

// KeyOf returns the sibling set an item belongs to.
func KeyOf(m Movable) SetKey {
	return SetKey{OwnerID: m.GetOwnerID(), ParentID: m.GetParentID()}
}

// Direction of a single-step move.
type Direction int

const (
	Up Direction = iota + 1
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

func compare[T Movable](a, b T) int {
	if c := cmp.Compare(a.GetPosition(), b.GetPosition()); c != 0 {
		return c
	}
	return strings.Compare(a.GetID(), b.GetID())
}

// Sort orders items by position, breaking ties by id so the result is stable
// across reads.
func Sort[T Movable](items []T) {
	slices.SortStableFunc(items, compare[T])
}

// Partition groups items by sibling set. Every group is sorted.
func Partition[T Movable](items []T) map[SetKey][]T {
	sets := make(map[SetKey][]T)
	for _, it := range items {
		k := KeyOf(it)
		sets[k] = append(sets[k], it)
	}
	for _, set := range sets {
		Sort(set)
	}
	return sets
}

// Keys returns the keys of sets in a deterministic order.
func Keys[T Movable](sets map[SetKey][]T) []SetKey {
	keys := make([]SetKey, 0, len(sets))
	for k := range sets {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b SetKey) int {
		if c := strings.Compare(a.OwnerID, b.OwnerID); c != 0 {
			return c
		}
		return strings.Compare(a.ParentID, b.ParentID)
	})
	return keys
}

// Reindex renumbers one sibling set to 0..n-1 following the current order
// of positions. Gaps and duplicates are repaired. It returns the items whose
// position changed.
func Reindex[T Movable](siblings []T) []T {
	Sort(siblings)
	var changed []T
	for i, it := range siblings {
		if it.GetPosition() != i {
			it.SetPosition(i)
			changed = append(changed, it)
		}
	}
	return changed
}

// ReindexAll renumbers every sibling set found in items independently.
func ReindexAll[T Movable](items []T) []T {
	sets := Partition(items)
	var changed []T
	for _, k := range Keys(sets) {
		changed = append(changed, Reindex(sets[k])...)
	}
	return changed
}

// Locate returns the index of id in siblings, or -1.
func Locate[T Movable](siblings []T, id string) int {
	return slices.IndexFunc(siblings, func(it T) bool { return it.GetID() == id })
}

// Move swaps the stored position of the item with its neighbour in the given
// direction. siblings must be the item's own sibling set; it is sorted in
// place. The two returned items are the only ones that changed.
//
// Moving the first item up or the last item down fails with
// domain.ErrMoveBoundary and changes nothing.
func Move[T Movable](siblings []T, id string, dir Direction) (T, T, error) {
	var zero T
	Sort(siblings)

	i := Locate(siblings, id)
	if i < 0 {
		return zero, zero, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	var j int
	switch dir {
	case Up:
		if i == 0 {
			return zero, zero, fmt.Errorf("%w: %s is already first", domain.ErrMoveBoundary, id)
		}
		j = i - 1
	case Down:
		if i == len(siblings)-1 {
			return zero, zero, fmt.Errorf("%w: %s is already last", domain.ErrMoveBoundary, id)
		}
		j = i + 1
	default:
		return zero, zero, fmt.Errorf("unknown move direction %d", dir)
	}

	a, b := siblings[i], siblings[j]
	pa, pb := a.GetPosition(), b.GetPosition()
	a.SetPosition(pb)
	b.SetPosition(pa)
	return a, b, nil
}

// Place moves the item with id to index within its sibling set and renumbers
// the set to 0..n-1. index is clamped to the set. It returns the items whose
// position changed.
func Place[T Movable](siblings []T, id string, index int) ([]T, error) {
	Sort(siblings)
	i := Locate(siblings, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	index = min(max(index, 0), len(siblings)-1)

	it := siblings[i]
	siblings = slices.Delete(slices.Clone(siblings), i, i+1)
	siblings = slices.Insert(siblings, index, it)

	var changed []T
	for pos, s := range siblings {
		if s.GetPosition() != pos {
			s.SetPosition(pos)
			changed = append(changed, s)
		}
	}
	return changed, nil
}

// AppendPosition returns the position for a new item added at the end of
// siblings. For a dense set that is its size. When removals left gaps the
// size may already be taken, so max+1 is used instead.
func AppendPosition[T Movable](siblings []T) int {
	maxPos := -1
	for _, it := range siblings {
		maxPos = max(maxPos, it.GetPosition())
	}
	if maxPos >= len(siblings) {
		return maxPos + 1
	}
	return len(siblings)
}

// IsDense reports whether positions of siblings are exactly 0..n-1.
func IsDense[T Movable](siblings []T) bool {
	seen := make([]bool, len(siblings))
	for _, it := range siblings {
		p := it.GetPosition()
		if p < 0 || p >= len(siblings) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
