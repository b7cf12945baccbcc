package ordering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/catalog/internal/domain"
)

type item struct {
	id, owner, parent string
	pos               int
}

func (i *item) GetID() string       { return i.id }
func (i *item) GetOwnerID() string  { return i.owner }
func (i *item) GetParentID() string { return i.parent }
func (i *item) GetPosition() int    { return i.pos }
func (i *item) SetPosition(p int)   { i.pos = p }

func set(positions ...int) []*item {
	out := make([]*item, len(positions))
	for n, p := range positions {
		out[n] = &item{id: string(rune('1' + n)), pos: p}
	}
	return out
}

func positionsByID(items []*item) map[string]int {
	out := make(map[string]int, len(items))
	for _, it := range items {
		out[it.id] = it.pos
	}
	return out
}

func TestMove_DownFirst(t *testing.T) {
	items := set(0, 1, 2)

	a, b, err := Move(items, "1", Down)

	require.NoError(t, err)
	assert.Equal(t, "1", a.id)
	assert.Equal(t, "2", b.id)
	assert.Equal(t, map[string]int{"1": 1, "2": 0, "3": 2}, positionsByID(items))
}

func TestMove_Up(t *testing.T) {
	items := set(0, 1, 2)

	_, _, err := Move(items, "3", Up)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 0, "2": 2, "3": 1}, positionsByID(items))
}

func TestMove_Involution(t *testing.T) {
	for _, id := range []string{"2", "3", "4"} {
		t.Run(id, func(t *testing.T) {
			items := set(0, 1, 2, 3)
			before := positionsByID(items)

			_, _, err := Move(items, id, Up)
			require.NoError(t, err)
			_, _, err = Move(items, id, Down)
			require.NoError(t, err)

			assert.Equal(t, before, positionsByID(items))
		})
	}
}

func TestMove_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		id   string
		dir  Direction
	}{
		{"first up", "1", Up},
		{"last down", "3", Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := set(0, 1, 2)
			before := positionsByID(items)

			_, _, err := Move(items, tt.id, tt.dir)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMoveBoundary))
			assert.Equal(t, before, positionsByID(items))
		})
	}
}

func TestMove_SingleItem(t *testing.T) {
	items := set(0)

	_, _, errUp := Move(items, "1", Up)
	_, _, errDown := Move(items, "1", Down)

	assert.True(t, errors.Is(errUp, domain.ErrMoveBoundary))
	assert.True(t, errors.Is(errDown, domain.ErrMoveBoundary))
}

func TestMove_NotFound(t *testing.T) {
	_, _, err := Move(set(0, 1), "missing", Up)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMove_UsesStoredOrderNotSliceOrder(t *testing.T) {
	// slice order differs from position order
	items := []*item{{id: "a", pos: 2}, {id: "b", pos: 0}, {id: "c", pos: 1}}

	a, b, err := Move(items, "a", Up)

	require.NoError(t, err)
	assert.Equal(t, "a", a.id)
	assert.Equal(t, "c", b.id, "neighbour is the item with the next lower position")
	assert.Equal(t, 1, a.pos)
	assert.Equal(t, 2, b.pos)
}

func TestMove_GappedSetSwapsStoredValues(t *testing.T) {
	items := set(0, 5, 9)

	_, _, err := Move(items, "3", Up)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 0, "2": 9, "3": 5}, positionsByID(items))
}

func TestReindex_RepairsGapsAndDuplicates(t *testing.T) {
	items := []*item{{id: "c", pos: 7}, {id: "a", pos: 3}, {id: "b", pos: 3}, {id: "d", pos: 0}}

	changed := Reindex(items)

	assert.Equal(t, map[string]int{"d": 0, "a": 1, "b": 2, "c": 3}, positionsByID(items))
	assert.Len(t, changed, 3, "d already had position 0")
	assert.True(t, IsDense(items))
}

func TestReindex_DenseSetUnchanged(t *testing.T) {
	assert.Empty(t, Reindex(set(0, 1, 2)))
}

func TestReindexAll_EachSetIndependently(t *testing.T) {
	items := []*item{
		{id: "a1", owner: "A", pos: 4},
		{id: "b1", owner: "B", pos: 2},
		{id: "a2", owner: "A", pos: 9},
		{id: "b2", owner: "B", parent: "p", pos: 5},
		{id: "b3", owner: "B", parent: "p", pos: 1},
	}

	ReindexAll(items)

	assert.Equal(t, map[string]int{"a1": 0, "a2": 1, "b1": 0, "b3": 0, "b2": 1}, positionsByID(items))
}

func TestAppendPosition(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		want      int
	}{
		{"empty", nil, 0},
		{"dense", []int{0, 1, 2}, 3},
		{"gap at end", []int{0, 1}, 2},
		{"gap in the middle", []int{0, 2}, 3},
		{"size already taken", []int{1, 2}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppendPosition(set(tt.positions...)))
		})
	}
}

func TestIsDense(t *testing.T) {
	assert.True(t, IsDense(set()))
	assert.True(t, IsDense(set(2, 0, 1)))
	assert.False(t, IsDense(set(0, 2)))
	assert.False(t, IsDense(set(0, 0)))
	assert.False(t, IsDense(set(-1, 0)))
}

func TestPartitionAndKeys(t *testing.T) {
	items := []*item{
		{id: "x", owner: "B", pos: 1},
		{id: "y", owner: "A", pos: 0},
		{id: "z", owner: "B", pos: 0},
	}

	sets := Partition(items)
	keys := Keys(sets)

	require.Equal(t, []SetKey{{OwnerID: "A"}, {OwnerID: "B"}}, keys)
	assert.Equal(t, "z", sets[SetKey{OwnerID: "B"}][0].id)
	assert.Equal(t, "x", sets[SetKey{OwnerID: "B"}][1].id)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "down", Down.String())
	assert.Equal(t, "unknown", Direction(0).String())
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		index int
		want  map[string]int
	}{
		{"to front", "3", 0, map[string]int{"3": 0, "1": 1, "2": 2}},
		{"to back", "1", 2, map[string]int{"2": 0, "3": 1, "1": 2}},
		{"clamped", "1", 99, map[string]int{"2": 0, "3": 1, "1": 2}},
		{"same place", "2", 1, map[string]int{"1": 0, "2": 1, "3": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := set(0, 1, 2)

			_, err := Place(items, tt.id, tt.index)

			require.NoError(t, err)
			assert.Equal(t, tt.want, positionsByID(items))
		})
	}
}

func TestPlace_DensifiesGappedSet(t *testing.T) {
	items := set(0, 4, 9)

	changed, err := Place(items, "1", 1)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2": 0, "1": 1, "3": 2}, positionsByID(items))
	assert.Len(t, changed, 3)
}

func TestPlace_NotFound(t *testing.T) {
	_, err := Place(set(0), "x", 0)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
