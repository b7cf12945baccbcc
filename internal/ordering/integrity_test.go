package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckIntegrity_Dense(t *testing.T) {
	r := CheckIntegrity(SetKey{}, set(0, 1, 2))

	assert.True(t, r.OK())
	assert.Equal(t, 3, r.Size)
}

func TestCheckIntegrity_UnsortedDenseSetIsClean(t *testing.T) {
	r := CheckIntegrity(SetKey{}, set(2, 0, 1))

	assert.True(t, r.OK())
}

func TestCheckIntegrity_GapIsWarning(t *testing.T) {
	r := CheckIntegrity(SetKey{}, set(0, 2))

	assert.Empty(t, r.Errors)
	assert.Len(t, r.Warnings, 1)
	assert.False(t, r.OK())
}

func TestCheckIntegrity_Errors(t *testing.T) {
	tests := []struct {
		name  string
		items []*item
	}{
		{"duplicate position", set(0, 0)},
		{"negative position", set(-1, 0)},
		{"duplicate id", []*item{{id: "a", pos: 0}, {id: "a", pos: 1}}},
		{"foreign member", []*item{{id: "a", pos: 0}, {id: "b", owner: "other", pos: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CheckIntegrity(SetKey{}, tt.items)

			assert.NotEmpty(t, r.Errors)
			assert.Empty(t, r.Warnings)
		})
	}
}

func TestAudit(t *testing.T) {
	items := []*item{
		{id: "a", owner: "A", pos: 0},
		{id: "b", owner: "A", pos: 1},
		{id: "c", owner: "B", pos: 3},
	}

	reports := Audit(items)

	assert.Len(t, reports, 2)
	assert.True(t, reports[0].OK())
	assert.Equal(t, SetKey{OwnerID: "B"}, reports[1].Key)
	assert.Len(t, reports[1].Warnings, 1)
}
