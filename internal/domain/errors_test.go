package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors_Err(t *testing.T) {
	var v ValidationErrors
	assert.NoError(t, v.Err())

	v.Add("name", "required field missing")
	err := v.Err()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation failed: name: required field missing", err.Error())
}

func TestFieldErrors_JoinedTree(t *testing.T) {
	var v ValidationErrors
	v.Add("name", "required field missing")

	err := errors.Join(
		v,
		fmt.Errorf("move: %w", ErrMoveBoundary),
		NotFound("movie", "m-1"),
	)

	got := FieldErrors(err)

	require.Len(t, got, 3)
	assert.Equal(t, "name", got[0].Field)
	assert.Equal(t, "position", got[1].Field)
	assert.Equal(t, "id", got[2].Field)
	assert.Contains(t, got[2].Issue, "movie m-1")
}

func TestFieldErrors_PlainError(t *testing.T) {
	assert.Empty(t, FieldErrors(errors.New("boom")))
	assert.Empty(t, FieldErrors(nil))
}

func TestNotFound(t *testing.T) {
	err := NotFound("show", "s-1")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "resource not found: show s-1", err.Error())
}

func TestNewRole(t *testing.T) {
	r, err := NewRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	r, err = NewRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = NewRole("root")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestScope(t *testing.T) {
	admin := AdminScope()
	acct := AccountScope("a")

	assert.True(t, admin.Allows(""))
	assert.True(t, admin.Allows("b"))
	assert.True(t, acct.Allows("a"))
	assert.False(t, acct.Allows("b"))
	assert.False(t, acct.Allows(""), "global records are invisible to accounts")
	assert.False(t, Scope{}.Allows(""))

	assert.Equal(t, "x", admin.Owner("x"))
	assert.Equal(t, "a", acct.Owner("x"))
}

func TestAPIKeyScope(t *testing.T) {
	assert.Equal(t, AdminScope(), (&APIKey{Role: RoleAdmin, AccountID: "a"}).Scope())
	assert.Equal(t, AccountScope("a"), (&APIKey{Role: RoleUser, AccountID: "a"}).Scope())
}

func TestOrderedStamp(t *testing.T) {
	var o Ordered
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	o.Stamp(first)
	o.Stamp(later)

	assert.Equal(t, first, o.CreatedAt)
	assert.Equal(t, later, o.UpdatedAt)
	assert.True(t, o.IsNew())
}
