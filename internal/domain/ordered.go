package domain

import "time"

// Ordered carries the identity, ownership, and position shared by every
// catalog record kept in a sibling set.
//
// ID is empty until the record is persisted. Position is dense (0..n-1)
// within the record's sibling set: the records of the same kind with the
// same parent and the same owner.
type Ordered struct {
	ID        string
	OwnerID   string // empty for global records
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Ordered) GetID() string { return o.ID }
func (o *Ordered) SetID(id string) { o.ID = id }
func (o *Ordered) GetOwnerID() string { return o.OwnerID }
func (o *Ordered) SetOwnerID(id string) { o.OwnerID = id }
func (o *Ordered) GetPosition() int { return o.Position }
func (o *Ordered) SetPosition(p int) { o.Position = p }
func (o *Ordered) GetOrdered() *Ordered { return o }
func (o *Ordered) GetParentID() string { return "" }
func (o *Ordered) IsNew() bool { return o.ID == "" }

// Stamp records a write at now. CreatedAt is only set once.
func (o *Ordered) Stamp(now time.Time) {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

// cloneStrings copies a string slice, keeping nil as nil.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	out := make([]int, len(in))
	copy(out, in)
	return out
}
