package ordering

import "fmt"

// SetReport is the integrity finding for one sibling set.
type SetReport struct {
	Key      SetKey
	Size     int
	Errors   []string
	Warnings []string
}

// OK reports whether the set has neither errors nor warnings.
func (r SetReport) OK() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

// CheckIntegrity validates a single sibling set. Duplicate ids, negative or
// duplicate positions, and members of another set are errors. Gaps are
// warnings: the set is still ordered, and updatePositions repairs them.
func CheckIntegrity[T Movable](key SetKey, siblings []T) SetReport {
	r := SetReport{Key: key, Size: len(siblings)}

	ids := make(map[string]struct{}, len(siblings))
	positions := make(map[int]int, len(siblings))
	maxPos := -1
	for _, it := range siblings {
		id := it.GetID()
		if KeyOf(it) != key {
			r.Errors = append(r.Errors, fmt.Sprintf("item %s belongs to %s", id, KeyOf(it)))
		}
		if _, ok := ids[id]; ok {
			r.Errors = append(r.Errors, fmt.Sprintf("duplicate item id %s", id))
		}
		ids[id] = struct{}{}

		p := it.GetPosition()
		if p < 0 {
			r.Errors = append(r.Errors, fmt.Sprintf("negative position %d for %s", p, id))
			continue
		}
		positions[p]++
		if positions[p] == 2 {
			r.Errors = append(r.Errors, fmt.Sprintf("duplicate position %d", p))
		}
		maxPos = max(maxPos, p)
	}

	if len(r.Errors) == 0 && !IsDense(siblings) {
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("gapped positions: %d items, highest position %d", len(siblings), maxPos))
	}
	return r
}

// Audit partitions items into sibling sets and checks each one. Reports are
// returned in key order.
func Audit[T Movable](items []T) []SetReport {
	sets := Partition(items)
	reports := make([]SetReport, 0, len(sets))
	for _, k := range Keys(sets) {
		reports = append(reports, CheckIntegrity(k, sets[k]))
	}
	return reports
}
