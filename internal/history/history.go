// Package history keeps the outcomes rolled during the current session.
package history

import "dicesim/internal/dice"

// Recent is a bounded, oldest-first record of completed rolls.
// Nothing is persisted; the record lives as long as the session.
type Recent struct {
	entries  []dice.Outcome
	capacity int
}

// NewRecent creates a Recent record.
// If capacity is 0, recording is disabled. Negative capacity is treated as 0.
func NewRecent(capacity int) *Recent {
	if capacity < 0 {
		capacity = 0
	}
	return &Recent{
		entries:  make([]dice.Outcome, 0, capacity),
		capacity: capacity,
	}
}

// Record appends an outcome, dropping the oldest entries beyond capacity.
func (r *Recent) Record(o dice.Outcome) {
	if r.capacity == 0 || len(o) == 0 {
		return
	}
	cp := make(dice.Outcome, len(o))
	copy(cp, o)
	r.entries = append(r.entries, cp)

	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
}

// Len returns the number of recorded outcomes.
func (r *Recent) Len() int { return len(r.entries) }

// Capacity returns the configured capacity.
func (r *Recent) Capacity() int { return r.capacity }

// Totals returns the totals of the recorded outcomes, oldest first.
func (r *Recent) Totals() []int {
	totals := make([]int, len(r.entries))
	for i, o := range r.entries {
		totals[i] = o.Total()
	}
	return totals
}
