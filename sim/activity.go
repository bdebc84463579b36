package sim

import (
	"fmt"
	"iter"
)

// ActivityLog is the append-only record of every accepted decision,
// holds included, in the order they were made.
type ActivityLog struct {
	entries []Fill
}

// Append adds f. Fills may not be dated before the last entry.
func (a *ActivityLog) Append(f Fill) error {
	if n := len(a.entries); n > 0 && f.Day < a.entries[n-1].Day {
		return fmt.Errorf("activity: fill for day %d after day %d", f.Day, a.entries[n-1].Day)
	}
	a.entries = append(a.entries, f)
	return nil
}

func (a *ActivityLog) Len() int { return len(a.entries) }

// Entries returns a copy of the log.
func (a *ActivityLog) Entries() []Fill {
	out := make([]Fill, len(a.entries))
	copy(out, a.entries)
	return out
}

// All yields (position, fill) pairs. The sequence can be ranged over any
// number of times and always starts from the first entry; entries
// appended after ranging starts are not included.
func (a *ActivityLog) All() iter.Seq2[int, Fill] {
	entries := a.entries[:len(a.entries):len(a.entries)]
	return func(yield func(int, Fill) bool) {
		for i, f := range entries {
			if !yield(i, f) {
				return
			}
		}
	}
}

// Describe renders every entry with Fill.Describe.
func (a *ActivityLog) Describe(currency string) []string {
	out := make([]string, 0, len(a.entries))
	for _, f := range a.All() {
		out = append(out, f.Describe(currency))
	}
	return out
}
