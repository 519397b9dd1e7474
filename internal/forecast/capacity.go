package forecast

// capacity.go - existing preschool capacity per subzone

import "sort"

// CapacityLedger aggregates rated preschool capacity by subzone,
// counting operational facilities only. An optional year-indexed
// schedule of planned changes makes capacity vary across the horizon;
// without one, capacity is constant.
type CapacityLedger struct {
	base    map[string]int
	centres map[string]int
	// changes per subzone, sorted by year
	changes map[string][]CapacityChange
}

// NewCapacityLedger builds the ledger from facilities and an optional
// change schedule. Planned and closed facilities are excluded from the
// base; planned openings belong in the schedule instead.
func NewCapacityLedger(facilities []PreschoolFacility, schedule []CapacityChange) *CapacityLedger {
	base := make(map[string]int)
	centres := make(map[string]int)
	for _, f := range facilities {
		if f.Status != StatusOperational {
			continue
		}
		base[f.Subzone] += f.Capacity
		centres[f.Subzone]++
	}

	changes := make(map[string][]CapacityChange)
	for _, c := range schedule {
		changes[c.Subzone] = append(changes[c.Subzone], c)
	}
	for sz := range changes {
		sort.Slice(changes[sz], func(i, j int) bool { return changes[sz][i].Year < changes[sz][j].Year })
	}

	return &CapacityLedger{base: base, centres: centres, changes: changes}
}

// CapacityAt returns a subzone's capacity effective in a given year:
// the operational base plus all scheduled deltas effective by then.
// Subzones with no facilities have capacity zero; that is a planning
// signal, not an error.
func (l *CapacityLedger) CapacityAt(subzone string, year int) int {
	c := l.base[subzone]
	for _, ch := range l.changes[subzone] {
		if ch.Year > year {
			break
		}
		c += ch.Delta
	}
	return c
}

// Centres returns the number of operational facilities in a subzone.
func (l *CapacityLedger) Centres(subzone string) int {
	return l.centres[subzone]
}

// Subzones returns all subzone IDs present in the ledger, sorted.
func (l *CapacityLedger) Subzones() []string {
	seen := make(map[string]bool)
	for sz := range l.base {
		seen[sz] = true
	}
	for sz := range l.changes {
		seen[sz] = true
	}
	out := make([]string, 0, len(seen))
	for sz := range seen {
		out = append(out, sz)
	}
	sort.Strings(out)
	return out
}
