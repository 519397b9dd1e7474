package forecast

// baseline.go - year-zero population anchor

import "fmt"

// Baseline holds the reference-year count of preschool-age children
// per subzone, the projection's anchor state.
type Baseline struct {
	counts map[string]float64
}

// NewBaseline sums per-subzone counts across age bands. It rejects
// negative counts; subzone membership is checked by the engine's
// snapshot validation.
func NewBaseline(records []BaselinePopulation) (*Baseline, error) {
	counts := make(map[string]float64)
	for _, r := range records {
		if r.Count < 0 {
			return nil, fmt.Errorf("negative baseline count %d for subzone %s age band %q", r.Count, r.Subzone, r.AgeBand)
		}
		counts[r.Subzone] += float64(r.Count)
	}
	return &Baseline{counts: counts}, nil
}

// Count returns the reference-year child count for a subzone. Subzones
// with no baseline records start at zero.
func (b *Baseline) Count(subzone string) float64 {
	return b.counts[subzone]
}
