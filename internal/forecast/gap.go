package forecast

// gap.go - demand vs capacity reconciliation

import "math"

// GapResolver subtracts ledger capacity from projected demand, year by
// year. Surplus = capacity - demand system-wide; a deficit is negative.
type GapResolver struct {
	params Params
	ledger *CapacityLedger
}

// NewGapResolver pairs the ledger with the run parameters.
func NewGapResolver(params Params, ledger *CapacityLedger) *GapResolver {
	return &GapResolver{params: params, ledger: ledger}
}

// Resolve emits one GapResult per projection, in the projections'
// order. Subzones absent from the ledger resolve at zero capacity.
func (g *GapResolver) Resolve(projections []DemandProjection) []GapResult {
	gaps := make([]GapResult, 0, len(projections))
	for _, p := range projections {
		capacity := float64(g.ledger.CapacityAt(p.Subzone, p.Year))
		gaps = append(gaps, GapResult{
			Subzone:       p.Subzone,
			Year:          p.Year,
			Demand:        p.Demand,
			Capacity:      capacity,
			Surplus:       capacity - p.Demand,
			CentresNeeded: int(math.Ceil(p.Demand / float64(g.params.PlacesPerCentre))),
		})
	}
	return gaps
}
