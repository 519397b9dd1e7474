package forecast

// aggregate.go - per-subzone demand curve assembly

import "math"

// Aggregator combines the cohort projector, housing adapter and
// baseline into a per-subzone demand curve:
//
//	demand[ref]  = baseline, exactly
//	demand[y]    = demand[y-1]*(1-attrition) + births(y-delay) + housing(y)
type Aggregator struct {
	params   Params
	cohorts  *CohortProjector
	housing  *HousingAdapter
	baseline *Baseline
}

// NewAggregator wires the three upstream components together.
func NewAggregator(params Params, cohorts *CohortProjector, housing *HousingAdapter, baseline *Baseline) *Aggregator {
	return &Aggregator{params: params, cohorts: cohorts, housing: housing, baseline: baseline}
}

// Project computes the demand series for one subzone, reference year
// through horizon. Years are strictly sequential: year y feeds year
// y+1 through the survivors term.
func (a *Aggregator) Project(subzone string) ([]DemandProjection, error) {
	ref := a.params.ReferenceYear
	horizon := a.params.HorizonYear

	series := make([]DemandProjection, 0, horizon-ref+1)
	demand := a.baseline.Count(subzone)
	series = append(series, DemandProjection{Subzone: subzone, Year: ref, Demand: demand})

	for year := ref + 1; year <= horizon; year++ {
		births, err := a.cohorts.Births(subzone, year-a.params.EligibilityDelayYears)
		if err != nil {
			return nil, err
		}

		demand = demand*(1-a.params.AttritionRate) + births + a.housing.Arrivals(subzone, year)
		if demand < 0 {
			// A negative demand after the anchor year is a logic defect,
			// not noise; clamping would mask the bug.
			return nil, &InvariantViolationError{
				Subzone: subzone,
				Year:    year,
				Value:   demand,
				Detail:  "projected demand is negative",
			}
		}
		series = append(series, DemandProjection{Subzone: subzone, Year: year, Demand: demand})
	}

	// Rounding is a single explicit step after the full series is
	// computed, so the recurrence itself runs at full precision.
	for i := range series {
		series[i].Demand = roundTo(series[i].Demand, a.params.Precision)
	}
	return series, nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
