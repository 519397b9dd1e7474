package forecast

// cohort.go - birth cohort projection from historical fertility series

import (
	"fmt"
	"sort"
)

// CohortProjector turns per-subzone historical fertility series into a
// birth estimate for any year the aggregator asks for. Historical years
// are answered verbatim; future years are extrapolated with the
// configured trend model.
type CohortProjector struct {
	params   Params
	series   map[string][]FertilityRecord
	trends   map[string]trendFit
	citywide float64
}

// trendFit is a fitted line births = intercept + slope*year.
type trendFit struct {
	slope     float64
	intercept float64
	flat      bool // fall back to repeating the last value
}

// NewCohortProjector groups records by subzone and fits a trend per
// subzone. Records must already be validated (see ValidateFertility).
func NewCohortProjector(params Params, records []FertilityRecord) *CohortProjector {
	series := make(map[string][]FertilityRecord)
	for _, r := range records {
		series[r.Subzone] = append(series[r.Subzone], r)
	}
	for sz := range series {
		sort.Slice(series[sz], func(i, j int) bool { return series[sz][i].Year < series[sz][j].Year })
	}

	// Sum in sorted key order; float addition is order-sensitive and
	// the citywide average must not vary between constructions.
	subzones := make([]string, 0, len(series))
	for sz := range series {
		subzones = append(subzones, sz)
	}
	sort.Strings(subzones)

	trends := make(map[string]trendFit, len(series))
	var lastSum float64
	for _, sz := range subzones {
		recs := series[sz]
		trends[sz] = fitTrend(params, recs)
		lastSum += recs[len(recs)-1].Births
	}

	var citywide float64
	if len(series) > 0 {
		citywide = lastSum / float64(len(series))
	}

	return &CohortProjector{
		params:   params,
		series:   series,
		trends:   trends,
		citywide: citywide,
	}
}

// fitTrend fits the configured trend over a historical series. Series
// shorter than MinHistoricalPoints use the documented flat fallback
// rather than a degenerate fit.
func fitTrend(params Params, recs []FertilityRecord) trendFit {
	if params.TrendModel == TrendFlat || len(recs) < params.MinHistoricalPoints || len(recs) < 2 {
		return trendFit{flat: true}
	}

	// Least squares over (year, births).
	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(recs))
	for _, r := range recs {
		x := float64(r.Year)
		sumX += x
		sumY += r.Births
		sumXY += x * r.Births
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return trendFit{flat: true}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return trendFit{slope: slope, intercept: intercept}
}

// Births returns the estimated birth count for a subzone in a year.
// A subzone with no historical records is resolved per the configured
// FallbackPolicy; FallbackError yields a DataGapError naming it.
func (p *CohortProjector) Births(subzone string, year int) (float64, error) {
	recs, ok := p.series[subzone]
	if !ok || len(recs) == 0 {
		switch p.params.FallbackPolicy {
		case FallbackZero:
			return 0, nil
		case FallbackCitywide:
			return p.citywide, nil
		default:
			return 0, &DataGapError{Subzone: subzone, Points: 0, Min: p.params.MinHistoricalPoints}
		}
	}

	// Exact historical value wins over any extrapolation.
	idx := sort.Search(len(recs), func(i int) bool { return recs[i].Year >= year })
	if idx < len(recs) && recs[idx].Year == year {
		return recs[idx].Births, nil
	}

	// Years before the series start use the earliest known value.
	if year < recs[0].Year {
		return recs[0].Births, nil
	}

	fit := p.trends[subzone]
	if fit.flat {
		// Fill forward from the latest record at or before the queried
		// year; idx is the first record after it.
		return recs[idx-1].Births, nil
	}

	est := fit.intercept + fit.slope*float64(year)
	// Trend extrapolation can go negative on declining series; clamp.
	if est < 0 {
		est = 0
	}
	return est, nil
}

// ValidateFertility checks that each subzone's series is strictly
// increasing in year with no duplicate (subzone, year) pairs.
func ValidateFertility(records []FertilityRecord) error {
	lastYear := make(map[string]int)
	for _, r := range records {
		if y, ok := lastYear[r.Subzone]; ok {
			if r.Year == y {
				return fmt.Errorf("duplicate fertility record for subzone %s year %d", r.Subzone, r.Year)
			}
			if r.Year < y {
				return fmt.Errorf("fertility records for subzone %s not ordered by year (%d after %d)", r.Subzone, r.Year, y)
			}
		}
		if r.Births < 0 {
			return fmt.Errorf("negative birth count %v for subzone %s year %d", r.Births, r.Subzone, r.Year)
		}
		lastYear[r.Subzone] = r.Year
	}
	return nil
}
