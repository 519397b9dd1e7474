package forecast

import "fmt"

// TrendModel selects how the cohort projector extrapolates births.
type TrendModel string

const (
	// TrendLinear fits a least-squares line over the historical series.
	TrendLinear TrendModel = "linear"
	// TrendFlat repeats the last known value.
	TrendFlat TrendModel = "flat"
)

// FallbackPolicy decides what happens when a subzone has no historical
// fertility data. The choice belongs to the caller, never to the
// projector itself.
type FallbackPolicy string

const (
	// FallbackError surfaces a DataGapError for the subzone.
	FallbackError FallbackPolicy = "error"
	// FallbackZero projects zero births for all years.
	FallbackZero FallbackPolicy = "zero"
	// FallbackCitywide substitutes the citywide average of last known
	// births across subzones that have data.
	FallbackCitywide FallbackPolicy = "citywide"
)

// Params holds the forecast configuration bundle. These are the policy
// levers planners adjust; none of them is a hardcoded model constant.
type Params struct {
	ReferenceYear         int
	HorizonYear           int
	ChildrenPerUnit       float64
	EligibilityDelayYears int
	AttritionRate         float64
	MinHistoricalPoints   int
	TrendModel            TrendModel
	FallbackPolicy        FallbackPolicy
	Precision             int
	PlacesPerCentre       int
}

// DefaultParams returns the documented default configuration.
func DefaultParams() Params {
	return Params{
		ChildrenPerUnit:       0.3,
		EligibilityDelayYears: 2,
		AttritionRate:         0.1,
		MinHistoricalPoints:   2,
		TrendModel:            TrendLinear,
		FallbackPolicy:        FallbackError,
		Precision:             2,
		PlacesPerCentre:       100,
	}
}

// Validate checks the parameter bundle before a run starts.
func (p Params) Validate() error {
	if p.ReferenceYear <= 0 {
		return fmt.Errorf("reference year is required")
	}
	if p.HorizonYear <= p.ReferenceYear {
		return fmt.Errorf("horizon year %d must be after reference year %d", p.HorizonYear, p.ReferenceYear)
	}
	if p.ChildrenPerUnit < 0 {
		return fmt.Errorf("children per unit must be non-negative, got %v", p.ChildrenPerUnit)
	}
	if p.EligibilityDelayYears < 0 {
		return fmt.Errorf("eligibility delay must be non-negative, got %d", p.EligibilityDelayYears)
	}
	if p.AttritionRate < 0 || p.AttritionRate > 1 {
		return fmt.Errorf("attrition rate must be in [0, 1], got %v", p.AttritionRate)
	}
	if p.MinHistoricalPoints < 1 {
		return fmt.Errorf("min historical points must be at least 1, got %d", p.MinHistoricalPoints)
	}
	switch p.TrendModel {
	case TrendLinear, TrendFlat:
	default:
		return fmt.Errorf("unknown trend model %q", p.TrendModel)
	}
	switch p.FallbackPolicy {
	case FallbackError, FallbackZero, FallbackCitywide:
	default:
		return fmt.Errorf("unknown fallback policy %q", p.FallbackPolicy)
	}
	if p.Precision < 0 {
		return fmt.Errorf("precision must be non-negative, got %d", p.Precision)
	}
	if p.PlacesPerCentre <= 0 {
		return fmt.Errorf("places per centre must be positive, got %d", p.PlacesPerCentre)
	}
	return nil
}
