// Package forecast implements the preschool demand forecasting engine.
// It fuses birth cohorts, housing completions and baseline population
// into a per-subzone, per-year demand projection and reconciles it
// against existing preschool capacity.
package forecast

// FacilityStatus describes the operational state of a preschool facility.
type FacilityStatus string

const (
	StatusOperational FacilityStatus = "operational"
	StatusPlanned     FacilityStatus = "planned"
	StatusClosed      FacilityStatus = "closed"
)

// Subzone is the smallest geographic unit over which demand is forecast.
// GeometryRef is an opaque reference for downstream mapping.
type Subzone struct {
	ID          string
	Name        string
	GeometryRef string
}

// FertilityRecord is one historical (subzone, year) birth count.
type FertilityRecord struct {
	Subzone string
	Year    int
	Births  float64
}

// HousingCompletion is a planned or past housing completion.
// OccupancyRate of 0 means "use the default of 1".
type HousingCompletion struct {
	Subzone        string
	CompletionYear int
	Units          int
	OccupancyRate  float64
}

// BaselinePopulation is the count of children in one age band of a
// subzone as of the reference year.
type BaselinePopulation struct {
	Subzone string
	AgeBand string
	Count   int
}

// PreschoolFacility is an existing or planned preschool with its rated
// capacity. Only operational facilities count toward supply.
type PreschoolFacility struct {
	Subzone  string
	Name     string
	Capacity int
	Status   FacilityStatus
}

// CapacityChange is a planned year-indexed change to a subzone's
// capacity, e.g. a facility opening (positive delta) or closing
// (negative delta) in a future year.
type CapacityChange struct {
	Subzone string
	Year    int
	Delta   int
}

// DemandProjection is the projected preschool demand for one
// (subzone, year). Immutable once computed for a given snapshot.
type DemandProjection struct {
	Subzone string  `json:"subzone"`
	Year    int     `json:"year"`
	Demand  float64 `json:"demand"`
}

// GapResult reconciles projected demand against capacity for one
// (subzone, year). Surplus = Capacity - Demand; a deficit is negative.
type GapResult struct {
	Subzone       string  `json:"subzone"`
	Year          int     `json:"year"`
	Demand        float64 `json:"demand"`
	Capacity      float64 `json:"capacity"`
	Surplus       float64 `json:"surplus"`
	CentresNeeded int     `json:"centres_needed"`
}

// Snapshot bundles the validated input collections for one forecast
// run. The engine never mutates a snapshot.
type Snapshot struct {
	Subzones   []Subzone
	Fertility  []FertilityRecord
	Housing    []HousingCompletion
	Baseline   []BaselinePopulation
	Facilities []PreschoolFacility
	Schedule   []CapacityChange
}

// SubzoneStatus is the outcome of one subzone's projection.
type SubzoneStatus string

const (
	SubzoneOK     SubzoneStatus = "ok"
	SubzoneFailed SubzoneStatus = "failed"
)

// SubzoneOutcome records one subzone's success or failure in the run
// manifest. Failed subzones produce no projections; the presentation
// layer renders them as "no data".
type SubzoneOutcome struct {
	Subzone string        `json:"subzone"`
	Status  SubzoneStatus `json:"status"`
	Error   string        `json:"error,omitempty"`
}

// Result is the engine's externally visible output, ordered by
// (subzone, year) ascending.
type Result struct {
	Projections []DemandProjection `json:"projections"`
	Gaps        []GapResult        `json:"gaps"`
	Manifest    []SubzoneOutcome   `json:"manifest"`
}

// Failed reports whether any subzone failed to project.
func (r *Result) Failed() bool {
	for _, o := range r.Manifest {
		if o.Status == SubzoneFailed {
			return true
		}
	}
	return false
}
