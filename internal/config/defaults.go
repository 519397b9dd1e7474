package config

// Default configuration values. The model parameters mirror
// forecast.DefaultParams; the rest are CLI conveniences.
const (
	DefaultDataDir         = "data"
	DefaultStateFile       = ".ecda/state.db"
	DefaultForecastYears   = 5
	DefaultChildrenPerUnit = 0.3
	DefaultDelayYears      = 2
	DefaultAttritionRate   = 0.1
	DefaultMinPoints       = 2
	DefaultTrendModel      = "linear"
	DefaultFallbackPolicy  = "error"
	DefaultPrecision       = 2
	DefaultPlacesPerCentre = 100
	DefaultOutput          = "table"
)
