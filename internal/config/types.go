// Package config loads ecda configuration from file, environment
// variables and CLI flags, in that order of increasing precedence.
package config

import (
	"github.com/chuawjk/ecda/internal/forecast"
)

// Config is the full CLI configuration.
type Config struct {
	// Data locations
	DataDir      string `koanf:"data_dir"`
	SchedulePath string `koanf:"schedule_path"`
	StatePath    string `koanf:"state_path"`

	// Forecast window
	ReferenceYear int `koanf:"reference_year"`
	HorizonYear   int `koanf:"horizon_year"`

	// Policy levers
	ChildrenPerUnit       float64 `koanf:"children_per_unit"`
	EligibilityDelayYears int     `koanf:"eligibility_delay_years"`
	AttritionRate         float64 `koanf:"attrition_rate"`
	MinHistoricalPoints   int     `koanf:"min_historical_points"`
	TrendModel            string  `koanf:"trend_model"`
	FallbackPolicy        string  `koanf:"fallback_policy"`
	Precision             int     `koanf:"precision"`
	PlacesPerCentre       int     `koanf:"places_per_centre"`

	Verbose bool   `koanf:"verbose"`
	Output  string `koanf:"output"`
}

// ForecastParams converts the configuration into the engine's
// parameter bundle.
func (c *Config) ForecastParams() forecast.Params {
	return forecast.Params{
		ReferenceYear:         c.ReferenceYear,
		HorizonYear:           c.HorizonYear,
		ChildrenPerUnit:       c.ChildrenPerUnit,
		EligibilityDelayYears: c.EligibilityDelayYears,
		AttritionRate:         c.AttritionRate,
		MinHistoricalPoints:   c.MinHistoricalPoints,
		TrendModel:            forecast.TrendModel(c.TrendModel),
		FallbackPolicy:        forecast.FallbackPolicy(c.FallbackPolicy),
		Precision:             c.Precision,
		PlacesPerCentre:       c.PlacesPerCentre,
	}
}

// Validate delegates to the engine's parameter validation so the CLI
// and the engine can never disagree on what is acceptable.
func (c *Config) Validate() error {
	return c.ForecastParams().Validate()
}
