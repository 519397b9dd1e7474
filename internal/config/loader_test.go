package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuawjk/ecda/internal/forecast"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, used, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, used)

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, time.Now().Year(), cfg.ReferenceYear)
	assert.Equal(t, cfg.ReferenceYear+DefaultForecastYears, cfg.HorizonYear)
	assert.Equal(t, DefaultAttritionRate, cfg.AttritionRate)
	assert.Equal(t, DefaultTrendModel, cfg.TrendModel)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ecda.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`reference_year: 2024
horizon_year: 2030
attrition_rate: 0.2
trend_model: flat
`), 0o644))

	cfg, used, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 2024, cfg.ReferenceYear)
	assert.Equal(t, 2030, cfg.HorizonYear)
	assert.Equal(t, 0.2, cfg.AttritionRate)
	assert.Equal(t, "flat", cfg.TrendModel)
}

func TestLoad_HorizonFollowsReferenceYear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ecda.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reference_year: 2020\n"), 0o644))

	cfg, _, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2020+DefaultForecastYears, cfg.HorizonYear)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ecda.yaml")
	require.NoError(t, os.WriteFile(path, []byte("attrition_rate: 0.2\nreference_year: 2024\n"), 0o644))

	t.Setenv("ECDA_ATTRITION_RATE", "0.3")

	cfg, _, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.AttritionRate)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ecda.yaml")
	require.NoError(t, os.WriteFile(path, []byte("attrition_rate: 0.2\nreference_year: 2024\n"), 0o644))

	t.Setenv("ECDA_ATTRITION_RATE", "0.3")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("attrition-rate", 0, "")
	require.NoError(t, flags.Parse([]string{"--attrition-rate=0.4"}))

	cfg, _, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.AttritionRate)
}

func TestLoad_UnsetFlagsIgnored(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("attrition-rate", 0.99, "")
	require.NoError(t, flags.Parse(nil))

	cfg, _, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultAttritionRate, cfg.AttritionRate, "flag defaults must not override config defaults")
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ecda.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reference_year: 2024\nattrition_rate: 1.5\n"), 0o644))

	_, _, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attrition rate")
}

func TestForecastParams(t *testing.T) {
	cfg := &Config{
		ReferenceYear:         2024,
		HorizonYear:           2029,
		ChildrenPerUnit:       0.25,
		EligibilityDelayYears: 1,
		AttritionRate:         0.05,
		MinHistoricalPoints:   3,
		TrendModel:            "flat",
		FallbackPolicy:        "citywide",
		Precision:             0,
		PlacesPerCentre:       80,
	}

	p := cfg.ForecastParams()
	assert.Equal(t, forecast.TrendFlat, p.TrendModel)
	assert.Equal(t, forecast.FallbackCitywide, p.FallbackPolicy)
	assert.Equal(t, 80, p.PlacesPerCentre)
	assert.NoError(t, p.Validate())
}
