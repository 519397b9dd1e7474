package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names looked up in the working directory.
const (
	ConfigFileName    = "ecda.yaml"
	ConfigFileNameAlt = "ecda.yml"
)

// envPrefix is the prefix for environment overrides, e.g.
// ECDA_ATTRITION_RATE=0.15.
const envPrefix = "ECDA_"

// findConfigFile picks the config file to use.
// Priority: explicit path > ecda.yaml > ecda.yml > none.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the configuration. Precedence, highest to lowest:
// flags > environment variables > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	// 1. Defaults. Reference year defaults to the current year; the
	// horizon is filled in after unmarshal so a configured reference
	// year shifts it too.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_dir":                DefaultDataDir,
		"state_path":              DefaultStateFile,
		"reference_year":          time.Now().Year(),
		"children_per_unit":       DefaultChildrenPerUnit,
		"eligibility_delay_years": DefaultDelayYears,
		"attrition_rate":          DefaultAttritionRate,
		"min_historical_points":   DefaultMinPoints,
		"trend_model":             DefaultTrendModel,
		"fallback_policy":         DefaultFallbackPolicy,
		"precision":               DefaultPrecision,
		"places_per_centre":       DefaultPlacesPerCentre,
		"output":                  DefaultOutput,
		"verbose":                 false,
	}, "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, if any.
	configFileUsed := findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables: ECDA_HORIZON_YEAR -> horizon_year.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set; kebab-case to snake_case.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.HorizonYear == 0 {
		cfg.HorizonYear = cfg.ReferenceYear + DefaultForecastYears
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, configFileUsed, nil
}
