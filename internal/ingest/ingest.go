// Package ingest loads the raw data files into the validated, strongly
// typed entities the forecast engine consumes. All schema and parsing
// concerns stop at this boundary; nothing loosely typed crosses it.
package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chuawjk/ecda/internal/forecast"
)

// Standard file names inside the data directory.
const (
	SubzonesFile   = "subzones.csv"
	FertilityFile  = "fertility.csv"
	HousingFile    = "housing.csv"
	PopulationFile = "population.csv"
	FacilitiesFile = "preschools.csv"
)

// LoadSnapshot reads every dataset from dir and assembles a snapshot.
// schedulePath is optional; empty means no capacity-change schedule.
// The returned snapshot still goes through the engine's own validation
// before any projection runs.
func LoadSnapshot(dir, schedulePath string, logger *slog.Logger) (*forecast.Snapshot, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	subzones, err := LoadSubzones(filepath.Join(dir, SubzonesFile))
	if err != nil {
		return nil, err
	}
	fertility, err := LoadFertility(filepath.Join(dir, FertilityFile))
	if err != nil {
		return nil, err
	}
	housing, err := LoadHousing(filepath.Join(dir, HousingFile))
	if err != nil {
		return nil, err
	}
	baseline, err := LoadPopulation(filepath.Join(dir, PopulationFile))
	if err != nil {
		return nil, err
	}
	facilities, err := LoadFacilities(filepath.Join(dir, FacilitiesFile))
	if err != nil {
		return nil, err
	}

	var schedule []forecast.CapacityChange
	if schedulePath != "" {
		schedule, err = LoadCapacitySchedule(schedulePath)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("snapshot loaded",
		"subzones", len(subzones),
		"fertility_records", len(fertility),
		"housing_completions", len(housing),
		"baseline_records", len(baseline),
		"facilities", len(facilities),
		"schedule_changes", len(schedule))

	return &forecast.Snapshot{
		Subzones:   subzones,
		Fertility:  fertility,
		Housing:    housing,
		Baseline:   baseline,
		Facilities: facilities,
		Schedule:   schedule,
	}, nil
}

// fileError wraps an error with the file it came from.
func fileError(path string, err error) error {
	return fmt.Errorf("%s: %w", filepath.Base(path), err)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	return f, nil
}
