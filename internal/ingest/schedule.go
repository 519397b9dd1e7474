package ingest

// schedule.go - optional capacity-change schedule (YAML)

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chuawjk/ecda/internal/forecast"
)

// scheduleFile is the YAML shape of a capacity-change schedule:
//
//	changes:
//	  - subzone: S1
//	    year: 2027
//	    delta: 100
type scheduleFile struct {
	Changes []scheduleEntry `yaml:"changes"`
}

type scheduleEntry struct {
	Subzone string `yaml:"subzone"`
	Year    int    `yaml:"year"`
	Delta   int    `yaml:"delta"`
}

// LoadCapacitySchedule parses a planned capacity-change schedule.
func LoadCapacitySchedule(path string) ([]forecast.CapacityChange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}

	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fileError(path, fmt.Errorf("parse schedule: %w", err))
	}

	changes := make([]forecast.CapacityChange, 0, len(file.Changes))
	for i, e := range file.Changes {
		if e.Subzone == "" {
			return nil, fileError(path, fmt.Errorf("change %d: missing subzone", i))
		}
		if e.Year == 0 {
			return nil, fileError(path, fmt.Errorf("change %d: missing year", i))
		}
		changes = append(changes, forecast.CapacityChange{
			Subzone: e.Subzone,
			Year:    e.Year,
			Delta:   e.Delta,
		})
	}
	return changes, nil
}
