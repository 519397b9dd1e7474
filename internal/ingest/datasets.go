package ingest

// datasets.go - one loader per input dataset

import (
	"fmt"

	"github.com/chuawjk/ecda/internal/forecast"
)

// LoadSubzones reads the canonical subzone set.
// Columns: id, name, geometry_ref (optional).
func LoadSubzones(path string) ([]forecast.Subzone, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readCSV(f, "id", "name")
	if err != nil {
		return nil, fileError(path, err)
	}

	subzones := make([]forecast.Subzone, 0, len(rows))
	for _, r := range rows {
		id := r.get("id")
		if id == "" {
			return nil, fileError(path, fmt.Errorf("line %d: empty subzone id", r.line))
		}
		subzones = append(subzones, forecast.Subzone{
			ID:          id,
			Name:        r.get("name"),
			GeometryRef: r.get("geometry_ref"),
		})
	}
	return subzones, nil
}

// LoadFertility reads historical births per subzone per year.
// Columns: subzone, year, births.
func LoadFertility(path string) ([]forecast.FertilityRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readCSV(f, "subzone", "year", "births")
	if err != nil {
		return nil, fileError(path, err)
	}

	records := make([]forecast.FertilityRecord, 0, len(rows))
	for _, r := range rows {
		year, err := r.getInt("year")
		if err != nil {
			return nil, fileError(path, err)
		}
		births, err := r.getFloat("births")
		if err != nil {
			return nil, fileError(path, err)
		}
		records = append(records, forecast.FertilityRecord{
			Subzone: r.get("subzone"),
			Year:    year,
			Births:  births,
		})
	}
	return records, nil
}

// LoadHousing reads housing completion records.
// Columns: subzone, completion_year, units, occupancy_rate (optional).
func LoadHousing(path string) ([]forecast.HousingCompletion, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readCSV(f, "subzone", "completion_year", "units")
	if err != nil {
		return nil, fileError(path, err)
	}

	completions := make([]forecast.HousingCompletion, 0, len(rows))
	for _, r := range rows {
		year, err := r.getInt("completion_year")
		if err != nil {
			return nil, fileError(path, err)
		}
		units, err := r.getInt("units")
		if err != nil {
			return nil, fileError(path, err)
		}
		occupancy, err := r.optionalFloat("occupancy_rate")
		if err != nil {
			return nil, fileError(path, err)
		}
		completions = append(completions, forecast.HousingCompletion{
			Subzone:        r.get("subzone"),
			CompletionYear: year,
			Units:          units,
			OccupancyRate:  occupancy,
		})
	}
	return completions, nil
}

// LoadPopulation reads the reference-year population anchor.
// Columns: subzone, age_band, count.
func LoadPopulation(path string) ([]forecast.BaselinePopulation, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readCSV(f, "subzone", "age_band", "count")
	if err != nil {
		return nil, fileError(path, err)
	}

	records := make([]forecast.BaselinePopulation, 0, len(rows))
	for _, r := range rows {
		count, err := r.getInt("count")
		if err != nil {
			return nil, fileError(path, err)
		}
		records = append(records, forecast.BaselinePopulation{
			Subzone: r.get("subzone"),
			AgeBand: r.get("age_band"),
			Count:   count,
		})
	}
	return records, nil
}

// LoadFacilities reads the preschool registry.
// Columns: subzone, name, capacity, status.
func LoadFacilities(path string) ([]forecast.PreschoolFacility, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readCSV(f, "subzone", "name", "capacity", "status")
	if err != nil {
		return nil, fileError(path, err)
	}

	facilities := make([]forecast.PreschoolFacility, 0, len(rows))
	for _, r := range rows {
		capacity, err := r.getInt("capacity")
		if err != nil {
			return nil, fileError(path, err)
		}
		status, err := parseStatus(r.get("status"))
		if err != nil {
			return nil, fileError(path, fmt.Errorf("line %d: %w", r.line, err))
		}
		facilities = append(facilities, forecast.PreschoolFacility{
			Subzone:  r.get("subzone"),
			Name:     r.get("name"),
			Capacity: capacity,
			Status:   status,
		})
	}
	return facilities, nil
}

func parseStatus(s string) (forecast.FacilityStatus, error) {
	switch forecast.FacilityStatus(s) {
	case forecast.StatusOperational, forecast.StatusPlanned, forecast.StatusClosed:
		return forecast.FacilityStatus(s), nil
	default:
		return "", fmt.Errorf("unknown facility status %q", s)
	}
}
