package forecast

// housing.go - converts housing completions into new preschool-age arrivals

// HousingAdapter estimates preschool-age children arriving per subzone
// per year from planned housing completions. Completions at or before
// the reference year are already reflected in the baseline population
// and contribute nothing; that boundary is the single reference year
// used everywhere in the system.
type HousingAdapter struct {
	params Params
	// arrivals[subzone][year] = estimated new children in that year
	arrivals map[string]map[int]float64
}

// NewHousingAdapter precomputes arrivals for all completions inside the
// forecast horizon.
func NewHousingAdapter(params Params, completions []HousingCompletion) *HousingAdapter {
	arrivals := make(map[string]map[int]float64)
	for _, c := range completions {
		if c.CompletionYear <= params.ReferenceYear {
			// Already counted in the baseline.
			continue
		}
		year := c.CompletionYear + params.EligibilityDelayYears
		if year > params.HorizonYear {
			continue
		}
		occupancy := c.OccupancyRate
		if occupancy <= 0 {
			occupancy = 1
		}
		if arrivals[c.Subzone] == nil {
			arrivals[c.Subzone] = make(map[int]float64)
		}
		arrivals[c.Subzone][year] += float64(c.Units) * occupancy * params.ChildrenPerUnit
	}
	return &HousingAdapter{params: params, arrivals: arrivals}
}

// Arrivals returns the estimated new preschool-age children entering a
// subzone in a year.
func (h *HousingAdapter) Arrivals(subzone string, year int) float64 {
	return h.arrivals[subzone][year]
}
