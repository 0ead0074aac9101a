package model

// RawTrajectory is the unprocessed output of the epidemic model engine: one
// row per grid point, the full compartment state plus the three intervention
// indicator columns.
type RawTrajectory struct {
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`

	SocialDistancing    []float64 `json:"social_distancing"`
	ShelterInPlace      []float64 `json:"shelter_in_place"`
	SixtyPlusDistancing []float64 `json:"sixty_plus_distancing"`
}

// Len reports the number of recorded time steps.
func (r *RawTrajectory) Len() int { return len(r.Times) }

// ProcessedSeries holds the six display-ready per-step quantities derived
// from a raw trajectory. All columns have equal length.
type ProcessedSeries struct {
	ICUBedDemand              []float64 `json:"icu_bed_demand"`
	CumulativeDeaths          []float64 `json:"cumulative_deaths"`
	PrevalentInfections       []float64 `json:"prevalent_infections"`
	CumulativeInfections      []float64 `json:"cumulative_infections"`
	DailyDeaths               []float64 `json:"daily_deaths"`
	PrevalentHospitalizations []float64 `json:"prevalent_hospitalizations"`
}

// Len reports the number of time steps in the series.
func (s *ProcessedSeries) Len() int { return len(s.ICUBedDemand) }

// Columns returns the six series keyed by their display name.
func (s *ProcessedSeries) Columns() map[string][]float64 {
	return map[string][]float64{
		"icu_bed_demand":             s.ICUBedDemand,
		"cumulative_deaths":          s.CumulativeDeaths,
		"prevalent_infections":       s.PrevalentInfections,
		"cumulative_infections":      s.CumulativeInfections,
		"daily_deaths":               s.DailyDeaths,
		"prevalent_hospitalizations": s.PrevalentHospitalizations,
	}
}
