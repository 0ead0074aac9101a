package model

// ScheduleRecord is one row of the parameter table: the dates the user chose
// and the day offsets they resolved to.
type ScheduleRecord struct {
	ScenarioID int    `json:"scenario_id"`
	SIPEndDate string `json:"sip_end_date"`
	SDEndDate  string `json:"sd_end_date"`

	SDStartOffset  int `json:"sd_start_offset"`
	SDEndOffset    int `json:"sd_end_offset"`
	SIPStartOffset int `json:"sip_start_offset"`
	SIPEndOffset   int `json:"sip_end_offset"`
}

// Summary holds the seven derived scalars of one scenario. DayICUCapReached
// is nil when demand never reaches capacity; ExtraVulnerableDistancingDays
// is nil when the sixty-plus behaviour is disabled.
type Summary struct {
	Mortality                     int     `json:"mortality"`
	MortalityThroughMay           int     `json:"mortality_through_may"`
	DayICUCapReached              *int    `json:"day_icu_cap_reached"`
	MaxICUDemand                  int     `json:"max_icu_demand"`
	DayOfPeakInfections           int     `json:"day_of_peak_infections"`
	RtEstimate                    float64 `json:"rt_estimate"`
	ExtraVulnerableDistancingDays *int    `json:"extra_vulnerable_distancing_days"`
}

// SummaryRow is one row of the results table.
type SummaryRow struct {
	ScenarioID int `json:"scenario_id"`
	Summary
}

// Scenario bundles everything recorded for one simulation run.
type Scenario struct {
	ID      int             `json:"id"`
	Params  ScheduleRecord  `json:"params"`
	Raw     RawTrajectory   `json:"raw"`
	Series  ProcessedSeries `json:"series"`
	Summary Summary         `json:"summary"`
}

// ComparisonRow is one row of the joined display table. Result cells are
// pointers so a join miss renders as empty rather than zero.
type ComparisonRow struct {
	ScenarioID          int    `json:"scenario_id"`
	SIPEndDate          string `json:"sip_end_date"`
	SDEndDate           string `json:"sd_end_date"`
	Mortality           *int   `json:"mortality"`
	MortalityThroughMay *int   `json:"mortality_through_may"`
	DayICUCapReached    *int   `json:"day_icu_cap_reached"`
	MaxICUDemand        *int   `json:"max_icu_demand"`
	DayOfPeakInfections *int   `json:"day_of_peak_infections"`
}

// ChartPoint is one row of the concatenated multi-scenario chart series.
type ChartPoint struct {
	ScenarioID                int     `json:"scenario_id"`
	Day                       float64 `json:"day"`
	ICUBedDemand              float64 `json:"icu_bed_demand"`
	CumulativeDeaths          float64 `json:"cumulative_deaths"`
	PrevalentInfections       float64 `json:"prevalent_infections"`
	CumulativeInfections      float64 `json:"cumulative_infections"`
	DailyDeaths               float64 `json:"daily_deaths"`
	PrevalentHospitalizations float64 `json:"prevalent_hospitalizations"`
}
