// Package store holds the per-session scenario history. Append is the only
// mutator; everything else is a read-only projection over copies, so a
// stored scenario can never be altered after the fact.
package store

import (
	"fmt"
	"sync"

	"epidemic-scenarios/internal/model"
)

type Store struct {
	mu        sync.RWMutex
	scenarios []model.Scenario
}

func New() *Store { return &Store{} }

// NextID is the id the next successful run will receive. Ids stay dense:
// failed runs never consume one.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenarios) + 1
}

// Count reports the number of recorded scenarios.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenarios)
}

// Append records a completed scenario. The scenario id must be the next
// dense id; anything else is a programming error in the caller.
func (s *Store) Append(sc model.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if want := len(s.scenarios) + 1; sc.ID != want {
		return fmt.Errorf("scenario id %d out of sequence, want %d", sc.ID, want)
	}
	s.scenarios = append(s.scenarios, copyScenario(sc))
	return nil
}

// Scenario returns a copy of the stored scenario with the given id.
func (s *Store) Scenario(id int) (model.Scenario, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.scenarios) {
		return model.Scenario{}, false
	}
	return copyScenario(s.scenarios[id-1]), true
}

// ParameterRows is the parameter-table projection, one row per scenario.
func (s *Store) ParameterRows() []model.ScheduleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]model.ScheduleRecord, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		rows = append(rows, sc.Params)
	}
	return rows
}

// ResultRows is the results-table projection, one row per scenario.
func (s *Store) ResultRows() []model.SummaryRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]model.SummaryRow, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		rows = append(rows, model.SummaryRow{ScenarioID: sc.ID, Summary: copySummary(sc.Summary)})
	}
	return rows
}

// ComparisonTable left-joins the parameter table onto the results table by
// scenario id. A missing results row leaves the metric cells empty; it
// never fails the join.
func (s *Store) ComparisonTable() []model.ComparisonRow {
	params := s.ParameterRows()
	results := s.ResultRows()

	byID := make(map[int]model.SummaryRow, len(results))
	for _, r := range results {
		byID[r.ScenarioID] = r
	}

	rows := make([]model.ComparisonRow, 0, len(params))
	for _, p := range params {
		row := model.ComparisonRow{
			ScenarioID: p.ScenarioID,
			SIPEndDate: p.SIPEndDate,
			SDEndDate:  p.SDEndDate,
		}
		if r, ok := byID[p.ScenarioID]; ok {
			row.Mortality = intPtr(r.Mortality)
			row.MortalityThroughMay = intPtr(r.MortalityThroughMay)
			row.DayICUCapReached = copyIntPtr(r.DayICUCapReached)
			row.MaxICUDemand = intPtr(r.MaxICUDemand)
			row.DayOfPeakInfections = intPtr(r.DayOfPeakInfections)
		}
		rows = append(rows, row)
	}
	return rows
}

// ChartSeries concatenates every stored processed series into one flat list
// of points tagged with scenario id and day, ready for multi-series charts.
func (s *Store) ChartSeries() []model.ChartPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var points []model.ChartPoint
	for _, sc := range s.scenarios {
		for i := 0; i < sc.Series.Len(); i++ {
			points = append(points, model.ChartPoint{
				ScenarioID:                sc.ID,
				Day:                       sc.Raw.Times[i],
				ICUBedDemand:              sc.Series.ICUBedDemand[i],
				CumulativeDeaths:          sc.Series.CumulativeDeaths[i],
				PrevalentInfections:       sc.Series.PrevalentInfections[i],
				CumulativeInfections:      sc.Series.CumulativeInfections[i],
				DailyDeaths:               sc.Series.DailyDeaths[i],
				PrevalentHospitalizations: sc.Series.PrevalentHospitalizations[i],
			})
		}
	}
	return points
}

func intPtr(v int) *int { return &v }

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func copySummary(s model.Summary) model.Summary {
	s.DayICUCapReached = copyIntPtr(s.DayICUCapReached)
	s.ExtraVulnerableDistancingDays = copyIntPtr(s.ExtraVulnerableDistancingDays)
	return s
}

func copyScenario(sc model.Scenario) model.Scenario {
	out := sc
	out.Summary = copySummary(sc.Summary)
	out.Raw.Times = copyFloats(sc.Raw.Times)
	out.Raw.SocialDistancing = copyFloats(sc.Raw.SocialDistancing)
	out.Raw.ShelterInPlace = copyFloats(sc.Raw.ShelterInPlace)
	out.Raw.SixtyPlusDistancing = copyFloats(sc.Raw.SixtyPlusDistancing)
	if sc.Raw.States != nil {
		out.Raw.States = make([][]float64, len(sc.Raw.States))
		for i, row := range sc.Raw.States {
			out.Raw.States[i] = copyFloats(row)
		}
	}
	out.Series.ICUBedDemand = copyFloats(sc.Series.ICUBedDemand)
	out.Series.CumulativeDeaths = copyFloats(sc.Series.CumulativeDeaths)
	out.Series.PrevalentInfections = copyFloats(sc.Series.PrevalentInfections)
	out.Series.CumulativeInfections = copyFloats(sc.Series.CumulativeInfections)
	out.Series.DailyDeaths = copyFloats(sc.Series.DailyDeaths)
	out.Series.PrevalentHospitalizations = copyFloats(sc.Series.PrevalentHospitalizations)
	return out
}
