// Package seir is the default epidemic model engine: a staged SEIR system
// with hospital and ICU progression, integrated with fixed-step RK4.
package seir

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"epidemic-scenarios/internal/model"
)

// Engine satisfies the model-engine contract the scenario runner consumes.
type Engine struct{}

func New() *Engine { return &Engine{} }

func (e *Engine) Defaults(icuBeds int) model.ParameterSet {
	return Defaults(icuBeds)
}

func (e *Engine) RunSimulation(ctx context.Context, init, grid []float64, p model.ParameterSet) (*model.RawTrajectory, error) {
	return Integrate(ctx, init, grid, Deriv, p)
}

func (e *Engine) DeriveSeries(raw *model.RawTrajectory, p model.ParameterSet) (*model.ProcessedSeries, error) {
	return DeriveSeries(raw, p)
}

// Integrate runs the model function over the time grid with classic RK4,
// recording the state and the three intervention indicators at every grid
// point, the initial point included.
func Integrate(ctx context.Context, init, grid []float64, deriv DerivFunc, p model.ParameterSet) (*model.RawTrajectory, error) {
	if len(grid) == 0 {
		return nil, &model.MalformedTrajectoryError{Column: "time", Reason: "empty time grid"}
	}
	if len(init) != StateWidth(p) {
		return nil, &model.MalformedTrajectoryError{Column: "state", Want: StateWidth(p), Got: len(init)}
	}

	n := len(grid)
	raw := &model.RawTrajectory{
		Times:               make([]float64, n),
		States:              make([][]float64, n),
		SocialDistancing:    make([]float64, n),
		ShelterInPlace:      make([]float64, n),
		SixtyPlusDistancing: make([]float64, n),
	}
	copy(raw.Times, grid)

	y := make([]float64, len(init))
	copy(y, init)

	record := func(i int, t float64) {
		row := make([]float64, len(y))
		copy(row, y)
		raw.States[i] = row
		raw.SocialDistancing[i] = indicator(sdActive(t, p))
		raw.ShelterInPlace[i] = indicator(sipActive(t, p))
		raw.SixtyPlusDistancing[i] = indicator(sixtyPlusActive(t, p))
	}

	record(0, grid[0])
	for i := 1; i < n; i++ {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rk4Step(y, grid[i-1], grid[i]-grid[i-1], deriv, p)
		record(i, grid[i])
	}
	return raw, nil
}

func indicator(active bool) float64 {
	if active {
		return 1
	}
	return 0
}

// rk4Step advances y in place from t by h.
func rk4Step(y []float64, t, h float64, deriv DerivFunc, p model.ParameterSet) {
	k1 := deriv(t, y, p)

	tmp := make([]float64, len(y))
	floats.AddScaledTo(tmp, y, h/2, k1)
	k2 := deriv(t+h/2, tmp, p)

	floats.AddScaledTo(tmp, y, h/2, k2)
	k3 := deriv(t+h/2, tmp, p)

	floats.AddScaledTo(tmp, y, h, k3)
	k4 := deriv(t+h, tmp, p)

	for i := range y {
		y[i] += h / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
}

// DeriveSeries projects a raw trajectory onto the six named display columns.
func DeriveSeries(raw *model.RawTrajectory, p model.ParameterSet) (*model.ProcessedSeries, error) {
	n := raw.Len()
	if n == 0 {
		return nil, &model.MalformedTrajectoryError{Column: "time", Reason: "empty trajectory"}
	}
	if len(raw.States) != n {
		return nil, &model.MalformedTrajectoryError{Column: "states", Want: n, Got: len(raw.States)}
	}
	for _, col := range []struct {
		name string
		vals []float64
	}{
		{"social_distancing", raw.SocialDistancing},
		{"shelter_in_place", raw.ShelterInPlace},
		{"sixty_plus_distancing", raw.SixtyPlusDistancing},
	} {
		if len(col.vals) != n {
			return nil, &model.MalformedTrajectoryError{Column: col.name, Want: n, Got: len(col.vals)}
		}
	}

	width := StateWidth(p)
	i0 := idxI0(p)
	hosp := idxHosp(p)
	icu := idxICU(p)
	d := idxD(p)

	s := &model.ProcessedSeries{
		ICUBedDemand:              make([]float64, n),
		CumulativeDeaths:          make([]float64, n),
		PrevalentInfections:       make([]float64, n),
		CumulativeInfections:      make([]float64, n),
		DailyDeaths:               make([]float64, n),
		PrevalentHospitalizations: make([]float64, n),
	}

	for i, row := range raw.States {
		if len(row) != width {
			return nil, &model.MalformedTrajectoryError{Column: "states", Want: width, Got: len(row), Reason: "state row width mismatch"}
		}
		s.ICUBedDemand[i] = row[icu]
		s.CumulativeDeaths[i] = row[d]
		s.PrevalentInfections[i] = floats.Sum(row[idxE0:i0]) + floats.Sum(row[i0 : i0+p.NInfectedStates])
		s.CumulativeInfections[i] = p.N - row[idxS]
		s.PrevalentHospitalizations[i] = row[hosp] + row[icu]
		if i == 0 {
			s.DailyDeaths[i] = row[d]
			continue
		}
		dt := raw.Times[i] - raw.Times[i-1]
		if dt <= 0 {
			return nil, &model.MalformedTrajectoryError{Column: "time", Reason: "time grid not strictly increasing"}
		}
		s.DailyDeaths[i] = (row[d] - raw.States[i-1][d]) / dt
	}
	return s, nil
}
