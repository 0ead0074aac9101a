package seir

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/floats"

	"epidemic-scenarios/internal/model"
)

func testGrid(from, to, dt float64) []float64 {
	n := int((to-from)/dt) + 1
	return floats.Span(make([]float64, n), from, to)
}

func runDefault(t *testing.T, days float64) (*model.RawTrajectory, model.ParameterSet) {
	t.Helper()
	p := Defaults(1200)
	p.StartTimeSocialDistancing = 1
	p.EndTimeSocialDistancing = 72
	p.StartTimeSIP = 6
	p.EndTimeSIP = 55

	grid := testGrid(1, days, p.Timestep)
	raw, err := Integrate(context.Background(), p.InitVec, grid, Deriv, p)
	require.NoError(t, err)
	return raw, p
}

func TestDefaultsShape(t *testing.T) {
	p := Defaults(1200)
	assert.Equal(t, 1200, p.NICUBeds)
	assert.Len(t, p.InitVec, StateWidth(p))
	assert.InDelta(t, p.N, floats.Sum(p.InitVec), 1e-9)
}

func TestIntegratePreservesPopulation(t *testing.T) {
	raw, p := runDefault(t, 365)

	assert.Equal(t, 729, raw.Len())
	for _, i := range []int{0, raw.Len() / 2, raw.Len() - 1} {
		assert.InDelta(t, p.N, floats.Sum(raw.States[i]), p.N*1e-6,
			"population not conserved at row %d", i)
	}
}

func TestIntegrateEpidemicProgresses(t *testing.T) {
	raw, p := runDefault(t, 365)

	series, err := DeriveSeries(raw, p)
	require.NoError(t, err)

	last := series.Len() - 1
	assert.Greater(t, series.CumulativeInfections[last], series.CumulativeInfections[0])
	assert.Greater(t, series.CumulativeDeaths[last], 0.0)
	assert.True(t, floats.Max(series.PrevalentInfections) > 0)

	// Cumulative columns never decrease.
	for i := 1; i <= last; i++ {
		assert.GreaterOrEqual(t, series.CumulativeDeaths[i], series.CumulativeDeaths[i-1])
	}
}

func TestIndicatorColumnsFollowSchedule(t *testing.T) {
	raw, _ := runDefault(t, 365)

	at := func(day float64) int {
		for i, tm := range raw.Times {
			if tm == day {
				return i
			}
		}
		t.Fatalf("day %v not on grid", day)
		return -1
	}

	assert.Equal(t, 1.0, raw.SocialDistancing[at(1)])
	assert.Equal(t, 0.0, raw.ShelterInPlace[at(1)])
	assert.Equal(t, 1.0, raw.ShelterInPlace[at(6)])
	assert.Equal(t, 1.0, raw.ShelterInPlace[at(55)])
	assert.Equal(t, 0.0, raw.ShelterInPlace[at(55.5)])
	assert.Equal(t, 1.0, raw.SocialDistancing[at(72)])
	assert.Equal(t, 0.0, raw.SocialDistancing[at(72.5)])

	// 60+ distancing persists the configured days past the last general
	// intervention (through day 72+60).
	assert.Equal(t, 1.0, raw.SixtyPlusDistancing[at(100)])
	assert.Equal(t, 1.0, raw.SixtyPlusDistancing[at(132)])
	assert.Equal(t, 0.0, raw.SixtyPlusDistancing[at(132.5)])
}

func TestInterventionsReduceSpread(t *testing.T) {
	p := Defaults(1200)
	grid := testGrid(1, 120, p.Timestep)

	unmitigated := p
	unmitigated.EndTimeSocialDistancing = 0 // never active
	unmitigated.EndTimeSIP = 0
	rawU, err := Integrate(context.Background(), p.InitVec, grid, Deriv, unmitigated)
	require.NoError(t, err)

	mitigated := p
	mitigated.StartTimeSocialDistancing = 1
	mitigated.EndTimeSocialDistancing = 120
	mitigated.StartTimeSIP = 6
	mitigated.EndTimeSIP = 120
	rawM, err := Integrate(context.Background(), p.InitVec, grid, Deriv, mitigated)
	require.NoError(t, err)

	seriesU, err := DeriveSeries(rawU, unmitigated)
	require.NoError(t, err)
	seriesM, err := DeriveSeries(rawM, mitigated)
	require.NoError(t, err)

	last := len(grid) - 1
	assert.Less(t, seriesM.CumulativeInfections[last], seriesU.CumulativeInfections[last])
}

func TestIntegrateRejectsBadInputs(t *testing.T) {
	p := Defaults(1200)

	_, err := Integrate(context.Background(), p.InitVec, nil, Deriv, p)
	var malformed *model.MalformedTrajectoryError
	require.ErrorAs(t, err, &malformed)

	_, err = Integrate(context.Background(), []float64{1, 2}, testGrid(1, 10, 0.5), Deriv, p)
	require.ErrorAs(t, err, &malformed)
}

func TestIntegrateHonorsContext(t *testing.T) {
	p := Defaults(1200)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Integrate(ctx, p.InitVec, testGrid(1, 365, p.Timestep), Deriv, p)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDeriveSeriesRejectsMismatchedColumns(t *testing.T) {
	raw, p := runDefault(t, 40)
	raw.ShelterInPlace = raw.ShelterInPlace[:10]

	_, err := DeriveSeries(raw, p)
	var malformed *model.MalformedTrajectoryError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "shelter_in_place", malformed.Column)
}

func TestDeriveSeriesRejectsBadStateWidth(t *testing.T) {
	raw, p := runDefault(t, 40)
	raw.States[3] = raw.States[3][:2]

	_, err := DeriveSeries(raw, p)
	var malformed *model.MalformedTrajectoryError
	require.ErrorAs(t, err, &malformed)
}
