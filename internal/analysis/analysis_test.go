package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epidemic-scenarios/internal/model"
)

func testParams() model.ParameterSet {
	return model.ParameterSet{
		N:                      1_000_000,
		Timestep:               0.5,
		NICUBeds:               100,
		NExposedStates:         3,
		ExposedTransitionRate:  0.3,
		NInfectedStates:        3,
		InfectedTransitionRate: 0.375,
		SixtyPlusDaysPastPeak:  60,
	}
}

// synthetic builds an n-step trajectory/series pair with exponential
// cumulative infections of the given growth rate and benign defaults for
// every other column.
func synthetic(n int, growth float64) (*model.RawTrajectory, *model.ProcessedSeries) {
	raw := &model.RawTrajectory{
		Times:               make([]float64, n),
		SocialDistancing:    make([]float64, n),
		ShelterInPlace:      make([]float64, n),
		SixtyPlusDistancing: make([]float64, n),
	}
	series := &model.ProcessedSeries{
		ICUBedDemand:              make([]float64, n),
		CumulativeDeaths:          make([]float64, n),
		PrevalentInfections:       make([]float64, n),
		CumulativeInfections:      make([]float64, n),
		DailyDeaths:               make([]float64, n),
		PrevalentHospitalizations: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i + 1)
		raw.Times[i] = t
		series.CumulativeInfections[i] = math.Exp(growth * t)
		series.CumulativeDeaths[i] = 0.1 * t
		series.PrevalentInfections[i] = t
		if i < 40 {
			raw.SocialDistancing[i] = 1
		}
		if i < 70 {
			raw.SixtyPlusDistancing[i] = 1
		}
	}
	return raw, series
}

func TestRtEstimateRecoversGrowthRate(t *testing.T) {
	p := testParams()
	raw, series := synthetic(100, 0.1)

	sum, err := Summarize(raw, series, p)
	require.NoError(t, err)

	// slope 0.1/day, infectious duration 3/(0.375/0.5)=4, exposed
	// duration 3/(0.3/0.5)=5: Rt = 1.4*1.5 = 2.1.
	assert.InDelta(t, 2.1, sum.RtEstimate, 1e-9)
}

func TestRtEstimationErrorOnNonPositive(t *testing.T) {
	p := testParams()
	raw, series := synthetic(100, 0.1)
	series.CumulativeInfections[7] = 0

	_, err := Summarize(raw, series, p)
	var rtErr *model.RtEstimationError
	require.ErrorAs(t, err, &rtErr)
	assert.Equal(t, 8, rtErr.Step)
}

func TestMortalityReads(t *testing.T) {
	p := testParams()
	raw, series := synthetic(100, 0.05)
	series.CumulativeDeaths[99] = 1234.6
	series.CumulativeDeaths[69] = 456.4

	sum, err := Summarize(raw, series, p)
	require.NoError(t, err)
	assert.Equal(t, 1235, sum.Mortality)
	assert.Equal(t, 456, sum.MortalityThroughMay)
}

func TestMortalityThroughMayOutOfRange(t *testing.T) {
	p := testParams()
	raw, series := synthetic(69, 0.05)

	_, err := Summarize(raw, series, p)
	var oor *model.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 70, oor.Index)
	assert.Equal(t, 69, oor.Len)
}

func TestICUCapNeverReachedIsAbsent(t *testing.T) {
	p := testParams()
	raw, series := synthetic(100, 0.05)
	for i := range series.ICUBedDemand {
		series.ICUBedDemand[i] = 50 // capacity is 100
	}

	sum, err := Summarize(raw, series, p)
	require.NoError(t, err)
	assert.Nil(t, sum.DayICUCapReached)
	assert.Equal(t, 50, sum.MaxICUDemand)
}

func TestICUCapFirstCrossing(t *testing.T) {
	p := testParams()
	raw, series := synthetic(100, 0.05)
	series.ICUBedDemand[30] = 100 // meets capacity exactly
	series.ICUBedDemand[31] = 180

	sum, err := Summarize(raw, series, p)
	require.NoError(t, err)
	require.NotNil(t, sum.DayICUCapReached)
	assert.Equal(t, 31, *sum.DayICUCapReached)
	assert.Equal(t, 180, sum.MaxICUDemand)
}

func TestPeakDayEarliestTie(t *testing.T) {
	p := testParams()
	raw, series := synthetic(100, 0.05)
	for i := range series.PrevalentInfections {
		series.PrevalentInfections[i] = 0
	}
	series.PrevalentInfections[40] = 500
	series.PrevalentInfections[60] = 500

	sum, err := Summarize(raw, series, p)
	require.NoError(t, err)
	assert.Equal(t, 41, sum.DayOfPeakInfections)
}

func TestExtraVulnerableDays(t *testing.T) {
	p := testParams()
	raw, series := synthetic(100, 0.05)
	// General distancing last active at step 40, sixty-plus at step 70.

	sum, err := Summarize(raw, series, p)
	require.NoError(t, err)
	require.NotNil(t, sum.ExtraVulnerableDistancingDays)
	assert.Equal(t, 30, *sum.ExtraVulnerableDistancingDays)
}

func TestExtraVulnerableDaysDisabled(t *testing.T) {
	p := testParams()
	p.SixtyPlusDaysPastPeak = -1
	raw, series := synthetic(100, 0.05)

	sum, err := Summarize(raw, series, p)
	require.NoError(t, err)
	assert.Nil(t, sum.ExtraVulnerableDistancingDays)
}

func TestExtraVulnerableIndicatorNeverActive(t *testing.T) {
	p := testParams()
	raw, series := synthetic(100, 0.05)
	for i := range raw.SixtyPlusDistancing {
		raw.SixtyPlusDistancing[i] = 0
	}

	_, err := Summarize(raw, series, p)
	var nf *model.IndicatorNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "sixty_plus_distancing", nf.Indicator)
}
