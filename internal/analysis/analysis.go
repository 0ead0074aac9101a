// Package analysis reduces one scenario's trajectory to its scalar summary
// metrics.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"epidemic-scenarios/internal/model"
)

// Cumulative deaths are also read at this fixed step, which lands on May 30
// for a 2020-03-22 day 1.
const mayStep = 70

// Number of leading steps used for the early-growth regression behind the
// Rt estimate.
const rtWindow = 20

// Summarize computes the summary row for one scenario. The ICU capacity
// threshold comes from the parameter set.
func Summarize(raw *model.RawTrajectory, series *model.ProcessedSeries, p model.ParameterSet) (*model.Summary, error) {
	n := series.Len()
	if n == 0 {
		return nil, &model.OutOfRangeError{Series: "cumulative_deaths", Index: 1, Len: 0}
	}
	if n < mayStep {
		return nil, &model.OutOfRangeError{Series: "cumulative_deaths", Index: mayStep, Len: n}
	}

	rt, err := rtEstimate(raw, series, p)
	if err != nil {
		return nil, err
	}

	extra, err := extraVulnerableDays(raw, p)
	if err != nil {
		return nil, err
	}

	peakIdx := floats.MaxIdx(series.PrevalentInfections)

	s := &model.Summary{
		Mortality:                     int(math.Round(series.CumulativeDeaths[n-1])),
		MortalityThroughMay:           int(math.Round(series.CumulativeDeaths[mayStep-1])),
		DayICUCapReached:              icuCapStep(series.ICUBedDemand, float64(p.NICUBeds)),
		MaxICUDemand:                  int(math.Round(floats.Max(series.ICUBedDemand))),
		DayOfPeakInfections:           peakIdx + 1,
		RtEstimate:                    rt,
		ExtraVulnerableDistancingDays: extra,
	}
	return s, nil
}

// icuCapStep returns the 1-based first step at which ICU demand meets or
// exceeds capacity, or nil when it never does.
func icuCapStep(demand []float64, capacity float64) *int {
	for i, v := range demand {
		if v >= capacity {
			step := i + 1
			return &step
		}
	}
	return nil
}

// rtEstimate fits log(cumulative infections) against time over the leading
// window and converts the growth rate into a reproduction number via the
// staged exposed and infectious durations.
func rtEstimate(raw *model.RawTrajectory, series *model.ProcessedSeries, p model.ParameterSet) (float64, error) {
	if series.Len() < rtWindow {
		return 0, &model.OutOfRangeError{Series: "cumulative_infections", Index: rtWindow, Len: series.Len()}
	}
	if len(raw.Times) < rtWindow {
		return 0, &model.OutOfRangeError{Series: "time", Index: rtWindow, Len: len(raw.Times)}
	}

	ts := make([]float64, rtWindow)
	logs := make([]float64, rtWindow)
	for i := 0; i < rtWindow; i++ {
		v := series.CumulativeInfections[i]
		if v <= 0 {
			return 0, &model.RtEstimationError{Step: i + 1, Value: v}
		}
		ts[i] = raw.Times[i]
		logs[i] = math.Log(v)
	}

	_, slope := stat.LinearRegression(ts, logs, nil, false)

	avgExposed := float64(p.NExposedStates) / (p.ExposedTransitionRate / p.Timestep)
	avgInfectious := float64(p.NInfectedStates) / (p.InfectedTransitionRate / p.Timestep)

	rt := (1 + slope*avgInfectious) * (1 + slope*avgExposed)
	return math.Round(rt*100) / 100, nil
}

// extraVulnerableDays measures how many steps the 60+ group keeps distancing
// past the last general intervention step. Nil when the behaviour is
// disabled by a negative days-past-peak parameter.
func extraVulnerableDays(raw *model.RawTrajectory, p model.ParameterSet) (*int, error) {
	if p.SixtyPlusDaysPastPeak < 0 {
		return nil, nil
	}

	lastSixty := lastActive(raw.SixtyPlusDistancing)
	if lastSixty < 0 {
		return nil, &model.IndicatorNotFoundError{Indicator: "sixty_plus_distancing"}
	}
	lastGeneral := -1
	for i := range raw.SocialDistancing {
		if raw.SocialDistancing[i] > 0 || raw.ShelterInPlace[i] > 0 {
			lastGeneral = i
		}
	}
	if lastGeneral < 0 {
		return nil, &model.IndicatorNotFoundError{Indicator: "social_distancing"}
	}

	days := lastSixty - lastGeneral
	return &days, nil
}

// lastActive returns the index of the last non-zero entry, or -1.
func lastActive(indicator []float64) int {
	for i := len(indicator) - 1; i >= 0; i-- {
		if indicator[i] > 0 {
			return i
		}
	}
	return -1
}
