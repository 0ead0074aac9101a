package seir

import "epidemic-scenarios/internal/model"

// Baseline parameterization of the staged SEIR model. Intervention offsets
// are placeholders here; the scenario runner overrides all four per run.
const (
	defaultPopulation = 5_822_000
	defaultTimestep   = 0.5

	defaultExposedStates   = 3
	defaultExposedRate     = 0.3
	defaultInfectedStates  = 3
	defaultInfectedRate    = 0.375
	defaultBeta            = 0.6
	defaultContactFracSD   = 0.6
	defaultContactFracSIP  = 0.35
	defaultHospFrac        = 0.06
	defaultICUFrac         = 0.35
	defaultICUFatalityFrac = 0.5
	defaultHospExitRate    = 0.2
	defaultICUExitRate     = 0.1

	defaultSixtyPlusDaysPastPeak = 60

	initialExposed = 100
)

// Defaults builds the baseline parameter set for the given ICU bed capacity.
func Defaults(icuBeds int) model.ParameterSet {
	p := model.ParameterSet{
		N:        defaultPopulation,
		Timestep: defaultTimestep,
		NICUBeds: icuBeds,

		NExposedStates:         defaultExposedStates,
		ExposedTransitionRate:  defaultExposedRate,
		NInfectedStates:        defaultInfectedStates,
		InfectedTransitionRate: defaultInfectedRate,

		SixtyPlusDaysPastPeak: defaultSixtyPlusDaysPastPeak,

		Beta:            defaultBeta,
		ContactFracSD:   defaultContactFracSD,
		ContactFracSIP:  defaultContactFracSIP,
		HospFrac:        defaultHospFrac,
		ICUFrac:         defaultICUFrac,
		ICUFatalityFrac: defaultICUFatalityFrac,
		HospExitRate:    defaultHospExitRate,
		ICUExitRate:     defaultICUExitRate,
	}
	p.InitVec = initVec(p)
	return p
}

// initVec seeds the population into S with a small exposed cohort in E1.
func initVec(p model.ParameterSet) []float64 {
	v := make([]float64, StateWidth(p))
	v[idxS] = p.N - initialExposed
	v[idxE0] = initialExposed
	return v
}
