package seir

import "epidemic-scenarios/internal/model"

// State vector layout: S, then NExposedStates exposed stages, then
// NInfectedStates infectious stages, then hospital ward, ICU, recovered,
// dead. Stage counts are parameters, so only the leading indices are fixed.
const (
	idxS  = 0
	idxE0 = 1
)

// StateWidth reports the state vector length implied by the stage counts.
func StateWidth(p model.ParameterSet) int {
	return 2 + p.NExposedStates + p.NInfectedStates + 3
}

func idxI0(p model.ParameterSet) int   { return idxE0 + p.NExposedStates }
func idxHosp(p model.ParameterSet) int { return idxI0(p) + p.NInfectedStates }
func idxICU(p model.ParameterSet) int  { return idxHosp(p) + 1 }
func idxR(p model.ParameterSet) int    { return idxICU(p) + 1 }
func idxD(p model.ParameterSet) int    { return idxR(p) + 1 }

// DerivFunc is the signature the integrator steps: dy/dt at (t, y).
type DerivFunc func(t float64, y []float64, p model.ParameterSet) []float64

// sdActive reports whether general social distancing is in force at day t.
func sdActive(t float64, p model.ParameterSet) bool {
	return t >= p.StartTimeSocialDistancing && t <= p.EndTimeSocialDistancing
}

// sipActive reports whether shelter-in-place is in force at day t.
func sipActive(t float64, p model.ParameterSet) bool {
	return t >= p.StartTimeSIP && t <= p.EndTimeSIP
}

// sixtyPlusActive reports whether the 60+ group is still distancing at day t.
// The group follows the general interventions and, when the days-past-peak
// parameter is non-negative, keeps distancing that many days past the last
// general intervention day.
func sixtyPlusActive(t float64, p model.ParameterSet) bool {
	if sdActive(t, p) || sipActive(t, p) {
		return true
	}
	if p.SixtyPlusDaysPastPeak < 0 {
		return false
	}
	lastGeneral := p.EndTimeSocialDistancing
	if p.EndTimeSIP > lastGeneral {
		lastGeneral = p.EndTimeSIP
	}
	start := p.StartTimeSocialDistancing
	if p.StartTimeSIP < start {
		start = p.StartTimeSIP
	}
	return t >= start && t <= lastGeneral+p.SixtyPlusDaysPastPeak
}

// contactFrac is the transmission multiplier in force at day t.
// Shelter-in-place dominates social distancing when both are active.
func contactFrac(t float64, p model.ParameterSet) float64 {
	switch {
	case sipActive(t, p):
		return p.ContactFracSIP
	case sdActive(t, p):
		return p.ContactFracSD
	default:
		return 1
	}
}

// Deriv is the staged SEIR right-hand side. Exposed and infectious
// compartments are Erlang-staged chains; exits from the last infectious
// stage split between recovery and the hospital ward, ward exits split
// between recovery and ICU, ICU exits between recovery and death.
func Deriv(t float64, y []float64, p model.ParameterSet) []float64 {
	dy := make([]float64, len(y))

	i0 := idxI0(p)
	hosp := idxHosp(p)
	icu := idxICU(p)
	r := idxR(p)
	d := idxD(p)

	// Per-day per-stage rates; the configured rates are per timestep.
	kE := p.ExposedTransitionRate / p.Timestep
	kI := p.InfectedTransitionRate / p.Timestep

	var infectious float64
	for i := 0; i < p.NInfectedStates; i++ {
		infectious += y[i0+i]
	}

	lambda := p.Beta * contactFrac(t, p) * infectious / p.N

	dy[idxS] = -lambda * y[idxS]

	inflow := lambda * y[idxS]
	for i := 0; i < p.NExposedStates; i++ {
		out := kE * y[idxE0+i]
		dy[idxE0+i] = inflow - out
		inflow = out
	}
	for i := 0; i < p.NInfectedStates; i++ {
		out := kI * y[i0+i]
		dy[i0+i] = inflow - out
		inflow = out
	}

	// inflow is now the exit flux of the last infectious stage.
	toHosp := p.HospFrac * inflow
	hospOut := p.HospExitRate * y[hosp]
	toICU := p.ICUFrac * hospOut
	icuOut := p.ICUExitRate * y[icu]
	toDead := p.ICUFatalityFrac * icuOut

	dy[hosp] = toHosp - hospOut
	dy[icu] = toICU - icuOut
	dy[d] = toDead
	dy[r] = (inflow - toHosp) + (hospOut - toICU) + (icuOut - toDead)

	return dy
}
