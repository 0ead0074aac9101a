package model

// ParameterSet holds every tunable of the epidemic model engine. The four
// intervention offsets are overridden per scenario; everything else comes
// from the engine defaults.
type ParameterSet struct {
	N        float64 `json:"n"`
	Timestep float64 `json:"timestep"`
	NICUBeds int     `json:"n_icu_beds"`

	StartTimeSocialDistancing float64 `json:"start_time_social_distancing"`
	EndTimeSocialDistancing   float64 `json:"end_time_social_distancing"`
	StartTimeSIP              float64 `json:"start_time_sip"`
	EndTimeSIP                float64 `json:"end_time_sip"`

	NExposedStates         int     `json:"n_exposed_states"`
	ExposedTransitionRate  float64 `json:"exposed_transition_rate"`
	NInfectedStates        int     `json:"n_infected_states"`
	InfectedTransitionRate float64 `json:"infected_transition_rate"`

	// Days the 60+ group keeps distancing after the general interventions
	// lift. Negative disables the behaviour entirely.
	SixtyPlusDaysPastPeak float64 `json:"sixty_plus_days_past_peak"`

	InitVec []float64 `json:"init_vec"`

	// Transmission and severity, engine-internal.
	Beta                 float64 `json:"beta"`
	ContactFracSD        float64 `json:"contact_frac_sd"`
	ContactFracSIP       float64 `json:"contact_frac_sip"`
	HospFrac             float64 `json:"hosp_frac"`
	ICUFrac              float64 `json:"icu_frac"`
	ICUFatalityFrac      float64 `json:"icu_fatality_frac"`
	HospExitRate         float64 `json:"hosp_exit_rate"`
	ICUExitRate          float64 `json:"icu_exit_rate"`
}
