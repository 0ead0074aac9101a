package model

// RunResponse is returned for every triggered run.
type RunResponse struct {
	RunMetadata RunMetadata    `json:"run_metadata"`
	Params      ScheduleRecord `json:"params"`
	Summary     Summary        `json:"summary"`
}

// RunMetadata describes the run itself rather than its results.
type RunMetadata struct {
	SessionID   string `json:"session_id"`
	ScenarioID  int    `json:"scenario_id"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`
	DurationMs  int64  `json:"duration_ms"`
	Outcome     string `json:"outcome"`
}

// SessionResponse is returned when a session is created. The disclaimer is
// delivered exactly once, here.
type SessionResponse struct {
	SessionID  string `json:"session_id"`
	Disclaimer string `json:"disclaimer"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
