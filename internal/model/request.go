package model

// RunRequest is the immutable snapshot of the two date inputs taken when the
// user triggers a run. Later form edits never touch a request that has
// already been captured.
type RunRequest struct {
	SIPEndDate string `json:"sip_end_date"`
	SDEndDate  string `json:"sd_end_date"`
}
