package model

import (
	"errors"
	"fmt"
)

type coded interface{ Code() string }

// ErrorCode maps an error to its taxonomy code, or INTERNAL for anything
// outside the taxonomy.
func ErrorCode(err error) string {
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return "INTERNAL"
}

// InvalidInputError reports a missing or unparseable user input.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Code() string { return "INVALID_INPUT" }

// MalformedTrajectoryError reports engine output that is missing an expected
// column or whose row counts disagree.
type MalformedTrajectoryError struct {
	Column string
	Want   int
	Got    int
	Reason string
}

func (e *MalformedTrajectoryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed trajectory: column %s: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("malformed trajectory: column %s has %d rows, want %d", e.Column, e.Got, e.Want)
}

func (e *MalformedTrajectoryError) Code() string { return "MALFORMED_TRAJECTORY" }

// OutOfRangeError reports a summary computation indexing past the end of a
// series.
type OutOfRangeError struct {
	Series string
	Index  int
	Len    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("series %s has %d steps, step %d requested", e.Series, e.Len, e.Index)
}

func (e *OutOfRangeError) Code() string { return "OUT_OF_RANGE" }

// RtEstimationError reports a non-positive cumulative infection count inside
// the regression window.
type RtEstimationError struct {
	Step  int
	Value float64
}

func (e *RtEstimationError) Error() string {
	return fmt.Sprintf("cumulative infections not positive at step %d (%g), cannot fit log-linear growth", e.Step, e.Value)
}

func (e *RtEstimationError) Code() string { return "RT_ESTIMATION" }

// IndicatorNotFoundError reports an intervention indicator that never
// activates although the computation requires it.
type IndicatorNotFoundError struct {
	Indicator string
}

func (e *IndicatorNotFoundError) Error() string {
	return fmt.Sprintf("indicator %s never active over the simulated horizon", e.Indicator)
}

func (e *IndicatorNotFoundError) Code() string { return "INDICATOR_NOT_FOUND" }
