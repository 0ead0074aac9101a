// Package schedule turns user-chosen calendar dates into the day offsets the
// epidemic model engine consumes.
package schedule

import (
	"time"

	"epidemic-scenarios/internal/model"
)

const dateLayout = "2006-01-02"

// The model's day 0. Day 1 is 2020-03-22, the day general social distancing
// begins; shelter-in-place follows on day 6.
const EpochDate = "2020-03-21"

const (
	SocialDistancingStartDay = 1
	ShelterInPlaceStartDay   = 6
)

var epoch = mustParse(EpochDate)

func mustParse(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Schedule is a complete intervention schedule in model day offsets.
type Schedule struct {
	SDStart  int
	SDEnd    int
	SIPStart int
	SIPEnd   int
}

// DayOffset converts a calendar date into whole days since the epoch. Dates
// before the epoch yield negative offsets; no clamping is applied.
func DayOffset(field, date string) (int, error) {
	if date == "" {
		return 0, &model.InvalidInputError{Field: field, Value: date, Reason: "date is required"}
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, &model.InvalidInputError{Field: field, Value: date, Reason: "expected YYYY-MM-DD"}
	}
	return int(t.Sub(epoch).Hours() / 24), nil
}

// Build resolves the two end dates against the fixed start days.
func Build(sipEndDate, sdEndDate string) (Schedule, error) {
	sipEnd, err := DayOffset("sip_end_date", sipEndDate)
	if err != nil {
		return Schedule{}, err
	}
	sdEnd, err := DayOffset("sd_end_date", sdEndDate)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{
		SDStart:  SocialDistancingStartDay,
		SDEnd:    sdEnd,
		SIPStart: ShelterInPlaceStartDay,
		SIPEnd:   sipEnd,
	}, nil
}
