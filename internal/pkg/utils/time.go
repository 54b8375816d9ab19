package utils

import (
	"time"
)

const clockTimeLayout = "15:04"

// CombineDateAndClock anchors an "HH:MM" value onto the given calendar date
// in the date's location.
func CombineDateAndClock(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(clockTimeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), nil
}
