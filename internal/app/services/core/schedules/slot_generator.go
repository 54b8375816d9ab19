package schedules

import (
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"time"
)

// GenerateTimeSlots expands a date range and a daily wall-clock window into
// dated slots of intervalMinutes each. Every day from startDate through
// endDate inclusive gets the same window; a trailing remainder shorter than
// the interval is dropped. A window that yields no full slot, or a date
// range that is already over, produces an empty result rather than an
// error. A non-positive interval falls back to the default.
func GenerateTimeSlots(startDate, endDate, startTime, endTime string, intervalMinutes int) ([]models.Schedule, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = constvars.DefaultSlotIntervalInMinutes
	}

	firstDay, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	lastDay, err := time.Parse(time.DateOnly, endDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}

	interval := time.Duration(intervalMinutes) * time.Minute
	slots := make([]models.Schedule, 0)
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		dayStart, err := utils.CombineDateAndClock(day, startTime)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err)
		}
		dayEnd, err := utils.CombineDateAndClock(day, endTime)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err)
		}

		for cursor := dayStart; !cursor.Add(interval).After(dayEnd); cursor = cursor.Add(interval) {
			slots = append(slots, models.Schedule{
				StartTime: cursor,
				EndTime:   cursor.Add(interval),
			})
		}
	}
	return slots, nil
}
