package schedules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeSlotsSingleDay(t *testing.T) {
	slots, err := GenerateTimeSlots("2026-09-15", "2026-09-15", "09:00", "11:00", 30)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), slots[0].EndTime)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), slots[3].StartTime)
	assert.Equal(t, time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC), slots[3].EndTime)
}

func TestGenerateTimeSlotsCoversEveryDayInclusive(t *testing.T) {
	slots, err := GenerateTimeSlots("2026-09-14", "2026-09-16", "09:00", "10:00", 30)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	// Two slots per day, each carrying its own calendar date.
	assert.Equal(t, 14, slots[0].StartTime.Day())
	assert.Equal(t, 15, slots[2].StartTime.Day())
	assert.Equal(t, 16, slots[4].StartTime.Day())
	assert.Equal(t, 16, slots[5].EndTime.Day())
}

func TestGenerateTimeSlotsDropsPartialTrailingSlot(t *testing.T) {
	slots, err := GenerateTimeSlots("2026-09-15", "2026-09-15", "09:00", "10:45", 30)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), slots[2].EndTime)
}

func TestGenerateTimeSlotsSlotsAreContiguousWithinDay(t *testing.T) {
	slots, err := GenerateTimeSlots("2026-09-15", "2026-09-15", "08:00", "17:00", 45)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
	}
}

func TestGenerateTimeSlotsZeroIntervalFallsBackToDefault(t *testing.T) {
	slots, err := GenerateTimeSlots("2026-09-15", "2026-09-15", "09:00", "10:00", 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 30*time.Minute, slots[0].EndTime.Sub(slots[0].StartTime))
}

func TestGenerateTimeSlotsEmptyWindowsYieldNoSlots(t *testing.T) {
	testCases := []struct {
		name      string
		startDate string
		endDate   string
		start     string
		end       string
		interval  int
	}{
		{"start time equals end time", "2026-09-15", "2026-09-15", "10:00", "10:00", 30},
		{"start time after end time", "2026-09-15", "2026-09-15", "11:00", "09:00", 30},
		{"start date after end date", "2026-09-16", "2026-09-15", "09:00", "11:00", 30},
		{"window shorter than interval", "2026-09-15", "2026-09-15", "09:00", "09:15", 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := GenerateTimeSlots(tc.startDate, tc.endDate, tc.start, tc.end, tc.interval)
			require.NoError(t, err)
			assert.Empty(t, slots)
		})
	}
}

func TestGenerateTimeSlotsRejectsMalformedInput(t *testing.T) {
	testCases := []struct {
		name      string
		startDate string
		endDate   string
		start     string
		end       string
	}{
		{"malformed start date", "15-09-2026", "2026-09-15", "09:00", "11:00"},
		{"malformed end date", "2026-09-15", "someday", "09:00", "11:00"},
		{"malformed start time", "2026-09-15", "2026-09-15", "9am", "11:00"},
		{"malformed end time", "2026-09-15", "2026-09-15", "09:00", "25:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := GenerateTimeSlots(tc.startDate, tc.endDate, tc.start, tc.end, 30)
			assert.Error(t, err)
			assert.Nil(t, slots)
		})
	}
}
