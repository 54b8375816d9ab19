package responses

import "time"

type Schedule struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type DoctorSchedule struct {
	ID         string    `json:"id"`
	DoctorID   string    `json:"doctor_id"`
	ScheduleID string    `json:"schedule_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	IsBooked   bool      `json:"is_booked"`
}
