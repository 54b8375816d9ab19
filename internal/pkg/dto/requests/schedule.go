package requests

type CreateSchedulesRequest struct {
	StartDate       string `json:"start_date" validate:"required,date_only"`
	EndDate         string `json:"end_date" validate:"required,date_only"`
	StartTime       string `json:"start_time" validate:"required,clock_time"`
	EndTime         string `json:"end_time" validate:"required,clock_time"`
	IntervalMinutes int    `json:"interval_minutes" validate:"omitempty,min=1"`
}

type CreateDoctorSchedulesRequest struct {
	ScheduleIDs []string `json:"schedule_ids" validate:"required,min=1,dive,object_id"`
}
