package requests

type CreateAppointmentRequest struct {
	DoctorID   string `json:"doctor_id" validate:"required,object_id"`
	ScheduleID string `json:"schedule_id" validate:"required,object_id"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,appointment_status"`
}

type FindAllAppointmentsRequest struct {
	Pagination
	Date          string
	Status        string
	PaymentStatus string
}
