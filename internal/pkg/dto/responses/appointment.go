package responses

import "time"

type Appointment struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	ScheduleID      string    `json:"schedule_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	VideoCallingID  string    `json:"video_calling_id,omitempty"`
}

type CreateAppointment struct {
	AppointmentID string `json:"appointment_id"`
	PaymentID     string `json:"payment_id"`
	PaymentLink   string `json:"payment_link,omitempty"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

type InitiatePayment struct {
	AppointmentID string `json:"appointment_id"`
	PaymentID     string `json:"payment_id"`
	PaymentLink   string `json:"payment_link"`
}

type UpdateAppointmentStatus struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
}
