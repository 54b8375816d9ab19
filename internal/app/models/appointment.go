package models

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCanceled  AppointmentStatus = "CANCELED"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// allowedStatusTransitions is the full set of legal appointment status
// moves. Anything not listed here is rejected.
var allowedStatusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:   {AppointmentScheduled, AppointmentCompleted, AppointmentCanceled},
	AppointmentScheduled: {AppointmentCompleted, AppointmentCanceled},
	AppointmentCompleted: {},
	AppointmentCanceled:  {},
}

func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range allowedStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return len(allowedStatusTransitions[s]) == 0
}

func (p PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	return p == PaymentUnpaid && target == PaymentPaid
}

type Appointment struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	PatientID       string            `json:"patient_id" bson:"patient_id"`
	DoctorID        string            `json:"doctor_id" bson:"doctor_id"`
	ScheduleID      string            `json:"schedule_id" bson:"schedule_id"`
	AppointmentDate time.Time         `json:"appointment_date" bson:"appointment_date"`
	Status          AppointmentStatus `json:"status" bson:"status"`
	PaymentStatus   PaymentStatus     `json:"payment_status" bson:"payment_status"`
	VideoCallingID  string            `json:"video_calling_id" bson:"video_calling_id"`
	TimeModel       `bson:",inline"`
}
