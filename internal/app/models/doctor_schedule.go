package models

// DoctorSchedule binds a doctor to a slot template. The unique index on
// (doctor_id, schedule_id) guarantees a doctor publishes each slot once.
type DoctorSchedule struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	DoctorID   string `json:"doctor_id" bson:"doctor_id"`
	ScheduleID string `json:"schedule_id" bson:"schedule_id"`
	IsBooked   bool   `json:"is_booked" bson:"is_booked"`
	TimeModel  `bson:",inline"`
}
