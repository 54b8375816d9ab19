package constvars

const (
	MongoCollectionSchedules       = "schedules"
	MongoCollectionDoctorSchedules = "doctor_schedules"
	MongoCollectionAppointments    = "appointments"
	MongoCollectionPayments        = "payments"
	MongoCollectionPatients        = "patients"
	MongoCollectionDoctors         = "doctors"
)
