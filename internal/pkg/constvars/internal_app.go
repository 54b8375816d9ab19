package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
)

const (
	RolePatient = "PATIENT"
	RoleDoctor  = "DOCTOR"
	RoleAdmin   = "ADMIN"
)

const (
	ResourceAppointments    = "appointments"
	ResourceSchedules       = "schedules"
	ResourceDoctorSchedules = "doctor-schedules"
	ResourcePayments        = "payments"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	DefaultSlotIntervalInMinutes = 30
)
