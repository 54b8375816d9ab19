package constvars

const (
	CreateAppointmentSuccessMessage     = "Successfully created appointment"
	GetAppointmentSuccessMessage        = "Successfully retrieved appointments"
	UpdateAppointmentSuccessMessage     = "Successfully updated appointment status"
	InitiatePaymentSuccessMessage       = "Successfully initiated payment"
	CreateScheduleSuccessMessage        = "Successfully created schedules"
	GetScheduleSuccessMessage           = "Successfully retrieved schedules"
	CreateDoctorScheduleSuccessMessage  = "Successfully published doctor schedules"
	GetDoctorScheduleSuccessMessage     = "Successfully retrieved doctor schedules"
	DeleteDoctorScheduleSuccessMessage  = "Successfully deleted doctor schedule"
	WebhookEventReceivedSuccessMessage  = "Webhook event received successfully"
)
