package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingSessionDataKey     = "session_data"
	LoggingQueryParamsKey     = "query_params"
	LoggingResponseKey        = "response"
	LoggingRequestKey         = "request"
	LoggingResponseLengthKey  = "response_length"
	LoggingAppointmentIDKey   = "appointment_id"
	LoggingPaymentIDKey       = "payment_id"
	LoggingPatientIDKey       = "patient_id"
	LoggingDoctorIDKey        = "doctor_id"
	LoggingScheduleIDKey      = "schedule_id"
	LoggingTransactionIDKey   = "transaction_id"
	LoggingEventTypeKey       = "event_type"
	LoggingGatewaySessionKey  = "gateway_session_id"
	LoggingSlotsCountKey      = "slots_count"
	LoggingReapedCountKey     = "reaped_count"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingRedisKey           = "redis_key"
	LoggingLockValueKey       = "lock_value"
	LoggingLockExpirationKey  = "lock_expiration"
	LoggingPaymentStatusKey   = "payment_status"
	LoggingAppointmentsKey    = "appointments"
	LoggingCutoffKey          = "cutoff"
	LoggingQueueKey           = "queue"
	LoggingPaymentLinkKey     = "payment_link"
	LoggingAppointmentCntKey  = "appointment_count"
	LoggingResponseCountKey   = "response_count"
	LoggingScheduleIDsCntKey  = "schedule_ids_count"
	LoggingCreatedCountKey    = "created_count"
	LoggingPublishedCountKey  = "published_count"
	LoggingStatusKey          = "status"
	LoggingTargetStatusKey    = "target_status"
)
