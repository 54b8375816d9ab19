package constvars

// Client-facing messages. Kept intentionally generic so internal details never leak.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "You are not logged in, please log in first"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again later"
	ErrClientPatientNotFound               = "No patient profile found for this account"
	ErrClientDoctorNotFound                = "Doctor not found or no longer available"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientScheduleNotFound              = "Schedule not found"
	ErrClientSlotUnavailable               = "Requested time slot is already booked or not available"
	ErrClientSlotInUse                     = "Cannot delete a slot that is currently booked"
	ErrClientAppointmentAlreadyPaid        = "This appointment has already been paid"
	ErrClientAppointmentCanceled           = "This appointment has been canceled"
	ErrClientInvalidStatusTransition       = "The requested status change is not allowed"
	ErrClientPaymentGatewayUnavailable     = "Payment provider is temporarily unavailable, please retry the payment"
	ErrClientTooManyPaymentAttempts        = "Too many payment attempts, please wait a moment and try again"
	ErrClientWebhookSignatureInvalid       = "Webhook signature verification failed"
)

// Developer messages logged alongside errors.
const (
	ErrDevValidationFailed            = "Request validation failed"
	ErrDevCannotParseJSON             = "Failed to parse JSON payload"
	ErrDevCannotMarshalJSON           = "Failed to marshal value to JSON"
	ErrDevCannotParseTime             = "Failed to parse date/time value"
	ErrDevReadBody                    = "Failed to read request body"
	ErrDevMissingRequestID            = "Request ID missing from context"
	ErrDevMissingSessionData          = "Session data missing from context"
	ErrDevAuthTokenMissing            = "Authorization token is missing"
	ErrDevAuthTokenInvalid            = "Authorization token is invalid"
	ErrDevAuthTokenInvalidOrExpired   = "Authorization token is invalid or expired"
	ErrDevAuthSigningMethod           = "Unexpected JWT signing method"
	ErrDevAuthInvalidSession          = "Session not found or expired"
	ErrDevRoleTypeDoesntMatch         = "Caller role does not match the required role"
	ErrDevServerDeadlineExceeded      = "Server deadline exceeded"
	ErrDevPatientNotFound             = "Patient record not found"
	ErrDevDoctorNotFound              = "Doctor record not found or soft-deleted"
	ErrDevAppointmentNotFound         = "Appointment record not found"
	ErrDevPaymentNotFound             = "Payment record not found"
	ErrDevScheduleNotFound            = "Schedule record not found"
	ErrDevSlotUnavailable             = "Slot reservation precondition failed (already booked or missing)"
	ErrDevSlotInUse                   = "Slot deletion rejected: slot is booked"
	ErrDevInvalidStatusTransition     = "Undefined appointment status transition"
	ErrDevPaymentAlreadyPaid          = "Payment is already in PAID state"
	ErrDevAppointmentCanceled         = "Appointment is in CANCELED state"
	ErrDevPaymentCorrelationMismatch  = "Webhook correlation metadata does not match stored payment"
	ErrDevGatewayCreateSession        = "Payment gateway checkout session creation failed"
	ErrDevTooManyPaymentAttempts      = "Initiate-payment rate limit exceeded"
	ErrDevGatewayWebhookSignature     = "Payment gateway webhook signature verification failed"
	ErrDevDBNotObjectID               = "Value is not a valid object ID"
	ErrDevDBFailedToFindDocument      = "Database failed to find document"
	ErrDevDBFailedToInsertDocument    = "Database failed to insert document"
	ErrDevDBFailedToUpdateDocument    = "Database failed to update document"
	ErrDevDBFailedToDeleteDocument    = "Database failed to delete document"
	ErrDevDBFailedToIterateDocuments  = "Database failed to iterate documents"
	ErrDevDBFailedToStartTransaction  = "Database failed to start transaction"
	ErrDevDBFailedToCommitTransaction = "Database transaction failed"
	ErrDevRedisGetData                = "Redis failed to get data"
	ErrDevRedisSetData                = "Redis failed to set data"
	ErrDevRedisDeleteData             = "Redis failed to delete data"
	ErrDevRedisIncrementValue         = "Redis failed to increment value"
	ErrDevRedisUnlock                 = "Redis failed to release lock"
	ErrDevQueuePublish                = "Failed to publish message to queue"
	ErrDevQueueConsume                = "Failed to consume messages from queue"
)

const ResponseUnknown = "unknown"
