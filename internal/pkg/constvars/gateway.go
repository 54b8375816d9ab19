package constvars

// Stripe event types and statuses the reconciler understands.
const (
	StripeEventCheckoutCompleted = "checkout.session.completed"
	StripeEventCheckoutExpired   = "checkout.session.expired"

	StripePaymentStatusPaid   = "paid"
	StripePaymentStatusUnpaid = "unpaid"
)

const (
	GatewayMetadataAppointmentIDKey = "appointment_id"
	GatewayMetadataPaymentIDKey     = "payment_id"
)
