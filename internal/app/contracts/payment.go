package contracts

import (
	"context"
	"medibook-service/internal/app/models"
)

type PaymentUsecase interface {
	// HandleWebhookEvent verifies the raw gateway payload and enqueues the
	// verified event for asynchronous processing.
	HandleWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) error
	// ProcessGatewayEvent applies a verified gateway event to the stored
	// payment and appointment. It is idempotent.
	ProcessGatewayEvent(ctx context.Context, event *models.PaymentGatewayEvent) error
}

type PaymentRepository interface {
	Insert(ctx context.Context, payment *models.Payment) (string, error)
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error)
	UpdateCheckoutSession(ctx context.Context, paymentID, checkoutSessionID string) error
	// MarkPaidIfUnpaid settles the payment and stores the raw gateway
	// payload alongside it for audit.
	MarkPaidIfUnpaid(ctx context.Context, paymentID, transactionID string, gatewayData []byte) (bool, error)
	// ClearCheckoutSessionIfUnpaid detaches checkoutSessionID from the
	// payment while it is still unpaid and still carries that session.
	ClearCheckoutSessionIfUnpaid(ctx context.Context, paymentID, checkoutSessionID string) (bool, error)
	DeleteUnpaidByAppointmentID(ctx context.Context, appointmentID string) error
}
