package contracts

import (
	"context"
	"medibook-service/internal/app/models"
)

type CreateCheckoutSessionInput struct {
	PaymentID     string
	AppointmentID string
	Amount        int64
	Currency      string
	CustomerEmail string
	Description   string
}

type CheckoutSessionOutput struct {
	SessionID   string
	PaymentLink string
}

type PaymentGatewayService interface {
	CreateCheckoutSession(ctx context.Context, input *CreateCheckoutSessionInput) (*CheckoutSessionOutput, error)
	VerifyWebhookEvent(payload []byte, signatureHeader string) (*models.PaymentGatewayEvent, error)
}
