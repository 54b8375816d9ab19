package payment_gateway

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

var (
	stripeServiceInstance contracts.PaymentGatewayService
	onceStripeService     sync.Once
)

type stripeService struct {
	SuccessUrl       string
	CancelUrl        string
	WebhookSecret    string
	TimeoutInSeconds int
	Log              *zap.Logger
}

func NewStripeService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	onceStripeService.Do(func() {
		stripe.Key = internalConfig.PaymentGateway.SecretKey
		stripeServiceInstance = &stripeService{
			SuccessUrl:       internalConfig.PaymentGateway.SuccessUrl,
			CancelUrl:        internalConfig.PaymentGateway.CancelUrl,
			WebhookSecret:    internalConfig.PaymentGateway.WebhookSecret,
			TimeoutInSeconds: internalConfig.PaymentGateway.TimeoutInSeconds,
			Log:              logger,
		}
	})
	return stripeServiceInstance
}

func (s *stripeService) CreateCheckoutSession(ctx context.Context, input *contracts.CreateCheckoutSessionInput) (*contracts.CheckoutSessionOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.TimeoutInSeconds)*time.Second)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.SuccessUrl),
		CancelURL:  stripe.String(s.CancelUrl),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(input.Currency),
					UnitAmount: stripe.Int64(input.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(input.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if input.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(input.CustomerEmail)
	}
	params.AddMetadata(constvars.GatewayMetadataAppointmentIDKey, input.AppointmentID)
	params.AddMetadata(constvars.GatewayMetadataPaymentIDKey, input.PaymentID)
	params.Context = ctx

	checkoutSession, err := session.New(params)
	if err != nil {
		s.Log.Error("stripeService.CreateCheckoutSession error creating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, input.PaymentID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewayCreateSession(err)
	}

	s.Log.Info("stripeService.CreateCheckoutSession created session",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, input.PaymentID),
		zap.String(constvars.LoggingGatewaySessionKey, checkoutSession.ID),
	)

	return &contracts.CheckoutSessionOutput{
		SessionID:   checkoutSession.ID,
		PaymentLink: checkoutSession.URL,
	}, nil
}

func (s *stripeService) VerifyWebhookEvent(payload []byte, signatureHeader string) (*models.PaymentGatewayEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, s.WebhookSecret)
	if err != nil {
		return nil, exceptions.ErrWebhookSignature(err)
	}

	switch string(event.Type) {
	case constvars.StripeEventCheckoutCompleted, constvars.StripeEventCheckoutExpired:
	default:
		s.Log.Info("stripeService.VerifyWebhookEvent ignoring event type",
			zap.String(constvars.LoggingEventTypeKey, string(event.Type)),
		)
		return nil, nil
	}

	var checkoutSession stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	gatewayEvent := &models.PaymentGatewayEvent{
		EventID:       event.ID,
		Type:          string(event.Type),
		SessionID:     checkoutSession.ID,
		PaymentStatus: string(checkoutSession.PaymentStatus),
		AppointmentID: checkoutSession.Metadata[constvars.GatewayMetadataAppointmentIDKey],
		PaymentID:     checkoutSession.Metadata[constvars.GatewayMetadataPaymentIDKey],
		RawPayload:    event.Data.Raw,
	}
	if checkoutSession.PaymentIntent != nil {
		gatewayEvent.TransactionID = checkoutSession.PaymentIntent.ID
	}
	return gatewayEvent, nil
}
