package payments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type paymentUsecase struct {
	TransactionExecutor   contracts.TransactionExecutor
	PaymentRepository     contracts.PaymentRepository
	AppointmentRepository contracts.AppointmentRepository
	PaymentGatewayService contracts.PaymentGatewayService
	EventQueue            contracts.EventQueue
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	transactionExecutor contracts.TransactionExecutor,
	paymentRepository contracts.PaymentRepository,
	appointmentRepository contracts.AppointmentRepository,
	paymentGatewayService contracts.PaymentGatewayService,
	eventQueue contracts.EventQueue,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			TransactionExecutor:   transactionExecutor,
			PaymentRepository:     paymentRepository,
			AppointmentRepository: appointmentRepository,
			PaymentGatewayService: paymentGatewayService,
			EventQueue:            eventQueue,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

// HandleWebhookEvent verifies the signature before anything else touches
// the payload. A verified event is queued durably and applied by the
// worker; the webhook response never waits on database writes.
func (uc *paymentUsecase) HandleWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.HandleWebhookEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	event, err := uc.PaymentGatewayService.VerifyWebhookEvent(payload, signatureHeader)
	if err != nil {
		uc.Log.Error("paymentUsecase.HandleWebhookEvent signature verification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if event == nil {
		uc.Log.Info("paymentUsecase.HandleWebhookEvent event type not handled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	if err := uc.EventQueue.Publish(ctx, uc.InternalConfig.App.PaymentEventQueue, body); err != nil {
		uc.Log.Error("paymentUsecase.HandleWebhookEvent error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("paymentUsecase.HandleWebhookEvent event queued",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingGatewaySessionKey, event.SessionID),
	)
	return nil
}

// ProcessGatewayEvent reconciles one verified gateway event against stored
// records. Events correlate through the checkout session metadata only;
// the stored payment is the source of truth for what the event may touch.
func (uc *paymentUsecase) ProcessGatewayEvent(ctx context.Context, event *models.PaymentGatewayEvent) error {
	uc.Log.Info("paymentUsecase.ProcessGatewayEvent called",
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingPaymentIDKey, event.PaymentID),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
	)

	switch event.Type {
	case constvars.StripeEventCheckoutCompleted:
	case constvars.StripeEventCheckoutExpired:
		return uc.revertExpiredCheckout(ctx, event)
	default:
		uc.Log.Info("paymentUsecase.ProcessGatewayEvent event type not handled, nothing to apply",
			zap.String(constvars.LoggingEventTypeKey, event.Type),
		)
		return nil
	}
	if event.PaymentStatus != constvars.StripePaymentStatusPaid {
		uc.Log.Info("paymentUsecase.ProcessGatewayEvent checkout completed without payment",
			zap.String(constvars.LoggingPaymentStatusKey, event.PaymentStatus),
		)
		return nil
	}

	if event.PaymentID == "" || event.AppointmentID == "" {
		return exceptions.ErrPaymentCorrelationMismatch(fmt.Errorf("event %s is missing correlation metadata", event.EventID))
	}

	payment, err := uc.PaymentRepository.FindByID(ctx, event.PaymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s referenced by event %s not found", event.PaymentID, event.EventID))
	}
	if payment.AppointmentID != event.AppointmentID {
		return exceptions.ErrPaymentCorrelationMismatch(fmt.Errorf("payment %s belongs to appointment %s, event claims %s", payment.ID, payment.AppointmentID, event.AppointmentID))
	}

	err = uc.TransactionExecutor.WithTransaction(ctx, func(txCtx context.Context) error {
		marked, err := uc.PaymentRepository.MarkPaidIfUnpaid(txCtx, payment.ID, event.TransactionID, event.RawPayload)
		if err != nil {
			return err
		}
		if !marked {
			uc.Log.Info("paymentUsecase.ProcessGatewayEvent payment already settled, skipping",
				zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			)
			return nil
		}

		if err := uc.AppointmentRepository.UpdatePaymentStatus(txCtx, payment.AppointmentID, models.PaymentPaid); err != nil {
			return err
		}

		appointment, err := uc.AppointmentRepository.FindByID(txCtx, payment.AppointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s referenced by payment %s not found", payment.AppointmentID, payment.ID))
		}
		if !appointment.Status.CanTransitionTo(models.AppointmentScheduled) {
			// Payment stays recorded; a canceled or completed appointment
			// does not move back to scheduled.
			uc.Log.Info("paymentUsecase.ProcessGatewayEvent appointment not schedulable, keeping status",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.String(constvars.LoggingStatusKey, string(appointment.Status)),
			)
			return nil
		}

		scheduled, err := uc.AppointmentRepository.UpdateStatus(txCtx, payment.AppointmentID, appointment.Status, models.AppointmentScheduled)
		if err != nil {
			return err
		}
		if !scheduled {
			uc.Log.Info("paymentUsecase.ProcessGatewayEvent appointment status changed concurrently, keeping payment",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			)
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.ProcessGatewayEvent transaction failed",
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("paymentUsecase.ProcessGatewayEvent payment reconciled",
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String(constvars.LoggingAppointmentIDKey, payment.AppointmentID),
		zap.String(constvars.LoggingTransactionIDKey, event.TransactionID),
	)
	return nil
}

// revertExpiredCheckout detaches an expired checkout session from its
// payment so a later initiate-payment call starts clean. Only a session
// that is still the payment's current one, on a payment that is still
// unpaid, gets cleared; a completion that raced ahead wins.
func (uc *paymentUsecase) revertExpiredCheckout(ctx context.Context, event *models.PaymentGatewayEvent) error {
	if event.PaymentID == "" {
		uc.Log.Info("paymentUsecase.revertExpiredCheckout event has no payment metadata, nothing to revert",
			zap.String(constvars.LoggingEventTypeKey, event.Type),
		)
		return nil
	}

	payment, err := uc.PaymentRepository.FindByID(ctx, event.PaymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		uc.Log.Info("paymentUsecase.revertExpiredCheckout payment no longer exists, nothing to revert",
			zap.String(constvars.LoggingPaymentIDKey, event.PaymentID),
		)
		return nil
	}
	if event.AppointmentID != "" && payment.AppointmentID != event.AppointmentID {
		return exceptions.ErrPaymentCorrelationMismatch(fmt.Errorf("payment %s belongs to appointment %s, event claims %s", payment.ID, payment.AppointmentID, event.AppointmentID))
	}

	cleared, err := uc.PaymentRepository.ClearCheckoutSessionIfUnpaid(ctx, payment.ID, event.SessionID)
	if err != nil {
		return err
	}
	if !cleared {
		uc.Log.Info("paymentUsecase.revertExpiredCheckout session already settled or replaced, skipping",
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.String(constvars.LoggingGatewaySessionKey, event.SessionID),
		)
		return nil
	}

	uc.Log.Info("paymentUsecase.revertExpiredCheckout checkout session cleared",
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String(constvars.LoggingGatewaySessionKey, event.SessionID),
	)
	return nil
}
