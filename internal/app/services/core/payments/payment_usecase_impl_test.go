package payments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTransactionExecutor struct {
	calls int
}

func (f *fakeTransactionExecutor) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakePaymentRepository struct {
	payments map[string]*models.Payment
}

func newFakePaymentRepository() *fakePaymentRepository {
	return &fakePaymentRepository{payments: make(map[string]*models.Payment)}
}

func (f *fakePaymentRepository) Insert(ctx context.Context, payment *models.Payment) (string, error) {
	id := fmt.Sprintf("payment-%d", len(f.payments)+1)
	payment.ID = id
	f.payments[id] = payment
	return id, nil
}

func (f *fakePaymentRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, ok := f.payments[paymentID]
	if !ok {
		return nil, nil
	}
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	for _, payment := range f.payments {
		if payment.AppointmentID == appointmentID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepository) UpdateCheckoutSession(ctx context.Context, paymentID, checkoutSessionID string) error {
	if payment, ok := f.payments[paymentID]; ok {
		payment.CheckoutSessionID = checkoutSessionID
	}
	return nil
}

func (f *fakePaymentRepository) MarkPaidIfUnpaid(ctx context.Context, paymentID, transactionID string, gatewayData []byte) (bool, error) {
	payment, ok := f.payments[paymentID]
	if !ok || payment.Status != models.PaymentUnpaid {
		return false, nil
	}
	payment.Status = models.PaymentPaid
	payment.TransactionID = transactionID
	payment.GatewayData = string(gatewayData)
	return true, nil
}

func (f *fakePaymentRepository) ClearCheckoutSessionIfUnpaid(ctx context.Context, paymentID, checkoutSessionID string) (bool, error) {
	payment, ok := f.payments[paymentID]
	if !ok || payment.Status != models.PaymentUnpaid || payment.CheckoutSessionID != checkoutSessionID {
		return false, nil
	}
	payment.CheckoutSessionID = ""
	return true, nil
}

func (f *fakePaymentRepository) DeleteUnpaidByAppointmentID(ctx context.Context, appointmentID string) error {
	for id, payment := range f.payments {
		if payment.AppointmentID == appointmentID && payment.Status == models.PaymentUnpaid {
			delete(f.payments, id)
		}
	}
	return nil
}

type fakeAppointmentRepository struct {
	appointments map[string]*models.Appointment
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{appointments: make(map[string]*models.Appointment)}
}

func (f *fakeAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	id := fmt.Sprintf("appointment-%d", len(f.appointments)+1)
	appointment.ID = id
	f.appointments[id] = appointment
	return id, nil
}

func (f *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepository) FindAll(ctx context.Context, filter *contracts.AppointmentFilter) ([]models.Appointment, int, error) {
	var result []models.Appointment
	for _, appointment := range f.appointments {
		result = append(result, *appointment)
	}
	return result, len(result), nil
}

func (f *fakeAppointmentRepository) UpdateStatus(ctx context.Context, appointmentID string, from, to models.AppointmentStatus) (bool, error) {
	appointment, ok := f.appointments[appointmentID]
	if !ok || appointment.Status != from {
		return false, nil
	}
	appointment.Status = to
	return true, nil
}

func (f *fakeAppointmentRepository) UpdatePaymentStatus(ctx context.Context, appointmentID string, status models.PaymentStatus) error {
	if appointment, ok := f.appointments[appointmentID]; ok {
		appointment.PaymentStatus = status
	}
	return nil
}

func (f *fakeAppointmentRepository) FindUnpaidOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range f.appointments {
		if appointment.PaymentStatus == models.PaymentUnpaid && appointment.CreatedAt.Before(cutoff) {
			result = append(result, *appointment)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepository) DeleteIfUnpaid(ctx context.Context, appointmentID string) (bool, error) {
	appointment, ok := f.appointments[appointmentID]
	if !ok || appointment.PaymentStatus != models.PaymentUnpaid {
		return false, nil
	}
	delete(f.appointments, appointmentID)
	return true, nil
}

func newReconcilerFixture() (*paymentUsecase, *fakePaymentRepository, *fakeAppointmentRepository) {
	paymentRepo := newFakePaymentRepository()
	appointmentRepo := newFakeAppointmentRepository()
	uc := &paymentUsecase{
		TransactionExecutor:   &fakeTransactionExecutor{},
		PaymentRepository:     paymentRepo,
		AppointmentRepository: appointmentRepo,
		InternalConfig:        &config.InternalConfig{},
		Log:                   zap.NewNop(),
	}
	return uc, paymentRepo, appointmentRepo
}

func seedBooking(paymentRepo *fakePaymentRepository, appointmentRepo *fakeAppointmentRepository) (*models.Appointment, *models.Payment) {
	appointment := &models.Appointment{
		PatientID:     "patient-1",
		DoctorID:      "doctor-1",
		ScheduleID:    "schedule-1",
		Status:        models.AppointmentPending,
		PaymentStatus: models.PaymentUnpaid,
	}
	appointmentRepo.Insert(context.Background(), appointment)

	payment := &models.Payment{
		AppointmentID: appointment.ID,
		Amount:        5000,
		Currency:      "usd",
		Status:        models.PaymentUnpaid,
	}
	paymentRepo.Insert(context.Background(), payment)
	return appointment, payment
}

func completedEvent(appointmentID, paymentID string) *models.PaymentGatewayEvent {
	return &models.PaymentGatewayEvent{
		EventID:       "evt-1",
		Type:          constvars.StripeEventCheckoutCompleted,
		SessionID:     "cs-1",
		PaymentStatus: constvars.StripePaymentStatusPaid,
		TransactionID: "pi-1",
		AppointmentID: appointmentID,
		PaymentID:     paymentID,
		RawPayload:    []byte(`{"id":"cs-1","payment_status":"paid"}`),
	}
}

func TestProcessGatewayEventMarksPaymentAndSchedulesAppointment(t *testing.T) {
	uc, paymentRepo, appointmentRepo := newReconcilerFixture()
	appointment, payment := seedBooking(paymentRepo, appointmentRepo)

	err := uc.ProcessGatewayEvent(context.Background(), completedEvent(appointment.ID, payment.ID))
	require.NoError(t, err)

	storedPayment := paymentRepo.payments[payment.ID]
	assert.Equal(t, models.PaymentPaid, storedPayment.Status)
	assert.Equal(t, "pi-1", storedPayment.TransactionID)
	assert.Equal(t, `{"id":"cs-1","payment_status":"paid"}`, storedPayment.GatewayData)

	storedAppointment := appointmentRepo.appointments[appointment.ID]
	assert.Equal(t, models.PaymentPaid, storedAppointment.PaymentStatus)
	assert.Equal(t, models.AppointmentScheduled, storedAppointment.Status)
}

func TestProcessGatewayEventIsIdempotent(t *testing.T) {
	uc, paymentRepo, appointmentRepo := newReconcilerFixture()
	appointment, payment := seedBooking(paymentRepo, appointmentRepo)
	event := completedEvent(appointment.ID, payment.ID)

	require.NoError(t, uc.ProcessGatewayEvent(context.Background(), event))
	require.NoError(t, uc.ProcessGatewayEvent(context.Background(), event))

	storedPayment := paymentRepo.payments[payment.ID]
	assert.Equal(t, models.PaymentPaid, storedPayment.Status)
	assert.Equal(t, "pi-1", storedPayment.TransactionID)
	assert.Equal(t, models.AppointmentScheduled, appointmentRepo.appointments[appointment.ID].Status)
}

func TestProcessGatewayEventRejectsCorrelationMismatch(t *testing.T) {
	uc, paymentRepo, appointmentRepo := newReconcilerFixture()
	_, payment := seedBooking(paymentRepo, appointmentRepo)

	event := completedEvent("appointment-other", payment.ID)
	err := uc.ProcessGatewayEvent(context.Background(), event)
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	assert.Equal(t, models.PaymentUnpaid, paymentRepo.payments[payment.ID].Status)
}

func TestProcessGatewayEventRejectsMissingMetadata(t *testing.T) {
	uc, _, _ := newReconcilerFixture()

	event := completedEvent("", "")
	err := uc.ProcessGatewayEvent(context.Background(), event)
	assert.Error(t, err)
}

func TestProcessGatewayEventUnknownPayment(t *testing.T) {
	uc, _, _ := newReconcilerFixture()

	event := completedEvent("appointment-1", "payment-missing")
	err := uc.ProcessGatewayEvent(context.Background(), event)
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
}

func TestProcessGatewayEventExpiredCheckoutClearsSession(t *testing.T) {
	uc, paymentRepo, appointmentRepo := newReconcilerFixture()
	appointment, payment := seedBooking(paymentRepo, appointmentRepo)
	paymentRepo.payments[payment.ID].CheckoutSessionID = "cs-1"

	event := completedEvent(appointment.ID, payment.ID)
	event.Type = constvars.StripeEventCheckoutExpired
	event.PaymentStatus = constvars.StripePaymentStatusUnpaid

	require.NoError(t, uc.ProcessGatewayEvent(context.Background(), event))

	// The dead session is detached; the booking itself stays untouched.
	storedPayment := paymentRepo.payments[payment.ID]
	assert.Equal(t, models.PaymentUnpaid, storedPayment.Status)
	assert.Empty(t, storedPayment.CheckoutSessionID)
	assert.Equal(t, models.AppointmentPending, appointmentRepo.appointments[appointment.ID].Status)
}

func TestProcessGatewayEventExpiredCheckoutAfterPaymentIsNoOp(t *testing.T) {
	uc, paymentRepo, appointmentRepo := newReconcilerFixture()
	appointment, payment := seedBooking(paymentRepo, appointmentRepo)
	paymentRepo.payments[payment.ID].CheckoutSessionID = "cs-1"

	require.NoError(t, uc.ProcessGatewayEvent(context.Background(), completedEvent(appointment.ID, payment.ID)))

	expired := completedEvent(appointment.ID, payment.ID)
	expired.Type = constvars.StripeEventCheckoutExpired
	expired.PaymentStatus = constvars.StripePaymentStatusUnpaid

	require.NoError(t, uc.ProcessGatewayEvent(context.Background(), expired))

	storedPayment := paymentRepo.payments[payment.ID]
	assert.Equal(t, models.PaymentPaid, storedPayment.Status)
	assert.Equal(t, "cs-1", storedPayment.CheckoutSessionID)
}

func TestProcessGatewayEventExpiredSupersededSessionIsNoOp(t *testing.T) {
	uc, paymentRepo, appointmentRepo := newReconcilerFixture()
	appointment, payment := seedBooking(paymentRepo, appointmentRepo)
	// initiate-payment already replaced the session the expiry refers to.
	paymentRepo.payments[payment.ID].CheckoutSessionID = "cs-2"

	expired := completedEvent(appointment.ID, payment.ID)
	expired.Type = constvars.StripeEventCheckoutExpired
	expired.PaymentStatus = constvars.StripePaymentStatusUnpaid
	expired.SessionID = "cs-1"

	require.NoError(t, uc.ProcessGatewayEvent(context.Background(), expired))
	assert.Equal(t, "cs-2", paymentRepo.payments[payment.ID].CheckoutSessionID)
}

func TestProcessGatewayEventKeepsCanceledAppointmentCanceled(t *testing.T) {
	uc, paymentRepo, appointmentRepo := newReconcilerFixture()
	appointment, payment := seedBooking(paymentRepo, appointmentRepo)
	appointmentRepo.appointments[appointment.ID].Status = models.AppointmentCanceled

	err := uc.ProcessGatewayEvent(context.Background(), completedEvent(appointment.ID, payment.ID))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, paymentRepo.payments[payment.ID].Status)
	assert.Equal(t, models.AppointmentCanceled, appointmentRepo.appointments[appointment.ID].Status)
	assert.Equal(t, models.PaymentPaid, appointmentRepo.appointments[appointment.ID].PaymentStatus)
}
