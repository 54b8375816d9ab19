package appointments

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLockerService struct {
	denyLock  bool
	unlocked  int
	refreshed int
}

func (f *fakeLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if f.denyLock {
		return false, "", nil
	}
	return true, "lock-token", nil
}

func (f *fakeLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	f.unlocked++
	return nil
}

func (f *fakeLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	f.refreshed++
	return nil
}

type reaperFixture struct {
	reaper          *Reaper
	locker          *fakeLockerService
	appointmentRepo *fakeAppointmentRepository
	paymentRepo     *fakePaymentRepository
	scheduleRepo    *fakeDoctorScheduleRepository
	clock           time.Time
}

func newReaperFixture(t *testing.T) *reaperFixture {
	t.Helper()

	fixture := &reaperFixture{
		locker:          &fakeLockerService{},
		appointmentRepo: &fakeAppointmentRepository{appointments: make(map[string]*models.Appointment)},
		paymentRepo:     &fakePaymentRepository{payments: make(map[string]*models.Payment)},
		scheduleRepo:    &fakeDoctorScheduleRepository{slots: make(map[string]*models.DoctorSchedule)},
		clock:           time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC),
	}

	cfg := &config.InternalConfig{
		Reaper: config.Reaper{
			CronSpec:             "@every 1m",
			GracePeriodInMinutes: 30,
			BatchSize:            100,
		},
	}

	fixture.reaper = NewReaper(
		zap.NewNop(),
		cfg,
		fixture.locker,
		&fakeTransactionExecutor{},
		fixture.appointmentRepo,
		fixture.paymentRepo,
		fixture.scheduleRepo,
	)
	fixture.reaper.now = func() time.Time { return fixture.clock }
	return fixture
}

// seedUnpaid books a slot and creates an unpaid appointment plus payment,
// aged by the given duration relative to the fixture clock.
func (f *reaperFixture) seedUnpaid(age time.Duration) *models.Appointment {
	scheduleID := "schedule-1"
	f.scheduleRepo.slots[slotKey("doctor-1", scheduleID)] = &models.DoctorSchedule{
		DoctorID:   "doctor-1",
		ScheduleID: scheduleID,
		IsBooked:   true,
	}

	appointment := &models.Appointment{
		PatientID:     "patient-1",
		DoctorID:      "doctor-1",
		ScheduleID:    scheduleID,
		Status:        models.AppointmentPending,
		PaymentStatus: models.PaymentUnpaid,
	}
	appointment.CreatedAt = f.clock.Add(-age)
	f.appointmentRepo.Insert(context.Background(), appointment)

	payment := &models.Payment{
		AppointmentID: appointment.ID,
		Amount:        5000,
		Currency:      "usd",
		Status:        models.PaymentUnpaid,
	}
	f.paymentRepo.Insert(context.Background(), payment)
	return appointment
}

func TestReaperDeletesStaleUnpaidAppointment(t *testing.T) {
	fixture := newReaperFixture(t)
	appointment := fixture.seedUnpaid(45 * time.Minute)

	fixture.reaper.RunOnce(context.Background())

	assert.Empty(t, fixture.appointmentRepo.appointments)
	assert.Empty(t, fixture.paymentRepo.payments)
	assert.False(t, fixture.scheduleRepo.slots[slotKey(appointment.DoctorID, appointment.ScheduleID)].IsBooked)
	assert.Equal(t, 1, fixture.locker.unlocked)
}

func TestReaperRefreshesLeaderLockDuringPass(t *testing.T) {
	fixture := newReaperFixture(t)
	fixture.seedUnpaid(45 * time.Minute)

	fixture.reaper.RunOnce(context.Background())

	// Leadership is extended once per candidate worked through.
	assert.Equal(t, 1, fixture.locker.refreshed)
	assert.Empty(t, fixture.appointmentRepo.appointments)
}

func TestReaperLeavesAppointmentInsideGracePeriod(t *testing.T) {
	fixture := newReaperFixture(t)
	appointment := fixture.seedUnpaid(10 * time.Minute)

	fixture.reaper.RunOnce(context.Background())

	require.Contains(t, fixture.appointmentRepo.appointments, appointment.ID)
	assert.True(t, fixture.scheduleRepo.slots[slotKey(appointment.DoctorID, appointment.ScheduleID)].IsBooked)
}

func TestReaperGracePeriodBoundary(t *testing.T) {
	fixture := newReaperFixture(t)
	// Exactly at the cutoff: not strictly older, so left alone.
	appointment := fixture.seedUnpaid(30 * time.Minute)

	fixture.reaper.RunOnce(context.Background())
	require.Contains(t, fixture.appointmentRepo.appointments, appointment.ID)

	// One minute later it is past the cutoff and gets reaped.
	fixture.clock = fixture.clock.Add(time.Minute)
	fixture.reaper.RunOnce(context.Background())
	assert.Empty(t, fixture.appointmentRepo.appointments)
}

func TestReaperSkipsAppointmentPaidDuringPass(t *testing.T) {
	fixture := newReaperFixture(t)
	appointment := fixture.seedUnpaid(45 * time.Minute)

	// Payment lands between candidate selection and the conditioned delete.
	fixture.appointmentRepo.appointments[appointment.ID].PaymentStatus = models.PaymentPaid

	err := fixture.reaper.reapOne(context.Background(), appointment)
	require.NoError(t, err)

	require.Contains(t, fixture.appointmentRepo.appointments, appointment.ID)
	assert.True(t, fixture.scheduleRepo.slots[slotKey(appointment.DoctorID, appointment.ScheduleID)].IsBooked)
	assert.Len(t, fixture.paymentRepo.payments, 1)
}

func TestReaperDoesNothingWithoutLeaderLock(t *testing.T) {
	fixture := newReaperFixture(t)
	fixture.locker.denyLock = true
	appointment := fixture.seedUnpaid(45 * time.Minute)

	fixture.reaper.RunOnce(context.Background())

	require.Contains(t, fixture.appointmentRepo.appointments, appointment.ID)
	assert.Equal(t, 0, fixture.locker.unlocked)
}
