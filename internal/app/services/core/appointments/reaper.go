package appointments

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// reaperLeaderLockKey is the fixed key used to ensure a single reaper leader.
const reaperLeaderLockKey = "reaper:leader"

// Reaper periodically deletes appointments whose payment never arrived
// and returns their slots to the pool.
type Reaper struct {
	log                 *zap.Logger
	cfg                 *config.InternalConfig
	locker              contracts.LockerService
	transactionExecutor contracts.TransactionExecutor
	appointmentRepo     contracts.AppointmentRepository
	paymentRepo         contracts.PaymentRepository
	doctorScheduleRepo  contracts.DoctorScheduleRepository
	now                 func() time.Time
	cron                *cron.Cron
	runCtx              context.Context
	cancel              context.CancelFunc
}

func NewReaper(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	transactionExecutor contracts.TransactionExecutor,
	appointmentRepo contracts.AppointmentRepository,
	paymentRepo contracts.PaymentRepository,
	doctorScheduleRepo contracts.DoctorScheduleRepository,
) *Reaper {
	return &Reaper{
		log:                 log,
		cfg:                 cfg,
		locker:              lockerSvc,
		transactionExecutor: transactionExecutor,
		appointmentRepo:     appointmentRepo,
		paymentRepo:         paymentRepo,
		doctorScheduleRepo:  doctorScheduleRepo,
		now:                 time.Now,
	}
}

// Start begins the periodic loop.
func (r *Reaper) Start(ctx context.Context) {
	r.runCtx, r.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := r.cfg.Reaper.CronSpec
	_, err := c.AddFunc(spec, func() { r.RunOnce(r.runCtx) })
	if err != nil {
		r.log.Warn("reaper: failed to schedule with provided cron spec; falling back to @every 1m", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@every 1m", func() { r.RunOnce(r.runCtx) })
	}
	c.Start()
	r.cron = c
}

// Stop gracefully stops the reaper cron and any in-flight run.
func (r *Reaper) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.cron != nil {
		ctx := r.cron.Stop()
		<-ctx.Done()
	}
}

// RunOnce performs a single reap pass under the leader lock.
func (r *Reaper) RunOnce(ctx context.Context) {
	ttl := 2 * time.Minute
	acquired, token, err := r.locker.TryLock(ctx, reaperLeaderLockKey, ttl)
	if err != nil {
		r.log.Warn("reaper: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		r.log.Info("reaper: leader lock not acquired; another instance is running")
		return
	}
	defer r.locker.Unlock(ctx, reaperLeaderLockKey, token)

	cutoff := r.now().Add(-time.Duration(r.cfg.Reaper.GracePeriodInMinutes) * time.Minute)
	candidates, err := r.appointmentRepo.FindUnpaidOlderThan(ctx, cutoff, r.cfg.Reaper.BatchSize)
	if err != nil {
		r.log.Warn("reaper: candidate query failed", zap.Error(err))
		return
	}
	if len(candidates) == 0 {
		return
	}

	r.log.Info("reaper: reaping stale unpaid appointments",
		zap.Time(constvars.LoggingCutoffKey, cutoff),
		zap.Int(constvars.LoggingAppointmentCntKey, len(candidates)),
	)

	reaped := 0
	for _, candidate := range candidates {
		// Keep leadership alive while working through a long batch.
		if err := r.locker.Refresh(ctx, reaperLeaderLockKey, token, ttl); err != nil {
			r.log.Warn("reaper: leader lock refresh failed, stopping pass", zap.Error(err))
			break
		}
		if err := r.reapOne(ctx, &candidate); err != nil {
			r.log.Warn("reaper: failed to reap appointment",
				zap.String(constvars.LoggingAppointmentIDKey, candidate.ID),
				zap.Error(err),
			)
			continue
		}
		reaped++
	}

	r.log.Info("reaper: pass completed",
		zap.Int(constvars.LoggingReapedCountKey, reaped),
	)
}

// reapOne deletes a single stale appointment. The delete is re-conditioned
// on payment_status inside the transaction, so an appointment paid between
// candidate selection and this call is left alone.
func (r *Reaper) reapOne(ctx context.Context, appointment *models.Appointment) error {
	return r.transactionExecutor.WithTransaction(ctx, func(txCtx context.Context) error {
		deleted, err := r.appointmentRepo.DeleteIfUnpaid(txCtx, appointment.ID)
		if err != nil {
			return err
		}
		if !deleted {
			r.log.Info("reaper: appointment paid in the meantime, skipping",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			)
			return nil
		}

		if err := r.paymentRepo.DeleteUnpaidByAppointmentID(txCtx, appointment.ID); err != nil {
			return err
		}
		return r.doctorScheduleRepo.Release(txCtx, appointment.DoctorID, appointment.ScheduleID)
	})
}
