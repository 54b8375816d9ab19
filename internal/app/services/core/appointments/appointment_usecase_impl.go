package appointments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	TransactionExecutor      contracts.TransactionExecutor
	AppointmentRepository    contracts.AppointmentRepository
	PaymentRepository        contracts.PaymentRepository
	DoctorScheduleRepository contracts.DoctorScheduleRepository
	ScheduleRepository       contracts.ScheduleRepository
	PatientRepository        contracts.PatientRepository
	DoctorRepository         contracts.DoctorRepository
	SessionService           contracts.SessionService
	PaymentGatewayService    contracts.PaymentGatewayService
	InternalConfig           *config.InternalConfig
	Log                      *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	transactionExecutor contracts.TransactionExecutor,
	appointmentRepository contracts.AppointmentRepository,
	paymentRepository contracts.PaymentRepository,
	doctorScheduleRepository contracts.DoctorScheduleRepository,
	scheduleRepository contracts.ScheduleRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	sessionService contracts.SessionService,
	paymentGatewayService contracts.PaymentGatewayService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			TransactionExecutor:      transactionExecutor,
			AppointmentRepository:    appointmentRepository,
			PaymentRepository:        paymentRepository,
			DoctorScheduleRepository: doctorScheduleRepository,
			ScheduleRepository:       scheduleRepository,
			PatientRepository:        patientRepository,
			DoctorRepository:         doctorRepository,
			SessionService:           sessionService,
			PaymentGatewayService:    paymentGatewayService,
			InternalConfig:           internalConfig,
			Log:                      logger,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.CreateAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingScheduleIDKey, request.ScheduleID),
	)

	appointment, payment, patient, err := uc.bookAppointment(ctx, sessionData, request)
	if err != nil {
		return nil, err
	}

	checkoutSession, err := uc.PaymentGatewayService.CreateCheckoutSession(ctx, &contracts.CreateCheckoutSessionInput{
		PaymentID:     payment.ID,
		AppointmentID: appointment.ID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		CustomerEmail: patient.Email,
		Description:   fmt.Sprintf("Appointment on %s", appointment.AppointmentDate.Format(time.DateOnly)),
	})
	if err != nil {
		// The reservation stays committed. The patient can retry payment
		// through the initiate-payment endpoint before the reaper fires.
		uc.Log.Error("appointmentUsecase.CreateAppointment gateway session failed after commit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.PaymentRepository.UpdateCheckoutSession(ctx, payment.ID, checkoutSession.SessionID); err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error storing checkout session id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.CreateAppointment booking completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingPaymentLinkKey, checkoutSession.PaymentLink),
	)

	return &responses.CreateAppointment{
		AppointmentID: appointment.ID,
		PaymentID:     payment.ID,
		PaymentLink:   checkoutSession.PaymentLink,
		Status:        string(appointment.Status),
		PaymentStatus: string(appointment.PaymentStatus),
	}, nil
}

func (uc *appointmentUsecase) CreateAppointmentPayLater(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.CreateAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointmentPayLater called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	appointment, payment, _, err := uc.bookAppointment(ctx, sessionData, request)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.CreateAppointmentPayLater booking completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	return &responses.CreateAppointment{
		AppointmentID: appointment.ID,
		PaymentID:     payment.ID,
		Status:        string(appointment.Status),
		PaymentStatus: string(appointment.PaymentStatus),
	}, nil
}

// bookAppointment runs the availability check, appointment creation and
// payment creation as one transaction. The slot reservation filter is the
// only concurrency guard; two competing bookings cannot both flip it.
func (uc *appointmentUsecase) bookAppointment(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*models.Appointment, *models.Payment, *models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, nil, nil, err
	}
	if !session.IsPatient() {
		return nil, nil, nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot book appointments", session.Role))
	}

	patient, err := uc.PatientRepository.FindByID(ctx, session.PatientID)
	if err != nil {
		return nil, nil, nil, err
	}
	if patient == nil {
		return nil, nil, nil, exceptions.ErrPatientNotFound(fmt.Errorf("patient %s not found", session.PatientID))
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, nil, nil, err
	}
	if doctor == nil {
		return nil, nil, nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", request.DoctorID))
	}

	schedule, err := uc.ScheduleRepository.FindByID(ctx, request.ScheduleID)
	if err != nil {
		return nil, nil, nil, err
	}
	if schedule == nil {
		return nil, nil, nil, exceptions.ErrScheduleNotFound(fmt.Errorf("schedule %s not found", request.ScheduleID))
	}

	// The appointment date comes from the slot itself, never the caller.
	slotStart := schedule.StartTime
	appointmentDate := time.Date(slotStart.Year(), slotStart.Month(), slotStart.Day(), 0, 0, 0, 0, slotStart.Location())

	appointment := &models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		ScheduleID:      request.ScheduleID,
		AppointmentDate: appointmentDate,
		Status:          models.AppointmentPending,
		PaymentStatus:   models.PaymentUnpaid,
		VideoCallingID:  utils.GenerateVideoCallingID(),
	}
	payment := &models.Payment{
		Amount:   doctor.Fee,
		Currency: uc.InternalConfig.App.DefaultCurrency,
		Status:   models.PaymentUnpaid,
	}

	err = uc.TransactionExecutor.WithTransaction(ctx, func(txCtx context.Context) error {
		reserved, err := uc.DoctorScheduleRepository.Reserve(txCtx, doctor.ID, request.ScheduleID)
		if err != nil {
			return err
		}
		if !reserved {
			return exceptions.ErrSlotUnavailable(fmt.Errorf("slot %s for doctor %s is not available", request.ScheduleID, doctor.ID))
		}

		appointmentID, err := uc.AppointmentRepository.Insert(txCtx, appointment)
		if err != nil {
			return err
		}
		appointment.ID = appointmentID

		payment.AppointmentID = appointmentID
		paymentID, err := uc.PaymentRepository.Insert(txCtx, payment)
		if err != nil {
			return err
		}
		payment.ID = paymentID
		return nil
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.bookAppointment transaction failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, nil, nil, err
	}

	uc.Log.Info("appointmentUsecase.bookAppointment slot reserved and records created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
	)
	return appointment, payment, patient, nil
}

func (uc *appointmentUsecase) InitiatePayment(ctx context.Context, sessionData, appointmentID string) (*responses.InitiatePayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.InitiatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot initiate payments", session.Role))
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}
	if appointment.PatientID != session.PatientID {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("patient %s does not own appointment %s", session.PatientID, appointmentID))
	}
	if appointment.PaymentStatus == models.PaymentPaid {
		return nil, exceptions.ErrAppointmentAlreadyPaid(fmt.Errorf("appointment %s is already paid", appointmentID))
	}
	if appointment.Status == models.AppointmentCanceled {
		return nil, exceptions.ErrAppointmentCanceled(fmt.Errorf("appointment %s is canceled", appointmentID))
	}

	payment, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("no payment for appointment %s", appointmentID))
	}

	patient, err := uc.PatientRepository.FindByID(ctx, session.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(fmt.Errorf("patient %s not found", session.PatientID))
	}

	checkoutSession, err := uc.PaymentGatewayService.CreateCheckoutSession(ctx, &contracts.CreateCheckoutSessionInput{
		PaymentID:     payment.ID,
		AppointmentID: appointment.ID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		CustomerEmail: patient.Email,
		Description:   fmt.Sprintf("Appointment on %s", appointment.AppointmentDate.Format(time.DateOnly)),
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.InitiatePayment gateway session failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.PaymentRepository.UpdateCheckoutSession(ctx, payment.ID, checkoutSession.SessionID); err != nil {
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.InitiatePayment checkout session created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingGatewaySessionKey, checkoutSession.SessionID),
	)

	return &responses.InitiatePayment{
		AppointmentID: appointment.ID,
		PaymentID:     payment.ID,
		PaymentLink:   checkoutSession.PaymentLink,
	}, nil
}

func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, sessionData, appointmentID string, request *requests.UpdateAppointmentStatusRequest) (*responses.UpdateAppointmentStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingTargetStatusKey, request.Status),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}

	// Status is clinical state; patients never drive it directly.
	switch {
	case session.IsAdmin():
	case session.IsDoctor() && appointment.DoctorID == session.DoctorID:
	default:
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("caller cannot update appointment %s", appointmentID))
	}

	targetStatus := models.AppointmentStatus(request.Status)
	if !appointment.Status.CanTransitionTo(targetStatus) {
		return nil, exceptions.ErrInvalidStatusTransition(fmt.Errorf("cannot move appointment from %s to %s", appointment.Status, targetStatus))
	}

	err = uc.TransactionExecutor.WithTransaction(ctx, func(txCtx context.Context) error {
		// The write is conditioned on the status we validated against, so a
		// concurrent transition makes this match nothing instead of
		// overwriting it.
		updated, err := uc.AppointmentRepository.UpdateStatus(txCtx, appointmentID, appointment.Status, targetStatus)
		if err != nil {
			return err
		}
		if !updated {
			return exceptions.ErrInvalidStatusTransition(fmt.Errorf("appointment %s moved away from %s concurrently", appointmentID, appointment.Status))
		}
		if targetStatus == models.AppointmentCanceled {
			return uc.DoctorScheduleRepository.Release(txCtx, appointment.DoctorID, appointment.ScheduleID)
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateStatus transaction failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.UpdateStatus status updated",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	return &responses.UpdateAppointmentStatus{
		AppointmentID: appointmentID,
		Status:        request.Status,
	}, nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, sessionData string, request *requests.FindAllAppointmentsRequest) ([]responses.Appointment, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, 0, err
	}

	filter := &contracts.AppointmentFilter{
		Status:        request.Status,
		PaymentStatus: request.PaymentStatus,
		Page:          request.Page,
		PageSize:      request.PageSize,
	}
	if session.IsPatient() {
		filter.PatientID = session.PatientID
	} else if session.IsDoctor() {
		filter.DoctorID = session.DoctorID
	}
	if request.Date != "" {
		date, err := time.Parse(time.DateOnly, request.Date)
		if err != nil {
			return nil, 0, exceptions.ErrCannotParseTime(err)
		}
		filter.Date = &date
	}

	appointments, total, err := uc.AppointmentRepository.FindAll(ctx, filter)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAll error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	scheduleTimes, err := uc.collectScheduleTimes(ctx, appointments)
	if err != nil {
		return nil, 0, err
	}

	response := make([]responses.Appointment, 0, len(appointments))
	for _, eachAppointment := range appointments {
		schedule := scheduleTimes[eachAppointment.ScheduleID]
		response = append(response, responses.Appointment{
			ID:              eachAppointment.ID,
			PatientID:       eachAppointment.PatientID,
			DoctorID:        eachAppointment.DoctorID,
			ScheduleID:      eachAppointment.ScheduleID,
			AppointmentDate: eachAppointment.AppointmentDate,
			StartTime:       schedule.StartTime,
			EndTime:         schedule.EndTime,
			Status:          string(eachAppointment.Status),
			PaymentStatus:   string(eachAppointment.PaymentStatus),
			VideoCallingID:  eachAppointment.VideoCallingID,
		})
	}

	uc.Log.Info("appointmentUsecase.FindAll appointments retrieved",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(response)),
	)
	return response, total, nil
}

func (uc *appointmentUsecase) collectScheduleTimes(ctx context.Context, appointments []models.Appointment) (map[string]models.Schedule, error) {
	scheduleTimes := make(map[string]models.Schedule)
	if len(appointments) == 0 {
		return scheduleTimes, nil
	}

	seen := make(map[string]bool)
	scheduleIDs := make([]string, 0, len(appointments))
	for _, eachAppointment := range appointments {
		if !seen[eachAppointment.ScheduleID] {
			seen[eachAppointment.ScheduleID] = true
			scheduleIDs = append(scheduleIDs, eachAppointment.ScheduleID)
		}
	}

	schedules, err := uc.ScheduleRepository.FindByIDs(ctx, scheduleIDs)
	if err != nil {
		return nil, err
	}
	for _, eachSchedule := range schedules {
		scheduleTimes[eachSchedule.ID] = eachSchedule
	}
	return scheduleTimes, nil
}
