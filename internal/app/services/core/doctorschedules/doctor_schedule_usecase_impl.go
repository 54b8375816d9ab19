package doctorschedules

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
)

type doctorScheduleUsecase struct {
	DoctorScheduleRepository contracts.DoctorScheduleRepository
	ScheduleRepository       contracts.ScheduleRepository
	SessionService           contracts.SessionService
	Log                      *zap.Logger
}

var (
	doctorScheduleUsecaseInstance contracts.DoctorScheduleUsecase
	onceDoctorScheduleUsecase     sync.Once
)

func NewDoctorScheduleUsecase(
	doctorScheduleRepository contracts.DoctorScheduleRepository,
	scheduleRepository contracts.ScheduleRepository,
	sessionService contracts.SessionService,
	logger *zap.Logger,
) contracts.DoctorScheduleUsecase {
	onceDoctorScheduleUsecase.Do(func() {
		instance := &doctorScheduleUsecase{
			DoctorScheduleRepository: doctorScheduleRepository,
			ScheduleRepository:       scheduleRepository,
			SessionService:           sessionService,
			Log:                      logger,
		}
		doctorScheduleUsecaseInstance = instance
	})
	return doctorScheduleUsecaseInstance
}

func (uc *doctorScheduleUsecase) PublishSchedules(ctx context.Context, sessionData string, request *requests.CreateDoctorSchedulesRequest) ([]responses.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorScheduleUsecase.PublishSchedules called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingScheduleIDsCntKey, len(request.ScheduleIDs)),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		uc.Log.Error("doctorScheduleUsecase.PublishSchedules error parsing session data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if !session.IsDoctor() {
		err := exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot publish doctor schedules", session.Role))
		uc.Log.Error("doctorScheduleUsecase.PublishSchedules role check failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	schedules, err := uc.ScheduleRepository.FindByIDs(ctx, request.ScheduleIDs)
	if err != nil {
		uc.Log.Error("doctorScheduleUsecase.PublishSchedules error fetching schedules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(schedules) != len(request.ScheduleIDs) {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("requested %d schedules, found %d", len(request.ScheduleIDs), len(schedules)))
	}

	scheduleTimes := make(map[string]models.Schedule, len(schedules))
	for _, eachSchedule := range schedules {
		scheduleTimes[eachSchedule.ID] = eachSchedule
	}

	response := make([]responses.DoctorSchedule, 0, len(request.ScheduleIDs))
	for _, scheduleID := range request.ScheduleIDs {
		doctorSchedule := &models.DoctorSchedule{
			DoctorID:   session.DoctorID,
			ScheduleID: scheduleID,
			IsBooked:   false,
		}
		doctorScheduleID, err := uc.DoctorScheduleRepository.Insert(ctx, doctorSchedule)
		if err != nil {
			uc.Log.Error("doctorScheduleUsecase.PublishSchedules error inserting doctor schedule",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingScheduleIDKey, scheduleID),
				zap.Error(err),
			)
			return nil, err
		}
		if doctorScheduleID == "" {
			// Already published by this doctor; keep the existing slot.
			uc.Log.Info("doctorScheduleUsecase.PublishSchedules slot already published, skipping",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingScheduleIDKey, scheduleID),
			)
			continue
		}

		schedule := scheduleTimes[scheduleID]
		response = append(response, responses.DoctorSchedule{
			ID:         doctorScheduleID,
			DoctorID:   session.DoctorID,
			ScheduleID: scheduleID,
			StartTime:  schedule.StartTime,
			EndTime:    schedule.EndTime,
			IsBooked:   false,
		})
	}

	uc.Log.Info("doctorScheduleUsecase.PublishSchedules schedules published",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPublishedCountKey, len(response)),
	)
	return response, nil
}

func (uc *doctorScheduleUsecase) FindByDoctor(ctx context.Context, doctorID string, pagination *requests.Pagination) ([]responses.DoctorSchedule, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorScheduleUsecase.FindByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctorSchedules, total, err := uc.DoctorScheduleRepository.FindByDoctor(ctx, doctorID, pagination.Page, pagination.PageSize)
	if err != nil {
		uc.Log.Error("doctorScheduleUsecase.FindByDoctor error fetching doctor schedules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	scheduleIDs := make([]string, 0, len(doctorSchedules))
	for _, eachDoctorSchedule := range doctorSchedules {
		scheduleIDs = append(scheduleIDs, eachDoctorSchedule.ScheduleID)
	}

	scheduleTimes := make(map[string]models.Schedule)
	if len(scheduleIDs) > 0 {
		schedules, err := uc.ScheduleRepository.FindByIDs(ctx, scheduleIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, eachSchedule := range schedules {
			scheduleTimes[eachSchedule.ID] = eachSchedule
		}
	}

	response := make([]responses.DoctorSchedule, 0, len(doctorSchedules))
	for _, eachDoctorSchedule := range doctorSchedules {
		schedule := scheduleTimes[eachDoctorSchedule.ScheduleID]
		response = append(response, responses.DoctorSchedule{
			ID:         eachDoctorSchedule.ID,
			DoctorID:   eachDoctorSchedule.DoctorID,
			ScheduleID: eachDoctorSchedule.ScheduleID,
			StartTime:  schedule.StartTime,
			EndTime:    schedule.EndTime,
			IsBooked:   eachDoctorSchedule.IsBooked,
		})
	}
	return response, total, nil
}

func (uc *doctorScheduleUsecase) DeleteSchedule(ctx context.Context, sessionData, doctorScheduleID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorScheduleUsecase.DeleteSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, doctorScheduleID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return err
	}

	doctorSchedule, err := uc.DoctorScheduleRepository.FindByID(ctx, doctorScheduleID)
	if err != nil {
		return err
	}
	if doctorSchedule == nil {
		return exceptions.ErrScheduleNotFound(fmt.Errorf("doctor schedule %s not found", doctorScheduleID))
	}

	if !session.IsAdmin() && doctorSchedule.DoctorID != session.DoctorID {
		return exceptions.ErrNotMatchRoleType(fmt.Errorf("doctor %s cannot delete schedule owned by %s", session.DoctorID, doctorSchedule.DoctorID))
	}

	deleted, err := uc.DoctorScheduleRepository.DeleteIfNotBooked(ctx, doctorScheduleID)
	if err != nil {
		uc.Log.Error("doctorScheduleUsecase.DeleteSchedule error deleting doctor schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return exceptions.ErrSlotInUse(fmt.Errorf("doctor schedule %s is booked", doctorScheduleID))
	}

	uc.Log.Info("doctorScheduleUsecase.DeleteSchedule schedule deleted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, doctorScheduleID),
	)
	return nil
}
