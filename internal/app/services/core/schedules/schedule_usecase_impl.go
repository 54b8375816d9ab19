package schedules

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
)

type scheduleUsecase struct {
	ScheduleRepository contracts.ScheduleRepository
	SessionService     contracts.SessionService
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	scheduleRepository contracts.ScheduleRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		instance := &scheduleUsecase{
			ScheduleRepository: scheduleRepository,
			SessionService:     sessionService,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
		scheduleUsecaseInstance = instance
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) CreateSchedules(ctx context.Context, sessionData string, request *requests.CreateSchedulesRequest) ([]responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.CreateSchedules called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		uc.Log.Error("scheduleUsecase.CreateSchedules error parsing session data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if !session.IsAdmin() {
		err := exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot create schedules", session.Role))
		uc.Log.Error("scheduleUsecase.CreateSchedules role check failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	intervalMinutes := request.IntervalMinutes
	if intervalMinutes <= 0 {
		intervalMinutes = uc.InternalConfig.App.SlotIntervalInMinutes
	}
	slots, err := GenerateTimeSlots(request.StartDate, request.EndDate, request.StartTime, request.EndTime, intervalMinutes)
	if err != nil {
		uc.Log.Error("scheduleUsecase.CreateSchedules error generating time slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(slots) == 0 {
		// A window too short for a single slot is not an error.
		uc.Log.Info("scheduleUsecase.CreateSchedules window yields no full slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return []responses.Schedule{}, nil
	}

	created, err := uc.ScheduleRepository.InsertMany(ctx, slots)
	if err != nil {
		uc.Log.Error("scheduleUsecase.CreateSchedules error inserting schedules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("scheduleUsecase.CreateSchedules schedules created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotsCountKey, len(created)),
	)

	response := make([]responses.Schedule, 0, len(created))
	for _, eachSchedule := range created {
		response = append(response, responses.Schedule{
			ID:        eachSchedule.ID,
			StartTime: eachSchedule.StartTime,
			EndTime:   eachSchedule.EndTime,
		})
	}
	return response, nil
}

func (uc *scheduleUsecase) FindAll(ctx context.Context, pagination *requests.Pagination) ([]responses.Schedule, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	schedules, total, err := uc.ScheduleRepository.FindAll(ctx, pagination.Page, pagination.PageSize)
	if err != nil {
		uc.Log.Error("scheduleUsecase.FindAll error fetching schedules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	response := make([]responses.Schedule, 0, len(schedules))
	for _, eachSchedule := range schedules {
		response = append(response, responses.Schedule{
			ID:        eachSchedule.ID,
			StartTime: eachSchedule.StartTime,
			EndTime:   eachSchedule.EndTime,
		})
	}
	return response, total, nil
}
