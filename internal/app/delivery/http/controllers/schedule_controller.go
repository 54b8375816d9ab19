package controllers

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ScheduleController struct {
	Log             *zap.Logger
	ScheduleUsecase contracts.ScheduleUsecase
}

var (
	scheduleControllerInstance *ScheduleController
	onceScheduleController     sync.Once
)

func NewScheduleController(logger *zap.Logger, scheduleUsecase contracts.ScheduleUsecase) *ScheduleController {
	onceScheduleController.Do(func() {
		instance := &ScheduleController{
			Log:             logger,
			ScheduleUsecase: scheduleUsecase,
		}
		scheduleControllerInstance = instance
	})
	return scheduleControllerInstance
}

func (ctrl *ScheduleController) CreateSchedules(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ScheduleController.CreateSchedules requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ScheduleController.CreateSchedules called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request := new(requests.CreateSchedulesRequest)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ScheduleUsecase.CreateSchedules(ctx, sessionData, request)
	if err != nil {
		ctrl.Log.Error("ScheduleController.CreateSchedules error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ScheduleController.CreateSchedules succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCreatedCountKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateScheduleSuccessMessage, response)
}

func (ctrl *ScheduleController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ScheduleController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ScheduleController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	schedules, total, err := ctrl.ScheduleUsecase.FindAll(ctx, pagination)
	if err != nil {
		ctrl.Log.Error("ScheduleController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	baseURL := fmt.Sprintf("%s%s", r.Host, r.URL.Path)
	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, baseURL)

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetScheduleSuccessMessage, paginationResponse, schedules)
}
