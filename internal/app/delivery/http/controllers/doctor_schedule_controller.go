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

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type DoctorScheduleController struct {
	Log                   *zap.Logger
	DoctorScheduleUsecase contracts.DoctorScheduleUsecase
}

var (
	doctorScheduleControllerInstance *DoctorScheduleController
	onceDoctorScheduleController     sync.Once
)

func NewDoctorScheduleController(logger *zap.Logger, doctorScheduleUsecase contracts.DoctorScheduleUsecase) *DoctorScheduleController {
	onceDoctorScheduleController.Do(func() {
		instance := &DoctorScheduleController{
			Log:                   logger,
			DoctorScheduleUsecase: doctorScheduleUsecase,
		}
		doctorScheduleControllerInstance = instance
	})
	return doctorScheduleControllerInstance
}

func (ctrl *DoctorScheduleController) PublishSchedules(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DoctorScheduleController.PublishSchedules requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DoctorScheduleController.PublishSchedules called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request := new(requests.CreateDoctorSchedulesRequest)
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

	response, err := ctrl.DoctorScheduleUsecase.PublishSchedules(ctx, sessionData, request)
	if err != nil {
		ctrl.Log.Error("DoctorScheduleController.PublishSchedules error from usecase",
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

	ctrl.Log.Info("DoctorScheduleController.PublishSchedules succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPublishedCountKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateDoctorScheduleSuccessMessage, response)
}

func (ctrl *DoctorScheduleController) FindByDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DoctorScheduleController.FindByDoctor requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID := chi.URLParam(r, "doctorID")
	ctrl.Log.Info("DoctorScheduleController.FindByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	schedules, total, err := ctrl.DoctorScheduleUsecase.FindByDoctor(ctx, doctorID, pagination)
	if err != nil {
		ctrl.Log.Error("DoctorScheduleController.FindByDoctor error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
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

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetDoctorScheduleSuccessMessage, paginationResponse, schedules)
}

func (ctrl *DoctorScheduleController) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DoctorScheduleController.DeleteSchedule requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorScheduleID := chi.URLParam(r, "doctorScheduleID")
	ctrl.Log.Info("DoctorScheduleController.DeleteSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, doctorScheduleID),
	)

	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.DoctorScheduleUsecase.DeleteSchedule(ctx, sessionData, doctorScheduleID); err != nil {
		ctrl.Log.Error("DoctorScheduleController.DeleteSchedule error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScheduleIDKey, doctorScheduleID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteDoctorScheduleSuccessMessage, nil)
}
