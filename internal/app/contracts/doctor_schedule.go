package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type DoctorScheduleUsecase interface {
	PublishSchedules(ctx context.Context, sessionData string, request *requests.CreateDoctorSchedulesRequest) ([]responses.DoctorSchedule, error)
	FindByDoctor(ctx context.Context, doctorID string, pagination *requests.Pagination) ([]responses.DoctorSchedule, int, error)
	DeleteSchedule(ctx context.Context, sessionData, doctorScheduleID string) error
}

type DoctorScheduleRepository interface {
	// Insert publishes the (doctor, schedule) pairing. A pairing that
	// already exists is left untouched and reported with an empty id.
	Insert(ctx context.Context, doctorSchedule *models.DoctorSchedule) (string, error)
	FindByID(ctx context.Context, doctorScheduleID string) (*models.DoctorSchedule, error)
	FindByDoctor(ctx context.Context, doctorID string, page, pageSize int) ([]models.DoctorSchedule, int, error)
	// Reserve atomically flips is_booked from false to true. It reports
	// whether the reservation won.
	Reserve(ctx context.Context, doctorID, scheduleID string) (bool, error)
	Release(ctx context.Context, doctorID, scheduleID string) error
	DeleteIfNotBooked(ctx context.Context, doctorScheduleID string) (bool, error)
}
