package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type ScheduleUsecase interface {
	CreateSchedules(ctx context.Context, sessionData string, request *requests.CreateSchedulesRequest) ([]responses.Schedule, error)
	FindAll(ctx context.Context, pagination *requests.Pagination) ([]responses.Schedule, int, error)
}

type ScheduleRepository interface {
	InsertMany(ctx context.Context, schedules []models.Schedule) ([]models.Schedule, error)
	FindByID(ctx context.Context, scheduleID string) (*models.Schedule, error)
	FindByIDs(ctx context.Context, scheduleIDs []string) ([]models.Schedule, error)
	FindAll(ctx context.Context, page, pageSize int) ([]models.Schedule, int, error)
}
