package schedules

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionService struct {
	session *models.Session
}

func (f *fakeSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	return f.session, nil
}

func (f *fakeSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	return "", nil
}

// fakeScheduleRepository mirrors the mongo repository's upsert contract:
// a (start_time, end_time) pair that already exists is skipped and only
// newly created slots come back.
type fakeScheduleRepository struct {
	schedules map[string]models.Schedule
	nextID    int
}

func newFakeScheduleRepository() *fakeScheduleRepository {
	return &fakeScheduleRepository{schedules: make(map[string]models.Schedule)}
}

func scheduleKey(start, end time.Time) string {
	return start.Format(time.RFC3339) + "|" + end.Format(time.RFC3339)
}

func (f *fakeScheduleRepository) InsertMany(ctx context.Context, schedules []models.Schedule) ([]models.Schedule, error) {
	created := make([]models.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		key := scheduleKey(schedule.StartTime, schedule.EndTime)
		if _, exists := f.schedules[key]; exists {
			continue
		}
		f.nextID++
		schedule.ID = fmt.Sprintf("schedule-%d", f.nextID)
		f.schedules[key] = schedule
		created = append(created, schedule)
	}
	return created, nil
}

func (f *fakeScheduleRepository) FindByID(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	for _, schedule := range f.schedules {
		if schedule.ID == scheduleID {
			return &schedule, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepository) FindByIDs(ctx context.Context, scheduleIDs []string) ([]models.Schedule, error) {
	var result []models.Schedule
	for _, scheduleID := range scheduleIDs {
		if schedule, err := f.FindByID(ctx, scheduleID); err == nil && schedule != nil {
			result = append(result, *schedule)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.Schedule, int, error) {
	var result []models.Schedule
	for _, schedule := range f.schedules {
		result = append(result, schedule)
	}
	return result, len(result), nil
}

func newScheduleUsecaseFixture(session *models.Session) (*scheduleUsecase, *fakeScheduleRepository) {
	repo := newFakeScheduleRepository()
	uc := &scheduleUsecase{
		ScheduleRepository: repo,
		SessionService:     &fakeSessionService{session: session},
		InternalConfig: &config.InternalConfig{
			App: config.App{SlotIntervalInMinutes: 30},
		},
		Log: zap.NewNop(),
	}
	return uc, repo
}

func adminSession() *models.Session {
	return &models.Session{
		SessionID: "session-1",
		UserID:    "user-1",
		Role:      constvars.RoleAdmin,
	}
}

func createRequest() *requests.CreateSchedulesRequest {
	return &requests.CreateSchedulesRequest{
		StartDate: "2026-09-14",
		EndDate:   "2026-09-15",
		StartTime: "09:00",
		EndTime:   "10:00",
	}
}

func TestCreateSchedulesExpandsDateRange(t *testing.T) {
	uc, _ := newScheduleUsecaseFixture(adminSession())

	response, err := uc.CreateSchedules(context.Background(), "session-data", createRequest())
	require.NoError(t, err)
	require.Len(t, response, 4)

	assert.Equal(t, time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC), response[0].StartTime)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), response[3].StartTime)
}

func TestCreateSchedulesUsesRequestedInterval(t *testing.T) {
	uc, _ := newScheduleUsecaseFixture(adminSession())
	request := createRequest()
	request.EndDate = request.StartDate
	request.IntervalMinutes = 20

	response, err := uc.CreateSchedules(context.Background(), "session-data", request)
	require.NoError(t, err)
	require.Len(t, response, 3)
	assert.Equal(t, 20*time.Minute, response[0].EndTime.Sub(response[0].StartTime))
}

func TestCreateSchedulesSkipsExistingSlots(t *testing.T) {
	uc, repo := newScheduleUsecaseFixture(adminSession())

	first, err := uc.CreateSchedules(context.Background(), "session-data", createRequest())
	require.NoError(t, err)
	require.Len(t, first, 4)

	// Re-running the same window creates nothing new.
	second, err := uc.CreateSchedules(context.Background(), "session-data", createRequest())
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, repo.schedules, 4)
}

func TestCreateSchedulesEmptyWindowReturnsNoSlots(t *testing.T) {
	uc, repo := newScheduleUsecaseFixture(adminSession())
	request := createRequest()
	request.StartTime = "10:00"
	request.EndTime = "10:00"

	response, err := uc.CreateSchedules(context.Background(), "session-data", request)
	require.NoError(t, err)
	assert.Empty(t, response)
	assert.Empty(t, repo.schedules)
}

func TestCreateSchedulesRejectsNonAdmin(t *testing.T) {
	session := adminSession()
	session.Role = constvars.RoleDoctor
	uc, _ := newScheduleUsecaseFixture(session)

	_, err := uc.CreateSchedules(context.Background(), "session-data", createRequest())
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
}
