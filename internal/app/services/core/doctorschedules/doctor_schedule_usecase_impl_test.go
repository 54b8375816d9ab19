package doctorschedules

import (
	"context"
	"fmt"
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

type fakeScheduleRepository struct {
	schedules map[string]models.Schedule
}

func (f *fakeScheduleRepository) InsertMany(ctx context.Context, schedules []models.Schedule) ([]models.Schedule, error) {
	return schedules, nil
}

func (f *fakeScheduleRepository) FindByID(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	schedule, ok := f.schedules[scheduleID]
	if !ok {
		return nil, nil
	}
	return &schedule, nil
}

func (f *fakeScheduleRepository) FindByIDs(ctx context.Context, scheduleIDs []string) ([]models.Schedule, error) {
	var result []models.Schedule
	for _, scheduleID := range scheduleIDs {
		if schedule, ok := f.schedules[scheduleID]; ok {
			result = append(result, schedule)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.Schedule, int, error) {
	return nil, 0, nil
}

// fakeDoctorScheduleRepository keeps the mongo repository's upsert
// semantics: inserting an existing pairing reports an empty id.
type fakeDoctorScheduleRepository struct {
	slots   map[string]*models.DoctorSchedule
	inserts int
}

func pairKey(doctorID, scheduleID string) string {
	return doctorID + "|" + scheduleID
}

func (f *fakeDoctorScheduleRepository) Insert(ctx context.Context, doctorSchedule *models.DoctorSchedule) (string, error) {
	key := pairKey(doctorSchedule.DoctorID, doctorSchedule.ScheduleID)
	if _, exists := f.slots[key]; exists {
		return "", nil
	}
	f.inserts++
	doctorSchedule.ID = fmt.Sprintf("doctor-schedule-%d", f.inserts)
	f.slots[key] = doctorSchedule
	return doctorSchedule.ID, nil
}

func (f *fakeDoctorScheduleRepository) FindByID(ctx context.Context, doctorScheduleID string) (*models.DoctorSchedule, error) {
	for _, slot := range f.slots {
		if slot.ID == doctorScheduleID {
			return slot, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorScheduleRepository) FindByDoctor(ctx context.Context, doctorID string, page, pageSize int) ([]models.DoctorSchedule, int, error) {
	var result []models.DoctorSchedule
	for _, slot := range f.slots {
		if slot.DoctorID == doctorID {
			result = append(result, *slot)
		}
	}
	return result, len(result), nil
}

func (f *fakeDoctorScheduleRepository) Reserve(ctx context.Context, doctorID, scheduleID string) (bool, error) {
	slot, ok := f.slots[pairKey(doctorID, scheduleID)]
	if !ok || slot.IsBooked {
		return false, nil
	}
	slot.IsBooked = true
	return true, nil
}

func (f *fakeDoctorScheduleRepository) Release(ctx context.Context, doctorID, scheduleID string) error {
	if slot, ok := f.slots[pairKey(doctorID, scheduleID)]; ok {
		slot.IsBooked = false
	}
	return nil
}

func (f *fakeDoctorScheduleRepository) DeleteIfNotBooked(ctx context.Context, doctorScheduleID string) (bool, error) {
	for key, slot := range f.slots {
		if slot.ID == doctorScheduleID {
			if slot.IsBooked {
				return false, nil
			}
			delete(f.slots, key)
			return true, nil
		}
	}
	return false, nil
}

func newPublishFixture(session *models.Session) (*doctorScheduleUsecase, *fakeDoctorScheduleRepository) {
	repo := &fakeDoctorScheduleRepository{slots: make(map[string]*models.DoctorSchedule)}
	slotStart := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	uc := &doctorScheduleUsecase{
		DoctorScheduleRepository: repo,
		ScheduleRepository: &fakeScheduleRepository{schedules: map[string]models.Schedule{
			"schedule-1": {ID: "schedule-1", StartTime: slotStart, EndTime: slotStart.Add(30 * time.Minute)},
			"schedule-2": {ID: "schedule-2", StartTime: slotStart.Add(30 * time.Minute), EndTime: slotStart.Add(time.Hour)},
		}},
		SessionService: &fakeSessionService{session: session},
		Log:            zap.NewNop(),
	}
	return uc, repo
}

func publishingDoctorSession() *models.Session {
	return &models.Session{
		SessionID: "session-1",
		UserID:    "user-1",
		Role:      constvars.RoleDoctor,
		DoctorID:  "doctor-1",
	}
}

func TestPublishSchedulesCreatesSlots(t *testing.T) {
	uc, repo := newPublishFixture(publishingDoctorSession())

	response, err := uc.PublishSchedules(context.Background(), "session-data", &requests.CreateDoctorSchedulesRequest{
		ScheduleIDs: []string{"schedule-1", "schedule-2"},
	})
	require.NoError(t, err)
	require.Len(t, response, 2)

	assert.Equal(t, "doctor-1", response[0].DoctorID)
	assert.False(t, response[0].IsBooked)
	assert.Len(t, repo.slots, 2)
}

func TestPublishSchedulesSkipsAlreadyPublishedSlots(t *testing.T) {
	uc, repo := newPublishFixture(publishingDoctorSession())

	first, err := uc.PublishSchedules(context.Background(), "session-data", &requests.CreateDoctorSchedulesRequest{
		ScheduleIDs: []string{"schedule-1"},
	})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Publishing an overlapping list succeeds; only the new slot comes back.
	second, err := uc.PublishSchedules(context.Background(), "session-data", &requests.CreateDoctorSchedulesRequest{
		ScheduleIDs: []string{"schedule-1", "schedule-2"},
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "schedule-2", second[0].ScheduleID)
	assert.Len(t, repo.slots, 2)
}

func TestPublishSchedulesKeepsBookedSlotOnRepublish(t *testing.T) {
	uc, repo := newPublishFixture(publishingDoctorSession())

	_, err := uc.PublishSchedules(context.Background(), "session-data", &requests.CreateDoctorSchedulesRequest{
		ScheduleIDs: []string{"schedule-1"},
	})
	require.NoError(t, err)

	reserved, err := repo.Reserve(context.Background(), "doctor-1", "schedule-1")
	require.NoError(t, err)
	require.True(t, reserved)

	_, err = uc.PublishSchedules(context.Background(), "session-data", &requests.CreateDoctorSchedulesRequest{
		ScheduleIDs: []string{"schedule-1"},
	})
	require.NoError(t, err)

	// The republish must not reset the reservation.
	assert.True(t, repo.slots[pairKey("doctor-1", "schedule-1")].IsBooked)
}

func TestPublishSchedulesRejectsUnknownScheduleIDs(t *testing.T) {
	uc, _ := newPublishFixture(publishingDoctorSession())

	_, err := uc.PublishSchedules(context.Background(), "session-data", &requests.CreateDoctorSchedulesRequest{
		ScheduleIDs: []string{"schedule-1", "schedule-missing"},
	})
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
}

func TestPublishSchedulesRejectsNonDoctor(t *testing.T) {
	session := publishingDoctorSession()
	session.Role = constvars.RolePatient
	uc, _ := newPublishFixture(session)

	_, err := uc.PublishSchedules(context.Background(), "session-data", &requests.CreateDoctorSchedulesRequest{
		ScheduleIDs: []string{"schedule-1"},
	})
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
}

func TestDeleteScheduleRejectsBookedSlot(t *testing.T) {
	uc, repo := newPublishFixture(publishingDoctorSession())

	response, err := uc.PublishSchedules(context.Background(), "session-data", &requests.CreateDoctorSchedulesRequest{
		ScheduleIDs: []string{"schedule-1"},
	})
	require.NoError(t, err)

	reserved, err := repo.Reserve(context.Background(), "doctor-1", "schedule-1")
	require.NoError(t, err)
	require.True(t, reserved)

	err = uc.DeleteSchedule(context.Background(), "session-data", response[0].ID)
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
}
