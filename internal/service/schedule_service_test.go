package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkhasanoff/academy-backend/internal/model"
)

func mustSlot(t *testing.T, start, end string) model.TimeSlot {
	t.Helper()
	s, err := model.NewTimeSlot(start, end)
	require.NoError(t, err)
	return s
}

// 2026-03-02 is a Monday.
var testWeekStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func scheduleFixture() (*ScheduleService, *fakeAvailabilityStore, *fakeCommitmentStore) {
	avail := &fakeAvailabilityStore{}
	committed := &fakeCommitmentStore{}
	svc := NewScheduleService(avail, committed, zap.NewNop())
	return svc, avail, committed
}

func TestCheckAssignmentAgainstAvailability(t *testing.T) {
	svc, avail, _ := scheduleFixture()
	avail.entries = []*model.AvailabilityEntry{
		{ID: 1, OwnerID: 9, Weekday: time.Monday, Slot: mustSlot(t, "08:00", "11:00")},
	}

	candidate := model.WeeklySchedule{
		time.Monday: {mustSlot(t, "09:00", "10:00")},
	}

	conflicts, err := svc.CheckAssignment(context.Background(), 9, candidate, testWeekStart)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, mustSlot(t, "08:00", "11:00"), conflicts[0].ExistingSlot)
}

func TestCheckAssignmentNormalizesDatedSessions(t *testing.T) {
	svc, _, committed := scheduleFixture()
	// A concrete Wednesday session inside the checked week.
	committed.dated = []model.DatedCommitment{
		{OwnerID: 9, Date: testWeekStart.AddDate(0, 0, 2), Slot: mustSlot(t, "14:00", "15:00")},
	}

	candidate := model.WeeklySchedule{
		time.Wednesday: {mustSlot(t, "14:30", "15:30")},
	}

	conflicts, err := svc.CheckAssignment(context.Background(), 9, candidate, testWeekStart)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, time.Wednesday, conflicts[0].Weekday)
}

func TestAssignAvailabilityPersistsWhenClean(t *testing.T) {
	svc, avail, _ := scheduleFixture()

	candidate := model.WeeklySchedule{
		time.Tuesday: {mustSlot(t, "09:00", "10:00"), mustSlot(t, "10:00", "11:00")},
	}

	conflicts, err := svc.AssignAvailability(context.Background(), 9, candidate, testWeekStart)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	require.Len(t, avail.persisted, 1)
	assert.Len(t, avail.entries, 2)
}

func TestAssignAvailabilityRefusesOnConflict(t *testing.T) {
	svc, avail, _ := scheduleFixture()
	avail.entries = []*model.AvailabilityEntry{
		{ID: 1, OwnerID: 9, Weekday: time.Friday, Slot: mustSlot(t, "09:00", "10:00")},
	}

	candidate := model.WeeklySchedule{
		time.Friday: {mustSlot(t, "09:30", "10:30")},
	}

	conflicts, err := svc.AssignAvailability(context.Background(), 9, candidate, testWeekStart)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Empty(t, avail.persisted)
}

func TestCheckAssignmentPropagatesValidation(t *testing.T) {
	svc, _, _ := scheduleFixture()

	bad := model.WeeklySchedule{
		time.Monday: {{Start: 600, End: 600}},
	}
	_, err := svc.CheckAssignment(context.Background(), 9, bad, testWeekStart)
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
}

func TestCheckAssignmentIgnoresOtherOwners(t *testing.T) {
	svc, avail, _ := scheduleFixture()
	avail.entries = []*model.AvailabilityEntry{
		{ID: 1, OwnerID: 77, Weekday: time.Monday, Slot: mustSlot(t, "09:00", "10:00")},
	}

	candidate := model.WeeklySchedule{
		time.Monday: {mustSlot(t, "09:00", "10:00")},
	}

	conflicts, err := svc.CheckAssignment(context.Background(), 9, candidate, testWeekStart)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}
