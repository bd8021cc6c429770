package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkhasanoff/academy-backend/internal/model"
)

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func sessionAt(start time.Time, minutes int) model.Session {
	return model.Session{
		ID:        uuid.New(),
		ClassID:   1,
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
		Status:    model.SessionStatusScheduled,
	}
}

func withAttendance(s model.Session, studentID int64, status model.AttendanceStatus) model.SessionAttendance {
	return model.SessionAttendance{
		Session: s,
		Attendance: &model.AttendanceRecord{
			ID:        uuid.New(),
			StudentID: studentID,
			SessionID: s.ID,
			Status:    status,
		},
	}
}

func billingFixture(t *testing.T) (*BillingService, *fakeSubscriptionStore, *fakeSessionStore, time.Time, time.Time) {
	t.Helper()
	subStore := newFakeSubscriptionStore()
	plan := testPlan(20)
	subStore.addPlan(plan)
	subSvc := NewSubscriptionService(subStore, zap.NewNop())

	start, end := period(2026, time.March)
	_, err := subSvc.Activate(context.Background(), 1, plan.ID, start, end)
	require.NoError(t, err)

	sessions := newFakeSessionStore()
	svc := NewBillingService(subSvc, sessions, zap.NewNop())
	return svc, subStore, sessions, start, end
}

func TestCalculateOnePresentOneUnmarked(t *testing.T) {
	svc, _, sessions, start, end := billingFixture(t)

	s1 := sessionAt(start.AddDate(0, 0, 2).Add(9*time.Hour), 60)
	s2 := sessionAt(start.AddDate(0, 0, 9).Add(9*time.Hour), 60)
	sessions.pairs = []model.SessionAttendance{
		withAttendance(s1, 1, model.AttendancePresent),
		{Session: s2}, // not yet marked
	}

	calc, err := svc.Calculate(context.Background(), 1, start, end)
	require.NoError(t, err)

	assert.Equal(t, 2, calc.SessionsScheduled)
	assert.Equal(t, 1, calc.SessionsAttended)
	assert.Equal(t, 1, calc.FreeAbsencesUsed)
	assert.Equal(t, 2, calc.MaxFreeAbsences)
	assert.True(t, calc.HoursScheduled.Equal(decimalFromInt(2)), "hours scheduled = %s", calc.HoursScheduled)
	assert.True(t, calc.HoursAttended.Equal(decimalFromInt(1)), "hours attended = %s", calc.HoursAttended)
	assert.True(t, calc.TotalAmount.Equal(decimalFromInt(20)), "total = %s", calc.TotalAmount)
}

func TestCalculateNeverChargesUnattended(t *testing.T) {
	svc, _, sessions, start, end := billingFixture(t)

	s1 := sessionAt(start.Add(10*time.Hour), 90)
	s2 := sessionAt(start.AddDate(0, 0, 1).Add(10*time.Hour), 90)
	s3 := sessionAt(start.AddDate(0, 0, 2).Add(10*time.Hour), 90)
	sessions.pairs = []model.SessionAttendance{
		withAttendance(s1, 1, model.AttendanceAbsent),
		withAttendance(s2, 1, model.AttendanceExcused),
		{Session: s3},
	}

	calc, err := svc.Calculate(context.Background(), 1, start, end)
	require.NoError(t, err)

	assert.Equal(t, 3, calc.SessionsScheduled)
	assert.Equal(t, 0, calc.SessionsAttended)
	assert.Equal(t, 3, calc.FreeAbsencesUsed)
	assert.True(t, calc.TotalAmount.IsZero(), "total = %s", calc.TotalAmount)
	// Free absences beyond the allowance are reported, never billed.
	assert.Greater(t, calc.FreeAbsencesUsed, calc.MaxFreeAbsences)
}

func TestCalculateFractionalHoursStayExact(t *testing.T) {
	svc, _, sessions, start, end := billingFixture(t)

	// Three 50-minute sessions: 2.5 hours exactly, 50 per session would
	// compound badly under per-session rounding.
	var pairs []model.SessionAttendance
	for i := 0; i < 3; i++ {
		s := sessionAt(start.AddDate(0, 0, i).Add(9*time.Hour), 50)
		pairs = append(pairs, withAttendance(s, 1, model.AttendancePresent))
	}
	sessions.pairs = pairs

	calc, err := svc.Calculate(context.Background(), 1, start, end)
	require.NoError(t, err)

	assert.Equal(t, "2.5", calc.HoursAttended.String())
	assert.Equal(t, "50", calc.TotalAmount.String())
}

func TestCalculateNoActiveSubscription(t *testing.T) {
	subStore := newFakeSubscriptionStore()
	subSvc := NewSubscriptionService(subStore, zap.NewNop())
	svc := NewBillingService(subSvc, newFakeSessionStore(), zap.NewNop())

	start, end := period(2026, time.March)
	calc, err := svc.Calculate(context.Background(), 42, start, end)
	assert.ErrorIs(t, err, model.ErrNoActiveSubscription)
	assert.Nil(t, calc)
}

func TestCalculateEmptyPeriod(t *testing.T) {
	svc, _, _, start, end := billingFixture(t)

	calc, err := svc.Calculate(context.Background(), 1, start, end)
	require.NoError(t, err)
	assert.Zero(t, calc.SessionsScheduled)
	assert.True(t, calc.TotalAmount.IsZero())
}

func TestCalculateRejectsInvertedPeriod(t *testing.T) {
	svc, _, _, start, end := billingFixture(t)

	_, err := svc.Calculate(context.Background(), 1, end, start)
	assert.True(t, model.IsValidation(err))
}

func TestCalculateRoundTripCounts(t *testing.T) {
	svc, _, sessions, start, end := billingFixture(t)

	s1 := sessionAt(start.Add(9*time.Hour), 60)
	s2 := sessionAt(start.AddDate(0, 0, 1).Add(9*time.Hour), 60)
	s3 := sessionAt(start.AddDate(0, 0, 2).Add(9*time.Hour), 60)
	sessions.pairs = []model.SessionAttendance{
		withAttendance(s1, 1, model.AttendancePresent),
		withAttendance(s2, 1, model.AttendancePresent),
		withAttendance(s3, 1, model.AttendanceAbsent),
	}

	calc, err := svc.Calculate(context.Background(), 1, start, end)
	require.NoError(t, err)
	assert.Equal(t, calc.SessionsScheduled, calc.SessionsAttended+calc.FreeAbsencesUsed)
}
