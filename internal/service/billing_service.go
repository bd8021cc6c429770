package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkhasanoff/academy-backend/internal/model"
)

// SessionStore reads a student's scheduled sessions and attendance outcomes.
type SessionStore interface {
	SessionsInRange(ctx context.Context, studentID int64, from, to time.Time) ([]model.SessionAttendance, error)
}

var minutesPerHour = decimal.NewFromInt(60)

// BillingService reconciles scheduled sessions against recorded attendance
// and the active subscription to produce a billing calculation.
type BillingService struct {
	subscriptions *SubscriptionService
	sessions      SessionStore
	logger        *zap.Logger
}

func NewBillingService(subscriptions *SubscriptionService, sessions SessionStore, logger *zap.Logger) *BillingService {
	return &BillingService{
		subscriptions: subscriptions,
		sessions:      sessions,
		logger:        logger,
	}
}

// Calculate computes the billing result for one student and period.
//
// Only sessions marked present are billed: amount is attended hours times the
// plan's hourly rate. Every non-present session, including unmarked ones,
// consumes a free-absence slot; the allowance is reported, not enforced as a
// penalty. Hours accumulate as exact minutes and convert to decimal hours
// once, so no rounding compounds across sessions.
func (b *BillingService) Calculate(ctx context.Context, studentID int64, periodStart, periodEnd time.Time) (*model.BillingCalculation, error) {
	if !periodStart.Before(periodEnd) {
		return nil, &model.ValidationError{Field: "period", Reason: "start must be before end"}
	}

	sub, err := b.subscriptions.CurrentActive(ctx, studentID, periodStart)
	if err != nil {
		return nil, fmt.Errorf("resolve subscription: %w", err)
	}
	if sub == nil {
		return nil, model.ErrNoActiveSubscription
	}

	pairs, err := b.sessions.SessionsInRange(ctx, studentID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("read session ledger: %w", err)
	}

	var scheduledMinutes, attendedMinutes int
	var sessionsScheduled, sessionsAttended int
	for _, pair := range pairs {
		minutes := pair.Session.DurationMinutes()
		scheduledMinutes += minutes
		sessionsScheduled++
		if pair.Status() == model.AttendancePresent {
			attendedMinutes += minutes
			sessionsAttended++
		}
	}

	hoursAttended := decimal.NewFromInt(int64(attendedMinutes)).Div(minutesPerHour)

	calc := &model.BillingCalculation{
		StudentID:         studentID,
		SubscriptionID:    sub.SubscriptionID,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		HoursScheduled:    decimal.NewFromInt(int64(scheduledMinutes)).Div(minutesPerHour),
		HoursAttended:     hoursAttended,
		SessionsScheduled: sessionsScheduled,
		SessionsAttended:  sessionsAttended,
		FreeAbsencesUsed:  sessionsScheduled - sessionsAttended,
		MaxFreeAbsences:   sub.Plan.MaxFreeAbsences,
		HourlyRate:        sub.Plan.HourlyRate,
		TotalAmount:       hoursAttended.Mul(sub.Plan.HourlyRate),
	}

	b.logger.Info("Billing calculated",
		zap.Int64("student_id", studentID),
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
		zap.Int("sessions_scheduled", calc.SessionsScheduled),
		zap.Int("sessions_attended", calc.SessionsAttended),
		zap.String("total_amount", calc.TotalAmount.String()),
	)

	return calc, nil
}
