package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkhasanoff/academy-backend/internal/model"
)

// SubscriptionStore is the persistence surface the state machine needs.
// The pgx implementation lives in internal/repository; tests inject an
// in-memory fake.
type SubscriptionStore interface {
	Activate(ctx context.Context, ss *model.StudentSubscription) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// ActiveForStudent returns active bindings covering asOf with Plan populated.
	ActiveForStudent(ctx context.Context, studentID int64, asOf time.Time) ([]*model.StudentSubscription, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*model.Subscription, error)
}

// SubscriptionService owns the student-subscription lifecycle. No other
// component writes subscription status.
type SubscriptionService struct {
	store  SubscriptionStore
	logger *zap.Logger
}

func NewSubscriptionService(store SubscriptionStore, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		store:  store,
		logger: logger,
	}
}

// Activate binds a student to a plan for [start, end), deactivating any
// currently active binding in the same transaction. A concurrent activation
// for the same student surfaces as model.ErrConcurrencyConflict; the caller
// must re-query CurrentActive before retrying.
func (s *SubscriptionService) Activate(ctx context.Context, studentID int64, subscriptionID uuid.UUID, start, end time.Time) (*model.StudentSubscription, error) {
	if studentID <= 0 {
		return nil, &model.ValidationError{Field: "student_id", Reason: "must be positive"}
	}
	if subscriptionID == uuid.Nil {
		return nil, &model.ValidationError{Field: "subscription_id", Reason: "is required"}
	}
	if !start.Before(end) {
		return nil, &model.ValidationError{Field: "period", Reason: "start date must be before end date"}
	}

	plan, err := s.store.GetPlan(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("resolve plan: %w", err)
	}

	ss := &model.StudentSubscription{
		StudentID:      studentID,
		SubscriptionID: subscriptionID,
		StartDate:      start,
		EndDate:        end,
		Status:         model.SubscriptionStatusActive,
	}

	if err := s.store.Activate(ctx, ss); err != nil {
		return nil, err
	}

	s.logger.Info("Subscription activated",
		zap.Int64("student_id", studentID),
		zap.String("subscription_id", subscriptionID.String()),
		zap.String("plan", plan.Name),
		zap.Time("start_date", start),
		zap.Time("end_date", end),
	)

	ss.Plan = plan
	return ss, nil
}

// Deactivate marks a binding inactive. Idempotent.
func (s *SubscriptionService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return &model.ValidationError{Field: "id", Reason: "is required"}
	}

	if err := s.store.Deactivate(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Subscription deactivated", zap.String("student_subscription_id", id.String()))
	return nil
}

// CurrentActive returns the active binding whose period contains asOf, or nil
// when there is none. If the one-active invariant is broken it logs a
// data-integrity warning and proceeds with the most recently started binding
// rather than failing the caller.
func (s *SubscriptionService) CurrentActive(ctx context.Context, studentID int64, asOf time.Time) (*model.StudentSubscription, error) {
	active, err := s.store.ActiveForStudent(ctx, studentID, asOf)
	if err != nil {
		return nil, fmt.Errorf("get active subscriptions: %w", err)
	}

	if len(active) == 0 {
		return nil, nil
	}

	// Most recently started first; do not trust store ordering.
	sort.Slice(active, func(i, j int) bool {
		if !active[i].StartDate.Equal(active[j].StartDate) {
			return active[i].StartDate.After(active[j].StartDate)
		}
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	if len(active) > 1 {
		s.logger.Warn("Data integrity: multiple active subscriptions for student",
			zap.Int64("student_id", studentID),
			zap.Int("count", len(active)),
			zap.String("selected", active[0].ID.String()),
		)
	}

	return active[0], nil
}
