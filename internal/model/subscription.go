package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
)

// Subscription is a billing plan. Rows are immutable once referenced by a
// StudentSubscription; a rate change creates a new plan row.
type Subscription struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	HoursPerMonth   int             `json:"hours_per_month"`
	MaxFreeAbsences int             `json:"max_free_absences"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// StudentSubscription binds a student to a plan for [StartDate, EndDate).
// At most one active row may exist per student at any instant; the
// subscription service owns every status transition.
type StudentSubscription struct {
	ID             uuid.UUID          `json:"id"`
	StudentID      int64              `json:"student_id"`
	SubscriptionID uuid.UUID          `json:"subscription_id"`
	StartDate      time.Time          `json:"start_date"`
	EndDate        time.Time          `json:"end_date"`
	Status         SubscriptionStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Joined plan data, filled by the repository when requested.
	Plan *Subscription `json:"plan,omitempty"`
}

// Covers reports whether the binding's [StartDate, EndDate) contains the instant.
func (s *StudentSubscription) Covers(asOf time.Time) bool {
	return !asOf.Before(s.StartDate) && asOf.Before(s.EndDate)
}
