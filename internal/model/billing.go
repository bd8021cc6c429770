package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingCalculation is the derived reconciliation result for one student and
// billing period. It is computed on demand and never persisted here.
// Hours and amount stay unrounded; rounding happens at display time only.
type BillingCalculation struct {
	StudentID         int64           `json:"student_id"`
	SubscriptionID    uuid.UUID       `json:"subscription_id"`
	PeriodStart       time.Time       `json:"period_start"`
	PeriodEnd         time.Time       `json:"period_end"`
	HoursScheduled    decimal.Decimal `json:"hours_scheduled"`
	HoursAttended     decimal.Decimal `json:"hours_attended"`
	SessionsScheduled int             `json:"sessions_scheduled"`
	SessionsAttended  int             `json:"sessions_attended"`
	FreeAbsencesUsed  int             `json:"free_absences_used"`
	MaxFreeAbsences   int             `json:"max_free_absences"`
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}
