package http

import (
	"time"

	"github.com/mkhasanoff/academy-backend/internal/format"
	"github.com/mkhasanoff/academy-backend/internal/model"
)

type weeklyScheduleRequest struct {
	OwnerID int64                 `json:"owner_id" binding:"required"`
	Days    map[string][]slotBody `json:"days" binding:"required"`
	// Monday of the week whose concrete sessions take part in the check,
	// "2006-01-02". Defaults to the current week.
	WeekStart string `json:"week_start"`
}

type slotBody struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func (r *weeklyScheduleRequest) schedule() (model.WeeklySchedule, error) {
	sched := make(model.WeeklySchedule, len(r.Days))
	for name, slots := range r.Days {
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, &model.ValidationError{Field: "days", Reason: "unknown weekday " + name}
		}
		for _, s := range slots {
			slot, err := model.NewTimeSlot(s.Start, s.End)
			if err != nil {
				return nil, err
			}
			sched[weekday] = append(sched[weekday], slot)
		}
	}
	return sched, nil
}

func (r *weeklyScheduleRequest) weekStart() (time.Time, error) {
	if r.WeekStart == "" {
		now := time.Now().UTC()
		// Walk back to Monday.
		offset := (int(now.Weekday()) + 6) % 7
		return now.Truncate(24 * time.Hour).AddDate(0, 0, -offset), nil
	}
	t, err := time.Parse("2006-01-02", r.WeekStart)
	if err != nil {
		return time.Time{}, &model.ValidationError{Field: "week_start", Reason: "expected YYYY-MM-DD"}
	}
	return t.UTC(), nil
}

type conflictBody struct {
	OwnerID       int64  `json:"owner_id"`
	Weekday       string `json:"weekday"`
	CandidateSlot string `json:"candidate_slot"`
	ExistingSlot  string `json:"existing_slot"`
}

type conflictsResponse struct {
	Conflicts []conflictBody `json:"conflicts"`
}

func toConflictsResponse(conflicts []model.Conflict) conflictsResponse {
	resp := conflictsResponse{Conflicts: make([]conflictBody, 0, len(conflicts))}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictBody{
			OwnerID:       c.OwnerID,
			Weekday:       c.Weekday.String(),
			CandidateSlot: format.SlotRange(c.CandidateSlot),
			ExistingSlot:  format.SlotRange(c.ExistingSlot),
		})
	}
	return resp
}

type activateRequest struct {
	SubscriptionID string `json:"subscription_id" binding:"required"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
}

type markAttendanceRequest struct {
	StudentID int64  `json:"student_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

type billingResponse struct {
	StudentID         int64  `json:"student_id"`
	SubscriptionID    string `json:"subscription_id"`
	PeriodStart       string `json:"period_start"`
	PeriodEnd         string `json:"period_end"`
	HoursScheduled    string `json:"hours_scheduled"`
	HoursAttended     string `json:"hours_attended"`
	SessionsScheduled int    `json:"sessions_scheduled"`
	SessionsAttended  int    `json:"sessions_attended"`
	FreeAbsencesUsed  int    `json:"free_absences_used"`
	MaxFreeAbsences   int    `json:"max_free_absences"`
	HourlyRate        string `json:"hourly_rate"`
	TotalAmount       string `json:"total_amount"`
}

func toBillingResponse(calc *model.BillingCalculation) billingResponse {
	return billingResponse{
		StudentID:         calc.StudentID,
		SubscriptionID:    calc.SubscriptionID.String(),
		PeriodStart:       format.Date(calc.PeriodStart),
		PeriodEnd:         format.Date(calc.PeriodEnd),
		HoursScheduled:    format.Hours(calc.HoursScheduled),
		HoursAttended:     format.Hours(calc.HoursAttended),
		SessionsScheduled: calc.SessionsScheduled,
		SessionsAttended:  calc.SessionsAttended,
		FreeAbsencesUsed:  calc.FreeAbsencesUsed,
		MaxFreeAbsences:   calc.MaxFreeAbsences,
		HourlyRate:        format.Amount(calc.HourlyRate),
		TotalAmount:       format.Amount(calc.TotalAmount),
	}
}

type sessionBody struct {
	ID         string `json:"id"`
	ClassID    int64  `json:"class_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Duration   string `json:"duration"`
	Status     string `json:"status"`
	Attendance string `json:"attendance"`
}

func toSessionBodies(pairs []model.SessionAttendance) []sessionBody {
	out := make([]sessionBody, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, sessionBody{
			ID:         pair.Session.ID.String(),
			ClassID:    pair.Session.ClassID,
			StartTime:  format.DateTime(pair.Session.StartTime),
			EndTime:    format.DateTime(pair.Session.EndTime),
			Duration:   format.Duration(pair.Session.DurationMinutes()),
			Status:     string(pair.Session.Status),
			Attendance: string(pair.Status()),
		})
	}
	return out
}
