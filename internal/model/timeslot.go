package model

import (
	"fmt"
	"time"
)

// MinutesPerDay is the exclusive upper bound for a time-of-day value.
const MinutesPerDay = 24 * 60

// TimeSlot is a time-of-day range with minute granularity, expressed in UTC.
// Start and End are minutes since midnight; the range is half-open [Start, End),
// so a slot ending 10:00 does not overlap a slot starting 10:00.
type TimeSlot struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewTimeSlot builds a slot from "15:04" strings.
func NewTimeSlot(start, end string) (TimeSlot, error) {
	s, err := ParseMinuteOfDay(start)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := ParseMinuteOfDay(end)
	if err != nil {
		return TimeSlot{}, err
	}
	slot := TimeSlot{Start: s, End: e}
	if err := slot.Validate(); err != nil {
		return TimeSlot{}, err
	}
	return slot, nil
}

// ParseMinuteOfDay parses a "15:04" clock string into minutes since midnight.
func ParseMinuteOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, &ValidationError{Field: "time", Reason: fmt.Sprintf("invalid clock time %q", s)}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinuteOfDay renders minutes since midnight as "15:04".
func FormatMinuteOfDay(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Validate checks interval invariants: start strictly before end,
// both bounds inside a single day.
func (t TimeSlot) Validate() error {
	if t.Start < 0 || t.Start >= MinutesPerDay {
		return &ValidationError{Field: "start", Reason: fmt.Sprintf("out of range: %d", t.Start)}
	}
	if t.End < 0 || t.End > MinutesPerDay {
		return &ValidationError{Field: "end", Reason: fmt.Sprintf("out of range: %d", t.End)}
	}
	if t.Start >= t.End {
		return &ValidationError{Field: "slot", Reason: fmt.Sprintf("start %s is not before end %s", FormatMinuteOfDay(t.Start), FormatMinuteOfDay(t.End))}
	}
	return nil
}

// Duration returns the slot length in minutes.
func (t TimeSlot) Duration() int {
	return t.End - t.Start
}

func (t TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", FormatMinuteOfDay(t.Start), FormatMinuteOfDay(t.End))
}

// WeeklySchedule maps a weekday to that day's slots.
// A schedule must be internally conflict-free before it is compared
// against anyone's existing commitments.
type WeeklySchedule map[time.Weekday][]TimeSlot

// Validate checks every slot and rejects overlap between slots of the same day.
func (w WeeklySchedule) Validate() error {
	for day, slots := range w {
		for i, slot := range slots {
			if err := slot.Validate(); err != nil {
				return err
			}
			for _, other := range slots[i+1:] {
				if slot.Start < other.End && other.Start < slot.End {
					return &ValidationError{
						Field:  "schedule",
						Reason: fmt.Sprintf("%s slots %s and %s overlap", day, slot, other),
					}
				}
			}
		}
	}
	return nil
}
