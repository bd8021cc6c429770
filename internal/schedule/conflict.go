// Package schedule holds the pure scheduling core: interval comparison and
// weekly conflict detection. No I/O happens here.
package schedule

import (
	"sort"
	"time"

	"github.com/mkhasanoff/academy-backend/internal/model"
)

// Overlaps reports whether two slots intersect. Both slots are half-open
// [start, end), so back-to-back slots do not overlap.
func Overlaps(a, b model.TimeSlot) bool {
	return a.Start < b.End && b.Start < a.End
}

// FindConflicts compares a candidate weekly schedule against a person's
// existing commitments and returns every overlapping pair. A candidate slot
// overlapping two commitments yields two conflicts so callers can show both.
// Slots identical to an existing commitment count as conflicts (duplicate
// booking, not a no-op). Comparison never crosses weekdays; dated commitments
// must be normalized to weekly form before the call.
//
// Malformed input is rejected up front with a validation error, never
// silently skipped.
func FindConflicts(candidate model.WeeklySchedule, existing []model.Commitment) ([]model.Conflict, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	for _, c := range existing {
		if err := c.Slot.Validate(); err != nil {
			return nil, err
		}
	}

	byDay := make(map[time.Weekday][]model.Commitment, len(existing))
	for _, c := range existing {
		byDay[c.Weekday] = append(byDay[c.Weekday], c)
	}
	// Fixed comparison order keeps the result independent of input order.
	for _, day := range byDay {
		sort.Slice(day, func(i, j int) bool {
			if day[i].Slot.Start != day[j].Slot.Start {
				return day[i].Slot.Start < day[j].Slot.Start
			}
			if day[i].Slot.End != day[j].Slot.End {
				return day[i].Slot.End < day[j].Slot.End
			}
			return day[i].OwnerID < day[j].OwnerID
		})
	}

	var conflicts []model.Conflict
	for _, weekday := range weekOrder {
		slots, ok := candidate[weekday]
		if !ok {
			continue
		}
		for _, candidateSlot := range slots {
			for _, commitment := range byDay[weekday] {
				if Overlaps(candidateSlot, commitment.Slot) {
					conflicts = append(conflicts, model.Conflict{
						OwnerID:       commitment.OwnerID,
						Weekday:       weekday,
						CandidateSlot: candidateSlot,
						ExistingSlot:  commitment.Slot,
					})
				}
			}
		}
	}
	return conflicts, nil
}

var weekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}
