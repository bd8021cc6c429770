package model

import "time"

// AvailabilityEntry is one persisted weekly-availability row for a teacher or
// student. The set of a person's entries plus their materialized sessions in
// the target week forms the commitments a candidate schedule is checked
// against.
type AvailabilityEntry struct {
	ID        int64        `json:"id"`
	OwnerID   int64        `json:"owner_id"`
	Weekday   time.Weekday `json:"weekday"`
	Slot      TimeSlot     `json:"slot"`
	CreatedAt time.Time    `json:"created_at"`
}

// Commitment converts the entry to the detector's input shape.
func (a *AvailabilityEntry) Commitment() Commitment {
	return Commitment{OwnerID: a.OwnerID, Weekday: a.Weekday, Slot: a.Slot}
}
