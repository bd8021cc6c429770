package model

import "time"

// Commitment is an existing weekly obligation for a person: an availability
// entry or a booked recurring lesson, keyed by owner and weekday.
type Commitment struct {
	OwnerID int64        `json:"owner_id"`
	Weekday time.Weekday `json:"weekday"`
	Slot    TimeSlot     `json:"slot"`
}

// DatedCommitment is a concrete, calendar-dated obligation (a materialized
// session). The conflict detector reasons only about weekdays, so dated
// commitments must be normalized with Weekly before a check.
type DatedCommitment struct {
	OwnerID int64     `json:"owner_id"`
	Date    time.Time `json:"date"`
	Slot    TimeSlot  `json:"slot"`
}

// Weekly projects the dated commitment onto its weekday.
func (d DatedCommitment) Weekly() Commitment {
	return Commitment{
		OwnerID: d.OwnerID,
		Weekday: d.Date.UTC().Weekday(),
		Slot:    d.Slot,
	}
}

// Conflict is one overlapping pair found by the detector. A candidate slot
// that overlaps two existing commitments produces two conflicts.
type Conflict struct {
	OwnerID       int64        `json:"owner_id"`
	Weekday       time.Weekday `json:"weekday"`
	CandidateSlot TimeSlot     `json:"candidate_slot"`
	ExistingSlot  TimeSlot     `json:"existing_slot"`
}
