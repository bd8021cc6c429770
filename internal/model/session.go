package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
	// AttendanceUnmarked means no record exists yet. It is never stored;
	// it is the reading for a session without an attendance row.
	AttendanceUnmarked AttendanceStatus = "unmarked"
)

// Session is a concrete class occurrence materialized from a recurring
// schedule. Never deleted while attendance references it.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	ClassID   int64         `json:"class_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DurationMinutes returns the session length in whole minutes.
func (s *Session) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}

// AttendanceRecord is the recorded outcome for one student at one session.
// At most one record per (student, session); marking again overwrites.
type AttendanceRecord struct {
	ID        uuid.UUID        `json:"id"`
	StudentID int64            `json:"student_id"`
	SessionID uuid.UUID        `json:"session_id"`
	Status    AttendanceStatus `json:"status"`
	MarkedAt  time.Time        `json:"marked_at"`
}

// SessionAttendance pairs a scheduled session with the student's recorded
// outcome, if any.
type SessionAttendance struct {
	Session    Session           `json:"session"`
	Attendance *AttendanceRecord `json:"attendance,omitempty"`
}

// Status resolves the effective attendance state, treating a missing record
// as unmarked rather than absent.
func (sa SessionAttendance) Status() AttendanceStatus {
	if sa.Attendance == nil {
		return AttendanceUnmarked
	}
	return sa.Attendance.Status
}
