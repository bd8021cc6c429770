package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkhasanoff/academy-backend/internal/model"
)

// SessionLedger extends SessionStore with lookup and attendance writes.
type SessionLedger interface {
	SessionStore
	GetSession(ctx context.Context, id uuid.UUID) (*model.Session, error)
	MarkAttendance(ctx context.Context, rec *model.AttendanceRecord) error
}

// AttendanceService exposes the attendance ledger: session listings for a
// student and attendance marking.
type AttendanceService struct {
	ledger SessionLedger
	logger *zap.Logger
}

func NewAttendanceService(ledger SessionLedger, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		ledger: ledger,
		logger: logger,
	}
}

// SessionsInRange lists a student's scheduled sessions and outcomes for a
// date range. Sessions without a record read as unmarked.
func (s *AttendanceService) SessionsInRange(ctx context.Context, studentID int64, from, to time.Time) ([]model.SessionAttendance, error) {
	if !from.Before(to) {
		return nil, &model.ValidationError{Field: "range", Reason: "from must be before to"}
	}
	return s.ledger.SessionsInRange(ctx, studentID, from, to)
}

// Mark records an outcome for a student at a session, overwriting any
// previous record. Unmarked is a reading, not a storable status.
func (s *AttendanceService) Mark(ctx context.Context, studentID int64, sessionID uuid.UUID, status model.AttendanceStatus) (*model.AttendanceRecord, error) {
	switch status {
	case model.AttendancePresent, model.AttendanceAbsent, model.AttendanceExcused:
	default:
		return nil, &model.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown attendance status %q", status)}
	}

	if _, err := s.ledger.GetSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	rec := &model.AttendanceRecord{
		StudentID: studentID,
		SessionID: sessionID,
		Status:    status,
	}
	if err := s.ledger.MarkAttendance(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("Attendance marked",
		zap.Int64("student_id", studentID),
		zap.String("session_id", sessionID.String()),
		zap.String("status", string(status)),
	)

	return rec, nil
}
