package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkhasanoff/academy-backend/internal/model"
	"github.com/mkhasanoff/academy-backend/internal/repository/base"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// SessionsInRange returns the sessions a student is enrolled in whose start
// falls within [from, to], each paired with the student's attendance record
// when one exists. Cancelled sessions are excluded. A missing record reads as
// unmarked, never as absent.
func (r *SessionRepository) SessionsInRange(ctx context.Context, studentID int64, from, to time.Time) ([]model.SessionAttendance, error) {
	query := `
		SELECT cs.id, cs.class_id, cs.start_time, cs.end_time, cs.status, cs.created_at, cs.updated_at,
		       sa.id, sa.status, sa.marked_at
		FROM class_sessions cs
		JOIN class_students en ON en.class_id = cs.class_id AND en.student_id = $1
		LEFT JOIN student_attendance sa ON sa.session_id = cs.id AND sa.student_id = $1
		WHERE cs.start_time >= $2
		  AND cs.start_time <= $3
		  AND cs.status <> 'cancelled'
		ORDER BY cs.start_time
	`

	rows, err := r.pool.Query(ctx, query, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get sessions in range: %w", err)
	}
	defer rows.Close()

	var result []model.SessionAttendance
	for rows.Next() {
		var pair model.SessionAttendance
		var recID *uuid.UUID
		var recStatus *model.AttendanceStatus
		var recMarkedAt *time.Time

		err := rows.Scan(
			&pair.Session.ID,
			&pair.Session.ClassID,
			&pair.Session.StartTime,
			&pair.Session.EndTime,
			&pair.Session.Status,
			&pair.Session.CreatedAt,
			&pair.Session.UpdatedAt,
			&recID,
			&recStatus,
			&recMarkedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		if recID != nil {
			pair.Attendance = &model.AttendanceRecord{
				ID:        *recID,
				StudentID: studentID,
				SessionID: pair.Session.ID,
				Status:    *recStatus,
				MarkedAt:  *recMarkedAt,
			}
		}
		result = append(result, pair)
	}

	return result, rows.Err()
}

// GetSession fetches one session by id.
func (r *SessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	query := `
		SELECT id, class_id, start_time, end_time, status, created_at, updated_at
		FROM class_sessions
		WHERE id = $1
	`

	var s model.Session
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.ClassID,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &s, nil
}

// MarkAttendance records a student's outcome for a session. Upsert semantics:
// one row per (student, session), re-marking overwrites.
func (r *SessionRepository) MarkAttendance(ctx context.Context, rec *model.AttendanceRecord) error {
	query := `
		INSERT INTO student_attendance (id, student_id, session_id, status, marked_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (student_id, session_id)
		DO UPDATE SET status = EXCLUDED.status, marked_at = now()
		RETURNING id, marked_at
	`

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query, rec.ID, rec.StudentID, rec.SessionID, rec.Status).
		Scan(&rec.ID, &rec.MarkedAt)
	if err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}

	return nil
}

// DatedCommitmentsForOwner returns the owner's non-cancelled sessions in
// [from, to) as dated commitments for conflict normalization. The owner is
// matched as the teacher of the class or an enrolled student.
func (r *SessionRepository) DatedCommitmentsForOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]model.DatedCommitment, error) {
	query := `
		SELECT DISTINCT cs.start_time, cs.end_time
		FROM class_sessions cs
		LEFT JOIN classes c ON c.id = cs.class_id
		LEFT JOIN class_students en ON en.class_id = cs.class_id
		WHERE cs.status <> 'cancelled'
		  AND cs.start_time >= $2
		  AND cs.start_time < $3
		  AND (c.teacher_id = $1 OR en.student_id = $1)
		ORDER BY cs.start_time
	`

	rows, err := r.pool.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get dated commitments: %w", err)
	}
	defer rows.Close()

	var result []model.DatedCommitment
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("scan dated commitment: %w", err)
		}
		start, end = start.UTC(), end.UTC()
		endMinute := end.Hour()*60 + end.Minute()
		if endMinute == 0 {
			// A session ending exactly at midnight closes the day.
			endMinute = model.MinutesPerDay
		}
		result = append(result, model.DatedCommitment{
			OwnerID: ownerID,
			Date:    start.Truncate(24 * time.Hour),
			Slot: model.TimeSlot{
				Start: start.Hour()*60 + start.Minute(),
				End:   endMinute,
			},
		})
	}

	return result, rows.Err()
}
