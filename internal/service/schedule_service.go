package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mkhasanoff/academy-backend/internal/model"
	"github.com/mkhasanoff/academy-backend/internal/schedule"
)

// AvailabilityStore reads and writes weekly-availability entries.
type AvailabilityStore interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.AvailabilityEntry, error)
	CreateBatch(ctx context.Context, ownerID int64, sched model.WeeklySchedule) error
	Delete(ctx context.Context, ownerID, entryID int64) error
}

// CommitmentStore reads an owner's concrete sessions as dated commitments.
type CommitmentStore interface {
	DatedCommitmentsForOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]model.DatedCommitment, error)
}

// ScheduleService runs conflict checks against a person's full set of
// commitments and persists candidate schedules that pass.
type ScheduleService struct {
	availability AvailabilityStore
	commitments  CommitmentStore
	logger       *zap.Logger
}

func NewScheduleService(availability AvailabilityStore, commitments CommitmentStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		availability: availability,
		commitments:  commitments,
		logger:       logger,
	}
}

// CheckAssignment compares a candidate weekly schedule against the owner's
// existing weekly availability plus their concrete sessions in the week
// starting weekStart, normalized to weekly form. Conflicts are a result to
// display, not an error.
func (s *ScheduleService) CheckAssignment(ctx context.Context, ownerID int64, candidate model.WeeklySchedule, weekStart time.Time) ([]model.Conflict, error) {
	existing, err := s.loadCommitments(ctx, ownerID, weekStart)
	if err != nil {
		return nil, err
	}

	conflicts, err := schedule.FindConflicts(candidate, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Conflict check completed",
		zap.Int64("owner_id", ownerID),
		zap.Int("existing_commitments", len(existing)),
		zap.Int("conflicts", len(conflicts)),
	)

	return conflicts, nil
}

// AssignAvailability persists the candidate schedule when the conflict check
// comes back clean. On conflicts nothing is written and the list is returned
// for display.
func (s *ScheduleService) AssignAvailability(ctx context.Context, ownerID int64, candidate model.WeeklySchedule, weekStart time.Time) ([]model.Conflict, error) {
	conflicts, err := s.CheckAssignment(ctx, ownerID, candidate, weekStart)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	if err := s.availability.CreateBatch(ctx, ownerID, candidate); err != nil {
		return nil, fmt.Errorf("persist availability: %w", err)
	}

	s.logger.Info("Availability assigned",
		zap.Int64("owner_id", ownerID),
		zap.Int("days", len(candidate)),
	)

	return nil, nil
}

// RemoveAvailability drops one availability entry for an owner.
func (s *ScheduleService) RemoveAvailability(ctx context.Context, ownerID, entryID int64) error {
	if err := s.availability.Delete(ctx, ownerID, entryID); err != nil {
		return err
	}

	s.logger.Info("Availability entry removed",
		zap.Int64("owner_id", ownerID),
		zap.Int64("entry_id", entryID),
	)
	return nil
}

// loadCommitments merges the owner's weekly availability with their dated
// sessions for the checked week, projected onto weekdays. The detector only
// ever sees one representation.
func (s *ScheduleService) loadCommitments(ctx context.Context, ownerID int64, weekStart time.Time) ([]model.Commitment, error) {
	entries, err := s.availability.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}

	commitments := make([]model.Commitment, 0, len(entries))
	for _, e := range entries {
		commitments = append(commitments, e.Commitment())
	}

	dated, err := s.commitments.DatedCommitmentsForOwner(ctx, ownerID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("load session commitments: %w", err)
	}
	for _, d := range dated {
		commitments = append(commitments, d.Weekly())
	}

	return commitments, nil
}
