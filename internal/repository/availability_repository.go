package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkhasanoff/academy-backend/internal/model"
	"github.com/mkhasanoff/academy-backend/internal/repository/base"
)

type AvailabilityRepository struct {
	*base.Repository
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{Repository: base.NewRepository(pool)}
}

// ListByOwner returns all weekly-availability entries for a person.
func (r *AvailabilityRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.AvailabilityEntry, error) {
	query := `
		SELECT id, owner_id, weekday, start_minute, end_minute, created_at
		FROM weekly_availability
		WHERE owner_id = $1
		ORDER BY weekday, start_minute
	`

	rows, err := r.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()

	var entries []*model.AvailabilityEntry
	for rows.Next() {
		var e model.AvailabilityEntry
		err := rows.Scan(
			&e.ID,
			&e.OwnerID,
			&e.Weekday,
			&e.Slot.Start,
			&e.Slot.End,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan availability entry: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// CreateBatch persists a conflict-checked weekly schedule for an owner in one
// transaction, one row per slot.
func (r *AvailabilityRepository) CreateBatch(ctx context.Context, ownerID int64, schedule model.WeeklySchedule) error {
	tx, err := r.Pool().BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin availability tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO weekly_availability (owner_id, weekday, start_minute, end_minute)
		VALUES ($1, $2, $3, $4)
	`

	for weekday, slots := range schedule {
		for _, slot := range slots {
			if _, err := tx.Exec(ctx, query, ownerID, weekday, slot.Start, slot.End); err != nil {
				return fmt.Errorf("insert availability entry: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit availability tx: %w", err)
	}

	return nil
}

// Delete removes one availability entry.
func (r *AvailabilityRepository) Delete(ctx context.Context, ownerID, entryID int64) error {
	query := `
		DELETE FROM weekly_availability
		WHERE id = $1 AND owner_id = $2
	`

	affected, err := r.ExecAffected(ctx, query, entryID, ownerID)
	if err != nil {
		return fmt.Errorf("delete availability entry: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}
