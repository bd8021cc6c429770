package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkhasanoff/academy-backend/internal/model"
	"github.com/mkhasanoff/academy-backend/internal/repository/base"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// CreatePlan inserts a new billing plan. Plans are immutable after creation;
// a rate change is a new row.
func (r *SubscriptionRepository) CreatePlan(ctx context.Context, plan *model.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, name, hourly_rate, hours_per_month, max_free_absences, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}

	err := r.pool.QueryRow(
		ctx, query,
		plan.ID,
		plan.Name,
		plan.HourlyRate,
		plan.HoursPerMonth,
		plan.MaxFreeAbsences,
		plan.TotalAmount,
	).Scan(&plan.CreatedAt)

	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}

	return nil
}

// GetPlan fetches a billing plan by id.
func (r *SubscriptionRepository) GetPlan(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	query := `
		SELECT id, name, hourly_rate, hours_per_month, max_free_absences, total_amount, created_at
		FROM subscriptions
		WHERE id = $1
	`

	var plan model.Subscription
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.HourlyRate,
		&plan.HoursPerMonth,
		&plan.MaxFreeAbsences,
		&plan.TotalAmount,
		&plan.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}

	return &plan, nil
}

// Activate deactivates any currently active binding for the student and
// inserts the new one as a single transaction. The partial unique index on
// active rows backs this up; losing the race to a concurrent activation
// surfaces as ErrConcurrencyConflict, never as a silent partial write.
func (r *SubscriptionRepository) Activate(ctx context.Context, ss *model.StudentSubscription) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin activate tx: %w", err)
	}
	defer tx.Rollback(ctx)

	deactivate := `
		UPDATE student_subscriptions
		SET status = 'inactive', updated_at = now()
		WHERE student_id = $1 AND status = 'active'
	`
	if _, err := tx.Exec(ctx, deactivate, ss.StudentID); err != nil {
		return fmt.Errorf("deactivate current subscription: %w", err)
	}

	insert := `
		INSERT INTO student_subscriptions (id, student_id, subscription_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, 'active')
		RETURNING created_at, updated_at
	`
	if ss.ID == uuid.Nil {
		ss.ID = uuid.New()
	}
	err = tx.QueryRow(
		ctx, insert,
		ss.ID,
		ss.StudentID,
		ss.SubscriptionID,
		ss.StartDate,
		ss.EndDate,
	).Scan(&ss.CreatedAt, &ss.UpdatedAt)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrConcurrencyConflict
		}
		return fmt.Errorf("insert student subscription: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit activate tx: %w", err)
	}

	ss.Status = model.SubscriptionStatusActive
	return nil
}

// Deactivate marks a binding inactive. Idempotent: deactivating an already
// inactive or missing row is not an error.
func (r *SubscriptionRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE student_subscriptions
		SET status = 'inactive', updated_at = now()
		WHERE id = $1 AND status = 'active'
	`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}

	return nil
}

// ActiveForStudent returns the student's active bindings whose period contains
// asOf, most recently started first, with plan data joined. More than one row
// is an invariant violation the service logs and tie-breaks.
func (r *SubscriptionRepository) ActiveForStudent(ctx context.Context, studentID int64, asOf time.Time) ([]*model.StudentSubscription, error) {
	query := `
		SELECT ss.id, ss.student_id, ss.subscription_id, ss.start_date, ss.end_date, ss.status,
		       ss.created_at, ss.updated_at,
		       s.id, s.name, s.hourly_rate, s.hours_per_month, s.max_free_absences, s.total_amount, s.created_at
		FROM student_subscriptions ss
		JOIN subscriptions s ON s.id = ss.subscription_id
		WHERE ss.student_id = $1
		  AND ss.status = 'active'
		  AND ss.start_date <= $2
		  AND ss.end_date > $2
		ORDER BY ss.start_date DESC, ss.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, studentID, asOf)
	if err != nil {
		return nil, fmt.Errorf("get active subscriptions: %w", err)
	}
	defer rows.Close()

	var result []*model.StudentSubscription
	for rows.Next() {
		var ss model.StudentSubscription
		var plan model.Subscription
		err := rows.Scan(
			&ss.ID,
			&ss.StudentID,
			&ss.SubscriptionID,
			&ss.StartDate,
			&ss.EndDate,
			&ss.Status,
			&ss.CreatedAt,
			&ss.UpdatedAt,
			&plan.ID,
			&plan.Name,
			&plan.HourlyRate,
			&plan.HoursPerMonth,
			&plan.MaxFreeAbsences,
			&plan.TotalAmount,
			&plan.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student subscription: %w", err)
		}
		ss.Plan = &plan
		result = append(result, &ss)
	}

	return result, rows.Err()
}
