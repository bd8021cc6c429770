package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkhasanoff/academy-backend/internal/model"
)

// In-memory stores used across the service tests.

type fakeSubscriptionStore struct {
	plans       map[uuid.UUID]*model.Subscription
	rows        []*model.StudentSubscription
	activateErr error
	clock       time.Time
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{
		plans: make(map[uuid.UUID]*model.Subscription),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeSubscriptionStore) addPlan(plan *model.Subscription) {
	f.plans[plan.ID] = plan
}

func (f *fakeSubscriptionStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeSubscriptionStore) Activate(_ context.Context, ss *model.StudentSubscription) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	for _, row := range f.rows {
		if row.StudentID == ss.StudentID && row.Status == model.SubscriptionStatusActive {
			row.Status = model.SubscriptionStatusInactive
		}
	}
	ss.ID = uuid.New()
	ss.Status = model.SubscriptionStatusActive
	ss.CreatedAt = f.tick()
	ss.UpdatedAt = ss.CreatedAt
	row := *ss
	f.rows = append(f.rows, &row)
	return nil
}

func (f *fakeSubscriptionStore) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.Status = model.SubscriptionStatusInactive
		}
	}
	return nil
}

func (f *fakeSubscriptionStore) ActiveForStudent(_ context.Context, studentID int64, asOf time.Time) ([]*model.StudentSubscription, error) {
	var out []*model.StudentSubscription
	for _, row := range f.rows {
		if row.StudentID == studentID && row.Status == model.SubscriptionStatusActive && row.Covers(asOf) {
			cp := *row
			cp.Plan = f.plans[row.SubscriptionID]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionStore) GetPlan(_ context.Context, id uuid.UUID) (*model.Subscription, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return plan, nil
}

func (f *fakeSubscriptionStore) activeRows(studentID int64) []*model.StudentSubscription {
	var out []*model.StudentSubscription
	for _, row := range f.rows {
		if row.StudentID == studentID && row.Status == model.SubscriptionStatusActive {
			out = append(out, row)
		}
	}
	return out
}

type fakeSessionStore struct {
	pairs    []model.SessionAttendance
	sessions map[uuid.UUID]*model.Session
	marked   []*model.AttendanceRecord
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*model.Session)}
}

func (f *fakeSessionStore) SessionsInRange(_ context.Context, _ int64, from, to time.Time) ([]model.SessionAttendance, error) {
	var out []model.SessionAttendance
	for _, pair := range f.pairs {
		start := pair.Session.StartTime
		if !start.Before(from) && !start.After(to) {
			out = append(out, pair)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, id uuid.UUID) (*model.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) MarkAttendance(_ context.Context, rec *model.AttendanceRecord) error {
	rec.ID = uuid.New()
	rec.MarkedAt = time.Now()
	f.marked = append(f.marked, rec)
	return nil
}

type fakeAvailabilityStore struct {
	entries   []*model.AvailabilityEntry
	persisted []model.WeeklySchedule
	nextID    int64
}

func (f *fakeAvailabilityStore) ListByOwner(_ context.Context, ownerID int64) ([]*model.AvailabilityEntry, error) {
	var out []*model.AvailabilityEntry
	for _, e := range f.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityStore) CreateBatch(_ context.Context, ownerID int64, sched model.WeeklySchedule) error {
	f.persisted = append(f.persisted, sched)
	for weekday, slots := range sched {
		for _, slot := range slots {
			f.nextID++
			f.entries = append(f.entries, &model.AvailabilityEntry{
				ID:      f.nextID,
				OwnerID: ownerID,
				Weekday: weekday,
				Slot:    slot,
			})
		}
	}
	return nil
}

func (f *fakeAvailabilityStore) Delete(_ context.Context, ownerID, entryID int64) error {
	for i, e := range f.entries {
		if e.ID == entryID && e.OwnerID == ownerID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

type fakeCommitmentStore struct {
	dated []model.DatedCommitment
}

func (f *fakeCommitmentStore) DatedCommitmentsForOwner(_ context.Context, ownerID int64, from, to time.Time) ([]model.DatedCommitment, error) {
	var out []model.DatedCommitment
	for _, d := range f.dated {
		if d.OwnerID == ownerID && !d.Date.Before(from) && d.Date.Before(to) {
			out = append(out, d)
		}
	}
	return out, nil
}
