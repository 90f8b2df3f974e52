package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/generator"
	"fitcoach/plan-engine/internal/repository"
)

// ── In-memory PlanRepository ──

type memPlanRepo struct {
	rows []domain.WorkoutDay
	seq  int
	err  error // when set, every call fails with it
}

func (m *memPlanRepo) stamp() time.Time {
	m.seq++
	return time.Date(2026, 8, 1, 0, 0, m.seq, 0, time.UTC)
}

func (m *memPlanRepo) Create(_ context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	day.ID = primitive.NewObjectID()
	day.CreatedAt = m.stamp()
	day.UpdatedAt = day.CreatedAt
	if day.Status == "" {
		day.Status = domain.StatusScheduled
	}
	m.rows = append(m.rows, *day)
	return day.ID, nil
}

func (m *memPlanRepo) CreateMany(ctx context.Context, days []domain.WorkoutDay) error {
	if m.err != nil {
		return m.err
	}
	for i := range days {
		if _, err := m.Create(ctx, &days[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, row := range m.rows {
		if row.ID == id {
			copied := row
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPlanRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.WorkoutDay
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPlanRepo) GetByUserAndDay(_ context.Context, userID primitive.ObjectID, day string) ([]domain.WorkoutDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.WorkoutDay
	for _, row := range m.rows {
		if row.UserID == userID && row.Day == day {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memPlanRepo) Update(_ context.Context, day *domain.WorkoutDay) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.rows {
		if m.rows[i].ID == day.ID {
			updated := *day
			updated.UpdatedAt = m.stamp()
			updated.CreatedAt = m.rows[i].CreatedAt
			m.rows[i] = updated
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPlanRepo) DeleteByUserAndDay(_ context.Context, userID primitive.ObjectID, day string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var kept []domain.WorkoutDay
	var deleted int64
	for _, row := range m.rows {
		if row.UserID == userID && row.Day == day {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return deleted, nil
}

func (m *memPlanRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var kept []domain.WorkoutDay
	var deleted int64
	for _, row := range m.rows {
		if row.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return deleted, nil
}

// ── Stub UserRepository ──

type stubUserRepo struct {
	profile *domain.UserProfile
	err     error
}

func (s *stubUserRepo) GetByID(_ context.Context, _ primitive.ObjectID) (*domain.UserProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.profile == nil {
		return nil, repository.ErrNotFound
	}
	return s.profile, nil
}

// ── Stub PerformanceLogRepository ──

type stubLogRepo struct {
	logs []domain.PerformanceLog
	err  error
}

func (s *stubLogRepo) GetRecentByUser(_ context.Context, _ primitive.ObjectID, limit int) ([]domain.PerformanceLog, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.logs) > limit {
		return s.logs[:limit], nil
	}
	return s.logs, nil
}

// ── Stub SessionGenerator ──

type stubGenerator struct {
	err   error
	calls int
}

func (s *stubGenerator) GenerateSession(_ context.Context, _ generator.Request) ([]generator.Exercise, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []generator.Exercise{{Name: "goblet squat", Sets: 3, Reps: 10}}, nil
}

// ── Stub diag recorder ──

type stubRecorder struct {
	messages []string
}

func (s *stubRecorder) Record(_, _, message string) {
	s.messages = append(s.messages, message)
}

var errBrokenRepo = errors.New("connection reset")
