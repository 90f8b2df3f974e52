package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/planner"
	"fitcoach/plan-engine/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user profile not found")
)

const defaultTrainingDaysPerWeek = 3

// EnsureResult reports what EnsurePlan found or built.
type EnsureResult struct {
	Generated       bool       `json:"generated"`
	PlanID          string     `json:"planId"`
	WorkoutsCount   int        `json:"workoutsCount"`
	LastGeneratedAt *time.Time `json:"lastGeneratedAt,omitempty"`
}

// PlanService owns the plan lifecycle: the idempotent ensure operation
// and the derived status view.
type PlanService interface {
	EnsurePlan(ctx context.Context, userID primitive.ObjectID) (*EnsureResult, error)
	GetPlanStatus(ctx context.Context, userID primitive.ObjectID) (*domain.PlanStatus, error)
}

type planService struct {
	planRepo repository.PlanRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewPlanService creates a new plan lifecycle service.
func NewPlanService(
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
	now func() time.Time,
) PlanService {
	if now == nil {
		now = time.Now
	}
	return &planService{
		planRepo: planRepo,
		userRepo: userRepo,
		logger:   logger,
		now:      now,
	}
}

// EnsurePlan guarantees the user has a usable plan. Safe to call on
// every app-open: an existing plan with at least one training day is
// returned untouched with Generated=false. Only when no such plan exists
// is a full week synthesized through the fallback engine and persisted.
func (s *planService) EnsurePlan(ctx context.Context, userID primitive.ObjectID) (*EnsureResult, error) {
	// 1. Read what is already there.
	existing, err := s.planRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if count := countTrainingDays(existing); count > 0 {
		return &EnsureResult{
			Generated:       false,
			PlanID:          newestPlanID(existing),
			WorkoutsCount:   count,
			LastGeneratedAt: newestCreatedAt(existing),
		}, nil
	}

	// 2. Load training configuration; unknown users still get a sane plan.
	trainingDays := defaultTrainingDaysPerWeek
	var injuries []string
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		if profile.TrainingDaysPerWeek >= 1 && profile.TrainingDaysPerWeek <= 7 {
			trainingDays = profile.TrainingDaysPerWeek
		}
		injuries = profile.Injuries
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3. A plan made entirely of rest rows is degenerate; clear it before
	// regenerating so ensure never stacks duplicate weeks.
	if len(existing) > 0 {
		if _, err := s.planRepo.DeleteByUser(ctx, userID); err != nil {
			return nil, err
		}
	}

	// 4. Synthesize the week deterministically and double-check it
	// against the plan invariants before persisting.
	planID := uuid.New().String()
	week := planner.GenerateFallbackPlan(userID, planID, trainingDays, injuries, s.now())
	if validation := planner.ValidatePlan(week, trainingDays); !validation.Valid {
		// The fallback table is constructed to satisfy the rules; a
		// failure here is a programming error worth failing loudly on.
		return nil, errors.New("fallback plan failed validation: " + validation.Errors[0])
	}

	if err := s.planRepo.CreateMany(ctx, week); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("generated fallback plan",
			zap.String("userId", userID.Hex()),
			zap.String("planId", planID),
			zap.Int("trainingDays", trainingDays),
		)
	}

	generatedAt := s.now().UTC()
	return &EnsureResult{
		Generated:       true,
		PlanID:          planID,
		WorkoutsCount:   trainingDays,
		LastGeneratedAt: &generatedAt,
	}, nil
}

// GetPlanStatus derives the read-only status view from the repository.
// Nothing is cached; every call recomputes from the stored rows.
func (s *planService) GetPlanStatus(ctx context.Context, userID primitive.ObjectID) (*domain.PlanStatus, error) {
	rows, err := s.planRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	count := countTrainingDays(rows)
	if count == 0 {
		return &domain.PlanStatus{Exists: false}, nil
	}
	return &domain.PlanStatus{
		Exists:          true,
		PlanID:          newestPlanID(rows),
		WorkoutsCount:   count,
		LastGeneratedAt: newestCreatedAt(rows),
	}, nil
}

func countTrainingDays(rows []domain.WorkoutDay) int {
	count := 0
	for _, row := range rows {
		if row.WorkoutType.IsTraining() {
			count++
		}
	}
	return count
}

// Rows arrive sorted by creation time descending, so the first row is
// the newest.
func newestPlanID(rows []domain.WorkoutDay) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0].PlanID
}

func newestCreatedAt(rows []domain.WorkoutDay) *time.Time {
	if len(rows) == 0 {
		return nil
	}
	t := rows[0].CreatedAt
	return &t
}
