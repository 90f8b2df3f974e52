package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitcoach/plan-engine/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// PlanRepository defines access to a user's scheduled workout-days,
// keyed by user and resolved ISO day. Concurrent writes for one user are
// assumed to be serialized by the underlying store; SWAP and MOVE
// read-then-write the same rows and depend on that guarantee.
type PlanRepository interface {
	Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, days []domain.WorkoutDay) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error)
	// GetByUser returns every row for the user, most recently created first.
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutDay, error)
	GetByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.WorkoutDay, error)
	Update(ctx context.Context, day *domain.WorkoutDay) error
	// DeleteByUserAndDay removes all rows for the given day and reports
	// how many were removed. Zero removed is not an error.
	DeleteByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) (int64, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// UserRepository reads the profile slice the plan engine needs.
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProfile, error)
}

// PerformanceLogRepository reads recent completion/RPE records.
type PerformanceLogRepository interface {
	// GetRecentByUser returns up to limit entries, most recent first.
	GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.PerformanceLog, error)
}
