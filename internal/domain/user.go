package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessLevel buckets a user's training experience.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// UserProfile is the slice of user state the plan engine needs:
// training configuration and the signals that feed fallback generation
// and the rest-day analysis. Account data lives elsewhere.
type UserProfile struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FitnessLevel        FitnessLevel       `bson:"fitnessLevel" json:"fitnessLevel"`
	TrainingDaysPerWeek int                `bson:"trainingDaysPerWeek" json:"trainingDaysPerWeek"`
	Equipment           []string           `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Injuries            []string           `bson:"injuries,omitempty" json:"injuries,omitempty"`
	DefaultDurationMin  int                `bson:"defaultDurationMin,omitempty" json:"defaultDurationMin,omitempty"`
	RecoveryActivities  []string           `bson:"recoveryActivities,omitempty" json:"recoveryActivities,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PerformanceLog is one completed-or-missed session record. RPE is the
// user's rated perceived exertion on a 1-10 scale.
type PerformanceLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Day         string             `bson:"day" json:"day"`
	WorkoutType WorkoutType        `bson:"workoutType" json:"workoutType"`
	Completed   bool               `bson:"completed" json:"completed"`
	RPE         float64            `bson:"rpe,omitempty" json:"rpe,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
