package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType tags a WorkoutDay with what kind of session it holds.
type WorkoutType string

const (
	TypeChest     WorkoutType = "chest"
	TypeBack      WorkoutType = "back"
	TypeLegs      WorkoutType = "legs"
	TypeShoulders WorkoutType = "shoulders"
	TypeArms      WorkoutType = "arms"
	TypeCore      WorkoutType = "core"
	TypeGlutes    WorkoutType = "glutes"
	TypePush      WorkoutType = "push"
	TypePull      WorkoutType = "pull"
	TypeUpper     WorkoutType = "upper"
	TypeLower     WorkoutType = "lower"
	TypeFullBody  WorkoutType = "full_body"
	TypeCardio    WorkoutType = "cardio"
	TypeHIIT      WorkoutType = "hiit"
	TypeRecovery  WorkoutType = "recovery"
	TypeRest      WorkoutType = "rest"
)

// AllWorkoutTypes is the closed enumeration accepted by the action schema.
var AllWorkoutTypes = []WorkoutType{
	TypeChest, TypeBack, TypeLegs, TypeShoulders, TypeArms, TypeCore,
	TypeGlutes, TypePush, TypePull, TypeUpper, TypeLower, TypeFullBody,
	TypeCardio, TypeHIIT, TypeRecovery, TypeRest,
}

// IsValidWorkoutType reports whether t belongs to the enumeration.
func IsValidWorkoutType(t WorkoutType) bool {
	for _, known := range AllWorkoutTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsTraining reports whether t counts against the user's weekly
// training-day target. Rest and active recovery do not.
func (t WorkoutType) IsTraining() bool {
	return t != TypeRest && t != TypeRecovery
}

// WorkoutDayStatus tracks the lifecycle of a single scheduled day.
type WorkoutDayStatus string

const (
	StatusScheduled WorkoutDayStatus = "scheduled"
	StatusCompleted WorkoutDayStatus = "completed"
	StatusSkipped   WorkoutDayStatus = "skipped"
)

// WorkoutDay is one scheduled day in a user's weekly plan.
// Day is always a resolved ISO date (YYYY-MM-DD); weekday references in
// actions are resolved before a row is ever written.
type WorkoutDay struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	PlanID      string             `bson:"planId" json:"planId"`
	Day         string             `bson:"day" json:"day"`
	WorkoutType WorkoutType        `bson:"workoutType" json:"workoutType"`
	DurationMin int                `bson:"durationMin" json:"durationMin"`
	Status      WorkoutDayStatus   `bson:"status" json:"status"`
	SkipReason  string             `bson:"skipReason,omitempty" json:"skipReason,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DayLayout is the ISO date format used for WorkoutDay.Day.
const DayLayout = "2006-01-02"
