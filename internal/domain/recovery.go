package domain

import "time"

// PlanStatus is a derived, read-only view of a user's plan. It is
// recomputed on every query and never persisted.
type PlanStatus struct {
	Exists          bool       `json:"exists"`
	PlanID          string     `json:"planId,omitempty"`
	WorkoutsCount   int        `json:"workoutsCount"`
	LastGeneratedAt *time.Time `json:"lastGeneratedAt,omitempty"`
}

// FatigueTrend classifies the direction of recent perceived exertion.
type FatigueTrend string

const (
	FatigueIncreasing FatigueTrend = "increasing"
	FatigueStable     FatigueTrend = "stable"
	FatigueDecreasing FatigueTrend = "decreasing"
)

// IntensityTolerance buckets how hard the user's recent sessions have run.
type IntensityTolerance string

const (
	ToleranceHigh   IntensityTolerance = "high"
	ToleranceMedium IntensityTolerance = "medium"
	ToleranceLow    IntensityTolerance = "low"
)

// RecoveryAnalysis is the intermediate read of a user's recent history
// that the rest-day scoring runs on. Purely computed per request.
type RecoveryAnalysis struct {
	ConsistencyScore    int                `json:"consistencyScore"` // 0-100, % completed
	FatigueTrend        FatigueTrend       `json:"fatigueTrend"`
	IntensityTolerance  IntensityTolerance `json:"intensityTolerance"`
	RecentTrainingDays  int                `json:"recentTrainingDays"` // last 7 days
	ConsecutiveTraining int                `json:"consecutiveTrainingDays"`
}

// WorkoutAdjustments are advisory tweaks for the next session.
type WorkoutAdjustments struct {
	ReduceIntensity bool     `json:"reduceIntensity"`
	ShortenDuration bool     `json:"shortenDuration"`
	FocusAreas      []string `json:"focusAreas,omitempty"`
}

// RestDayRecommendation is the advisory output of the rest-day decision
// engine. It never mutates the plan; callers decide whether a positive
// recommendation becomes a SKIP_DAY action.
type RestDayRecommendation struct {
	RecommendRestDay   bool               `json:"recommendRestDay"`
	ConfidenceScore    int                `json:"confidenceScore"` // 0-100
	Reasons            []string           `json:"reasons"`
	Analysis           RecoveryAnalysis   `json:"analysis"`
	RecoveryActivities []string           `json:"recoveryActivities"`
	NextWorkoutAdjust  WorkoutAdjustments `json:"nextWorkoutAdjustments"`
}
