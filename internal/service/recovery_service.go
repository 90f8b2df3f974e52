package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/repository"
)

// Scoring windows and thresholds for the rest-day decision.
const (
	historyWindow       = 14
	recentFatigueWindow = 3
	trendThreshold      = 0.5
	restScoreThreshold  = 50
)

// defaultRecoveryActivities pads the suggestion list when the profile
// stores few or no preferences.
var defaultRecoveryActivities = []string{
	"walking", "stretching", "yoga", "foam rolling", "swimming",
}

// RecoveryService scores recent training history and recommends whether
// the next day should be rest. Advisory only: it never mutates the plan.
type RecoveryService interface {
	Analyze(ctx context.Context, userID primitive.ObjectID) (*domain.RestDayRecommendation, error)
}

type recoveryService struct {
	userRepo repository.UserRepository
	logRepo  repository.PerformanceLogRepository
	now      func() time.Time
}

// NewRecoveryService creates a new rest-day decision engine.
func NewRecoveryService(
	userRepo repository.UserRepository,
	logRepo repository.PerformanceLogRepository,
	now func() time.Time,
) RecoveryService {
	if now == nil {
		now = time.Now
	}
	return &recoveryService{
		userRepo: userRepo,
		logRepo:  logRepo,
		now:      now,
	}
}

// Analyze runs the scoring pipeline over the last 14 performance-log
// entries and the user's training configuration.
func (s *recoveryService) Analyze(ctx context.Context, userID primitive.ObjectID) (*domain.RestDayRecommendation, error) {
	// 1. Pull profile and recent history.
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	logs, err := s.logRepo.GetRecentByUser(ctx, userID, historyWindow)
	if err != nil {
		return nil, err
	}

	analysis := s.analyzeHistory(logs)

	// 2. Score the five independent factors against the same history.
	score := 0
	var reasons []string

	if analysis.ConsistencyScore < 70 {
		score += 30
		reasons = append(reasons, fmt.Sprintf("Completion rate has dropped to %d%% over the last two weeks.", analysis.ConsistencyScore))
	} else if analysis.ConsistencyScore < 85 {
		score += 15
		reasons = append(reasons, fmt.Sprintf("Completion rate is at %d%%, a little below your usual.", analysis.ConsistencyScore))
	}

	if analysis.FatigueTrend == domain.FatigueIncreasing {
		score += 25
		reasons = append(reasons, "Perceived exertion has been climbing across recent sessions.")
	} else if analysis.FatigueTrend == domain.FatigueStable && analysis.IntensityTolerance == domain.ToleranceLow {
		score += 12
		reasons = append(reasons, "Sessions are consistently running at high perceived effort.")
	}

	configured := profile.TrainingDaysPerWeek
	if configured < 1 {
		configured = defaultTrainingDaysPerWeek
	}
	over := analysis.RecentTrainingDays - configured
	if over > 1 {
		score += 20
		reasons = append(reasons, fmt.Sprintf("You trained %d days in the last week, well above your target of %d.", analysis.RecentTrainingDays, configured))
	} else if over == 1 {
		score += 10
		reasons = append(reasons, fmt.Sprintf("You trained %d days in the last week, one more than your target of %d.", analysis.RecentTrainingDays, configured))
	}

	if profile.FitnessLevel == domain.LevelBeginner && analysis.RecentTrainingDays >= 3 {
		score += 15
		reasons = append(reasons, "As a beginner, three or more sessions a week calls for extra recovery.")
	} else if profile.FitnessLevel == domain.LevelIntermediate && analysis.RecentTrainingDays >= 5 {
		score += 10
		reasons = append(reasons, "Five or more sessions a week is a heavy load at your level.")
	}

	if analysis.ConsecutiveTraining >= 3 {
		score += 10
		reasons = append(reasons, fmt.Sprintf("You have trained %d days in a row without a break.", analysis.ConsecutiveTraining))
	}

	if score > 100 {
		score = 100
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Your recent training looks sustainable; no specific recovery flags.")
	}

	// 3. Advisory extras: recovery activities and next-workout tweaks.
	recommendation := &domain.RestDayRecommendation{
		RecommendRestDay:   score >= restScoreThreshold,
		ConfidenceScore:    score,
		Reasons:            reasons,
		Analysis:           analysis,
		RecoveryActivities: mergeActivities(profile.RecoveryActivities),
		NextWorkoutAdjust:  s.adjustments(analysis),
	}
	return recommendation, nil
}

// analyzeHistory derives consistency, fatigue trend, tolerance, and
// training-density signals from the log window. Logs arrive most recent
// first.
func (s *recoveryService) analyzeHistory(logs []domain.PerformanceLog) domain.RecoveryAnalysis {
	analysis := domain.RecoveryAnalysis{
		FatigueTrend:       domain.FatigueStable,
		IntensityTolerance: domain.ToleranceMedium,
	}
	if len(logs) == 0 {
		analysis.ConsistencyScore = 100
		return analysis
	}

	// Consistency: share of logged sessions actually completed.
	completed := 0
	for _, entry := range logs {
		if entry.Completed {
			completed++
		}
	}
	analysis.ConsistencyScore = completed * 100 / len(logs)

	// Fatigue trend: mean RPE of the newest 3 entries against the mean
	// of everything older in the window, with a fixed ±0.5 band.
	recent := meanRPE(logs[:min(recentFatigueWindow, len(logs))])
	if len(logs) > recentFatigueWindow {
		prior := meanRPE(logs[recentFatigueWindow:])
		if recent > prior+trendThreshold {
			analysis.FatigueTrend = domain.FatigueIncreasing
		} else if recent < prior-trendThreshold {
			analysis.FatigueTrend = domain.FatigueDecreasing
		}
	}

	// Tolerance: overall mean RPE against fixed cut points.
	overall := meanRPE(logs)
	switch {
	case overall > 8:
		analysis.IntensityTolerance = domain.ToleranceLow
	case overall < 6:
		analysis.IntensityTolerance = domain.ToleranceHigh
	}

	// Training density over the trailing 7 days, and the current streak
	// of consecutive completed days ending at the newest entry.
	weekAgo := s.now().AddDate(0, 0, -7)
	for _, entry := range logs {
		if entry.Completed && entry.CreatedAt.After(weekAgo) {
			analysis.RecentTrainingDays++
		}
	}
	analysis.ConsecutiveTraining = consecutiveDays(logs)

	return analysis
}

func meanRPE(logs []domain.PerformanceLog) float64 {
	sum, n := 0.0, 0
	for _, entry := range logs {
		if entry.RPE > 0 {
			sum += entry.RPE
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// consecutiveDays counts the run of completed sessions on consecutive
// calendar days starting at the newest entry.
func consecutiveDays(logs []domain.PerformanceLog) int {
	streak := 0
	var previous time.Time
	for _, entry := range logs {
		if !entry.Completed {
			break
		}
		day, err := time.Parse(domain.DayLayout, entry.Day)
		if err != nil {
			break
		}
		if streak > 0 && !day.Equal(previous.AddDate(0, 0, -1)) {
			break
		}
		streak++
		previous = day
	}
	return streak
}

// mergeActivities joins stored preferences with the default list,
// de-duplicated, capped at 5. Preferences come first.
func mergeActivities(preferred []string) []string {
	seen := map[string]bool{}
	merged := make([]string, 0, 5)
	for _, activity := range append(append([]string{}, preferred...), defaultRecoveryActivities...) {
		if activity == "" || seen[activity] {
			continue
		}
		seen[activity] = true
		merged = append(merged, activity)
		if len(merged) == 5 {
			break
		}
	}
	return merged
}

func (s *recoveryService) adjustments(analysis domain.RecoveryAnalysis) domain.WorkoutAdjustments {
	adjust := domain.WorkoutAdjustments{}
	if analysis.FatigueTrend == domain.FatigueIncreasing || analysis.IntensityTolerance == domain.ToleranceLow {
		adjust.ReduceIntensity = true
		adjust.ShortenDuration = true
	}
	if analysis.ConsistencyScore < 75 {
		adjust.FocusAreas = []string{"full_body", "core"}
	}
	return adjust
}
