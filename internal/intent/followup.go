package intent

import "fitcoach/plan-engine/internal/domain"

// Quick-reply option sets. Each keeps a "custom" escape hatch so the
// user is never boxed into the shortlist.
var (
	workoutTypeOptions = []string{"full_body", "upper", "lower", "legs", "core", "cardio", "custom"}
	durationOptions    = []string{"20 min", "30 min", "45 min", "60 min", "custom"}
	dayOptions         = []string{"today", "tomorrow", "monday", "wednesday", "friday", "custom"}
)

// BuildFollowUp returns the single highest-priority clarifying question
// for a partial action: workout type before duration before day. Nil
// once the partial carries everything its variant requires.
func BuildFollowUp(partial domain.RawAction) *domain.FollowUp {
	actionType := domain.ActionType(partial.Type)

	if needsWorkoutType(actionType) && partial.WorkoutType == "" {
		return &domain.FollowUp{
			Kind:     domain.FollowUpWorkoutType,
			Question: "What kind of workout would you like?",
			Options:  workoutTypeOptions,
			Partial:  partial,
		}
	}
	// A request for the "usual" length already answers the duration
	// question; the executor resolves it from the profile.
	if needsDuration(actionType) && partial.DurationMin == 0 && !partial.UseDefaultDuration {
		return &domain.FollowUp{
			Kind:     domain.FollowUpDuration,
			Question: "How long should the session be?",
			Options:  durationOptions,
			Partial:  partial,
		}
	}
	if needsDay(actionType) && partial.Day.IsZero() {
		return &domain.FollowUp{
			Kind:     domain.FollowUpDay,
			Question: "Which day should this go on?",
			Options:  dayOptions,
			Partial:  partial,
		}
	}
	if actionType == domain.ActionSwapDay || actionType == domain.ActionMoveSession {
		if partial.FromDay.IsZero() || partial.ToDay.IsZero() {
			return &domain.FollowUp{
				Kind:     domain.FollowUpClarification,
				Question: "Which two days are involved?",
				Options:  dayOptions,
				Partial:  partial,
			}
		}
	}
	return nil
}

func needsWorkoutType(t domain.ActionType) bool {
	return t == domain.ActionAddSession || t == domain.ActionReplaceSession
}

func needsDuration(t domain.ActionType) bool {
	return t == domain.ActionAddSession || t == domain.ActionReplaceSession
}

func needsDay(t domain.ActionType) bool {
	switch t {
	case domain.ActionAddSession, domain.ActionReplaceSession,
		domain.ActionSkipDay, domain.ActionRegenerateSession:
		return true
	}
	return false
}
