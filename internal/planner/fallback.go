package planner

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitcoach/plan-engine/internal/domain"
)

// fallbackSplits is the fixed table of safe weekly splits, keyed by
// training-day count. These are the guaranteed-sane last resort when
// upstream generation fails or produces an invalid plan.
var fallbackSplits = map[int][]domain.WorkoutType{
	1: {domain.TypeFullBody},
	2: {domain.TypeUpper, domain.TypeLower},
	3: {domain.TypeFullBody, domain.TypeFullBody, domain.TypeFullBody},
	4: {domain.TypeUpper, domain.TypeLower, domain.TypeUpper, domain.TypeLower},
	5: {domain.TypePush, domain.TypePull, domain.TypeLegs, domain.TypePush, domain.TypePull},
	6: {domain.TypePush, domain.TypePull, domain.TypeLegs, domain.TypePush, domain.TypePull, domain.TypeLegs},
	7: {domain.TypePush, domain.TypePull, domain.TypeLegs, domain.TypeUpper, domain.TypeLower, domain.TypeFullBody, domain.TypeCore},
}

// trainingDayOffsets spreads N sessions over the 7-day cycle so rest
// days land between sessions where the count allows it.
var trainingDayOffsets = map[int][]int{
	1: {0},
	2: {0, 3},
	3: {0, 2, 4},
	4: {0, 1, 3, 4},
	5: {0, 1, 2, 4, 5},
	6: {0, 1, 2, 3, 4, 5},
	7: {0, 1, 2, 3, 4, 5, 6},
}

// injuryExclusions maps injury keywords (matched as substrings of the
// user's stated injuries) to workout types that must not be scheduled.
var injuryExclusions = map[string][]domain.WorkoutType{
	"knee":     {domain.TypeLegs, domain.TypeLower, domain.TypeGlutes},
	"ankle":    {domain.TypeLegs, domain.TypeLower},
	"hip":      {domain.TypeLegs, domain.TypeLower, domain.TypeGlutes},
	"shoulder": {domain.TypePush, domain.TypeShoulders, domain.TypeChest, domain.TypeUpper},
	"back":     {domain.TypePull, domain.TypeBack, domain.TypeLower},
	"wrist":    {domain.TypePush, domain.TypePull, domain.TypeArms},
	"elbow":    {domain.TypePush, domain.TypePull, domain.TypeArms},
}

// substitutionOrder is tried in order when an injury rules a type out.
// Core work is the near-universal fallback; low-impact cardio closes the
// chain so the training-day count is always preserved.
var substitutionOrder = []domain.WorkoutType{
	domain.TypeUpper, domain.TypeLower, domain.TypeCore, domain.TypeCardio,
}

const fallbackDurationMin = 45

// GenerateFallbackPlan deterministically builds a 7-day cycle starting at
// start: exactly trainingDaysPerWeek training sessions from the fixed
// split table, injury-excluded types substituted (never dropped), and the
// remaining days padded as rest. Same inputs always produce the same plan.
func GenerateFallbackPlan(userID primitive.ObjectID, planID string, trainingDaysPerWeek int, injuries []string, start time.Time) []domain.WorkoutDay {
	if trainingDaysPerWeek < 1 {
		trainingDaysPerWeek = 1
	}
	if trainingDaysPerWeek > 7 {
		trainingDaysPerWeek = 7
	}

	split := fallbackSplits[trainingDaysPerWeek]
	offsets := trainingDayOffsets[trainingDaysPerWeek]
	excluded := excludedTypes(injuries)

	typeByOffset := make(map[int]domain.WorkoutType, len(offsets))
	for i, offset := range offsets {
		typeByOffset[offset] = substitute(split[i], excluded)
	}

	days := make([]domain.WorkoutDay, 0, 7)
	for offset := 0; offset < 7; offset++ {
		workoutType, training := typeByOffset[offset]
		if !training {
			workoutType = domain.TypeRest
		}
		duration := fallbackDurationMin
		if workoutType == domain.TypeRest {
			duration = 0
		}
		days = append(days, domain.WorkoutDay{
			UserID:      userID,
			PlanID:      planID,
			Day:         start.AddDate(0, 0, offset).Format(domain.DayLayout),
			WorkoutType: workoutType,
			DurationMin: duration,
			Status:      domain.StatusScheduled,
		})
	}
	return days
}

func excludedTypes(injuries []string) map[domain.WorkoutType]bool {
	excluded := map[domain.WorkoutType]bool{}
	for _, injury := range injuries {
		lowered := strings.ToLower(injury)
		for keyword, types := range injuryExclusions {
			if strings.Contains(lowered, keyword) {
				for _, t := range types {
					excluded[t] = true
				}
			}
		}
	}
	return excluded
}

// substitute swaps an excluded type for the first allowed alternative.
// The chain ends in cardio, which no exclusion rules out, so a training
// day is never silently downgraded to rest.
func substitute(t domain.WorkoutType, excluded map[domain.WorkoutType]bool) domain.WorkoutType {
	if !excluded[t] {
		return t
	}
	for _, alt := range substitutionOrder {
		if !excluded[alt] {
			return alt
		}
	}
	return domain.TypeCardio
}
