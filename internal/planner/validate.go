// Package planner holds the plan validation rules and the deterministic
// fallback generator. Everything in here is pure: no clock beyond the
// caller-supplied start date, no randomness, no network.
package planner

import (
	"fmt"

	"fitcoach/plan-engine/internal/domain"
)

// ValidationResult reports how a candidate plan measures up. Errors are
// fatal and require regeneration; warnings are advisory.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Muscle groups checked by the coverage rule.
const (
	groupPush = "push"
	groupPull = "pull"
	groupLegs = "legs"
	groupCore = "core"
)

// coverage maps a workout type to the major groups it trains. Cardio
// variants and rest days cover nothing.
var coverage = map[domain.WorkoutType][]string{
	domain.TypeFullBody:  {groupPush, groupPull, groupLegs, groupCore},
	domain.TypeUpper:     {groupPush, groupPull},
	domain.TypeLower:     {groupLegs},
	domain.TypePush:      {groupPush},
	domain.TypePull:      {groupPull},
	domain.TypeChest:     {groupPush},
	domain.TypeShoulders: {groupPush},
	domain.TypeArms:      {groupPush, groupPull},
	domain.TypeBack:      {groupPull},
	domain.TypeLegs:      {groupLegs},
	domain.TypeGlutes:    {groupLegs},
	domain.TypeCore:      {groupCore},
}

// ValidatePlan enforces the plan invariants, in order of severity:
//  1. the non-rest day count must exactly equal trainingDaysPerWeek (fatal;
//     not auto-correctable here, callers must regenerate),
//  2. a plan with zero non-rest days is always invalid (fatal),
//  3. with 4+ training days, each of push/pull/legs/core should appear at
//     least once over the cycle (warning only).
func ValidatePlan(candidate []domain.WorkoutDay, trainingDaysPerWeek int) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}

	trainingDays := 0
	for _, day := range candidate {
		if day.WorkoutType.IsTraining() {
			trainingDays++
		}
	}

	if trainingDays != trainingDaysPerWeek {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"plan has %d training days, expected %d", trainingDays, trainingDaysPerWeek))
	}

	if trainingDays == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "plan contains no training days")
	}

	if trainingDaysPerWeek >= 4 {
		covered := map[string]bool{}
		for _, day := range candidate {
			for _, group := range coverage[day.WorkoutType] {
				covered[group] = true
			}
		}
		for _, group := range []string{groupPush, groupPull, groupLegs, groupCore} {
			if !covered[group] {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"no session covers %s over the cycle", group))
			}
		}
	}

	return result
}
