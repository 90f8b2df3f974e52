// Package generator defines the session-content collaborator invoked by
// REPLACE_SESSION and REGENERATE_SESSION, plus an HTTP implementation.
package generator

import (
	"context"

	"fitcoach/plan-engine/internal/domain"
)

// Request describes one session to generate.
type Request struct {
	WorkoutType  domain.WorkoutType  `json:"workoutType"`
	DurationMin  int                 `json:"durationMin"`
	Intensity    string              `json:"intensity,omitempty"`
	DayIndex     int                 `json:"dayIndex"`
	FitnessLevel domain.FitnessLevel `json:"fitnessLevel,omitempty"`
	Equipment    []string            `json:"equipment,omitempty"`
	Injuries     []string            `json:"injuries,omitempty"`
}

// Exercise is one generated movement within a session.
type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets,omitempty"`
	Reps  int    `json:"reps,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// SessionGenerator produces exercise content for one session. It is
// network-bound and awaited synchronously; errors are surfaced to the
// caller, never papered over with substitute content.
type SessionGenerator interface {
	GenerateSession(ctx context.Context, req Request) ([]Exercise, error)
}
