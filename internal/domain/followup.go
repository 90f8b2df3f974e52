package domain

// FollowUpKind names the missing piece a clarifying question is after.
type FollowUpKind string

const (
	FollowUpWorkoutType   FollowUpKind = "workout_type"
	FollowUpDuration      FollowUpKind = "duration"
	FollowUpDay           FollowUpKind = "day"
	FollowUpConfirmation  FollowUpKind = "confirmation"
	FollowUpClarification FollowUpKind = "clarification"
)

// FollowUp is a structured clarifying question produced when an extracted
// action is under-specified. It carries the partial action collected so
// far; once the missing field is supplied the partial resolves into a
// complete CoachAction, or the exchange is abandoned.
type FollowUp struct {
	Kind     FollowUpKind `json:"kind"`
	Question string       `json:"question"`
	Options  []string     `json:"options,omitempty"`
	Partial  RawAction    `json:"partial"`
}
