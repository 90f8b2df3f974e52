package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ActionType discriminates the closed set of plan-mutation intents.
type ActionType string

const (
	ActionAddSession        ActionType = "ADD_SESSION"
	ActionReplaceSession    ActionType = "REPLACE_SESSION"
	ActionSwapDay           ActionType = "SWAP_DAY"
	ActionMoveSession       ActionType = "MOVE_SESSION"
	ActionSkipDay           ActionType = "SKIP_DAY"
	ActionRegenerateSession ActionType = "REGENERATE_SESSION"
)

// AllActionTypes lists every known variant, in catalog order.
var AllActionTypes = []ActionType{
	ActionAddSession, ActionReplaceSession, ActionSwapDay,
	ActionMoveSession, ActionSkipDay, ActionRegenerateSession,
}

// DayRef points at a plan day either by absolute ISO date or by weekday
// name. Exactly one of the two must be set for a reference to be usable.
type DayRef struct {
	Date    string `json:"date,omitempty"`    // YYYY-MM-DD
	Weekday string `json:"weekday,omitempty"` // lowercase english weekday name
}

// IsZero reports whether the reference carries neither a date nor a weekday.
func (r DayRef) IsZero() bool {
	return r.Date == "" && r.Weekday == ""
}

var weekdayIndex = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Resolve turns the reference into a concrete ISO date. A weekday name
// resolves to its next occurrence counting from now; a weekday matching
// today resolves to today. Weekdays already passed in the current cycle
// land in the following week by construction.
func (r DayRef) Resolve(now time.Time) (string, error) {
	if r.Date != "" {
		parsed, err := time.Parse(DayLayout, r.Date)
		if err != nil {
			return "", fmt.Errorf("invalid date %q: %w", r.Date, err)
		}
		return parsed.Format(DayLayout), nil
	}
	target, ok := weekdayIndex[strings.ToLower(r.Weekday)]
	if !ok {
		return "", fmt.Errorf("unknown weekday %q", r.Weekday)
	}
	offset := (int(target) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, offset).Format(DayLayout), nil
}

// CoachAction is one validated plan-mutation instruction. Only the
// fields relevant to its Type are populated; ValidateAction is the single
// gate that produces one.
type CoachAction struct {
	Type        ActionType  `json:"type"`
	Day         DayRef      `json:"day,omitempty"`     // ADD/REPLACE/SKIP/REGENERATE target
	FromDay     DayRef      `json:"fromDay,omitempty"` // SWAP/MOVE source
	ToDay       DayRef      `json:"toDay,omitempty"`   // SWAP/MOVE destination
	WorkoutType WorkoutType `json:"workoutType,omitempty"`
	DurationMin int         `json:"durationMin,omitempty"`
	Intensity   string      `json:"intensity,omitempty"`
	SkipReason  string      `json:"skipReason,omitempty"`

	// UseDefaultDuration marks a request for the user's "usual" session
	// length. It satisfies the duration requirement in place of an
	// explicit DurationMin; the executor resolves it against the stored
	// profile default.
	UseDefaultDuration bool `json:"useDefaultDuration,omitempty"`

	// UserRequestedType preserves the category the user originally asked
	// for, before any upstream resolution. The executor cross-checks it
	// against WorkoutType to block silent substitutions.
	UserRequestedType WorkoutType `json:"userRequestedType,omitempty"`
}

// Duration bounds accepted by the schema, in minutes.
const (
	MinDurationMin = 10
	MaxDurationMin = 180
)

// FieldError is one schema violation, tied to the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// RawAction is the untyped candidate shape accepted over the wire.
type RawAction struct {
	Type               string `json:"type"`
	Day                DayRef `json:"day"`
	FromDay            DayRef `json:"fromDay"`
	ToDay              DayRef `json:"toDay"`
	WorkoutType        string `json:"workoutType"`
	DurationMin        int    `json:"durationMin"`
	UseDefaultDuration bool   `json:"useDefaultDuration"`
	Intensity          string `json:"intensity"`
	SkipReason         string `json:"skipReason"`
	UserRequestedType  string `json:"userRequestedType"`
}

// ValidateAction checks an untyped candidate against the variant schema
// and returns the fully-typed action, or an ordered list of field errors.
// No action reaches the executor without passing through here.
func ValidateAction(raw RawAction) (*CoachAction, []FieldError) {
	var errs []FieldError

	actionType := ActionType(raw.Type)
	known := false
	for _, t := range AllActionTypes {
		if actionType == t {
			known = true
			break
		}
	}
	if !known {
		return nil, []FieldError{{Field: "type", Message: fmt.Sprintf("unknown action type %q", raw.Type)}}
	}

	action := &CoachAction{
		Type:               actionType,
		Day:                raw.Day,
		FromDay:            raw.FromDay,
		ToDay:              raw.ToDay,
		DurationMin:        raw.DurationMin,
		UseDefaultDuration: raw.UseDefaultDuration,
		Intensity:          raw.Intensity,
		SkipReason:         raw.SkipReason,
	}
	if raw.WorkoutType != "" {
		action.WorkoutType = WorkoutType(strings.ToLower(raw.WorkoutType))
	}
	if raw.UserRequestedType != "" {
		action.UserRequestedType = WorkoutType(strings.ToLower(raw.UserRequestedType))
	}

	// Variant-specific required fields. A target day must carry at least
	// one of {date, weekday}; a required workout type must come from the
	// enumeration: never an implicit default, and never assumed cardio.
	switch actionType {
	case ActionAddSession, ActionReplaceSession:
		errs = append(errs, checkDayRef("day", action.Day)...)
		errs = append(errs, checkWorkoutType("workoutType", action.WorkoutType, true)...)
		// "Use my usual duration" stands in for an explicit number.
		errs = append(errs, checkDuration("durationMin", action.DurationMin, !action.UseDefaultDuration)...)
	case ActionSwapDay, ActionMoveSession:
		errs = append(errs, checkDayRef("fromDay", action.FromDay)...)
		errs = append(errs, checkDayRef("toDay", action.ToDay)...)
	case ActionSkipDay:
		errs = append(errs, checkDayRef("day", action.Day)...)
	case ActionRegenerateSession:
		errs = append(errs, checkDayRef("day", action.Day)...)
		// Workout type is optional here: REGENERATE is the one variant
		// allowed to carry the previous session's type over.
		errs = append(errs, checkWorkoutType("workoutType", action.WorkoutType, false)...)
		errs = append(errs, checkDuration("durationMin", action.DurationMin, false)...)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return action, nil
}

func checkDayRef(field string, ref DayRef) []FieldError {
	if ref.IsZero() {
		return []FieldError{{Field: field, Message: "a date or weekday is required"}}
	}
	if ref.Date != "" && !isoDatePattern.MatchString(ref.Date) {
		return []FieldError{{Field: field, Message: fmt.Sprintf("date %q is not in YYYY-MM-DD format", ref.Date)}}
	}
	if ref.Date == "" {
		if _, ok := weekdayIndex[strings.ToLower(ref.Weekday)]; !ok {
			return []FieldError{{Field: field, Message: fmt.Sprintf("unknown weekday %q", ref.Weekday)}}
		}
	}
	return nil
}

func checkWorkoutType(field string, t WorkoutType, required bool) []FieldError {
	if t == "" {
		if required {
			return []FieldError{{Field: field, Message: "a workout type is required"}}
		}
		return nil
	}
	if !IsValidWorkoutType(t) {
		return []FieldError{{Field: field, Message: fmt.Sprintf("unknown workout type %q", t)}}
	}
	return nil
}

func checkDuration(field string, minutes int, required bool) []FieldError {
	if minutes == 0 {
		if required {
			return []FieldError{{Field: field, Message: "a duration in minutes is required"}}
		}
		return nil
	}
	if minutes < MinDurationMin || minutes > MaxDurationMin {
		return []FieldError{{Field: field, Message: fmt.Sprintf("duration must be between %d and %d minutes", MinDurationMin, MaxDurationMin)}}
	}
	return nil
}

// RequiredFields describes, per variant, which fields the schema demands.
// Served by the action-type catalog endpoint.
func RequiredFields(t ActionType) []string {
	switch t {
	case ActionAddSession, ActionReplaceSession:
		return []string{"day", "workoutType", "durationMin"}
	case ActionSwapDay, ActionMoveSession:
		return []string{"fromDay", "toDay"}
	case ActionSkipDay:
		return []string{"day"}
	case ActionRegenerateSession:
		return []string{"day"}
	}
	return nil
}
