// Package intent does best-effort parsing of free-text coaching requests
// into partial actions. It never invents a workout type or duration the
// text does not support; whatever stays missing becomes a follow-up.
package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"fitcoach/plan-engine/internal/domain"
)

// Extraction is the best-effort read of one free-text request.
type Extraction struct {
	Action     domain.RawAction
	Confidence float64
	// UseDefaultDuration is set when the text asks for the "usual" or
	// "normal" length: the stored profile default applies, not a guess.
	UseDefaultDuration bool
}

// typeSynonyms maps keywords to workout types. Ordered so the first
// match wins deterministically; more specific phrases come first.
var typeSynonyms = []struct {
	keyword string
	t       domain.WorkoutType
}{
	{"full body", domain.TypeFullBody},
	{"full-body", domain.TypeFullBody},
	{"upper body", domain.TypeUpper},
	{"lower body", domain.TypeLower},
	{"booty", domain.TypeGlutes},
	{"butt", domain.TypeGlutes},
	{"glute", domain.TypeGlutes},
	{"chest", domain.TypeChest},
	{"pecs", domain.TypeChest},
	{"bench", domain.TypeChest},
	{"lats", domain.TypeBack},
	{"back", domain.TypeBack},
	{"quads", domain.TypeLegs},
	{"squat", domain.TypeLegs},
	{"leg", domain.TypeLegs},
	{"delts", domain.TypeShoulders},
	{"shoulder", domain.TypeShoulders},
	{"bicep", domain.TypeArms},
	{"tricep", domain.TypeArms},
	{"arm", domain.TypeArms},
	{"abs", domain.TypeCore},
	{"core", domain.TypeCore},
	{"push", domain.TypePush},
	{"pull", domain.TypePull},
	{"hiit", domain.TypeHIIT},
	{"interval", domain.TypeHIIT},
	{"running", domain.TypeCardio},
	{"run", domain.TypeCardio},
	{"jog", domain.TypeCardio},
	{"cardio", domain.TypeCardio},
	{"stretch", domain.TypeRecovery},
	{"yoga", domain.TypeRecovery},
	{"mobility", domain.TypeRecovery},
	{"recovery", domain.TypeRecovery},
	{"day off", domain.TypeRest},
	{"rest", domain.TypeRest},
	{"upper", domain.TypeUpper},
	{"lower", domain.TypeLower},
}

// DetectWorkoutType matches text against the synonym table and returns
// the first hit, or false. There is no default type.
func DetectWorkoutType(text string) (domain.WorkoutType, bool) {
	lowered := strings.ToLower(text)
	for _, entry := range typeSynonyms {
		if strings.Contains(lowered, entry.keyword) {
			return entry.t, true
		}
	}
	return "", false
}

// DetectDay recognizes "today"/"tomorrow" (resolved to absolute dates)
// or an explicit weekday name. Returns false if the text names no day.
func DetectDay(text string, now time.Time) (domain.DayRef, bool) {
	lowered := strings.ToLower(text)
	if strings.Contains(lowered, "tomorrow") {
		return domain.DayRef{Date: now.AddDate(0, 0, 1).Format(domain.DayLayout)}, true
	}
	if strings.Contains(lowered, "today") {
		return domain.DayRef{Date: now.Format(domain.DayLayout)}, true
	}
	for _, weekday := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		if strings.Contains(lowered, weekday) {
			return domain.DayRef{Weekday: weekday}, true
		}
	}
	return domain.DayRef{}, false
}

var (
	minutesPattern = regexp.MustCompile(`(\d+)\s*(?:minutes|minute|mins|min)\b`)
	hoursPattern   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:hours|hour|hrs|hr)\b`)
)

// DetectDuration extracts a session length in minutes. Qualitative
// keywords map to fixed values; "usual"/"normal" yields no number and
// useDefault=true so the caller resolves the stored profile default.
// An explicit number always wins: "my usual 45 min session" means 45.
func DetectDuration(text string) (minutes int, useDefault bool, found bool) {
	lowered := strings.ToLower(text)

	if matches := minutesPattern.FindStringSubmatch(lowered); matches != nil {
		parsed, _ := strconv.Atoi(matches[1])
		return clampDuration(parsed), false, true
	}
	if matches := hoursPattern.FindStringSubmatch(lowered); matches != nil {
		parsed, _ := strconv.ParseFloat(strings.Replace(matches[1], ",", ".", 1), 64)
		return clampDuration(int(parsed * 60)), false, true
	}
	if strings.Contains(lowered, "an hour") || strings.Contains(lowered, "one hour") {
		return 60, false, true
	}

	if strings.Contains(lowered, "usual") || strings.Contains(lowered, "normal") {
		return 0, true, false
	}

	if strings.Contains(lowered, "quick") || strings.Contains(lowered, "short") {
		return 20, false, true
	}
	if strings.Contains(lowered, "long") || strings.Contains(lowered, "extended") {
		return 60, false, true
	}

	return 0, false, false
}

func clampDuration(minutes int) int {
	if minutes < domain.MinDurationMin {
		return domain.MinDurationMin
	}
	if minutes > domain.MaxDurationMin {
		return domain.MaxDurationMin
	}
	return minutes
}

// verbHints maps request phrasings to action variants, first match wins.
// Adding a session is the default reading when no verb matches.
var verbHints = []struct {
	keyword string
	t       domain.ActionType
}{
	{"swap", domain.ActionSwapDay},
	{"switch", domain.ActionSwapDay},
	{"move", domain.ActionMoveSession},
	{"reschedule", domain.ActionMoveSession},
	{"skip", domain.ActionSkipDay},
	{"regenerate", domain.ActionRegenerateSession},
	{"redo", domain.ActionRegenerateSession},
	{"replace", domain.ActionReplaceSession},
	{"change", domain.ActionReplaceSession},
}

// Extract parses one free-text request into a partial action plus a
// confidence signal in [0,1]. Missing fields stay empty. Confidence is
// the share of the hinted variant's relevant fields the text actually
// named: a fully specified swap scores 1.0 even though it carries no
// workout type or duration.
func Extract(text string, now time.Time) Extraction {
	result := Extraction{
		Action: domain.RawAction{Type: string(domain.ActionAddSession)},
	}
	lowered := strings.ToLower(text)

	for _, hint := range verbHints {
		if strings.Contains(lowered, hint.keyword) {
			result.Action.Type = string(hint.t)
			break
		}
	}

	typeFound := false
	if workoutType, ok := DetectWorkoutType(text); ok {
		result.Action.WorkoutType = string(workoutType)
		result.Action.UserRequestedType = string(workoutType)
		typeFound = true
	}

	dayFound := false
	if day, ok := DetectDay(text, now); ok {
		result.Action.Day = day
		dayFound = true
	}

	minutes, useDefault, durationFound := DetectDuration(text)
	if durationFound {
		result.Action.DurationMin = minutes
	}
	result.Action.UseDefaultDuration = useDefault
	result.UseDefaultDuration = useDefault

	// Every variant references at least one day; only ADD and REPLACE
	// also need a workout type and a duration.
	hits, wanted := 0, 1
	if dayFound {
		hits++
	}
	actionType := domain.ActionType(result.Action.Type)
	if actionType == domain.ActionAddSession || actionType == domain.ActionReplaceSession {
		wanted += 2
		if typeFound {
			hits++
		}
		if durationFound || useDefault {
			hits++
		}
	}

	result.Confidence = float64(hits) / float64(wanted)
	return result
}
