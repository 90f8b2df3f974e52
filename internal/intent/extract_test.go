package intent

import (
	"testing"
	"time"

	"fitcoach/plan-engine/internal/domain"
)

var testNow = time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC) // a Monday

func TestDetectWorkoutType(t *testing.T) {
	cases := []struct {
		text string
		want domain.WorkoutType
	}{
		{"give me a booty workout", domain.TypeGlutes},
		{"I want to work my butt", domain.TypeGlutes},
		{"chest day please", domain.TypeChest},
		{"something for my lats", domain.TypeBack},
		{"full body session", domain.TypeFullBody},
		{"leg day!!", domain.TypeLegs},
		{"a quick run", domain.TypeCardio},
		{"some yoga tonight", domain.TypeRecovery},
	}

	for _, tc := range cases {
		got, ok := DetectWorkoutType(tc.text)
		if !ok {
			t.Errorf("%q: expected a match", tc.text)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestDetectWorkoutTypeNeverDefaults(t *testing.T) {
	if got, ok := DetectWorkoutType("schedule something for me"); ok {
		t.Errorf("expected no match, got %s", got)
	}
}

func TestDetectDay(t *testing.T) {
	if ref, ok := DetectDay("train today", testNow); !ok || ref.Date != "2026-08-24" {
		t.Errorf("today: got %+v ok=%v", ref, ok)
	}
	if ref, ok := DetectDay("maybe tomorrow", testNow); !ok || ref.Date != "2026-08-25" {
		t.Errorf("tomorrow: got %+v ok=%v", ref, ok)
	}
	if ref, ok := DetectDay("put it on thursday", testNow); !ok || ref.Weekday != "thursday" {
		t.Errorf("weekday: got %+v ok=%v", ref, ok)
	}
	if _, ok := DetectDay("whenever works", testNow); ok {
		t.Error("expected no day match")
	}
}

func TestDetectDuration(t *testing.T) {
	cases := []struct {
		text        string
		wantMinutes int
		wantDefault bool
		wantFound   bool
	}{
		{"30 min of cardio", 30, false, true},
		{"about 45 minutes", 45, false, true},
		{"1 hour upper body", 60, false, true},
		{"2 hours in the gym", 120, false, true},
		{"5 min warmup", 10, false, true},     // clamped up
		{"4 hours of legs", 180, false, true}, // clamped down
		{"a quick session", 20, false, true},
		{"something short", 20, false, true},
		{"a long workout", 60, false, true},
		{"my usual workout", 0, true, false},
		{"the normal one", 0, true, false},
		{"my usual 45 min session", 45, false, true}, // explicit number wins
		{"just train me", 0, false, false},
	}

	for _, tc := range cases {
		minutes, useDefault, found := DetectDuration(tc.text)
		if minutes != tc.wantMinutes || useDefault != tc.wantDefault || found != tc.wantFound {
			t.Errorf("%q: got (%d, %v, %v), want (%d, %v, %v)",
				tc.text, minutes, useDefault, found, tc.wantMinutes, tc.wantDefault, tc.wantFound)
		}
	}
}

func TestExtractFullRequest(t *testing.T) {
	extraction := Extract("add a 30 min chest workout on friday", testNow)

	if extraction.Action.Type != string(domain.ActionAddSession) {
		t.Errorf("type = %s", extraction.Action.Type)
	}
	if extraction.Action.WorkoutType != "chest" {
		t.Errorf("workoutType = %s", extraction.Action.WorkoutType)
	}
	if extraction.Action.UserRequestedType != "chest" {
		t.Errorf("userRequestedType = %s", extraction.Action.UserRequestedType)
	}
	if extraction.Action.DurationMin != 30 {
		t.Errorf("durationMin = %d", extraction.Action.DurationMin)
	}
	if extraction.Action.Day.Weekday != "friday" {
		t.Errorf("day = %+v", extraction.Action.Day)
	}
	if extraction.Confidence != 1 {
		t.Errorf("confidence = %f", extraction.Confidence)
	}
}

func TestExtractVerbHints(t *testing.T) {
	cases := []struct {
		text string
		want domain.ActionType
	}{
		{"swap monday and thursday", domain.ActionSwapDay},
		{"move my legs day to friday", domain.ActionMoveSession},
		{"skip tomorrow", domain.ActionSkipDay},
		{"regenerate wednesday", domain.ActionRegenerateSession},
		{"replace monday with cardio", domain.ActionReplaceSession},
		{"chest on tuesday", domain.ActionAddSession},
	}

	for _, tc := range cases {
		extraction := Extract(tc.text, testNow)
		if extraction.Action.Type != string(tc.want) {
			t.Errorf("%q: got %s, want %s", tc.text, extraction.Action.Type, tc.want)
		}
	}
}

func TestExtractUsualDurationSetsFlag(t *testing.T) {
	extraction := Extract("chest for my usual time on friday", testNow)

	if extraction.Action.DurationMin != 0 {
		t.Errorf("durationMin should stay unset, got %d", extraction.Action.DurationMin)
	}
	if !extraction.UseDefaultDuration {
		t.Error("expected UseDefaultDuration flag")
	}
	if !extraction.Action.UseDefaultDuration {
		t.Error("flag must travel on the action itself")
	}
}

// A "usual length" request is fully specified: no follow-up is asked and
// the schema accepts the action without an explicit duration.
func TestExtractUsualDurationCompletesWithoutFollowUp(t *testing.T) {
	extraction := Extract("add a chest workout today, usual length", testNow)

	if followUp := BuildFollowUp(extraction.Action); followUp != nil {
		t.Fatalf("unexpected follow-up: %+v", followUp)
	}
	action, fieldErrs := domain.ValidateAction(extraction.Action)
	if len(fieldErrs) > 0 {
		t.Fatalf("validation rejected the request: %v", fieldErrs)
	}
	if !action.UseDefaultDuration || action.DurationMin != 0 {
		t.Errorf("action = %+v, want the default-duration flag and no explicit minutes", action)
	}
	if extraction.Confidence != 1 {
		t.Errorf("confidence = %f, want 1", extraction.Confidence)
	}
}

func TestExtractConfidenceScalesByVariant(t *testing.T) {
	// A swap names both days and nothing else; workout type and duration
	// are irrelevant to it and must not drag confidence down.
	extraction := Extract("swap monday and thursday", testNow)
	if extraction.Confidence != 1 {
		t.Errorf("swap confidence = %f, want 1", extraction.Confidence)
	}

	extraction = Extract("skip tomorrow", testNow)
	if extraction.Confidence != 1 {
		t.Errorf("skip confidence = %f, want 1", extraction.Confidence)
	}

	// An underspecified add still reads as low confidence.
	extraction = Extract("chest please", testNow)
	if extraction.Confidence >= 0.5 {
		t.Errorf("bare add confidence = %f, want < 0.5", extraction.Confidence)
	}
}

func TestBuildFollowUpPriority(t *testing.T) {
	// Nothing known: workout type is asked first.
	partial := domain.RawAction{Type: string(domain.ActionAddSession)}
	followUp := BuildFollowUp(partial)
	if followUp == nil || followUp.Kind != domain.FollowUpWorkoutType {
		t.Fatalf("got %+v, want workout_type follow-up", followUp)
	}

	// Type known: duration comes before day.
	partial.WorkoutType = "legs"
	followUp = BuildFollowUp(partial)
	if followUp == nil || followUp.Kind != domain.FollowUpDuration {
		t.Fatalf("got %+v, want duration follow-up", followUp)
	}

	// Type and duration known: day is the last question.
	partial.DurationMin = 45
	followUp = BuildFollowUp(partial)
	if followUp == nil || followUp.Kind != domain.FollowUpDay {
		t.Fatalf("got %+v, want day follow-up", followUp)
	}

	// Complete action: no follow-up.
	partial.Day = domain.DayRef{Weekday: "monday"}
	if followUp = BuildFollowUp(partial); followUp != nil {
		t.Fatalf("expected no follow-up, got %+v", followUp)
	}
}

func TestBuildFollowUpSkipsDurationForUsualRequest(t *testing.T) {
	partial := domain.RawAction{
		Type:               string(domain.ActionAddSession),
		WorkoutType:        "chest",
		UseDefaultDuration: true,
	}
	followUp := BuildFollowUp(partial)
	if followUp == nil || followUp.Kind != domain.FollowUpDay {
		t.Fatalf("got %+v, want the day question, not duration", followUp)
	}
}

func TestBuildFollowUpOptionsIncludeCustom(t *testing.T) {
	followUp := BuildFollowUp(domain.RawAction{Type: string(domain.ActionAddSession)})
	if followUp == nil {
		t.Fatal("expected a follow-up")
	}
	hasCustom := false
	for _, option := range followUp.Options {
		if option == "custom" {
			hasCustom = true
		}
	}
	if !hasCustom {
		t.Errorf("options %v lack the custom escape hatch", followUp.Options)
	}
}
