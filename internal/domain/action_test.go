package domain

import (
	"testing"
	"time"
)

// Minimal valid shape per variant; each must pass the schema gate.
func TestValidateActionAcceptsMinimalShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  RawAction
	}{
		{"add", RawAction{Type: "ADD_SESSION", Day: DayRef{Weekday: "monday"}, WorkoutType: "legs", DurationMin: 45}},
		{"replace", RawAction{Type: "REPLACE_SESSION", Day: DayRef{Date: "2026-09-01"}, WorkoutType: "upper", DurationMin: 30}},
		{"swap", RawAction{Type: "SWAP_DAY", FromDay: DayRef{Weekday: "monday"}, ToDay: DayRef{Weekday: "thursday"}}},
		{"move", RawAction{Type: "MOVE_SESSION", FromDay: DayRef{Date: "2026-09-01"}, ToDay: DayRef{Date: "2026-09-03"}}},
		{"skip", RawAction{Type: "SKIP_DAY", Day: DayRef{Weekday: "friday"}}},
		{"regenerate", RawAction{Type: "REGENERATE_SESSION", Day: DayRef{Weekday: "tuesday"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			action, errs := ValidateAction(tc.raw)
			if len(errs) > 0 {
				t.Fatalf("expected valid action, got errors: %v", errs)
			}
			if action == nil {
				t.Fatal("expected a typed action")
			}
			if string(action.Type) != tc.raw.Type {
				t.Errorf("type = %q, want %q", action.Type, tc.raw.Type)
			}
		})
	}
}

// The default-duration flag stands in for an explicit number on the
// variants that otherwise require one, and is carried on the result.
func TestValidateActionAcceptsDefaultDurationFlag(t *testing.T) {
	for _, actionType := range []string{"ADD_SESSION", "REPLACE_SESSION"} {
		action, errs := ValidateAction(RawAction{
			Type:               actionType,
			Day:                DayRef{Weekday: "monday"},
			WorkoutType:        "chest",
			UseDefaultDuration: true,
		})
		if len(errs) > 0 {
			t.Fatalf("%s: expected valid action, got errors: %v", actionType, errs)
		}
		if !action.UseDefaultDuration {
			t.Errorf("%s: flag lost in validation", actionType)
		}
		if action.DurationMin != 0 {
			t.Errorf("%s: durationMin = %d, want 0", actionType, action.DurationMin)
		}
	}
}

func TestValidateActionRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name      string
		raw       RawAction
		wantField string
	}{
		{"unknown type", RawAction{Type: "DELETE_EVERYTHING"}, "type"},
		{"add without day", RawAction{Type: "ADD_SESSION", WorkoutType: "legs", DurationMin: 45}, "day"},
		{"add without type", RawAction{Type: "ADD_SESSION", Day: DayRef{Weekday: "monday"}, DurationMin: 45}, "workoutType"},
		{"add without duration", RawAction{Type: "ADD_SESSION", Day: DayRef{Weekday: "monday"}, WorkoutType: "legs"}, "durationMin"},
		{"swap without to", RawAction{Type: "SWAP_DAY", FromDay: DayRef{Weekday: "monday"}}, "toDay"},
		{"move without from", RawAction{Type: "MOVE_SESSION", ToDay: DayRef{Weekday: "monday"}}, "fromDay"},
		{"skip without day", RawAction{Type: "SKIP_DAY"}, "day"},
		{"bad weekday", RawAction{Type: "SKIP_DAY", Day: DayRef{Weekday: "someday"}}, "day"},
		{"bad date", RawAction{Type: "SKIP_DAY", Day: DayRef{Date: "next tuesday"}}, "day"},
		{"bad workout type", RawAction{Type: "ADD_SESSION", Day: DayRef{Weekday: "monday"}, WorkoutType: "parkour", DurationMin: 45}, "workoutType"},
		{"duration too short", RawAction{Type: "ADD_SESSION", Day: DayRef{Weekday: "monday"}, WorkoutType: "legs", DurationMin: 5}, "durationMin"},
		{"duration too long", RawAction{Type: "ADD_SESSION", Day: DayRef{Weekday: "monday"}, WorkoutType: "legs", DurationMin: 240}, "durationMin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			action, errs := ValidateAction(tc.raw)
			if action != nil {
				t.Fatal("expected rejection, got a typed action")
			}
			if len(errs) == 0 {
				t.Fatal("expected field errors")
			}
			found := false
			for _, fieldErr := range errs {
				if fieldErr.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error on field %q, got %v", tc.wantField, errs)
			}
		})
	}
}

func TestDayRefResolve(t *testing.T) {
	// 2026-08-24 is a Monday.
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ref  DayRef
		want string
	}{
		{"explicit date", DayRef{Date: "2026-09-01"}, "2026-09-01"},
		{"same weekday resolves to today", DayRef{Weekday: "monday"}, "2026-08-24"},
		{"later weekday this week", DayRef{Weekday: "friday"}, "2026-08-28"},
		{"passed weekday lands next week", DayRef{Weekday: "sunday"}, "2026-08-30"},
		{"case insensitive", DayRef{Weekday: "Wednesday"}, "2026-08-26"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Resolve(now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("resolved %q, want %q", got, tc.want)
			}
		})
	}

	if _, err := (DayRef{Weekday: "noday"}).Resolve(now); err == nil {
		t.Error("expected error for unknown weekday")
	}
	if _, err := (DayRef{Date: "2026-13-99"}).Resolve(now); err == nil {
		t.Error("expected error for impossible date")
	}
}
