package planner

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitcoach/plan-engine/internal/domain"
)

var testStart = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // a Monday

func TestGenerateFallbackPlanCounts(t *testing.T) {
	userID := primitive.NewObjectID()

	for trainingDays := 1; trainingDays <= 7; trainingDays++ {
		week := GenerateFallbackPlan(userID, "plan-1", trainingDays, nil, testStart)

		if len(week) != 7 {
			t.Fatalf("trainingDays=%d: got %d days, want 7", trainingDays, len(week))
		}
		training, rest := 0, 0
		for _, day := range week {
			if day.WorkoutType.IsTraining() {
				training++
			} else {
				rest++
			}
		}
		if training != trainingDays {
			t.Errorf("trainingDays=%d: got %d training days", trainingDays, training)
		}
		if rest != 7-trainingDays {
			t.Errorf("trainingDays=%d: got %d rest days, want %d", trainingDays, rest, 7-trainingDays)
		}
	}
}

func TestGenerateFallbackPlanDeterministic(t *testing.T) {
	userID := primitive.NewObjectID()
	injuries := []string{"sore knee"}

	first := GenerateFallbackPlan(userID, "plan-1", 5, injuries, testStart)
	for i := 0; i < 10; i++ {
		again := GenerateFallbackPlan(userID, "plan-1", 5, injuries, testStart)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestGenerateFallbackPlanFourDaySplit(t *testing.T) {
	week := GenerateFallbackPlan(primitive.NewObjectID(), "plan-1", 4, nil, testStart)

	var split []domain.WorkoutType
	for _, day := range week {
		if day.WorkoutType.IsTraining() {
			split = append(split, day.WorkoutType)
		}
	}
	want := []domain.WorkoutType{domain.TypeUpper, domain.TypeLower, domain.TypeUpper, domain.TypeLower}
	if !reflect.DeepEqual(split, want) {
		t.Errorf("4-day split = %v, want %v", split, want)
	}
}

func TestGenerateFallbackPlanInjurySubstitution(t *testing.T) {
	week := GenerateFallbackPlan(primitive.NewObjectID(), "plan-1", 5, []string{"knee pain"}, testStart)

	training := 0
	for _, day := range week {
		if day.WorkoutType.IsTraining() {
			training++
		}
		if day.WorkoutType == domain.TypeLegs || day.WorkoutType == domain.TypeLower {
			t.Errorf("knee injury still scheduled %s on %s", day.WorkoutType, day.Day)
		}
	}
	// Substitution must preserve the count, never downgrade to rest.
	if training != 5 {
		t.Errorf("got %d training days after substitution, want 5", training)
	}
}

func TestGenerateFallbackPlanDayLabels(t *testing.T) {
	week := GenerateFallbackPlan(primitive.NewObjectID(), "plan-1", 3, nil, testStart)

	for i, day := range week {
		want := testStart.AddDate(0, 0, i).Format(domain.DayLayout)
		if day.Day != want {
			t.Errorf("day %d = %q, want %q", i, day.Day, want)
		}
	}
}
