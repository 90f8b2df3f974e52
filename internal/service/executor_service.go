package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"fitcoach/plan-engine/internal/diag"
	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/generator"
	"fitcoach/plan-engine/internal/repository"
)

// --- Error Definitions ---
var (
	ErrNoWorkoutFound   = errors.New("no workout found for that day")
	ErrIntentMismatch   = errors.New("resolved workout type contradicts what was asked for")
	ErrGenerationFailed = errors.New("session generation failed")
)

// Result codes surfaced to the HTTP layer.
const (
	CodeActionMismatch = "ACTION_MISMATCH"
	CodeActionFailed   = "ACTION_FAILED"
)

// ExecutionResult is the executor's uniform outcome. Failures are data,
// not errors: nothing propagates past this boundary unhandled.
type ExecutionResult struct {
	OK            bool     `json:"ok"`
	Message       string   `json:"message"`
	Code          string   `json:"code,omitempty"`
	SideEffectIDs []string `json:"sideEffectIds,omitempty"`
	PlanSummary   []string `json:"updatedPlanSummary,omitempty"`
}

// ActionExecutor applies one validated CoachAction to the plan.
type ActionExecutor interface {
	Execute(ctx context.Context, userID primitive.ObjectID, action *domain.CoachAction) ExecutionResult
}

type actionExecutor struct {
	planRepo  repository.PlanRepository
	userRepo  repository.UserRepository
	generator generator.SessionGenerator
	diag      diag.Recorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewActionExecutor creates a new executor. The clock is injectable so
// weekday resolution is testable.
func NewActionExecutor(
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	sessionGen generator.SessionGenerator,
	recorder diag.Recorder,
	logger *zap.Logger,
	now func() time.Time,
) ActionExecutor {
	if now == nil {
		now = time.Now
	}
	return &actionExecutor{
		planRepo:  planRepo,
		userRepo:  userRepo,
		generator: sessionGen,
		diag:      recorder,
		logger:    logger,
		now:       now,
	}
}

// strengthTypes are the categories the mismatch guard protects. Upstream
// extraction has a documented failure mode of resolving these to cardio;
// that substitution is hard-blocked rather than silently executed.
var strengthTypes = map[domain.WorkoutType]bool{
	domain.TypeChest:     true,
	domain.TypeArms:      true,
	domain.TypeBack:      true,
	domain.TypeLegs:      true,
	domain.TypeShoulders: true,
	domain.TypeGlutes:    true,
}

// Execute dispatches one action. Repository and generation errors are
// converted to failed results; the raw detail goes to the logger and the
// diagnostics ring only.
func (s *actionExecutor) Execute(ctx context.Context, userID primitive.ObjectID, action *domain.CoachAction) ExecutionResult {
	if action == nil {
		return s.failure(userID, "execute", "No action supplied.", errors.New("nil action"))
	}

	// Intent-mismatch guard: the user asked for a strength category but
	// something upstream resolved it to cardio. Refuse, whatever the
	// extraction confidence was.
	if action.UserRequestedType != "" && strengthTypes[action.UserRequestedType] {
		if action.WorkoutType == domain.TypeCardio || action.WorkoutType == domain.TypeHIIT {
			if s.logger != nil {
				s.logger.Warn("action refused",
					zap.String("userId", userID.Hex()),
					zap.String("requested", string(action.UserRequestedType)),
					zap.String("resolved", string(action.WorkoutType)),
					zap.Error(ErrIntentMismatch),
				)
			}
			s.record("execute", userID, fmt.Sprintf("%v: requested %s, resolved %s", ErrIntentMismatch, action.UserRequestedType, action.WorkoutType))
			return ExecutionResult{
				OK:      false,
				Code:    CodeActionMismatch,
				Message: fmt.Sprintf("You asked for a %s workout but this would schedule %s instead, so it was not applied.", action.UserRequestedType, action.WorkoutType),
			}
		}
	}

	var result ExecutionResult
	switch action.Type {
	case domain.ActionAddSession:
		result = s.addSession(ctx, userID, action)
	case domain.ActionReplaceSession:
		result = s.replaceSession(ctx, userID, action)
	case domain.ActionSwapDay:
		result = s.swapDay(ctx, userID, action)
	case domain.ActionMoveSession:
		result = s.moveSession(ctx, userID, action)
	case domain.ActionSkipDay:
		result = s.skipDay(ctx, userID, action)
	case domain.ActionRegenerateSession:
		result = s.regenerateSession(ctx, userID, action)
	default:
		return s.failure(userID, "execute", "Unknown action type.", fmt.Errorf("unknown action type %q", action.Type))
	}

	if result.OK {
		result.PlanSummary = s.planSummary(ctx, userID)
	}
	return result
}

// === ADD_SESSION ===

// addSession creates one new scheduled day and touches nothing else.
// Calling it twice creates two sessions; avoiding duplicates is the
// caller's job.
func (s *actionExecutor) addSession(ctx context.Context, userID primitive.ObjectID, action *domain.CoachAction) ExecutionResult {
	day, err := action.Day.Resolve(s.now())
	if err != nil {
		return s.failure(userID, "add_session", "That day could not be understood.", err)
	}

	row := &domain.WorkoutDay{
		UserID:      userID,
		Day:         day,
		WorkoutType: action.WorkoutType,
		DurationMin: s.resolveDuration(ctx, userID, action.DurationMin),
		Status:      domain.StatusScheduled,
	}
	id, err := s.planRepo.Create(ctx, row)
	if err != nil {
		return s.failure(userID, "add_session", "The session could not be saved.", err)
	}

	return ExecutionResult{
		OK:            true,
		Message:       fmt.Sprintf("Added a %s session on %s.", action.WorkoutType, day),
		SideEffectIDs: []string{id.Hex()},
	}
}

// === REPLACE_SESSION ===

// replaceSession deletes whatever is on the target day and generates new
// content. A day with no prior session is fine: replace means set. If
// generation fails the day is left without a session and the failure is
// reported; ensure-on-read or REGENERATE_SESSION heals the hole later.
func (s *actionExecutor) replaceSession(ctx context.Context, userID primitive.ObjectID, action *domain.CoachAction) ExecutionResult {
	day, err := action.Day.Resolve(s.now())
	if err != nil {
		return s.failure(userID, "replace_session", "That day could not be understood.", err)
	}

	if _, err := s.planRepo.DeleteByUserAndDay(ctx, userID, day); err != nil {
		return s.failure(userID, "replace_session", "The existing session could not be removed.", err)
	}

	duration := s.resolveDuration(ctx, userID, action.DurationMin)
	if _, err := s.generateContent(ctx, userID, day, action.WorkoutType, duration, action.Intensity); err != nil {
		return s.failure(userID, "replace_session",
			fmt.Sprintf("The new %s session could not be generated; %s is currently empty. Try regenerating it.", action.WorkoutType, day), err)
	}

	row := &domain.WorkoutDay{
		UserID:      userID,
		Day:         day,
		WorkoutType: action.WorkoutType,
		DurationMin: duration,
		Status:      domain.StatusScheduled,
	}
	id, err := s.planRepo.Create(ctx, row)
	if err != nil {
		return s.failure(userID, "replace_session", "The new session could not be saved.", err)
	}

	return ExecutionResult{
		OK:            true,
		Message:       fmt.Sprintf("Replaced %s with a %s session.", day, action.WorkoutType),
		SideEffectIDs: []string{id.Hex()},
	}
}

// === SWAP_DAY ===

// swapDay exchanges the day labels of two rows; content stays put. With
// only one side populated, that row moves and the empty side becomes an
// implicit rest day. With neither side populated there is nothing to do.
func (s *actionExecutor) swapDay(ctx context.Context, userID primitive.ObjectID, action *domain.CoachAction) ExecutionResult {
	fromDay, err := action.FromDay.Resolve(s.now())
	if err != nil {
		return s.failure(userID, "swap_day", "The first day could not be understood.", err)
	}
	toDay, err := action.ToDay.Resolve(s.now())
	if err != nil {
		return s.failure(userID, "swap_day", "The second day could not be understood.", err)
	}

	fromRows, err := s.planRepo.GetByUserAndDay(ctx, userID, fromDay)
	if err != nil {
		return s.failure(userID, "swap_day", "The plan could not be read.", err)
	}
	toRows, err := s.planRepo.GetByUserAndDay(ctx, userID, toDay)
	if err != nil {
		return s.failure(userID, "swap_day", "The plan could not be read.", err)
	}
	if len(fromRows) == 0 && len(toRows) == 0 {
		return s.failure(userID, "swap_day",
			fmt.Sprintf("Neither %s nor %s has a session to swap.", fromDay, toDay), ErrNoWorkoutFound)
	}

	for i := range fromRows {
		fromRows[i].Day = toDay
		if err := s.planRepo.Update(ctx, &fromRows[i]); err != nil {
			return s.failure(userID, "swap_day", "The swap could not be saved.", err)
		}
	}
	for i := range toRows {
		toRows[i].Day = fromDay
		if err := s.planRepo.Update(ctx, &toRows[i]); err != nil {
			return s.failure(userID, "swap_day", "The swap could not be saved.", err)
		}
	}

	return ExecutionResult{
		OK:      true,
		Message: fmt.Sprintf("Swapped %s and %s.", fromDay, toDay),
	}
}

// === MOVE_SESSION ===

// moveSession re-labels a single row from source to destination. A
// missing source session is a reported failure, not a silent add.
func (s *actionExecutor) moveSession(ctx context.Context, userID primitive.ObjectID, action *domain.CoachAction) ExecutionResult {
	fromDay, err := action.FromDay.Resolve(s.now())
	if err != nil {
		return s.failure(userID, "move_session", "The source day could not be understood.", err)
	}
	toDay, err := action.ToDay.Resolve(s.now())
	if err != nil {
		return s.failure(userID, "move_session", "The destination day could not be understood.", err)
	}

	rows, err := s.planRepo.GetByUserAndDay(ctx, userID, fromDay)
	if err != nil {
		return s.failure(userID, "move_session", "The plan could not be read.", err)
	}
	if len(rows) == 0 {
		return s.failure(userID, "move_session",
			fmt.Sprintf("No workout found on %s to move.", fromDay), ErrNoWorkoutFound)
	}

	row := rows[0]
	row.Day = toDay
	if err := s.planRepo.Update(ctx, &row); err != nil {
		return s.failure(userID, "move_session", "The move could not be saved.", err)
	}

	return ExecutionResult{
		OK:      true,
		Message: fmt.Sprintf("Moved the %s session from %s to %s.", row.WorkoutType, fromDay, toDay),
	}
}

// === SKIP_DAY ===

// skipDay flags the matching row as skipped. Skipping a day that has no
// session is a no-op and still succeeds: the day was already rest.
func (s *actionExecutor) skipDay(ctx context.Context, userID primitive.ObjectID, action *domain.CoachAction) ExecutionResult {
	day, err := action.Day.Resolve(s.now())
	if err != nil {
		return s.failure(userID, "skip_day", "That day could not be understood.", err)
	}

	rows, err := s.planRepo.GetByUserAndDay(ctx, userID, day)
	if err != nil {
		return s.failure(userID, "skip_day", "The plan could not be read.", err)
	}
	if len(rows) == 0 {
		return ExecutionResult{
			OK:      true,
			Message: fmt.Sprintf("%s already had nothing scheduled, enjoy the rest day.", day),
		}
	}

	for i := range rows {
		rows[i].Status = domain.StatusSkipped
		rows[i].SkipReason = action.SkipReason
		if err := s.planRepo.Update(ctx, &rows[i]); err != nil {
			return s.failure(userID, "skip_day", "The skip could not be saved.", err)
		}
	}

	return ExecutionResult{
		OK:      true,
		Message: fmt.Sprintf("Marked %s as skipped.", day),
	}
}

// === REGENERATE_SESSION ===

// regenerateSession deletes the day's session and generates a fresh one.
// This is the only variant allowed to reuse the previous session's type
// as a default: the user explicitly asked for a redo, not new content.
func (s *actionExecutor) regenerateSession(ctx context.Context, userID primitive.ObjectID, action *domain.CoachAction) ExecutionResult {
	day, err := action.Day.Resolve(s.now())
	if err != nil {
		return s.failure(userID, "regenerate_session", "That day could not be understood.", err)
	}

	rows, err := s.planRepo.GetByUserAndDay(ctx, userID, day)
	if err != nil {
		return s.failure(userID, "regenerate_session", "The plan could not be read.", err)
	}

	workoutType := action.WorkoutType
	duration := action.DurationMin
	if len(rows) > 0 {
		if workoutType == "" {
			workoutType = rows[0].WorkoutType
		}
		if duration == 0 {
			duration = rows[0].DurationMin
		}
	}
	if workoutType == "" {
		return s.failure(userID, "regenerate_session",
			fmt.Sprintf("Nothing is scheduled on %s. Say what kind of workout you want there.", day), ErrNoWorkoutFound)
	}
	duration = s.resolveDuration(ctx, userID, duration)

	if _, err := s.planRepo.DeleteByUserAndDay(ctx, userID, day); err != nil {
		return s.failure(userID, "regenerate_session", "The old session could not be removed.", err)
	}

	if _, err := s.generateContent(ctx, userID, day, workoutType, duration, action.Intensity); err != nil {
		return s.failure(userID, "regenerate_session",
			fmt.Sprintf("The %s session could not be regenerated; %s is currently empty. Try again.", workoutType, day), err)
	}

	row := &domain.WorkoutDay{
		UserID:      userID,
		Day:         day,
		WorkoutType: workoutType,
		DurationMin: duration,
		Status:      domain.StatusScheduled,
	}
	id, err := s.planRepo.Create(ctx, row)
	if err != nil {
		return s.failure(userID, "regenerate_session", "The regenerated session could not be saved.", err)
	}

	return ExecutionResult{
		OK:            true,
		Message:       fmt.Sprintf("Regenerated the %s session on %s.", workoutType, day),
		SideEffectIDs: []string{id.Hex()},
	}
}

// === helpers ===

func (s *actionExecutor) generateContent(ctx context.Context, userID primitive.ObjectID, day string, workoutType domain.WorkoutType, duration int, intensity string) ([]generator.Exercise, error) {
	req := generator.Request{
		WorkoutType: workoutType,
		DurationMin: duration,
		Intensity:   intensity,
	}
	if parsed, err := time.Parse(domain.DayLayout, day); err == nil {
		req.DayIndex = int(parsed.Weekday())
	}
	if profile, err := s.userRepo.GetByID(ctx, userID); err == nil {
		req.FitnessLevel = profile.FitnessLevel
		req.Equipment = profile.Equipment
		req.Injuries = profile.Injuries
	}
	exercises, err := s.generator.GenerateSession(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return exercises, nil
}

// resolveDuration fills a zero duration from the stored profile default,
// falling back to 45 minutes when the profile carries none.
func (s *actionExecutor) resolveDuration(ctx context.Context, userID primitive.ObjectID, requested int) int {
	if requested != 0 {
		return requested
	}
	if profile, err := s.userRepo.GetByID(ctx, userID); err == nil && profile.DefaultDurationMin > 0 {
		return profile.DefaultDurationMin
	}
	return 45
}

// planSummary is best-effort: a read failure costs the caller the
// summary, not the already-applied action, but it is still logged.
func (s *actionExecutor) planSummary(ctx context.Context, userID primitive.ObjectID) []string {
	rows, err := s.planRepo.GetByUser(ctx, userID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("plan summary read failed",
				zap.String("userId", userID.Hex()),
				zap.Error(err),
			)
		}
		return nil
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })
	summary := make([]string, 0, len(rows))
	for _, row := range rows {
		line := fmt.Sprintf("%s: %s (%d min)", row.Day, row.WorkoutType, row.DurationMin)
		if row.Status == domain.StatusSkipped {
			line = fmt.Sprintf("%s: %s (skipped)", row.Day, row.WorkoutType)
		}
		summary = append(summary, line)
	}
	return summary
}

// failure logs the raw error server-side, records it in the diagnostics
// ring, and hands the caller a short actionable message.
func (s *actionExecutor) failure(userID primitive.ObjectID, op, message string, err error) ExecutionResult {
	if s.logger != nil {
		s.logger.Warn("action failed",
			zap.String("op", op),
			zap.String("userId", userID.Hex()),
			zap.Error(err),
		)
	}
	s.record(op, userID, err.Error())
	return ExecutionResult{
		OK:      false,
		Code:    CodeActionFailed,
		Message: strings.TrimSpace(message),
	}
}

func (s *actionExecutor) record(op string, userID primitive.ObjectID, message string) {
	if s.diag != nil {
		s.diag.Record(op, userID.Hex(), message)
	}
}
