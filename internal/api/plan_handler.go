package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach/plan-engine/internal/service"
)

// PlanHandler holds the plan lifecycle and recovery dependencies.
type PlanHandler struct {
	planService     service.PlanService
	recoveryService service.RecoveryService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, recoveryService service.RecoveryService) *PlanHandler {
	return &PlanHandler{
		planService:     planService,
		recoveryService: recoveryService,
	}
}

// EnsurePlanResponse is the reply for the idempotent ensure operation.
type EnsurePlanResponse struct {
	OK              bool       `json:"ok"`
	Generated       bool       `json:"generated"`
	PlanID          string     `json:"planId"`
	WorkoutsCount   int        `json:"workoutsCount"`
	LastGeneratedAt *time.Time `json:"lastGeneratedAt,omitempty"`
	RequestID       string     `json:"requestId"`
}

// EnsurePlan makes sure the user has a plan, generating one only when
// none exists. Safe to call on every app-open.
func (h *PlanHandler) EnsurePlan(c *gin.Context) {
	userID, ok := userIDFromRequest(c)
	if !ok {
		return
	}

	result, err := h.planService.EnsurePlan(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to ensure a plan exists.")
		return
	}

	c.JSON(http.StatusOK, EnsurePlanResponse{
		OK:              true,
		Generated:       result.Generated,
		PlanID:          result.PlanID,
		WorkoutsCount:   result.WorkoutsCount,
		LastGeneratedAt: result.LastGeneratedAt,
		RequestID:       c.GetString(ContextRequestIDKey),
	})
}

// GetPlanStatus returns the derived status view, recomputed per call.
func (h *PlanHandler) GetPlanStatus(c *gin.Context) {
	userID, ok := userIDFromRequest(c)
	if !ok {
		return
	}

	status, err := h.planService.GetPlanStatus(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read plan status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"exists":          status.Exists,
		"planId":          status.PlanID,
		"workoutsCount":   status.WorkoutsCount,
		"lastGeneratedAt": status.LastGeneratedAt,
		"requestId":       c.GetString(ContextRequestIDKey),
	})
}

// GetRestDayRecommendation runs the advisory rest-day analysis. It never
// changes the plan; a positive recommendation is the caller's cue to
// offer a SKIP_DAY action.
func (h *PlanHandler) GetRestDayRecommendation(c *gin.Context) {
	userID, ok := userIDFromRequest(c)
	if !ok {
		return
	}

	recommendation, err := h.recoveryService.Analyze(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to analyze recent training.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"recommendation": recommendation,
		"requestId":      c.GetString(ContextRequestIDKey),
	})
}
