package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/service"
)

// ActionHandler holds the executor dependency.
type ActionHandler struct {
	executor service.ActionExecutor
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(executor service.ActionExecutor) *ActionHandler {
	return &ActionHandler{executor: executor}
}

// --- DTOs ---

// ExecuteActionRequest defines the expected JSON for executing an action.
type ExecuteActionRequest struct {
	Action domain.RawAction `json:"action" binding:"required"`
}

// ExecuteActionResponse is the uniform execution reply.
type ExecuteActionResponse struct {
	OK                 bool     `json:"ok"`
	Message            string   `json:"message"`
	Code               string   `json:"code,omitempty"`
	SideEffectIDs      []string `json:"sideEffectIds,omitempty"`
	UpdatedPlanSummary []string `json:"updatedPlanSummary,omitempty"`
	RequestID          string   `json:"requestId"`
}

// --- Handler Methods ---

// ExecuteAction validates the candidate action and applies it. Schema
// failures never reach the executor; they come back as a 400 with the
// ordered field-error list.
func (h *ActionHandler) ExecuteAction(c *gin.Context) {
	var req ExecuteActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, ok := userIDFromRequest(c)
	if !ok {
		return
	}

	action, fieldErrs := domain.ValidateAction(req.Action)
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":          false,
			"code":        "VALIDATION_FAILED",
			"fieldErrors": fieldErrs,
			"requestId":   c.GetString(ContextRequestIDKey),
		})
		return
	}

	result := h.executor.Execute(c.Request.Context(), userID, action)

	status := http.StatusOK
	if !result.OK {
		if result.Code == service.CodeActionMismatch {
			status = http.StatusBadRequest
		} else {
			status = http.StatusInternalServerError
		}
	}

	c.JSON(status, ExecuteActionResponse{
		OK:                 result.OK,
		Message:            result.Message,
		Code:               result.Code,
		SideEffectIDs:      result.SideEffectIDs,
		UpdatedPlanSummary: result.PlanSummary,
		RequestID:          c.GetString(ContextRequestIDKey),
	})
}

// GetActionTypes serves the static catalog of action variants, their
// required fields, and the workout-type enumeration. Documentation
// endpoint; no auth side effects.
func (h *ActionHandler) GetActionTypes(c *gin.Context) {
	types := make([]gin.H, 0, len(domain.AllActionTypes))
	for _, t := range domain.AllActionTypes {
		types = append(types, gin.H{
			"type":           t,
			"requiredFields": domain.RequiredFields(t),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"actionTypes":  types,
		"workoutTypes": domain.AllWorkoutTypes,
		"requestId":    c.GetString(ContextRequestIDKey),
	})
}

// userIDFromRequest pulls the authenticated user out of the context and
// parses it; a failure aborts the request.
func userIDFromRequest(c *gin.Context) (primitive.ObjectID, bool) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return userID, true
}
