package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach/plan-engine/internal/domain"
	"fitcoach/plan-engine/internal/intent"
)

// IntentHandler turns free-text chat requests into partial actions.
type IntentHandler struct {
	now func() time.Time
}

// NewIntentHandler creates a new IntentHandler with an injectable clock.
func NewIntentHandler(now func() time.Time) *IntentHandler {
	if now == nil {
		now = time.Now
	}
	return &IntentHandler{now: now}
}

// ParseIntentRequest carries one free-text coaching request.
type ParseIntentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseIntent extracts a best-effort partial action from free text. When
// the extraction is complete it returns the validated action ready to be
// confirmed and executed; otherwise it returns the single
// highest-priority follow-up question.
func (h *IntentHandler) ParseIntent(c *gin.Context) {
	var req ParseIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	extraction := intent.Extract(req.Text, h.now())

	if followUp := intent.BuildFollowUp(extraction.Action); followUp != nil {
		c.JSON(http.StatusOK, gin.H{
			"ok":                 true,
			"complete":           false,
			"followUp":           followUp,
			"confidence":         extraction.Confidence,
			"useDefaultDuration": extraction.UseDefaultDuration,
			"requestId":          c.GetString(ContextRequestIDKey),
		})
		return
	}

	action, fieldErrs := domain.ValidateAction(extraction.Action)
	if len(fieldErrs) > 0 {
		// Extraction filled every follow-up slot but the schema still
		// objects; surface it the same way the execute endpoint would.
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":          false,
			"code":        "VALIDATION_FAILED",
			"fieldErrors": fieldErrs,
			"requestId":   c.GetString(ContextRequestIDKey),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"complete":           true,
		"action":             action,
		"confidence":         extraction.Confidence,
		"useDefaultDuration": extraction.UseDefaultDuration,
		"requestId":          c.GetString(ContextRequestIDKey),
	})
}
