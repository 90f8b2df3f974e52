package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitcoach/plan-engine/internal/diag"
	"fitcoach/plan-engine/internal/service"
)

// SetupRoutes wires middleware and handlers onto the engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	logger *zap.Logger,
	executor service.ActionExecutor,
	planService service.PlanService,
	recoveryService service.RecoveryService,
	diagRing *diag.Ring,
) {
	router.Use(RequestID())
	router.Use(RequestLogger(logger))

	actionHandler := NewActionHandler(executor)
	planHandler := NewPlanHandler(planService, recoveryService)
	intentHandler := NewIntentHandler(nil)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// Static catalog; documentation endpoint, no auth side effects.
		apiV1.GET("/plan/actions/types", actionHandler.GetActionTypes)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		planGroup := protected.Group("/plan")
		{
			planGroup.POST("/actions/execute", actionHandler.ExecuteAction)
			planGroup.POST("/actions/parse", intentHandler.ParseIntent)
			planGroup.POST("/ensure", planHandler.EnsurePlan)
			planGroup.GET("/status", planHandler.GetPlanStatus)
			planGroup.GET("/rest-day", planHandler.GetRestDayRecommendation)
		}

		// Recent engine failures, oldest first. Operator-facing.
		protected.GET("/diag/errors", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"ok":        true,
				"errors":    diagRing.Recent(),
				"requestId": c.GetString(ContextRequestIDKey),
			})
		})
	}
}
