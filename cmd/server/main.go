package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitcoach/plan-engine/internal/api"
	"fitcoach/plan-engine/internal/config"
	"fitcoach/plan-engine/internal/diag"
	"fitcoach/plan-engine/internal/generator"
	applogger "fitcoach/plan-engine/internal/logger"
	mongorepo "fitcoach/plan-engine/internal/repository/mongo"
	"fitcoach/plan-engine/internal/service"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: could not load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("starting plan engine", zap.String("address", cfg.Server.Address))

	// --- Database Connection ---
	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongorepo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongorepo.EnsureWorkoutDayIndexes(ctx, appDB.Collection("workout_days"))
		mongorepo.EnsurePerformanceLogIndexes(ctx, appDB.Collection("performance_logs"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Repositories ---
	planRepo := mongorepo.NewMongoPlanRepository(appDB)
	userRepo := mongorepo.NewMongoUserRepository(appDB)
	perfLogRepo := mongorepo.NewMongoPerformanceLogRepository(appDB)

	// --- Collaborators ---
	sessionGen := generator.NewHTTPClient(cfg.Generator.Endpoint, cfg.Generator.APIToken, cfg.Generator.Timeout)
	diagRing := diag.NewRing(cfg.Diagnostics.BufferSize)

	// --- Initialize Services ---
	executor := service.NewActionExecutor(planRepo, userRepo, sessionGen, diagRing, logger, nil)
	planService := service.NewPlanService(planRepo, userRepo, logger, nil)
	recoveryService := service.NewRecoveryService(userRepo, perfLogRepo, nil)

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, cfg.JWT.Secret, logger, executor, planService, recoveryService, diagRing)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
