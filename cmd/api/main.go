package main

import (
	"context"
	"elitefit-backend/config"
	_ "elitefit-backend/docs" // Important for Swagger
	v1 "elitefit-backend/internal/delivery/http/v1"
	"elitefit-backend/internal/provider/appwrite"
	"elitefit-backend/internal/repository/memory"
	"elitefit-backend/internal/repository/postgres"
	"elitefit-backend/internal/usecase"
	"elitefit-backend/pkg/database"
	"elitefit-backend/pkg/logger"
	"elitefit-backend/pkg/redis"
	"elitefit-backend/pkg/token"
	"elitefit-backend/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
)

// @title           EliteFit Backend API
// @version         1.0
// @description     Backend for the EliteFit mobile fitness app using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting elitefit backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	fitnessProfileRepo := postgres.NewFitnessProfileRepository(dbPool)
	planRepo := postgres.NewPlanRepository(dbPool)
	wizardStore := memory.NewWizardStore(time.Duration(cfg.WizardTTLMinutes) * time.Minute)

	// 6. Setup Identity Provider
	provider := appwrite.NewClient(appwrite.Config{
		Endpoint:         cfg.AppwriteEndpoint,
		ProjectID:        cfg.AppwriteProjectID,
		APIKey:           cfg.AppwriteAPIKey,
		DatabaseID:       cfg.AppwriteDatabaseID,
		UserCollectionID: cfg.AppwriteUserCollectionID,
		Timeout:          time.Duration(cfg.ProviderTimeoutSeconds) * time.Second,
	})

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	wizardUC := usecase.NewWizardUsecase(wizardStore)
	sessionUC := usecase.NewSessionUsecase(provider, fitnessProfileRepo, wizardUC, validate, cfg.FrontendURL+"/reset-password")
	planUC := usecase.NewPlanUsecase(planRepo, validate)

	// 8. Setup Token Manager
	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SessionUC: sessionUC,
		WizardUC:  wizardUC,
		PlanUC:    planUC,
		Tokens:    tokens,
		Config:    cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
