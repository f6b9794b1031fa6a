package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stefanpalsson415/family-care-api/internal/config"
	"github.com/stefanpalsson415/family-care-api/internal/handler"
	medicaleventHandler "github.com/stefanpalsson415/family-care-api/internal/handler/medicalevent"
	"github.com/stefanpalsson415/family-care-api/internal/middleware"
	"github.com/stefanpalsson415/family-care-api/internal/repository/postgres"
	"github.com/stefanpalsson415/family-care-api/internal/router"
	"github.com/stefanpalsson415/family-care-api/internal/service/calendar"
	"github.com/stefanpalsson415/family-care-api/internal/service/childtracking"
	medicaleventService "github.com/stefanpalsson415/family-care-api/internal/service/medicalevent"
	medicationService "github.com/stefanpalsson415/family-care-api/internal/service/medication"
	"github.com/stefanpalsson415/family-care-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewLogger(nil)
	log := *appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	eventRepo := postgres.NewMedicalEventRepository(db)
	memberRepo := postgres.NewFamilyMemberRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)

	calendarClient := calendar.NewClient(calendar.ClientConfig{
		BaseURL: cfg.Calendar.BaseURL,
		APIKey:  cfg.Calendar.APIKey,
		Timeout: time.Duration(cfg.Calendar.TimeoutSeconds) * time.Second,
	}, log)
	medicationSvc := medicationService.NewService(medicationRepo, log)
	childTracker := childtracking.NewService(memberRepo, log)
	registry := medicaleventService.NewService(
		eventRepo, memberRepo, calendarClient, medicationSvc, childTracker, log)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT)
	healthHandler := handler.NewHealthHandler(db)
	eventHandler := medicaleventHandler.NewHandler(registry)

	r := router.NewRouter(cfg, log, authMiddleware, healthHandler, eventHandler)
	defer r.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
