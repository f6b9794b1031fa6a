package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/stefanpalsson415/family-care-api/internal/config"
	"github.com/stefanpalsson415/family-care-api/internal/email"
	"github.com/stefanpalsson415/family-care-api/internal/repository/postgres"
	"github.com/stefanpalsson415/family-care-api/internal/service/calendar"
	"github.com/stefanpalsson415/family-care-api/internal/service/childtracking"
	medicaleventService "github.com/stefanpalsson415/family-care-api/internal/service/medicalevent"
	medicationService "github.com/stefanpalsson415/family-care-api/internal/service/medication"
	"github.com/stefanpalsson415/family-care-api/internal/service/notification"
	"github.com/stefanpalsson415/family-care-api/internal/worker"
	"github.com/stefanpalsson415/family-care-api/pkg/logger"
	"github.com/stefanpalsson415/family-care-api/pkg/metrics"
)

// workerEnv overrides deployment-specific knobs without touching the
// shared config file.
type workerEnv struct {
	MetricsPort        int    `envconfig:"WORKER_METRICS_PORT" default:"9090"`
	DaysInAdvance      int    `envconfig:"REMINDER_DAYS_IN_ADVANCE"`
	NotificationTarget string `envconfig:"REMINDER_NOTIFICATION_TARGET"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var env workerEnv
	if err := envconfig.Process("", &env); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read environment: %v\n", err)
		os.Exit(1)
	}
	if env.DaysInAdvance > 0 {
		cfg.Reminders.DaysInAdvance = env.DaysInAdvance
	}
	if env.NotificationTarget != "" {
		cfg.Reminders.NotificationTarget = env.NotificationTarget
	}

	appLogger := logger.NewLogger(nil)
	log := *appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer redisClient.Close()

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

	emailSvc := email.NewSMTPService(cfg.Email)
	notifier := notification.NewService(emailSvc, log)
	m := metrics.NewMetrics("family_care", "worker")

	reminderWorker := worker.NewReminderWorker(
		registry, notifier, redisClient, m, log, cfg.Reminders)

	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down worker...")
		cancel()
	}()

	log.Info().Msg("reminder worker started")
	reminderWorker.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server forced to shutdown")
	}

	log.Info().Msg("worker exited properly")
}
