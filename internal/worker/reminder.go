package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stefanpalsson415/family-care-api/internal/config"
	"github.com/stefanpalsson415/family-care-api/internal/model"
	"github.com/stefanpalsson415/family-care-api/internal/service/medicalevent"
	"github.com/stefanpalsson415/family-care-api/internal/service/notification"
	"github.com/stefanpalsson415/family-care-api/pkg/metrics"
)

// ReminderWorker periodically runs the three reminder generators and
// delivers what they produce. Redis keys dedup deliveries across
// processes, so running more than one worker is safe.
type ReminderWorker struct {
	registry *medicalevent.Service
	notifier notification.Sender
	redis    *redis.Client
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	cfg      config.ReminderConfig
}

func NewReminderWorker(
	registry *medicalevent.Service,
	notifier notification.Sender,
	redisClient *redis.Client,
	m *metrics.Metrics,
	logger zerolog.Logger,
	cfg config.ReminderConfig,
) *ReminderWorker {
	return &ReminderWorker{
		registry: registry,
		notifier: notifier,
		redis:    redisClient,
		metrics:  m,
		logger:   logger.With().Str("component", "reminder_worker").Logger(),
		cfg:      cfg,
	}
}

// Run blocks until ctx is cancelled, driving each batch on its own
// cadence. Each batch also runs once at startup.
func (w *ReminderWorker) Run(ctx context.Context) {
	batches := []struct {
		name  string
		every time.Duration
		run   func(context.Context) error
	}{
		{"appointment", w.cfg.AppointmentEvery, w.runAppointmentBatch},
		{"followup", w.cfg.FollowupEvery, w.runFollowupBatch},
		{"medication", w.cfg.MedicationEvery, w.runMedicationBatch},
	}

	for _, batch := range batches {
		batch := batch
		go func() {
			ticker := time.NewTicker(batch.every)
			defer ticker.Stop()

			for {
				if err := w.runBatch(ctx, batch.name, batch.run); err != nil {
					w.logger.Error().Err(err).Str("batch", batch.name).Msg("reminder batch failed")
				}
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}()
	}

	<-ctx.Done()
}

func (w *ReminderWorker) runBatch(ctx context.Context, name string, run func(context.Context) error) error {
	start := time.Now()
	err := run(ctx)
	w.metrics.ReminderRunLatency.Observe(time.Since(start).Seconds())

	w.logger.Debug().
		Str("batch", name).
		Dur("duration", time.Since(start)).
		Msg("reminder batch finished")
	return err
}

func (w *ReminderWorker) runAppointmentBatch(ctx context.Context) error {
	reminders, err := w.registry.GeneratePreAppointmentReminders(ctx, w.cfg.DaysInAdvance)
	if err != nil {
		return fmt.Errorf("failed to generate pre-appointment reminders: %w", err)
	}
	return w.dispatch(ctx, reminders)
}

func (w *ReminderWorker) runFollowupBatch(ctx context.Context) error {
	reminders, err := w.registry.GenerateFollowupReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate follow-up reminders: %w", err)
	}
	return w.dispatch(ctx, reminders)
}

func (w *ReminderWorker) runMedicationBatch(ctx context.Context) error {
	reminders, err := w.registry.GenerateMedicationReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate medication reminders: %w", err)
	}
	return w.dispatch(ctx, reminders)
}

func (w *ReminderWorker) dispatch(ctx context.Context, reminders []*model.Reminder) error {
	var result *multierror.Error

	for _, reminder := range reminders {
		typ := string(reminder.Type)
		w.metrics.RemindersGenerated.WithLabelValues(typ).Inc()

		fresh, err := w.claim(ctx, reminder)
		if err != nil {
			w.metrics.RemindersFailed.WithLabelValues(typ).Inc()
			result = multierror.Append(result, fmt.Errorf("failed to claim reminder: %w", err))
			continue
		}
		if !fresh {
			w.metrics.RemindersSkipped.WithLabelValues(typ).Inc()
			continue
		}

		if err := w.notifier.Deliver(ctx, w.cfg.NotificationTarget, reminder); err != nil {
			w.metrics.RemindersFailed.WithLabelValues(typ).Inc()
			result = multierror.Append(result, err)
			continue
		}
		w.metrics.RemindersSent.WithLabelValues(typ).Inc()
	}

	return result.ErrorOrNil()
}

// claim reserves the reminder's dedup key. It returns false when
// another run already delivered this reminder within the TTL.
func (w *ReminderWorker) claim(ctx context.Context, reminder *model.Reminder) (bool, error) {
	return w.redis.SetNX(ctx, dedupKey(reminder), time.Now().UTC().Format(time.RFC3339), w.cfg.DedupTTL).Result()
}

func dedupKey(reminder *model.Reminder) string {
	switch reminder.Type {
	case model.ReminderTypeMedication:
		return fmt.Sprintf("reminder:%s:%s:%s",
			reminder.Type, reminder.MedicationID, reminder.ScheduledFor.Format(time.RFC3339))
	case model.ReminderTypeFollowup:
		return fmt.Sprintf("reminder:%s:%s", reminder.Type, reminder.EventID)
	default:
		return fmt.Sprintf("reminder:%s:%s:%s",
			reminder.Type, reminder.EventID, reminder.AppointmentDate.Format("2006-01-02"))
	}
}
