package medication

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stefanpalsson415/family-care-api/internal/model"
	"github.com/stefanpalsson415/family-care-api/internal/repository"
)

// Manager owns medication records and dose schedules. Medical events
// reference medications by id only.
type Manager interface {
	CreateMedication(ctx context.Context, med *model.Medication) (uuid.UUID, error)
	CreateSchedule(ctx context.Context, schedule *model.MedicationSchedule) error

	// UpcomingReminders expands a member's schedules into dose
	// reminders falling within the next daysAhead days.
	UpcomingReminders(ctx context.Context, memberID uuid.UUID, daysAhead int) ([]*model.MedicationReminder, error)
}

type Service struct {
	repo   repository.MedicationRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo repository.MedicationRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "medication_manager").Logger(),
		now:    time.Now,
	}
}

func (s *Service) CreateMedication(ctx context.Context, med *model.Medication) (uuid.UUID, error) {
	med.ID = uuid.New()
	if med.StartDate.IsZero() {
		med.StartDate = s.now().UTC()
	}

	if err := s.repo.CreateMedication(ctx, med); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return med.ID, nil
}

func (s *Service) CreateSchedule(ctx context.Context, schedule *model.MedicationSchedule) error {
	schedule.ID = uuid.New()
	if schedule.Frequency == "" {
		schedule.Frequency = model.ScheduleDaily
	}

	if err := s.repo.CreateSchedule(ctx, schedule); err != nil {
		return fmt.Errorf("failed to create medication schedule: %w", err)
	}
	return nil
}

func (s *Service) UpcomingReminders(ctx context.Context, memberID uuid.UUID, daysAhead int) ([]*model.MedicationReminder, error) {
	if daysAhead <= 0 {
		daysAhead = 1
	}

	schedules, err := s.repo.ListSchedulesByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	now := s.now().UTC()
	horizon := now.AddDate(0, 0, daysAhead)

	var reminders []*model.MedicationReminder
	for _, schedule := range schedules {
		med, err := s.repo.GetMedication(ctx, schedule.MedicationID)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("medication_id", schedule.MedicationID.String()).
				Msg("skipping schedule for unavailable medication")
			continue
		}
		if !med.IsActive {
			continue
		}

		for _, due := range expandOccurrences(schedule, now, horizon) {
			if med.EndDate != nil && due.After(*med.EndDate) {
				continue
			}
			if due.Before(med.StartDate) {
				continue
			}
			reminders = append(reminders, &model.MedicationReminder{
				MedicationID:   med.ID,
				FamilyMemberID: memberID,
				ScheduledFor:   due,
				WithFood:       schedule.WithFood,
				Message:        fmt.Sprintf("Time to take %s %s", med.Name, med.Dosage),
				Medication:     med,
			})
		}
	}

	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ScheduledFor.Before(reminders[j].ScheduledFor)
	})
	return reminders, nil
}

// expandOccurrences walks each day in [from, to] and emits the dose
// instants the schedule calls for. from itself is the lower bound so
// already-past doses today are excluded.
func expandOccurrences(schedule *model.MedicationSchedule, from, to time.Time) []time.Time {
	var out []time.Time

	for day := from.Truncate(24 * time.Hour); !day.After(to); day = day.AddDate(0, 0, 1) {
		switch schedule.Frequency {
		case model.ScheduleWeekly:
			if !containsDay(schedule.DaysOfWeek, int(day.Weekday())) {
				continue
			}
		case model.ScheduleMonthly:
			if day.Day() != schedule.DayOfMonth {
				continue
			}
		}

		for _, hhmm := range schedule.Times {
			hour, minute, ok := parseClock(hhmm)
			if !ok {
				continue
			}
			due := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
			if due.Before(from) || due.After(to) {
				continue
			}
			out = append(out, due)
		}
	}
	return out
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func parseClock(hhmm string) (hour, minute int, ok bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
