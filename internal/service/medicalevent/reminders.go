package medicalevent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stefanpalsson415/family-care-api/internal/model"
	apperrors "github.com/stefanpalsson415/family-care-api/pkg/errors"
)

const (
	defaultReminderDaysInAdvance = 3
	maxStepsPerReminder          = 3
	medicationReminderWindow     = time.Hour
)

// GeneratePreAppointmentReminders scans scheduled events whose
// appointment falls on the UTC calendar day exactly daysInAdvance from
// now and produces up to three reminders per event: outstanding
// preparation steps, missing documents, and the appointment itself.
// Events whose reminder settings opt out of appointment reminders are
// skipped entirely. The generators only read; delivery and dedup belong
// to the worker.
func (s *Service) GeneratePreAppointmentReminders(ctx context.Context, daysInAdvance int) ([]*model.Reminder, error) {
	if daysInAdvance <= 0 {
		daysInAdvance = defaultReminderDaysInAdvance
	}

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, daysInAdvance)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	events, err := s.events.ListScheduledBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list upcoming events: %w", err))
	}

	var reminders []*model.Reminder
	for _, event := range events {
		if !event.ReminderSettings.AppointmentReminders {
			continue
		}

		if event.PreparationStatus != model.ChecklistComplete {
			var incomplete []model.PreparationStep
			for _, step := range event.PreparationSteps {
				if step.Status != model.StepStatusCompleted {
					incomplete = append(incomplete, step)
				}
			}
			if len(incomplete) > 0 {
				shown := incomplete
				if len(shown) > maxStepsPerReminder {
					shown = shown[:maxStepsPerReminder]
				}
				reminders = append(reminders, &model.Reminder{
					Type:            model.ReminderTypePreparation,
					EventID:         event.ID,
					Title:           event.Title,
					PatientName:     event.PatientName,
					AppointmentDate: event.AppointmentDate,
					IncompleteSteps: len(incomplete),
					Steps:           shown,
					Message: fmt.Sprintf("%d preparation steps remaining for %s in %d days",
						len(incomplete), event.Title, daysInAdvance),
				})
			}
		}

		if event.DocumentStatus != model.ChecklistComplete {
			var needed []model.RequiredDocument
			for _, doc := range event.RequiredDocuments {
				if doc.Status != model.DocumentStatusReady {
					needed = append(needed, doc)
				}
			}
			if len(needed) > 0 {
				reminders = append(reminders, &model.Reminder{
					Type:            model.ReminderTypeDocuments,
					EventID:         event.ID,
					Title:           event.Title,
					PatientName:     event.PatientName,
					AppointmentDate: event.AppointmentDate,
					NeededDocuments: len(needed),
					Documents:       needed,
					Message: fmt.Sprintf("%d documents still needed for %s",
						len(needed), event.Title),
				})
			}
		}

		reminders = append(reminders, &model.Reminder{
			Type:            model.ReminderTypeAppointment,
			EventID:         event.ID,
			Title:           event.Title,
			PatientName:     event.PatientName,
			AppointmentDate: event.AppointmentDate,
			AppointmentTime: event.AppointmentDate.Format("15:04"),
			Location:        event.Location,
			ProviderName:    event.ProviderName,
			Message: fmt.Sprintf("%s is in %d days at %s",
				event.Title, daysInAdvance, event.AppointmentDate.Format("15:04")),
		})
	}

	s.logger.Info().
		Int("count", len(reminders)).
		Int("days_in_advance", daysInAdvance).
		Msg("generated pre-appointment reminders")
	return reminders, nil
}

// GenerateFollowupReminders produces a reminder for each completed
// event with a recommended but not yet scheduled follow-up.
func (s *Service) GenerateFollowupReminders(ctx context.Context) ([]*model.Reminder, error) {
	events, err := s.events.ListCompletedWithFollowup(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list events needing follow-up: %w", err))
	}

	var reminders []*model.Reminder
	for _, event := range events {
		if !event.ReminderSettings.FollowupReminders {
			continue
		}
		if event.FollowupDetails != nil && event.FollowupDetails.Status == model.FollowupStatusScheduled {
			continue
		}

		followupType := "follow-up"
		timeframe := "1 month"
		if event.FollowupDetails != nil {
			if event.FollowupDetails.Type != "" {
				followupType = event.FollowupDetails.Type
			}
			if event.FollowupDetails.RecommendedTimeframe != "" {
				timeframe = event.FollowupDetails.RecommendedTimeframe
			}
		}

		reminders = append(reminders, &model.Reminder{
			Type:                 model.ReminderTypeFollowup,
			EventID:              event.ID,
			Title:                event.Title,
			PatientName:          event.PatientName,
			ProviderName:         event.ProviderName,
			CompletedDate:        event.CompletedDate,
			FollowupType:         followupType,
			RecommendedTimeframe: timeframe,
			Message: fmt.Sprintf("A %s was recommended within %s of %s",
				followupType, timeframe, event.Title),
		})
	}

	s.logger.Info().Int("count", len(reminders)).Msg("generated follow-up reminders")
	return reminders, nil
}

// GenerateMedicationReminders fans out over every family with medical
// events and collects doses due within the next hour. One family's
// failure is logged and skipped without poisoning the batch. Member
// lists are cached briefly since the batch runs far more often than
// family composition changes.
func (s *Service) GenerateMedicationReminders(ctx context.Context) ([]*model.Reminder, error) {
	familyIDs, err := s.events.ListFamilyIDs(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list families: %w", err))
	}

	now := s.now().UTC()
	windowEnd := now.Add(medicationReminderWindow)

	var reminders []*model.Reminder
	for _, familyID := range familyIDs {
		members, err := s.familyMembers(ctx, familyID)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("family_id", familyID.String()).
				Msg("skipping family in medication reminder batch")
			continue
		}

		for _, member := range members {
			due, err := s.meds.UpcomingReminders(ctx, member.ID, 1)
			if err != nil {
				s.logger.Warn().Err(err).
					Str("member_id", member.ID.String()).
					Msg("skipping member in medication reminder batch")
				continue
			}
			for _, dose := range due {
				if dose.ScheduledFor.Before(now) || dose.ScheduledFor.After(windowEnd) {
					continue
				}
				reminder := &model.Reminder{
					Type:           model.ReminderTypeMedication,
					MedicationID:   dose.MedicationID,
					FamilyMemberID: member.ID,
					PatientName:    member.Name,
					ScheduledFor:   dose.ScheduledFor,
					Message:        dose.Message,
				}
				if dose.Medication != nil {
					reminder.MedicationName = dose.Medication.Name
					reminder.Dosage = dose.Medication.Dosage
					reminder.Instructions = dose.Medication.Instructions
				}
				reminders = append(reminders, reminder)
			}
		}
	}

	s.logger.Info().Int("count", len(reminders)).Msg("generated medication reminders")
	return reminders, nil
}

func (s *Service) familyMembers(ctx context.Context, familyID uuid.UUID) ([]*model.FamilyMember, error) {
	key := "members:" + familyID.String()
	if cached, ok := s.memberCache.Get(key); ok {
		return cached.([]*model.FamilyMember), nil
	}

	members, err := s.members.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	s.memberCache.SetDefault(key, members)
	return members, nil
}
