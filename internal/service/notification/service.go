package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stefanpalsson415/family-care-api/internal/email"
	"github.com/stefanpalsson415/family-care-api/internal/model"
)

// Sender delivers a reminder to the family.
type Sender interface {
	Deliver(ctx context.Context, to string, reminder *model.Reminder) error
}

type Service struct {
	email  email.Service
	logger zerolog.Logger
}

func NewService(emailSvc email.Service, logger zerolog.Logger) *Service {
	return &Service{
		email:  emailSvc,
		logger: logger.With().Str("component", "notification").Logger(),
	}
}

// Deliver renders the reminder as a plain-text email and sends it.
func (s *Service) Deliver(ctx context.Context, to string, reminder *model.Reminder) error {
	subject, body := render(reminder)
	if err := s.email.Send(ctx, to, subject, body); err != nil {
		return fmt.Errorf("failed to deliver %s reminder: %w", reminder.Type, err)
	}

	s.logger.Debug().
		Str("type", string(reminder.Type)).
		Str("to", to).
		Msg("reminder delivered")
	return nil
}

func render(reminder *model.Reminder) (subject, body string) {
	var b strings.Builder
	b.WriteString(reminder.Message)
	b.WriteString("\n")

	switch reminder.Type {
	case model.ReminderTypePreparation:
		subject = fmt.Sprintf("Preparation needed: %s", reminder.Title)
		for _, step := range reminder.Steps {
			fmt.Fprintf(&b, "\n- %s", step.Title)
		}
		if extra := reminder.IncompleteSteps - len(reminder.Steps); extra > 0 {
			fmt.Fprintf(&b, "\n...and %d more", extra)
		}
	case model.ReminderTypeDocuments:
		subject = fmt.Sprintf("Documents needed: %s", reminder.Title)
		for _, doc := range reminder.Documents {
			fmt.Fprintf(&b, "\n- %s", doc.Name)
		}
	case model.ReminderTypeAppointment:
		subject = fmt.Sprintf("Upcoming appointment: %s", reminder.Title)
		if reminder.Location != "" {
			fmt.Fprintf(&b, "\nLocation: %s", reminder.Location)
		}
		if reminder.ProviderName != "" {
			fmt.Fprintf(&b, "\nProvider: %s", reminder.ProviderName)
		}
	case model.ReminderTypeFollowup:
		subject = fmt.Sprintf("Follow-up needed: %s", reminder.Title)
	case model.ReminderTypeMedication:
		subject = fmt.Sprintf("Medication reminder for %s", reminder.PatientName)
		if reminder.Dosage != "" {
			fmt.Fprintf(&b, "\nDosage: %s", reminder.Dosage)
		}
		if reminder.Instructions != "" {
			fmt.Fprintf(&b, "\nInstructions: %s", reminder.Instructions)
		}
	default:
		subject = "Family care reminder"
	}

	return subject, b.String()
}
