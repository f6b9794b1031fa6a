package childtracking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stefanpalsson415/family-care-api/internal/model"
	"github.com/stefanpalsson415/family-care-api/internal/repository"
)

// Tracker records appointments in a child's tracked medical history.
type Tracker interface {
	AddMedicalAppointment(ctx context.Context, familyID, childID uuid.UUID, summary model.AppointmentSummary, addToCalendar bool) error
}

type Service struct {
	members repository.FamilyMemberRepository
	logger  zerolog.Logger
}

func NewService(members repository.FamilyMemberRepository, logger zerolog.Logger) *Service {
	return &Service{
		members: members,
		logger:  logger.With().Str("component", "child_tracking").Logger(),
	}
}

// AddMedicalAppointment appends one appointment summary to the child's
// history. The addToCalendar flag is accepted for contract parity with
// other callers but the registry always passes false here, since the
// appointment is already on the family calendar.
func (s *Service) AddMedicalAppointment(ctx context.Context, familyID, childID uuid.UUID, summary model.AppointmentSummary, addToCalendar bool) error {
	if err := s.members.AppendMedicalHistory(ctx, familyID, childID, summary); err != nil {
		return fmt.Errorf("failed to record appointment for child %s: %w", childID, err)
	}

	s.logger.Debug().
		Str("family_id", familyID.String()).
		Str("child_id", childID.String()).
		Str("appointment_id", summary.AppointmentID.String()).
		Msg("appointment recorded in child history")
	return nil
}
