package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stefanpalsson415/family-care-api/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
// Implementations map their own missing-row conditions onto it so
// services can branch with errors.Is.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	// MedicalEventRepository is the document-store contract the event
	// registry needs: CRUD by id, the queries behind the reminder
	// generators, and atomic list appends. Update rewrites the whole
	// record and refreshes updated_at server-side.
	MedicalEventRepository interface {
		Create(ctx context.Context, event *model.MedicalEvent) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalEvent, error)
		Update(ctx context.Context, event *model.MedicalEvent) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, familyID uuid.UUID, filters *model.MedicalEventFilters) ([]*model.MedicalEvent, error)

		// ListScheduledBetween returns scheduled events whose
		// appointment date falls in [start, end].
		ListScheduledBetween(ctx context.Context, start, end time.Time) ([]*model.MedicalEvent, error)

		// ListCompletedWithFollowup returns completed events with a
		// follow-up recommended.
		ListCompletedWithFollowup(ctx context.Context) ([]*model.MedicalEvent, error)

		// AppendDocument atomically appends one required document to
		// the event's list without rewriting the rest of the record.
		AppendDocument(ctx context.Context, eventID uuid.UUID, doc model.RequiredDocument) error

		// AppendMedication atomically appends a medication id to the
		// event's medication list.
		AppendMedication(ctx context.Context, eventID, medicationID uuid.UUID) error

		// ListFamilyIDs returns the distinct family ids owning at
		// least one medical event.
		ListFamilyIDs(ctx context.Context) ([]uuid.UUID, error)
	}

	FamilyMemberRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.FamilyMember, error)
		ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*model.FamilyMember, error)

		// AppendMedicalHistory atomically appends one appointment
		// summary to a member's tracked history.
		AppendMedicalHistory(ctx context.Context, familyID, memberID uuid.UUID, summary model.AppointmentSummary) error
	}

	MedicationRepository interface {
		CreateMedication(ctx context.Context, med *model.Medication) error
		GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error)
		CreateSchedule(ctx context.Context, schedule *model.MedicationSchedule) error
		ListSchedulesByMember(ctx context.Context, memberID uuid.UUID) ([]*model.MedicationSchedule, error)
	}
)
