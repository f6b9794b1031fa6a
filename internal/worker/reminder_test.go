package worker

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/stefanpalsson415/family-care-api/internal/model"
)

func TestDedupKey(t *testing.T) {
	eventID := uuid.New()
	medicationID := uuid.New()
	day := time.Date(2026, 3, 13, 9, 30, 0, 0, time.UTC)

	appointment := &model.Reminder{
		Type:            model.ReminderTypeAppointment,
		EventID:         eventID,
		AppointmentDate: day,
	}
	preparation := &model.Reminder{
		Type:            model.ReminderTypePreparation,
		EventID:         eventID,
		AppointmentDate: day,
	}
	followup := &model.Reminder{Type: model.ReminderTypeFollowup, EventID: eventID}
	medication := &model.Reminder{
		Type:         model.ReminderTypeMedication,
		MedicationID: medicationID,
		ScheduledFor: day,
	}

	// Same event and day but different reminder types must not collide.
	assert.NotEqual(t, dedupKey(appointment), dedupKey(preparation))
	assert.Contains(t, dedupKey(appointment), "2026-03-13")
	assert.Contains(t, dedupKey(followup), eventID.String())
	assert.Contains(t, dedupKey(medication), medicationID.String())

	// A later dose of the same medication gets its own key.
	laterDose := &model.Reminder{
		Type:         model.ReminderTypeMedication,
		MedicationID: medicationID,
		ScheduledFor: day.Add(12 * time.Hour),
	}
	assert.NotEqual(t, dedupKey(medication), dedupKey(laterDose))
}
