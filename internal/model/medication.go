package model

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleFrequency string

const (
	ScheduleDaily   ScheduleFrequency = "daily"
	ScheduleWeekly  ScheduleFrequency = "weekly"
	ScheduleMonthly ScheduleFrequency = "monthly"
)

// Medication is owned by the medication manager; medical events hold
// only its id.
type Medication struct {
	ID                   uuid.UUID   `json:"id"`
	FamilyMemberID       uuid.UUID   `json:"family_member_id"`
	Name                 string      `json:"name"`
	Dosage               string      `json:"dosage,omitempty"`
	Instructions         string      `json:"instructions,omitempty"`
	PrescribedBy         string      `json:"prescribed_by,omitempty"`
	StartDate            time.Time   `json:"start_date"`
	EndDate              *time.Time  `json:"end_date,omitempty"`
	IsActive             bool        `json:"is_active"`
	RefillInfo           string      `json:"refill_info,omitempty"`
	SideEffectsToWatch   []string    `json:"side_effects_to_watch,omitempty"`
	RelatedMedicalEvents []uuid.UUID `json:"related_medical_events,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// MedicationSchedule describes when doses of a medication are due.
// Times are wall-clock "HH:MM" strings interpreted in UTC.
type MedicationSchedule struct {
	ID             uuid.UUID         `json:"id"`
	MedicationID   uuid.UUID         `json:"medication_id"`
	FamilyMemberID uuid.UUID         `json:"family_member_id"`
	Frequency      ScheduleFrequency `json:"frequency"`
	Times          []string          `json:"times"`
	DaysOfWeek     []int             `json:"days_of_week,omitempty"`
	DayOfMonth     int               `json:"day_of_month,omitempty"`
	WithFood       bool              `json:"with_food"`
	CreatedAt      time.Time         `json:"created_at"`
}

// MedicationReminder is one upcoming dose for a family member.
type MedicationReminder struct {
	MedicationID   uuid.UUID   `json:"medication_id"`
	FamilyMemberID uuid.UUID   `json:"family_member_id"`
	ScheduledFor   time.Time   `json:"scheduled_for"`
	WithFood       bool        `json:"with_food"`
	Message        string      `json:"message,omitempty"`
	Medication     *Medication `json:"medication,omitempty"`
}
