package model

import (
	"time"

	"github.com/google/uuid"
)

type ReminderType string

const (
	ReminderTypePreparation ReminderType = "preparation"
	ReminderTypeDocuments   ReminderType = "documents"
	ReminderTypeAppointment ReminderType = "appointment"
	ReminderTypeFollowup    ReminderType = "followup"
	ReminderTypeMedication  ReminderType = "medication"
)

// Reminder is the common envelope produced by all reminder generators.
// Only the fields relevant to the reminder type are populated; delivery
// is the notification layer's concern.
type Reminder struct {
	Type        ReminderType `json:"type"`
	EventID     uuid.UUID    `json:"event_id,omitempty"`
	Title       string       `json:"title,omitempty"`
	PatientName string       `json:"patient_name,omitempty"`
	Message     string       `json:"message"`

	AppointmentDate time.Time `json:"appointment_date,omitempty"`
	AppointmentTime string    `json:"appointment_time,omitempty"`
	Location        string    `json:"location,omitempty"`
	ProviderName    string    `json:"provider_name,omitempty"`

	IncompleteSteps int               `json:"incomplete_steps,omitempty"`
	Steps           []PreparationStep `json:"steps,omitempty"`

	NeededDocuments int                `json:"needed_documents,omitempty"`
	Documents       []RequiredDocument `json:"documents,omitempty"`

	CompletedDate        *time.Time `json:"completed_date,omitempty"`
	FollowupType         string     `json:"followup_type,omitempty"`
	RecommendedTimeframe string     `json:"recommended_timeframe,omitempty"`

	MedicationID   uuid.UUID `json:"medication_id,omitempty"`
	MedicationName string    `json:"medication_name,omitempty"`
	Dosage         string    `json:"dosage,omitempty"`
	Instructions   string    `json:"instructions,omitempty"`
	FamilyMemberID uuid.UUID `json:"family_member_id,omitempty"`
	ScheduledFor   time.Time `json:"scheduled_for,omitempty"`
}
