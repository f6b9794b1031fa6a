package model

import (
	"time"

	"github.com/google/uuid"
)

type MedicalEventStatus string

const (
	MedicalEventStatusScheduled   MedicalEventStatus = "scheduled"
	MedicalEventStatusCompleted   MedicalEventStatus = "completed"
	MedicalEventStatusCancelled   MedicalEventStatus = "cancelled"
	MedicalEventStatusRescheduled MedicalEventStatus = "rescheduled"
)

// ChecklistStatus is the aggregate status derived from a list of
// preparation steps or required documents.
type ChecklistStatus string

const (
	ChecklistNotStarted ChecklistStatus = "not_started"
	ChecklistInProgress ChecklistStatus = "in_progress"
	ChecklistComplete   ChecklistStatus = "complete"
)

type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusCompleted StepStatus = "completed"
)

type StepPriority string

const (
	StepPriorityLow      StepPriority = "low"
	StepPriorityMedium   StepPriority = "medium"
	StepPriorityHigh     StepPriority = "high"
	StepPriorityCritical StepPriority = "critical"
)

type DocumentStatus string

const (
	DocumentStatusNeeded DocumentStatus = "needed"
	DocumentStatusReady  DocumentStatus = "ready"
)

type FollowupStatus string

const (
	FollowupStatusNeeded    FollowupStatus = "needed"
	FollowupStatusScheduled FollowupStatus = "scheduled"
)

// PreparationStep is a checklist item to finish before an appointment.
// Steps live inside their parent event and are never addressable on
// their own.
type PreparationStep struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Priority      StepPriority `json:"priority"`
	Status        StepStatus   `json:"status"`
	DueBeforeDays int          `json:"due_before_days"`
}

// RequiredDocument is a checklist item for a document the family has to
// bring to an appointment.
type RequiredDocument struct {
	ID      uuid.UUID      `json:"id"`
	Name    string         `json:"name"`
	Status  DocumentStatus `json:"status"`
	AddedAt time.Time      `json:"added_at"`
}

// FollowupDetails exists only while FollowupRecommended is true on the
// parent event.
type FollowupDetails struct {
	Type                 string         `json:"type"`
	RecommendedTimeframe string         `json:"recommended_timeframe"`
	ScheduledDate        *time.Time     `json:"scheduled_date,omitempty"`
	ScheduledEventID     *uuid.UUID     `json:"scheduled_event_id,omitempty"`
	Notes                string         `json:"notes,omitempty"`
	Status               FollowupStatus `json:"status"`
}

type InsuranceInfo struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
	GroupNumber  string `json:"group_number"`
	HolderName   string `json:"holder_name"`
}

type ReminderSettings struct {
	Strategy             string `json:"strategy"`
	PreparationReminders bool   `json:"preparation_reminders"`
	DocumentReminders    bool   `json:"document_reminders"`
	AppointmentReminders bool   `json:"appointment_reminders"`
	FollowupReminders    bool   `json:"followup_reminders"`
}

// DefaultReminderSettings returns the settings applied when a caller
// creates an event without explicit preferences.
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		Strategy:             "standard",
		PreparationReminders: true,
		DocumentReminders:    true,
		AppointmentReminders: true,
		FollowupReminders:    true,
	}
}

// MedicalEvent is one appointment record, the aggregate root of the
// medical subsystem. Patient, calendar event and medications are weak
// id-only references owned elsewhere.
type MedicalEvent struct {
	ID        uuid.UUID `json:"id"`
	FamilyID  uuid.UUID `json:"family_id"`
	CreatedBy uuid.UUID `json:"created_by"`

	Title           string    `json:"title"`
	AppointmentType string    `json:"appointment_type"`
	AppointmentDate time.Time `json:"appointment_date"`
	Location        string    `json:"location,omitempty"`
	ProviderName    string    `json:"provider_name,omitempty"`
	SpecialistType  string    `json:"specialist_type,omitempty"`
	Notes           string    `json:"notes,omitempty"`

	PatientID           uuid.UUID `json:"patient_id,omitempty"`
	PatientName         string    `json:"patient_name,omitempty"`
	PatientRelationship string    `json:"patient_relationship,omitempty"`

	Status            MedicalEventStatus `json:"status"`
	CompletionNotes   string             `json:"completion_notes,omitempty"`
	CompletedDate     *time.Time         `json:"completed_date,omitempty"`
	NeedsRescheduling bool               `json:"needs_rescheduling,omitempty"`

	FollowupRecommended bool             `json:"followup_recommended"`
	FollowupDetails     *FollowupDetails `json:"followup_details,omitempty"`

	InsuranceRequired bool          `json:"insurance_required"`
	InsuranceInfo     InsuranceInfo `json:"insurance_info"`

	RequiredDocuments []RequiredDocument `json:"required_documents"`
	DocumentStatus    ChecklistStatus    `json:"document_status"`

	PreparationInstructions string            `json:"preparation_instructions,omitempty"`
	PreparationSteps        []PreparationStep `json:"preparation_steps"`
	PreparationStatus       ChecklistStatus   `json:"preparation_status"`

	Medications []uuid.UUID `json:"medications"`

	CalendarEventID       *string    `json:"calendar_event_id,omitempty"`
	PreviousAppointmentID *uuid.UUID `json:"previous_appointment_id,omitempty"`

	Tags             []string         `json:"tags,omitempty"`
	Priority         string           `json:"priority"`
	ReminderSettings ReminderSettings `json:"reminder_settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMedicalEventRequest is the caller-facing input for event
// creation. Every field is optional; defaults are documented on the
// service.
type CreateMedicalEventRequest struct {
	Title               string     `json:"title"`
	AppointmentType     string     `json:"appointment_type"`
	AppointmentDate     *time.Time `json:"appointment_date"`
	Location            string     `json:"location"`
	ProviderName        string     `json:"provider_name"`
	SpecialistType      string     `json:"specialist_type"`
	Notes               string     `json:"notes"`
	PatientID           uuid.UUID  `json:"patient_id"`
	PatientName         string     `json:"patient_name"`
	PatientRelationship string     `json:"patient_relationship"`

	InsuranceRequired bool           `json:"insurance_required"`
	InsuranceInfo     *InsuranceInfo `json:"insurance_info"`

	RequiredDocuments       []RequiredDocument `json:"required_documents"`
	PreparationInstructions string             `json:"preparation_instructions"`
	PreparationSteps        []PreparationStep  `json:"preparation_steps"`

	PreviousAppointmentID *uuid.UUID `json:"previous_appointment_id"`

	Tags             []string          `json:"tags"`
	Priority         string            `json:"priority"`
	ReminderSettings *ReminderSettings `json:"reminder_settings"`

	// AddToCalendar defaults to true; pass false to suppress the
	// calendar block.
	AddToCalendar *bool `json:"add_to_calendar"`
}

// UpdateMedicalEventRequest is a partial update; nil fields are left
// untouched.
type UpdateMedicalEventRequest struct {
	Title           *string             `json:"title"`
	AppointmentType *string             `json:"appointment_type"`
	AppointmentDate *time.Time          `json:"appointment_date"`
	Location        *string             `json:"location"`
	ProviderName    *string             `json:"provider_name"`
	SpecialistType  *string             `json:"specialist_type"`
	Notes           *string             `json:"notes"`
	Status          *MedicalEventStatus `json:"status"`
	Priority        *string             `json:"priority"`
	Tags            []string            `json:"tags"`

	PreparationInstructions *string           `json:"preparation_instructions"`
	ReminderSettings        *ReminderSettings `json:"reminder_settings"`
}

// CompleteMedicalEventRequest carries the outcome of an appointment.
type CompleteMedicalEventRequest struct {
	Notes               string `json:"notes"`
	FollowupRecommended bool   `json:"followup_recommended"`

	FollowupType      string     `json:"followup_type"`
	FollowupTimeframe string     `json:"followup_timeframe"`
	FollowupDate      *time.Time `json:"followup_date"`
	FollowupScheduled bool       `json:"followup_scheduled"`
	FollowupNotes     string     `json:"followup_notes"`

	Medications []MedicationInput `json:"medications"`
}

// MedicationInput describes a medication prescribed at an appointment.
// Frequency is free text and parsed heuristically into a schedule.
type MedicationInput struct {
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage"`
	Instructions string     `json:"instructions"`
	Frequency    string     `json:"frequency"`
	PrescribedBy string     `json:"prescribed_by"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Active       *bool      `json:"active"`
	Refills      int        `json:"refills"`
	WithFood     bool       `json:"with_food"`
	SideEffects  []string   `json:"side_effects"`
}

type MedicalEventFilters struct {
	PatientID       uuid.UUID          `form:"patient_id"`
	Status          MedicalEventStatus `form:"status"`
	AppointmentType string             `form:"appointment_type"`
	SortOrder       string             `form:"sort_order"`
}
