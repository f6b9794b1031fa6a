package model

import (
	"time"

	"github.com/google/uuid"
)

// FamilyMember is a member of a family; medical events reference members
// weakly by id.
type FamilyMember struct {
	ID             uuid.UUID            `json:"id"`
	FamilyID       uuid.UUID            `json:"family_id"`
	Name           string               `json:"name"`
	Relationship   string               `json:"relationship,omitempty"`
	DateOfBirth    *time.Time           `json:"date_of_birth,omitempty"`
	MedicalHistory []AppointmentSummary `json:"medical_history,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// AppointmentSummary is the condensed appointment entry appended to a
// child's tracked medical history.
type AppointmentSummary struct {
	AppointmentID   uuid.UUID `json:"appointment_id"`
	AppointmentType string    `json:"appointment_type"`
	Date            time.Time `json:"date"`
	Provider        string    `json:"provider,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
}
