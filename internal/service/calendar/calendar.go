package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the payload sent to the calendar collaborator when a medical
// appointment is put on the family calendar.
type Event struct {
	Title       string            `json:"title"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Location    string            `json:"location,omitempty"`
	Description string            `json:"description,omitempty"`
	FamilyID    uuid.UUID         `json:"family_id"`
	CreatedBy   uuid.UUID         `json:"created_by"`
	Category    string            `json:"category,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// EventPatch is a partial calendar event update; nil fields are left
// untouched on the remote event.
type EventPatch struct {
	Title       *string    `json:"title,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// Service is the calendar collaborator contract. The returned event id
// is opaque; the registry stores it as a weak reference only.
type Service interface {
	CreateEvent(ctx context.Context, event *Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, patch *EventPatch) error
	DeleteEvent(ctx context.Context, eventID string) error
}
