package attachment

import (
	"time"

	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeAttachee = "Attachee"

// Event type constants
const (
	EventTypeAttacheeSubmitted     = "AttacheeSubmitted"
	EventTypeAttacheeStatusChanged = "AttacheeStatusChanged"
)

// AttacheeSubmittedEvent is raised once when a new application is created.
// It drives the "application received" notification.
type AttacheeSubmittedEvent struct {
	shared.BaseDomainEvent
	AttacheeID  uuid.UUID `json:"attachee_id"`
	TrackingID  string    `json:"tracking_id"`
	FirstName   string    `json:"first_name"`
	Email       string    `json:"email"`
	Institution string    `json:"institution"`
}

// NewAttacheeSubmittedEvent creates a new AttacheeSubmittedEvent
func NewAttacheeSubmittedEvent(a *Attachee) *AttacheeSubmittedEvent {
	return &AttacheeSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttacheeSubmitted, AggregateTypeAttachee, a.ID),
		AttacheeID:      a.ID,
		TrackingID:      a.TrackingID,
		FirstName:       a.FirstName,
		Email:           a.Email,
		Institution:     a.Institution,
	}
}

// EventType returns the event type name
func (e *AttacheeSubmittedEvent) EventType() string {
	return EventTypeAttacheeSubmitted
}

// AttacheeStatusChangedEvent is raised on every accepted transition that
// actually changed the status. Idempotent re-saves raise nothing, which is
// what keeps applicants from being re-notified.
type AttacheeStatusChangedEvent struct {
	shared.BaseDomainEvent
	AttacheeID uuid.UUID `json:"attachee_id"`
	TrackingID string    `json:"tracking_id"`
	FirstName  string    `json:"first_name"`
	Email      string    `json:"email"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// NewAttacheeStatusChangedEvent creates a new AttacheeStatusChangedEvent
func NewAttacheeStatusChangedEvent(a *Attachee, old Status) *AttacheeStatusChangedEvent {
	return &AttacheeStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttacheeStatusChanged, AggregateTypeAttachee, a.ID),
		AttacheeID:      a.ID,
		TrackingID:      a.TrackingID,
		FirstName:       a.FirstName,
		Email:           a.Email,
		OldStatus:       old,
		NewStatus:       a.Status,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
	}
}

// EventType returns the event type name
func (e *AttacheeStatusChangedEvent) EventType() string {
	return EventTypeAttacheeStatusChanged
}
