package attachment

import (
	"time"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/google/uuid"
)

// CreateAttacheeRequest represents an intake form submission
type CreateAttacheeRequest struct {
	FirstName   string
	LastName    string
	NationalID  string
	Email       string
	Phone       string
	Gender      string
	Institution string
	DateOfBirth *time.Time
	StartDate   time.Time
	EndDate     time.Time
	Documents   attachment.DocumentRefs
	Consent     attachment.Consent
}

// TransitionRequest represents an admin status decision
type TransitionRequest struct {
	Status string
	Notes  string
	Actor  string
}

// AttacheeResponse is the full read model of an application record
type AttacheeResponse struct {
	ID             uuid.UUID               `json:"id"`
	TrackingID     string                  `json:"tracking_id"`
	FirstName      string                  `json:"first_name"`
	LastName       string                  `json:"last_name"`
	NationalID     string                  `json:"national_id_number"`
	Email          string                  `json:"email"`
	Phone          string                  `json:"phone"`
	Gender         string                  `json:"gender"`
	Institution    string                  `json:"institution"`
	DateOfBirth    *time.Time              `json:"date_of_birth,omitempty"`
	StartDate      time.Time               `json:"start_date"`
	EndDate        time.Time               `json:"end_date"`
	Status         string                  `json:"status"`
	AdminNotes     string                  `json:"admin_notes"`
	CompletionDate *time.Time              `json:"completion_date,omitempty"`
	Documents      attachment.DocumentRefs `json:"-"`
	DaysRemaining  int                     `json:"days_remaining"`
	Expired        bool                    `json:"expired"`
	CreatedAt      time.Time               `json:"created_at"`
}

// AttacheeListItem is the compact row shown on the dashboard
type AttacheeListItem struct {
	ID            uuid.UUID `json:"id"`
	TrackingID    string    `json:"tracking_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Institution   string    `json:"institution"`
	Status        string    `json:"status"`
	DaysRemaining int       `json:"days_remaining"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListFilter holds the dashboard list parameters
type ListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
}

// StatusLookupResponse is the public check-status read model
type StatusLookupResponse struct {
	Found    bool              `json:"found"`
	Attachee *AttacheeResponse `json:"attachee,omitempty"`
}

// ToAttacheeResponse maps a domain Attachee to its read model
func ToAttacheeResponse(a *attachment.Attachee) AttacheeResponse {
	return AttacheeResponse{
		ID:             a.ID,
		TrackingID:     a.TrackingID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		NationalID:     a.NationalID,
		Email:          a.Email,
		Phone:          a.Phone,
		Gender:         a.Gender,
		Institution:    a.Institution,
		DateOfBirth:    a.DateOfBirth,
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		Status:         a.Status.String(),
		AdminNotes:     a.AdminNotes,
		CompletionDate: a.CompletionDate,
		Documents:      a.Documents,
		DaysRemaining:  a.DaysRemaining(),
		Expired:        a.IsExpired(),
		CreatedAt:      a.CreatedAt,
	}
}

// ToAttacheeListItem maps a domain Attachee to a dashboard row
func ToAttacheeListItem(a *attachment.Attachee) AttacheeListItem {
	return AttacheeListItem{
		ID:            a.ID,
		TrackingID:    a.TrackingID,
		FullName:      a.FullName(),
		Email:         a.Email,
		Phone:         a.Phone,
		Institution:   a.Institution,
		Status:        a.Status.String(),
		DaysRemaining: a.DaysRemaining(),
		CreatedAt:     a.CreatedAt,
	}
}
