package attachment

import (
	"fmt"
	"strings"
	"time"

	"github.com/eujim/backend/internal/domain/shared"
)

// DocumentRefs holds opaque storage keys for the files uploaded with an
// application. Empty keys mean the file was not provided.
type DocumentRefs struct {
	IDDocumentKey      string
	IntroLetterKey     string
	CurriculumVitaeKey string
	SignedContractKey  string
}

// Consent captures the declaration checkboxes from the intake form
type Consent struct {
	DataPolicy bool
	Terms      bool
	Marketing  bool
}

// Attachee represents a student attachment application.
// It is the aggregate root owning the status lifecycle, the admin decision
// notes and the 1:1 evaluation/feedback children.
type Attachee struct {
	shared.BaseAggregateRoot
	TrackingID     string
	FirstName      string
	LastName       string
	NationalID     string
	Email          string
	Phone          string
	Gender         string
	Institution    string
	DateOfBirth    *time.Time
	StartDate      time.Time
	EndDate        time.Time
	Documents      DocumentRefs
	Consent        Consent
	Status         Status
	AdminNotes     string
	CompletionDate *time.Time
}

// NewAttacheeParams carries the intake form fields for NewAttachee
type NewAttacheeParams struct {
	TrackingID  string
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
	Documents   DocumentRefs
	Consent     Consent
}

// NewAttachee creates a new application in Pending status and raises the
// submission event. The tracking ID must already be allocated; it is
// immutable afterwards.
func NewAttachee(p NewAttacheeParams) (*Attachee, error) {
	if !IsTrackingID(p.TrackingID) {
		return nil, shared.NewDomainError("INVALID_TRACKING_ID", "Tracking reference is malformed")
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}
	if strings.TrimSpace(p.NationalID) == "" {
		return nil, shared.NewDomainError("INVALID_NATIONAL_ID", "National ID number is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATES", "Start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, shared.NewDomainError("INVALID_DATES", "The attachment end date cannot be earlier than the start date")
	}

	a := &Attachee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TrackingID:        p.TrackingID,
		FirstName:         strings.TrimSpace(p.FirstName),
		LastName:          strings.TrimSpace(p.LastName),
		NationalID:        strings.TrimSpace(p.NationalID),
		Email:             strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:             strings.TrimSpace(p.Phone),
		Gender:            p.Gender,
		Institution:       strings.TrimSpace(p.Institution),
		DateOfBirth:       p.DateOfBirth,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		Documents:         p.Documents,
		Consent:           p.Consent,
		Status:            StatusPending,
	}

	a.AddDomainEvent(NewAttacheeSubmittedEvent(a))

	return a, nil
}

// ChangeStatus applies a status transition with its side effects: the admin
// notes are overwritten (not appended), the completion date is stamped when
// entering Completed, and a status-changed event is raised only when the
// status actually changed. Re-saving the current status is accepted as an
// idempotent no-op that still overwrites the notes and raises nothing.
func (a *Attachee) ChangeStatus(target Status, notes string) (bool, error) {
	if !target.IsValid() {
		return false, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %q", target))
	}

	if target == a.Status {
		a.AdminNotes = notes
		a.Touch()
		return false, nil
	}

	if !a.Status.CanTransitionTo(target) {
		return false, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move application from %s to %s", a.Status, target))
	}

	old := a.Status
	a.Status = target
	a.AdminNotes = notes
	a.Touch()
	if target == StatusCompleted {
		day := time.Now()
		a.CompletionDate = &day
	}

	a.AddDomainEvent(NewAttacheeStatusChangedEvent(a, old))

	return true, nil
}

// SetAdminNotes overwrites the internal admin notes without touching status
func (a *Attachee) SetAdminNotes(notes string) {
	a.AdminNotes = notes
	a.Touch()
}

// AttachSignedContract records the storage key of a later-uploaded contract
func (a *Attachee) AttachSignedContract(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_DOCUMENT", "Contract storage key cannot be empty")
	}
	a.Documents.SignedContractKey = key
	a.Touch()
	return nil
}

// FullName returns the applicant's display name
func (a *Attachee) FullName() string {
	return a.FirstName + " " + a.LastName
}

// DaysRemaining returns the days until the attachment ends, floored at zero
func (a *Attachee) DaysRemaining() int {
	remaining := int(time.Until(a.EndDate).Hours() / 24)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DurationWeeks returns the whole weeks between start and end dates
func (a *Attachee) DurationWeeks() int {
	return int(a.EndDate.Sub(a.StartDate).Hours()/24) / 7
}

// IsExpired reports whether the attachment window has already ended
func (a *Attachee) IsExpired() bool {
	return a.EndDate.Before(time.Now().Truncate(24 * time.Hour))
}

// IsPending returns true while the application awaits a decision
func (a *Attachee) IsPending() bool {
	return a.Status == StatusPending
}

// IsCompleted returns true once the attachment is completed
func (a *Attachee) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// IsTerminal returns true if the application reached a terminal state
func (a *Attachee) IsTerminal() bool {
	return a.Status.IsTerminal()
}
