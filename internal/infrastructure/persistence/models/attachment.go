package models

import (
	"time"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/google/uuid"
)

// AttacheeModel is the persistence model for attachment applications
type AttacheeModel struct {
	AggregateModel
	TrackingID         string `gorm:"uniqueIndex;size:20;not null"`
	FirstName          string `gorm:"size:100;not null"`
	LastName           string `gorm:"size:100;not null"`
	NationalID         string `gorm:"uniqueIndex;size:30;not null"`
	Email              string `gorm:"index;size:255;not null"`
	Phone              string `gorm:"size:50"`
	Gender             string `gorm:"size:20"`
	Institution        string `gorm:"index;size:200"`
	DateOfBirth        *time.Time
	StartDate          time.Time `gorm:"not null"`
	EndDate            time.Time `gorm:"not null"`
	IDDocumentKey      string    `gorm:"size:500"`
	IntroLetterKey     string    `gorm:"size:500"`
	CurriculumVitaeKey string    `gorm:"size:500"`
	SignedContractKey  string    `gorm:"size:500"`
	ConsentDataPolicy  bool
	ConsentTerms       bool
	ConsentMarketing   bool
	Status             string `gorm:"index;size:20;not null;default:'Pending'"`
	AdminNotes         string `gorm:"type:text"`
	CompletionDate     *time.Time
}

// TableName returns the table name for AttacheeModel
func (AttacheeModel) TableName() string {
	return "attachees"
}

// ToDomain converts AttacheeModel to a domain Attachee
func (m *AttacheeModel) ToDomain() *attachment.Attachee {
	return &attachment.Attachee{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TrackingID:        m.TrackingID,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		NationalID:        m.NationalID,
		Email:             m.Email,
		Phone:             m.Phone,
		Gender:            m.Gender,
		Institution:       m.Institution,
		DateOfBirth:       m.DateOfBirth,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Documents: attachment.DocumentRefs{
			IDDocumentKey:      m.IDDocumentKey,
			IntroLetterKey:     m.IntroLetterKey,
			CurriculumVitaeKey: m.CurriculumVitaeKey,
			SignedContractKey:  m.SignedContractKey,
		},
		Consent: attachment.Consent{
			DataPolicy: m.ConsentDataPolicy,
			Terms:      m.ConsentTerms,
			Marketing:  m.ConsentMarketing,
		},
		Status:         attachment.Status(m.Status),
		AdminNotes:     m.AdminNotes,
		CompletionDate: m.CompletionDate,
	}
}

// AttacheeModelFromDomain converts a domain Attachee to AttacheeModel
func AttacheeModelFromDomain(a *attachment.Attachee) *AttacheeModel {
	m := &AttacheeModel{
		TrackingID:         a.TrackingID,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		NationalID:         a.NationalID,
		Email:              a.Email,
		Phone:              a.Phone,
		Gender:             a.Gender,
		Institution:        a.Institution,
		DateOfBirth:        a.DateOfBirth,
		StartDate:          a.StartDate,
		EndDate:            a.EndDate,
		IDDocumentKey:      a.Documents.IDDocumentKey,
		IntroLetterKey:     a.Documents.IntroLetterKey,
		CurriculumVitaeKey: a.Documents.CurriculumVitaeKey,
		SignedContractKey:  a.Documents.SignedContractKey,
		ConsentDataPolicy:  a.Consent.DataPolicy,
		ConsentTerms:       a.Consent.Terms,
		ConsentMarketing:   a.Consent.Marketing,
		Status:             a.Status.String(),
		AdminNotes:         a.AdminNotes,
		CompletionDate:     a.CompletionDate,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}

// EvaluationModel is the persistence model for staff evaluations
type EvaluationModel struct {
	BaseModel
	AttacheeID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	TechnicalCompetence int       `gorm:"not null"`
	Discipline          int       `gorm:"not null"`
	Teamwork            int       `gorm:"not null"`
	Comments            string    `gorm:"type:text"`
	EvaluatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for EvaluationModel
func (EvaluationModel) TableName() string {
	return "evaluations"
}

// ToDomain converts EvaluationModel to a domain Evaluation
func (m *EvaluationModel) ToDomain() *attachment.Evaluation {
	return &attachment.Evaluation{
		BaseEntity:          m.BaseModel.ToDomain(),
		AttacheeID:          m.AttacheeID,
		TechnicalCompetence: m.TechnicalCompetence,
		Discipline:          m.Discipline,
		Teamwork:            m.Teamwork,
		Comments:            m.Comments,
		EvaluatedAt:         m.EvaluatedAt,
	}
}

// EvaluationModelFromDomain converts a domain Evaluation to EvaluationModel
func EvaluationModelFromDomain(e *attachment.Evaluation) *EvaluationModel {
	m := &EvaluationModel{
		AttacheeID:          e.AttacheeID,
		TechnicalCompetence: e.TechnicalCompetence,
		Discipline:          e.Discipline,
		Teamwork:            e.Teamwork,
		Comments:            e.Comments,
		EvaluatedAt:         e.EvaluatedAt,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// StudentFeedbackModel is the persistence model for student feedback
type StudentFeedbackModel struct {
	BaseModel
	AttacheeID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	MentorshipQuality    int       `gorm:"not null"`
	EnvironmentRating    int       `gorm:"not null"`
	ResourceAvailability int       `gorm:"not null"`
	StudentComments      string    `gorm:"type:text"`
	SubmittedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for StudentFeedbackModel
func (StudentFeedbackModel) TableName() string {
	return "student_feedback"
}

// ToDomain converts StudentFeedbackModel to a domain StudentFeedback
func (m *StudentFeedbackModel) ToDomain() *attachment.StudentFeedback {
	return &attachment.StudentFeedback{
		BaseEntity:           m.BaseModel.ToDomain(),
		AttacheeID:           m.AttacheeID,
		MentorshipQuality:    m.MentorshipQuality,
		EnvironmentRating:    m.EnvironmentRating,
		ResourceAvailability: m.ResourceAvailability,
		StudentComments:      m.StudentComments,
		SubmittedAt:          m.SubmittedAt,
	}
}

// StudentFeedbackModelFromDomain converts a domain StudentFeedback to StudentFeedbackModel
func StudentFeedbackModelFromDomain(f *attachment.StudentFeedback) *StudentFeedbackModel {
	m := &StudentFeedbackModel{
		AttacheeID:           f.AttacheeID,
		MentorshipQuality:    f.MentorshipQuality,
		EnvironmentRating:    f.EnvironmentRating,
		ResourceAvailability: f.ResourceAvailability,
		StudentComments:      f.StudentComments,
		SubmittedAt:          f.SubmittedAt,
	}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}

// TrackingSequenceModel is the per-year allocator row behind tracking references
type TrackingSequenceModel struct {
	Year      int   `gorm:"primaryKey"`
	LastValue int64 `gorm:"not null"`
}

// TableName returns the table name for TrackingSequenceModel
func (TrackingSequenceModel) TableName() string {
	return "tracking_sequences"
}
