package attachment

import (
	"time"

	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ratingScale bounds for all 1-5 ratings
const (
	minRating = 1
	maxRating = 5
)

func validRating(r int) bool {
	return r >= minRating && r <= maxRating
}

// Evaluation is the staff-side assessment of an attachee. At most one exists
// per application and it may be written at any point in the lifecycle.
type Evaluation struct {
	shared.BaseEntity
	AttacheeID          uuid.UUID
	TechnicalCompetence int
	Discipline          int
	Teamwork            int
	Comments            string
	EvaluatedAt         time.Time
}

// NewEvaluation creates a staff evaluation with 1-5 ratings
func NewEvaluation(attacheeID uuid.UUID, technical, discipline, teamwork int, comments string) (*Evaluation, error) {
	if attacheeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ATTACHEE", "Attachee ID cannot be empty")
	}
	if !validRating(technical) || !validRating(discipline) || !validRating(teamwork) {
		return nil, shared.NewDomainError("INVALID_RATING", "Ratings must be between 1 and 5")
	}
	return &Evaluation{
		BaseEntity:          shared.NewBaseEntity(),
		AttacheeID:          attacheeID,
		TechnicalCompetence: technical,
		Discipline:          discipline,
		Teamwork:            teamwork,
		Comments:            comments,
		EvaluatedAt:         time.Now(),
	}, nil
}

// Update replaces the ratings and comments of an existing evaluation
func (e *Evaluation) Update(technical, discipline, teamwork int, comments string) error {
	if !validRating(technical) || !validRating(discipline) || !validRating(teamwork) {
		return shared.NewDomainError("INVALID_RATING", "Ratings must be between 1 and 5")
	}
	e.TechnicalCompetence = technical
	e.Discipline = discipline
	e.Teamwork = teamwork
	e.Comments = comments
	e.EvaluatedAt = time.Now()
	e.Touch()
	return nil
}

// AverageScore returns the mean of the three ratings rounded to one decimal
func (e *Evaluation) AverageScore() decimal.Decimal {
	sum := int64(e.TechnicalCompetence + e.Discipline + e.Teamwork)
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(3)).Round(1)
}

// StudentFeedback is the student-side rating of the attachment experience.
// At most one exists per application; submitting again overwrites it.
type StudentFeedback struct {
	shared.BaseEntity
	AttacheeID           uuid.UUID
	MentorshipQuality    int
	EnvironmentRating    int
	ResourceAvailability int
	StudentComments      string
	SubmittedAt          time.Time
}

// NewStudentFeedback creates student feedback with 1-5 ratings
func NewStudentFeedback(attacheeID uuid.UUID, mentorship, environment, resources int, comments string) (*StudentFeedback, error) {
	if attacheeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ATTACHEE", "Attachee ID cannot be empty")
	}
	if !validRating(mentorship) || !validRating(environment) || !validRating(resources) {
		return nil, shared.NewDomainError("INVALID_RATING", "Ratings must be between 1 and 5")
	}
	return &StudentFeedback{
		BaseEntity:           shared.NewBaseEntity(),
		AttacheeID:           attacheeID,
		MentorshipQuality:    mentorship,
		EnvironmentRating:    environment,
		ResourceAvailability: resources,
		StudentComments:      comments,
		SubmittedAt:          time.Now(),
	}, nil
}

// Update replaces the ratings and comments of existing feedback
func (f *StudentFeedback) Update(mentorship, environment, resources int, comments string) error {
	if !validRating(mentorship) || !validRating(environment) || !validRating(resources) {
		return shared.NewDomainError("INVALID_RATING", "Ratings must be between 1 and 5")
	}
	f.MentorshipQuality = mentorship
	f.EnvironmentRating = environment
	f.ResourceAvailability = resources
	f.StudentComments = comments
	f.SubmittedAt = time.Now()
	f.Touch()
	return nil
}

// OverallSatisfaction returns the mean of the three ratings rounded to one decimal
func (f *StudentFeedback) OverallSatisfaction() decimal.Decimal {
	sum := int64(f.MentorshipQuality + f.EnvironmentRating + f.ResourceAvailability)
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(3)).Round(1)
}
