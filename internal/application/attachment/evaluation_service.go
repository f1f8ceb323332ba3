package attachment

import (
	"context"
	"errors"
	"time"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RatingRequest carries three 1-5 ratings plus free-text comments. It is
// shared by staff evaluations and student feedback, whose shapes are
// identical apart from field naming.
type RatingRequest struct {
	First    int
	Second   int
	Third    int
	Comments string
}

// EvaluationResponse is the read model for a staff evaluation
type EvaluationResponse struct {
	AttacheeID          uuid.UUID `json:"attachee_id"`
	TechnicalCompetence int       `json:"technical_competence"`
	Discipline          int       `json:"discipline"`
	Teamwork            int       `json:"teamwork"`
	Comments            string    `json:"comments"`
	AverageScore        string    `json:"average_score"`
	EvaluatedAt         time.Time `json:"evaluated_at"`
}

// FeedbackResponse is the read model for student feedback
type FeedbackResponse struct {
	AttacheeID           uuid.UUID `json:"attachee_id"`
	MentorshipQuality    int       `json:"mentorship_quality"`
	EnvironmentRating    int       `json:"environment_rating"`
	ResourceAvailability int       `json:"resource_availability"`
	StudentComments      string    `json:"student_comments"`
	OverallSatisfaction  string    `json:"overall_satisfaction"`
	SubmittedAt          time.Time `json:"submitted_at"`
}

// EvaluationService handles the 1:1 evaluation and feedback children.
// Both use update-or-create semantics and are independent of the
// application's status.
type EvaluationService struct {
	attacheeRepo   attachment.AttacheeRepository
	evaluationRepo attachment.EvaluationRepository
}

// NewEvaluationService creates a new EvaluationService
func NewEvaluationService(attacheeRepo attachment.AttacheeRepository, evaluationRepo attachment.EvaluationRepository) *EvaluationService {
	return &EvaluationService{
		attacheeRepo:   attacheeRepo,
		evaluationRepo: evaluationRepo,
	}
}

// UpsertEvaluation creates or overwrites the staff evaluation
func (s *EvaluationService) UpsertEvaluation(ctx context.Context, attacheeID uuid.UUID, req RatingRequest) (*EvaluationResponse, error) {
	if _, err := s.attacheeRepo.FindByID(ctx, attacheeID); err != nil {
		return nil, err
	}

	evaluation, err := s.evaluationRepo.FindEvaluation(ctx, attacheeID)
	switch {
	case err == nil:
		if err := evaluation.Update(req.First, req.Second, req.Third, req.Comments); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		evaluation, err = attachment.NewEvaluation(attacheeID, req.First, req.Second, req.Third, req.Comments)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.evaluationRepo.SaveEvaluation(ctx, evaluation); err != nil {
		return nil, err
	}
	response := toEvaluationResponse(evaluation)
	return &response, nil
}

// GetEvaluation retrieves the staff evaluation for an application
func (s *EvaluationService) GetEvaluation(ctx context.Context, attacheeID uuid.UUID) (*EvaluationResponse, error) {
	evaluation, err := s.evaluationRepo.FindEvaluation(ctx, attacheeID)
	if err != nil {
		return nil, err
	}
	response := toEvaluationResponse(evaluation)
	return &response, nil
}

// UpsertFeedback creates or overwrites the student feedback
func (s *EvaluationService) UpsertFeedback(ctx context.Context, attacheeID uuid.UUID, req RatingRequest) (*FeedbackResponse, error) {
	if _, err := s.attacheeRepo.FindByID(ctx, attacheeID); err != nil {
		return nil, err
	}

	feedback, err := s.evaluationRepo.FindFeedback(ctx, attacheeID)
	switch {
	case err == nil:
		if err := feedback.Update(req.First, req.Second, req.Third, req.Comments); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		feedback, err = attachment.NewStudentFeedback(attacheeID, req.First, req.Second, req.Third, req.Comments)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.evaluationRepo.SaveFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	response := toFeedbackResponse(feedback)
	return &response, nil
}

// GetFeedback retrieves the student feedback for an application
func (s *EvaluationService) GetFeedback(ctx context.Context, attacheeID uuid.UUID) (*FeedbackResponse, error) {
	feedback, err := s.evaluationRepo.FindFeedback(ctx, attacheeID)
	if err != nil {
		return nil, err
	}
	response := toFeedbackResponse(feedback)
	return &response, nil
}

func toEvaluationResponse(e *attachment.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		AttacheeID:          e.AttacheeID,
		TechnicalCompetence: e.TechnicalCompetence,
		Discipline:          e.Discipline,
		Teamwork:            e.Teamwork,
		Comments:            e.Comments,
		AverageScore:        e.AverageScore().String(),
		EvaluatedAt:         e.EvaluatedAt,
	}
}

func toFeedbackResponse(f *attachment.StudentFeedback) FeedbackResponse {
	return FeedbackResponse{
		AttacheeID:           f.AttacheeID,
		MentorshipQuality:    f.MentorshipQuality,
		EnvironmentRating:    f.EnvironmentRating,
		ResourceAvailability: f.ResourceAvailability,
		StudentComments:      f.StudentComments,
		OverallSatisfaction:  f.OverallSatisfaction().String(),
		SubmittedAt:          f.SubmittedAt,
	}
}
