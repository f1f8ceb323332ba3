package attachment

import (
	"context"

	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AttacheeRepository defines the persistence operations for Attachee
type AttacheeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Attachee, error)
	FindByTrackingID(ctx context.Context, trackingID string) (*Attachee, error)
	// FindByLookup matches a single record by tracking ID, email or national
	// ID number. Used by the public check-status endpoint.
	FindByLookup(ctx context.Context, query string) (*Attachee, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Attachee, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	CountByInstitution(ctx context.Context) ([]InstitutionStat, error)
	CountByGender(ctx context.Context) ([]GenderStat, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
	Save(ctx context.Context, attachee *Attachee) error
	// Delete removes the record and cascades to its evaluation and feedback
	Delete(ctx context.Context, id uuid.UUID) error
}

// EvaluationRepository defines persistence for the 1:1 children of Attachee
type EvaluationRepository interface {
	FindEvaluation(ctx context.Context, attacheeID uuid.UUID) (*Evaluation, error)
	SaveEvaluation(ctx context.Context, evaluation *Evaluation) error
	FindFeedback(ctx context.Context, attacheeID uuid.UUID) (*StudentFeedback, error)
	SaveFeedback(ctx context.Context, feedback *StudentFeedback) error
}

// TrackingSequence allocates tracking reference sequence numbers. Next must
// be atomic under concurrent callers so that two simultaneous submissions
// can never observe the same value.
type TrackingSequence interface {
	Next(ctx context.Context, year int) (int64, error)
}

// InstitutionStat is a per-institution applicant count for analytics
type InstitutionStat struct {
	Institution  string `json:"institution"`
	StudentCount int64  `json:"student_count"`
}

// GenderStat is a per-gender applicant count for analytics
type GenderStat struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}
