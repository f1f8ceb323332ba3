package persistence

import (
	"context"
	"errors"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/shared"
	"github.com/eujim/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEvaluationRepository implements EvaluationRepository using GORM
type GormEvaluationRepository struct {
	db *gorm.DB
}

// NewGormEvaluationRepository creates a new GormEvaluationRepository
func NewGormEvaluationRepository(db *gorm.DB) *GormEvaluationRepository {
	return &GormEvaluationRepository{db: db}
}

// FindEvaluation finds the supervisor evaluation for an attachee
func (r *GormEvaluationRepository) FindEvaluation(ctx context.Context, attacheeID uuid.UUID) (*attachment.Evaluation, error) {
	var model models.EvaluationModel
	if err := r.db.WithContext(ctx).
		Where("attachee_id = ?", attacheeID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveEvaluation creates or updates a supervisor evaluation
func (r *GormEvaluationRepository) SaveEvaluation(ctx context.Context, evaluation *attachment.Evaluation) error {
	model := models.EvaluationModelFromDomain(evaluation)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindFeedback finds the exit feedback submitted by an attachee
func (r *GormEvaluationRepository) FindFeedback(ctx context.Context, attacheeID uuid.UUID) (*attachment.StudentFeedback, error) {
	var model models.StudentFeedbackModel
	if err := r.db.WithContext(ctx).
		Where("attachee_id = ?", attacheeID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveFeedback creates or updates exit feedback
func (r *GormEvaluationRepository) SaveFeedback(ctx context.Context, feedback *attachment.StudentFeedback) error {
	model := models.StudentFeedbackModelFromDomain(feedback)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormEvaluationRepository implements EvaluationRepository
var _ attachment.EvaluationRepository = (*GormEvaluationRepository)(nil)
