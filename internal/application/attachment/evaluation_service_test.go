package attachment

import (
	"context"
	"testing"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestEvaluationService_UpsertEvaluation(t *testing.T) {
	ctx := context.Background()

	t.Run("first submission creates the evaluation", func(t *testing.T) {
		attacheeRepo := new(MockAttacheeRepository)
		evalRepo := new(MockEvaluationRepository)
		svc := NewEvaluationService(attacheeRepo, evalRepo)

		a := storedAttachee(t, attachment.StatusInProgress)
		attacheeRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		evalRepo.On("FindEvaluation", ctx, a.ID).Return(nil, shared.ErrNotFound)
		evalRepo.On("SaveEvaluation", ctx, mock.AnythingOfType("*attachment.Evaluation")).Return(nil)

		resp, err := svc.UpsertEvaluation(ctx, a.ID, RatingRequest{First: 5, Second: 4, Third: 4, Comments: "solid"})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.TechnicalCompetence)
		assert.Equal(t, "4.3", resp.AverageScore)
		evalRepo.AssertExpectations(t)
	})

	t.Run("second submission overwrites in place", func(t *testing.T) {
		attacheeRepo := new(MockAttacheeRepository)
		evalRepo := new(MockEvaluationRepository)
		svc := NewEvaluationService(attacheeRepo, evalRepo)

		a := storedAttachee(t, attachment.StatusInProgress)
		existing, err := attachment.NewEvaluation(a.ID, 3, 3, 3, "early read")
		require.NoError(t, err)

		attacheeRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		evalRepo.On("FindEvaluation", ctx, a.ID).Return(existing, nil)
		evalRepo.On("SaveEvaluation", ctx, existing).Return(nil)

		resp, err := svc.UpsertEvaluation(ctx, a.ID, RatingRequest{First: 5, Second: 5, Third: 4, Comments: "improved"})
		require.NoError(t, err)
		assert.Equal(t, "4.7", resp.AverageScore)
		assert.Equal(t, "improved", resp.Comments)
	})

	t.Run("out of range rating is rejected", func(t *testing.T) {
		attacheeRepo := new(MockAttacheeRepository)
		evalRepo := new(MockEvaluationRepository)
		svc := NewEvaluationService(attacheeRepo, evalRepo)

		a := storedAttachee(t, attachment.StatusInProgress)
		attacheeRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		evalRepo.On("FindEvaluation", ctx, a.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.UpsertEvaluation(ctx, a.ID, RatingRequest{First: 6, Second: 4, Third: 4})
		assertDomainCode(t, err, "INVALID_RATING")
		evalRepo.AssertNotCalled(t, "SaveEvaluation", mock.Anything, mock.Anything)
	})

	t.Run("unknown application", func(t *testing.T) {
		attacheeRepo := new(MockAttacheeRepository)
		evalRepo := new(MockEvaluationRepository)
		svc := NewEvaluationService(attacheeRepo, evalRepo)

		id := uuid.New()
		attacheeRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.UpsertEvaluation(ctx, id, RatingRequest{First: 4, Second: 4, Third: 4})
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestEvaluationService_UpsertFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("creates then reports overall satisfaction", func(t *testing.T) {
		attacheeRepo := new(MockAttacheeRepository)
		evalRepo := new(MockEvaluationRepository)
		svc := NewEvaluationService(attacheeRepo, evalRepo)

		a := storedAttachee(t, attachment.StatusCompleted)
		attacheeRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		evalRepo.On("FindFeedback", ctx, a.ID).Return(nil, shared.ErrNotFound)
		evalRepo.On("SaveFeedback", ctx, mock.AnythingOfType("*attachment.StudentFeedback")).Return(nil)

		resp, err := svc.UpsertFeedback(ctx, a.ID, RatingRequest{First: 5, Second: 5, Third: 5, Comments: "great mentors"})
		require.NoError(t, err)
		assert.Equal(t, "5", resp.OverallSatisfaction)
		assert.Equal(t, "great mentors", resp.StudentComments)
	})

	t.Run("overwrites existing feedback", func(t *testing.T) {
		attacheeRepo := new(MockAttacheeRepository)
		evalRepo := new(MockEvaluationRepository)
		svc := NewEvaluationService(attacheeRepo, evalRepo)

		a := storedAttachee(t, attachment.StatusCompleted)
		existing, err := attachment.NewStudentFeedback(a.ID, 2, 2, 2, "rough start")
		require.NoError(t, err)

		attacheeRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		evalRepo.On("FindFeedback", ctx, a.ID).Return(existing, nil)
		evalRepo.On("SaveFeedback", ctx, existing).Return(nil)

		resp, err := svc.UpsertFeedback(ctx, a.ID, RatingRequest{First: 4, Second: 3, Third: 5, Comments: "got better"})
		require.NoError(t, err)
		assert.Equal(t, 4, resp.MentorshipQuality)
		assert.Equal(t, "4", resp.OverallSatisfaction)
	})
}

func TestEvaluationService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing evaluation returns not found", func(t *testing.T) {
		attacheeRepo := new(MockAttacheeRepository)
		evalRepo := new(MockEvaluationRepository)
		svc := NewEvaluationService(attacheeRepo, evalRepo)

		id := uuid.New()
		evalRepo.On("FindEvaluation", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetEvaluation(ctx, id)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("existing feedback round trips", func(t *testing.T) {
		attacheeRepo := new(MockAttacheeRepository)
		evalRepo := new(MockEvaluationRepository)
		svc := NewEvaluationService(attacheeRepo, evalRepo)

		id := uuid.New()
		feedback, err := attachment.NewStudentFeedback(id, 4, 4, 3, "decent")
		require.NoError(t, err)
		evalRepo.On("FindFeedback", ctx, id).Return(feedback, nil)

		resp, err := svc.GetFeedback(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "3.7", resp.OverallSatisfaction)
	})
}
