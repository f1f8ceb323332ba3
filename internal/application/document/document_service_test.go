package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/document"
	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAttacheeRepository is a mock implementation of attachment.AttacheeRepository
type MockAttacheeRepository struct {
	mock.Mock
}

func (m *MockAttacheeRepository) FindByID(ctx context.Context, id uuid.UUID) (*attachment.Attachee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attachment.Attachee), args.Error(1)
}

func (m *MockAttacheeRepository) FindByTrackingID(ctx context.Context, trackingID string) (*attachment.Attachee, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attachment.Attachee), args.Error(1)
}

func (m *MockAttacheeRepository) FindByLookup(ctx context.Context, query string) (*attachment.Attachee, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attachment.Attachee), args.Error(1)
}

func (m *MockAttacheeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]attachment.Attachee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]attachment.Attachee), args.Error(1)
}

func (m *MockAttacheeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttacheeRepository) CountByStatus(ctx context.Context) (map[attachment.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[attachment.Status]int64), args.Error(1)
}

func (m *MockAttacheeRepository) CountByInstitution(ctx context.Context) ([]attachment.InstitutionStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]attachment.InstitutionStat), args.Error(1)
}

func (m *MockAttacheeRepository) CountByGender(ctx context.Context) ([]attachment.GenderStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]attachment.GenderStat), args.Error(1)
}

func (m *MockAttacheeRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	args := m.Called(ctx, nationalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttacheeRepository) Save(ctx context.Context, attachee *attachment.Attachee) error {
	args := m.Called(ctx, attachee)
	return args.Error(0)
}

func (m *MockAttacheeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRenderer is a mock implementation of Renderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, data RenderData) ([]byte, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func attacheeAt(t *testing.T, status attachment.Status) *attachment.Attachee {
	t.Helper()
	a, err := attachment.NewAttachee(attachment.NewAttacheeParams{
		TrackingID:  "EUJ-2024-042",
		FirstName:   "Jane",
		LastName:    "Wanjiku",
		NationalID:  "11223344",
		Email:       "jane@example.com",
		Phone:       "+254700000001",
		Gender:      "Female",
		Institution: "Kenyatta University",
		StartDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	a.ClearDomainEvents()
	a.Status = status
	if status == attachment.StatusCompleted {
		completed := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
		a.CompletionDate = &completed
	}
	return a
}

func TestService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the gate pass for an approved record", func(t *testing.T) {
		repo := new(MockAttacheeRepository)
		renderer := new(MockRenderer)
		svc := NewService(repo, renderer, "https://portal.example.com", zap.NewNop())

		repo.On("FindByTrackingID", ctx, "EUJ-2024-042").Return(attacheeAt(t, attachment.StatusApproved), nil)
		renderer.On("Render", ctx, mock.MatchedBy(func(data RenderData) bool {
			return data.Kind == document.KindGatePass &&
				data.FullName == "Jane Wanjiku" &&
				data.VerifyURL == "https://portal.example.com/check-status?ref=EUJ-2024-042"
		})).Return([]byte("%PDF-1.4"), nil)

		file, err := svc.Generate(ctx, "EUJ-2024-042", document.KindGatePass)
		require.NoError(t, err)
		assert.Equal(t, "GatePass_EUJ-2024-042.pdf", file.Name)
		assert.Equal(t, "application/pdf", file.ContentType)
		assert.NotEmpty(t, file.Data)
	})

	t.Run("re-checks eligibility at request time", func(t *testing.T) {
		tests := []struct {
			kind    document.Kind
			status  attachment.Status
			allowed bool
		}{
			{document.KindGatePass, attachment.StatusPending, false},
			{document.KindGatePass, attachment.StatusInProgress, true},
			{document.KindIDCard, attachment.StatusApproved, false},
			{document.KindIDCard, attachment.StatusInProgress, true},
			{document.KindCompletionLetter, attachment.StatusInProgress, false},
			{document.KindCompletionLetter, attachment.StatusCompleted, true},
			{document.KindRecommendationLetter, attachment.StatusRejected, false},
			{document.KindRecommendationLetter, attachment.StatusCompleted, true},
		}

		for _, tt := range tests {
			repo := new(MockAttacheeRepository)
			renderer := new(MockRenderer)
			svc := NewService(repo, renderer, "https://portal.example.com", zap.NewNop())

			repo.On("FindByTrackingID", ctx, mock.Anything).Return(attacheeAt(t, tt.status), nil)
			renderer.On("Render", ctx, mock.Anything).Return([]byte("%PDF-1.4"), nil)

			_, err := svc.Generate(ctx, "EUJ-2024-042", tt.kind)
			if tt.allowed {
				assert.NoError(t, err, "%s at %s", tt.kind, tt.status)
			} else {
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr, "%s at %s", tt.kind, tt.status)
				assert.Equal(t, "NOT_ELIGIBLE", domainErr.Code)
				renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
			}
		}
	})

	t.Run("unknown document kind", func(t *testing.T) {
		repo := new(MockAttacheeRepository)
		svc := NewService(repo, new(MockRenderer), "https://portal.example.com", zap.NewNop())

		_, err := svc.Generate(ctx, "EUJ-2024-042", document.Kind("transcript"))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DOCUMENT", domainErr.Code)
		repo.AssertNotCalled(t, "FindByTrackingID", mock.Anything, mock.Anything)
	})

	t.Run("renderer failure surfaces as a retryable error", func(t *testing.T) {
		repo := new(MockAttacheeRepository)
		renderer := new(MockRenderer)
		svc := NewService(repo, renderer, "https://portal.example.com", zap.NewNop())

		repo.On("FindByTrackingID", ctx, mock.Anything).Return(attacheeAt(t, attachment.StatusCompleted), nil)
		renderer.On("Render", ctx, mock.Anything).Return(nil, errors.New("chrome crashed"))

		_, err := svc.Generate(ctx, "EUJ-2024-042", document.KindCompletionLetter)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "RENDER_FAILED", domainErr.Code)
	})
}

func TestService_ListAvailable(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAttacheeRepository)
	svc := NewService(repo, new(MockRenderer), "https://portal.example.com", zap.NewNop())

	repo.On("FindByTrackingID", ctx, "EUJ-2024-042").Return(attacheeAt(t, attachment.StatusCompleted), nil)

	docs, err := svc.ListAvailable(ctx, "EUJ-2024-042")
	require.NoError(t, err)
	require.Len(t, docs, 4)

	byKind := make(map[document.Kind]bool, len(docs))
	for _, d := range docs {
		byKind[d.Kind] = d.Available
	}
	assert.False(t, byKind[document.KindGatePass])
	assert.False(t, byKind[document.KindIDCard])
	assert.True(t, byKind[document.KindCompletionLetter])
	assert.True(t, byKind[document.KindRecommendationLetter])
}
