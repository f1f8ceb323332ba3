package bulk

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	appattachment "github.com/eujim/backend/internal/application/attachment"
	"github.com/eujim/backend/internal/domain/attachment"
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

func exportFixture(t *testing.T, trackingID string) attachment.Attachee {
	t.Helper()
	a, err := attachment.NewAttachee(attachment.NewAttacheeParams{
		TrackingID:  trackingID,
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
	return *a
}

func TestExportService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the dashboard columns", func(t *testing.T) {
		repo := new(MockAttacheeRepository)
		svc := NewExportService(repo)

		repo.On("FindAll", ctx, mock.Anything).
			Return([]attachment.Attachee{exportFixture(t, "EUJ-2024-001")}, nil).Once()

		out, err := svc.Export(ctx, ExportFilter{})
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, exportHeader, records[0])
		assert.Equal(t, "EUJ-2024-001", records[1][0])
		assert.Equal(t, "Jane", records[1][1])
		assert.Equal(t, "11223344", records[1][3])
		assert.Equal(t, "Pending", records[1][8])
		assert.Equal(t, "2024-05-01", records[1][9])
		assert.Equal(t, "2024-08-01", records[1][10])
	})

	t.Run("exported files re-import without edits", func(t *testing.T) {
		repo := new(MockAttacheeRepository)
		svc := NewExportService(repo)

		repo.On("FindAll", ctx, mock.Anything).
			Return([]attachment.Attachee{exportFixture(t, "EUJ-2024-001")}, nil).Once()

		out, err := svc.Export(ctx, ExportFilter{})
		require.NoError(t, err)

		creator := new(MockAttacheeCreator)
		creator.On("Create", ctx, mock.MatchedBy(func(req appattachment.CreateAttacheeRequest) bool {
			return req.FirstName == "Jane" && req.NationalID == "11223344" &&
				req.Gender == "Female" &&
				req.StartDate.Format("2006-01-02") == "2024-05-01" &&
				req.EndDate.Format("2006-01-02") == "2024-08-01"
		})).Return(&appattachment.AttacheeResponse{TrackingID: "EUJ-2024-002"}, nil).Once()

		result, err := NewImportService(creator, zap.NewNop()).Import(ctx, out)
		require.NoError(t, err)
		assert.Equal(t, 1, result.ImportedRows)
		assert.Zero(t, result.ErrorRows)
		creator.AssertExpectations(t)
	})

	t.Run("passes search and status filters to the repository", func(t *testing.T) {
		repo := new(MockAttacheeRepository)
		svc := NewExportService(repo)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Search == "wanjiku" && f.Filters["status"] == "Approved"
		})).Return([]attachment.Attachee{}, nil).Once()

		out, err := svc.Export(ctx, ExportFilter{Search: "wanjiku", Status: "Approved"})
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1, "header only when nothing matches")
		repo.AssertExpectations(t)
	})

	t.Run("pulls additional pages until a short batch", func(t *testing.T) {
		repo := new(MockAttacheeRepository)
		svc := NewExportService(repo)

		fullPage := make([]attachment.Attachee, exportBatchSize)
		for i := range fullPage {
			fullPage[i] = exportFixture(t, attachment.FormatTrackingID(2024, int64(i+1)))
		}
		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 1 })).
			Return(fullPage, nil).Once()
		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 2 })).
			Return([]attachment.Attachee{exportFixture(t, "EUJ-2024-999")}, nil).Once()

		out, err := svc.Export(ctx, ExportFilter{})
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, exportBatchSize+2)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		repo := new(MockAttacheeRepository)
		svc := NewExportService(repo)

		_, err := svc.Export(ctx, ExportFilter{Status: "Archived"})
		require.Error(t, err)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}

func TestExportService_FileName(t *testing.T) {
	svc := NewExportService(nil)
	name := svc.FileName(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "attachment_records_2024-06-15.csv", name)
}
