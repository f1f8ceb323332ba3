package bulk

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/shared"
)

// exportBatchSize is how many records each repository page pulls during export
const exportBatchSize = 500

// exportHeader leads with the dashboard columns and carries every column the
// importer requires, so an export can be re-imported as-is
var exportHeader = []string{
	"Reference No.", "First Name", "Last Name", "National ID", "Email", "Phone",
	"Gender", "Institution", "Status", "Start Date", "End Date", "Applied On",
}

// ExportFilter narrows the export the same way the dashboard list does
type ExportFilter struct {
	Search string
	Status string
}

// ExportService streams the filtered application records out as CSV
type ExportService struct {
	repo attachment.AttacheeRepository
}

// NewExportService creates a new ExportService
func NewExportService(repo attachment.AttacheeRepository) *ExportService {
	return &ExportService{repo: repo}
}

// FileName returns the suggested download name for an export taken now
func (s *ExportService) FileName(now time.Time) string {
	return fmt.Sprintf("attachment_records_%s.csv", now.Format("2006-01-02"))
}

// Export writes every record matching the filter. Records are pulled in
// pages so a large table never loads into memory at once.
func (s *ExportService) Export(ctx context.Context, filter ExportFilter) ([]byte, error) {
	if filter.Status != "" && !attachment.Status(filter.Status).IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown status filter")
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}

	domainFilter := shared.Filter{
		Page:     1,
		PageSize: exportBatchSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		attachees, err := s.repo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, err
		}
		for i := range attachees {
			if err := writer.Write(exportRow(&attachees[i])); err != nil {
				return nil, err
			}
		}
		if len(attachees) < exportBatchSize {
			break
		}
		domainFilter.Page++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(a *attachment.Attachee) []string {
	return []string{
		a.TrackingID,
		a.FirstName,
		a.LastName,
		a.NationalID,
		a.Email,
		a.Phone,
		a.Gender,
		a.Institution,
		a.Status.String(),
		a.StartDate.Format("2006-01-02"),
		a.EndDate.Format("2006-01-02"),
		a.CreatedAt.Format("2006-01-02 15:04"),
	}
}
