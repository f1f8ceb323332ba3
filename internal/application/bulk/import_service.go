package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appattachment "github.com/eujim/backend/internal/application/attachment"
	"github.com/eujim/backend/internal/domain/shared"
	"github.com/eujim/backend/internal/infrastructure/csvio"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateLayout is the accepted date format in import files
const dateLayout = "2006-01-02"

// requiredHeaders are the normalized header keys an import file must carry
var requiredHeaders = []string{
	"first_name",
	"last_name",
	"national_id",
	"email",
	"institution",
	"start_date",
	"end_date",
}

// ImportResult is the per-file report returned to the dashboard
type ImportResult struct {
	TotalRows    int              `json:"total_rows"`
	ImportedRows int              `json:"imported_rows"`
	SkippedRows  int              `json:"skipped_rows"`
	ErrorRows    int              `json:"error_rows"`
	Errors       []csvio.RowError `json:"errors,omitempty"`
	IsTruncated  bool             `json:"is_truncated,omitempty"`
	TotalErrors  int              `json:"total_errors,omitempty"`
}

// AttacheeCreator is the slice of the application service the importer needs
type AttacheeCreator interface {
	Create(ctx context.Context, req appattachment.CreateAttacheeRequest) (*appattachment.AttacheeResponse, error)
}

// ImportService turns an uploaded CSV into Pending application records. Each
// row goes through the same intake path as the public form, so every imported
// record gets a tracking reference and a submission notification.
type ImportService struct {
	creator AttacheeCreator
	logger  *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(creator AttacheeCreator, logger *zap.Logger) *ImportService {
	return &ImportService{creator: creator, logger: logger}
}

// Import parses and imports an uploaded CSV. Rows whose national ID already
// exists are skipped; rows that fail validation are reported individually and
// never abort the rest of the file.
func (s *ImportService) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	parser, err := csvio.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.MissingHeaders(requiredHeaders); len(missing) > 0 {
		return nil, shared.NewDomainError("MISSING_COLUMNS",
			fmt.Sprintf("Import file is missing required columns: %v", missing))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, csvio.ErrNoDataRows
	}

	result := &ImportResult{TotalRows: len(rows)}
	rowErrors := csvio.NewErrorCollection(100)
	seenNationalIDs := make(map[string]int, len(rows))

	for _, row := range rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		s.importRow(ctx, row, seenNationalIDs, result, rowErrors)
	}

	result.Errors = rowErrors.Errors()
	result.IsTruncated = rowErrors.IsTruncated()
	result.TotalErrors = rowErrors.TotalCount()

	s.logger.Info("bulk import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("skipped", result.SkippedRows),
		zap.Int("errors", result.ErrorRows),
	)
	return result, nil
}

func (s *ImportService) importRow(
	ctx context.Context,
	row *csvio.Row,
	seenNationalIDs map[string]int,
	result *ImportResult,
	rowErrors *csvio.ErrorCollection,
) {
	for _, key := range requiredHeaders {
		if row.Get(key) == "" {
			rowErrors.AddRequired(row.LineNumber, key)
			result.ErrorRows++
			return
		}
	}

	nationalID := row.Get("national_id")
	if firstLine, ok := seenNationalIDs[nationalID]; ok {
		rowErrors.Add(csvio.NewRowErrorWithValue(row.LineNumber, "national_id", csvio.ErrCodeDuplicate,
			fmt.Sprintf("duplicate of row %d in the same file", firstLine), nationalID))
		result.ErrorRows++
		return
	}
	seenNationalIDs[nationalID] = row.LineNumber

	startDate, err := time.Parse(dateLayout, row.Get("start_date"))
	if err != nil {
		rowErrors.AddFormat(row.LineNumber, "start_date", dateLayout, row.Get("start_date"))
		result.ErrorRows++
		return
	}
	endDate, err := time.Parse(dateLayout, row.Get("end_date"))
	if err != nil {
		rowErrors.AddFormat(row.LineNumber, "end_date", dateLayout, row.Get("end_date"))
		result.ErrorRows++
		return
	}

	req := appattachment.CreateAttacheeRequest{
		FirstName:   normalizeName(row.Get("first_name")),
		LastName:    normalizeName(row.Get("last_name")),
		NationalID:  nationalID,
		Email:       row.Get("email"),
		Phone:       row.Get("phone"),
		Gender:      row.Get("gender"),
		Institution: row.Get("institution"),
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if _, err := s.creator.Create(ctx, req); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "ALREADY_EXISTS" {
			result.SkippedRows++
			return
		}
		rowErrors.Add(csvio.NewRowError(row.LineNumber, "", csvio.ErrCodeRowRejected, err.Error()))
		result.ErrorRows++
		return
	}
	result.ImportedRows++
}

// normalizeName converts registrar exports that arrive in all caps or all
// lower case to title case. Mixed-case input is left as typed.
func normalizeName(s string) string {
	if s != strings.ToUpper(s) && s != strings.ToLower(s) {
		return s
	}
	return cases.Title(language.English).String(strings.ToLower(s))
}
