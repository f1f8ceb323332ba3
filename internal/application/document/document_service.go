package document

import (
	"context"
	"fmt"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/document"
	"github.com/eujim/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RenderData is everything a template needs to produce one document
type RenderData struct {
	Kind           document.Kind
	Title          string
	TrackingID     string
	FullName       string
	NationalID     string
	Gender         string
	Institution    string
	Status         string
	StartDate      string
	EndDate        string
	CompletionDate string
	VerifyURL      string
}

// Renderer turns render data into PDF bytes. The chromedp implementation
// lives in infrastructure.
type Renderer interface {
	Render(ctx context.Context, data RenderData) ([]byte, error)
}

// File is a generated document ready for download
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// AvailableDocument describes one document and whether the record's current
// status unlocks it
type AvailableDocument struct {
	Kind      document.Kind `json:"kind"`
	Title     string        `json:"title"`
	Available bool          `json:"available"`
}

// Service generates branded documents. Eligibility is re-checked against the
// record's current status on every request, so a link saved from an earlier
// email stops working the moment the status no longer qualifies.
type Service struct {
	repo          attachment.AttacheeRepository
	renderer      Renderer
	verifyBaseURL string
	logger        *zap.Logger
}

// NewService creates a new document Service
func NewService(repo attachment.AttacheeRepository, renderer Renderer, verifyBaseURL string, logger *zap.Logger) *Service {
	return &Service{
		repo:          repo,
		renderer:      renderer,
		verifyBaseURL: verifyBaseURL,
		logger:        logger,
	}
}

// ListAvailable reports, for one record, which documents its current status unlocks
func (s *Service) ListAvailable(ctx context.Context, trackingID string) ([]AvailableDocument, error) {
	a, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	kinds := document.AllKinds()
	available := make([]AvailableDocument, len(kinds))
	for i, kind := range kinds {
		available[i] = AvailableDocument{
			Kind:      kind,
			Title:     kind.Title(),
			Available: kind.AllowedFor(a.Status),
		}
	}
	return available, nil
}

// Generate renders one document for download
func (s *Service) Generate(ctx context.Context, trackingID string, kind document.Kind) (*File, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", fmt.Sprintf("Unknown document type %q", kind))
	}

	a, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	if !kind.AllowedFor(a.Status) {
		return nil, shared.NewDomainError("NOT_ELIGIBLE",
			fmt.Sprintf("The %s is not available while the application is %s", kind.Title(), a.Status))
	}

	data, err := s.renderer.Render(ctx, s.renderData(a, kind))
	if err != nil {
		s.logger.Error("document rendering failed",
			zap.String("tracking_id", trackingID),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		return nil, shared.NewDomainError("RENDER_FAILED", "Document generation failed, please try again")
	}

	return &File{
		Name:        kind.FileName(a.TrackingID),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (s *Service) renderData(a *attachment.Attachee, kind document.Kind) RenderData {
	const dateLayout = "2 January 2006"
	data := RenderData{
		Kind:        kind,
		Title:       kind.Title(),
		TrackingID:  a.TrackingID,
		FullName:    a.FullName(),
		NationalID:  a.NationalID,
		Gender:      a.Gender,
		Institution: a.Institution,
		Status:      a.Status.String(),
		StartDate:   a.StartDate.Format(dateLayout),
		EndDate:     a.EndDate.Format(dateLayout),
		VerifyURL:   fmt.Sprintf("%s/check-status?ref=%s", s.verifyBaseURL, a.TrackingID),
	}
	if a.CompletionDate != nil {
		data.CompletionDate = a.CompletionDate.Format(dateLayout)
	}
	return data
}
