package attachment

import (
	"context"
	"errors"
	"time"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles attachment application intake and the status workflow
type Service struct {
	repo           attachment.AttacheeRepository
	sequence       attachment.TrackingSequence
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new Service
func NewService(repo attachment.AttacheeRepository, sequence attachment.TrackingSequence, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		sequence: sequence,
		logger:   logger,
	}
}

// SetEventPublisher sets the publisher used to dispatch notification events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new application. The tracking reference comes from the
// atomic sequence allocator; the unique constraint on tracking_id remains the
// backstop, so a duplicate save is retried once with a freshly allocated
// reference before giving up.
func (s *Service) Create(ctx context.Context, req CreateAttacheeRequest) (*AttacheeResponse, error) {
	exists, err := s.repo.ExistsByNationalID(ctx, req.NationalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An application with this national ID number already exists")
	}

	var a *attachment.Attachee
	for attempt := 0; attempt < 2; attempt++ {
		a, err = s.newAttachee(ctx, req)
		if err != nil {
			return nil, err
		}

		err = s.repo.Save(ctx, a)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt == 1 {
			return nil, err
		}
		s.logger.Warn("tracking reference collided, retrying with a fresh sequence",
			zap.String("tracking_id", a.TrackingID),
		)
	}

	s.publishEvents(ctx, a)

	response := ToAttacheeResponse(a)
	return &response, nil
}

// newAttachee allocates a tracking reference and builds the aggregate
func (s *Service) newAttachee(ctx context.Context, req CreateAttacheeRequest) (*attachment.Attachee, error) {
	year := time.Now().Year()
	seq, err := s.sequence.Next(ctx, year)
	if err != nil {
		return nil, err
	}

	return attachment.NewAttachee(attachment.NewAttacheeParams{
		TrackingID:  attachment.FormatTrackingID(year, seq),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		NationalID:  req.NationalID,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		Institution: req.Institution,
		DateOfBirth: req.DateOfBirth,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Documents:   req.Documents,
		Consent:     req.Consent,
	})
}

// Transition applies an admin status decision. The persisted mutation is the
// durable effect; the notification event is dispatched only after a
// successful save and only when the status actually changed.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*AttacheeResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := a.ChangeStatus(attachment.Status(req.Status), req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, a); err != nil {
		a.ClearDomainEvents()
		return nil, err
	}

	if changed {
		s.logger.Info("application status changed",
			zap.String("tracking_id", a.TrackingID),
			zap.String("status", a.Status.String()),
			zap.String("actor", req.Actor),
		)
	}
	s.publishEvents(ctx, a)

	response := ToAttacheeResponse(a)
	return &response, nil
}

// Get retrieves an application by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AttacheeResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAttacheeResponse(a)
	return &response, nil
}

// GetByTrackingID retrieves an application by its tracking reference
func (s *Service) GetByTrackingID(ctx context.Context, trackingID string) (*AttacheeResponse, error) {
	a, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	response := ToAttacheeResponse(a)
	return &response, nil
}

// CheckStatus performs the public status lookup by tracking reference, email
// or national ID. Unknown queries return Found=false rather than an error so
// the endpoint leaks nothing about which identifiers exist.
func (s *Service) CheckStatus(ctx context.Context, query string) (*StatusLookupResponse, error) {
	a, err := s.repo.FindByLookup(ctx, query)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &StatusLookupResponse{Found: false}, nil
		}
		return nil, err
	}
	response := ToAttacheeResponse(a)
	return &StatusLookupResponse{Found: true, Attachee: &response}, nil
}

// List retrieves a filtered, paginated dashboard page
func (s *Service) List(ctx context.Context, filter ListFilter) ([]AttacheeListItem, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		if !attachment.Status(filter.Status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown status filter")
		}
		domainFilter.Filters["status"] = filter.Status
	}

	attachees, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]AttacheeListItem, len(attachees))
	for i := range attachees {
		items[i] = ToAttacheeListItem(&attachees[i])
	}
	return items, total, nil
}

// Delete removes an application and, by cascade, its evaluation and feedback
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// publishEvents dispatches pending domain events. Failures are logged and
// swallowed: notification delivery is a courtesy, never part of the mutation.
func (s *Service) publishEvents(ctx context.Context, a *attachment.Attachee) {
	if s.eventPublisher == nil {
		a.ClearDomainEvents()
		return
	}
	for _, event := range a.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	a.ClearDomainEvents()
}
