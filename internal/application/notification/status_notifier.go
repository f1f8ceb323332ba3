package notification

import (
	"context"
	"fmt"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Message is one outbound applicant email
type Message struct {
	To          string
	Subject     string
	Greeting    string
	Body        string
	ActionLabel string
	ActionPath  string
}

// Sender delivers applicant messages. The SMTP implementation lives in
// infrastructure; tests substitute their own.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// statusContent is what each reached status tells the applicant
type statusContent struct {
	body        string
	actionLabel string
	actionPath  string
}

// StatusNotifier listens for application lifecycle events and emails the
// applicant. Delivery is best effort: a failed send is logged and never
// bubbles back into the transition that caused it.
type StatusNotifier struct {
	sender Sender
	logger *zap.Logger
}

// NewStatusNotifier creates a new StatusNotifier
func NewStatusNotifier(sender Sender, logger *zap.Logger) *StatusNotifier {
	return &StatusNotifier{sender: sender, logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (n *StatusNotifier) EventTypes() []string {
	return []string{
		attachment.EventTypeAttacheeSubmitted,
		attachment.EventTypeAttacheeStatusChanged,
	}
}

// Handle builds and sends the email for a lifecycle event
func (n *StatusNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	var msg Message
	switch e := event.(type) {
	case *attachment.AttacheeSubmittedEvent:
		msg = n.submittedMessage(e)
	case *attachment.AttacheeStatusChangedEvent:
		msg = n.statusMessage(e)
	default:
		return nil
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.Error("failed to send applicant notification",
			zap.String("event_type", event.EventType()),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return nil
	}

	n.logger.Info("applicant notification sent",
		zap.String("event_type", event.EventType()),
		zap.String("to", msg.To),
	)
	return nil
}

func (n *StatusNotifier) submittedMessage(e *attachment.AttacheeSubmittedEvent) Message {
	return Message{
		To:       e.Email,
		Subject:  fmt.Sprintf("Application Received - Ref: %s", e.TrackingID),
		Greeting: fmt.Sprintf("Dear %s,", e.FirstName),
		Body: fmt.Sprintf(
			"Thank you for applying for an industrial attachment. Your application has been received and is pending review. Your reference number is %s. Keep it safe; you will need it to check your application status.",
			e.TrackingID,
		),
		ActionLabel: "Check Status",
		ActionPath:  "/check-status",
	}
}

func (n *StatusNotifier) statusMessage(e *attachment.AttacheeStatusChangedEvent) Message {
	content := statusContentFor(e)
	return Message{
		To:          e.Email,
		Subject:     fmt.Sprintf("Status Update - Ref: %s", e.TrackingID),
		Greeting:    fmt.Sprintf("Dear %s,", e.FirstName),
		Body:        content.body,
		ActionLabel: content.actionLabel,
		ActionPath:  content.actionPath,
	}
}

func statusContentFor(e *attachment.AttacheeStatusChangedEvent) statusContent {
	switch e.NewStatus {
	case attachment.StatusApproved:
		return statusContent{
			body:        "Congratulations! Your industrial attachment application has been approved. You may now collect your gate pass and prepare for your start date.",
			actionLabel: "Get Gate Pass",
			actionPath:  "/documents",
		}
	case attachment.StatusInProgress:
		return statusContent{
			body: fmt.Sprintf(
				"Your industrial attachment is now in progress. Your tenure runs from %s to %s. Your staff identification card is ready for download.",
				e.StartDate.Format("2 January 2006"),
				e.EndDate.Format("2 January 2006"),
			),
			actionLabel: "Download ID Card",
			actionPath:  "/documents",
		}
	case attachment.StatusRejected:
		return statusContent{
			body:        "We regret to inform you that your industrial attachment application was not successful on this occasion. You are welcome to apply again in a future intake.",
			actionLabel: "Check Status",
			actionPath:  "/check-status",
		}
	case attachment.StatusCompleted:
		return statusContent{
			body:        "Congratulations on completing your industrial attachment. Your completion letter and letter of recommendation are now available for download.",
			actionLabel: "Get Documents",
			actionPath:  "/documents",
		}
	default:
		return statusContent{
			body:        fmt.Sprintf("The status of your application is now %s.", e.NewStatus),
			actionLabel: "Check Status",
			actionPath:  "/check-status",
		}
	}
}
