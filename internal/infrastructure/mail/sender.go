package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/eujim/backend/internal/application/notification"
	"github.com/eujim/backend/internal/infrastructure/config"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPSender delivers notification messages over SMTP with the branded
// HTML template. It implements notification.Sender.
type SMTPSender struct {
	cfg     config.MailConfig
	baseURL string
	orgName string
	logger  *zap.Logger
}

// NewSMTPSender creates a new SMTPSender. baseURL is the public portal
// address action links point at; orgName appears in the template header
// and footer.
func NewSMTPSender(cfg config.MailConfig, baseURL, orgName string, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		orgName: orgName,
		logger:  logger,
	}
}

// Send renders and delivers a single message
func (s *SMTPSender) Send(ctx context.Context, message notification.Message) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(message.Subject)

	html, err := renderMessage(templateData{
		OrgName:     s.orgName,
		Greeting:    message.Greeting,
		Body:        message.Body,
		ActionLabel: message.ActionLabel,
		ActionURL:   s.actionURL(message.ActionPath),
	})
	if err != nil {
		return fmt.Errorf("render message: %w", err)
	}
	msg.SetBodyString(gomail.TypeTextPlain, plainBody(message))
	msg.AddAlternativeString(gomail.TypeTextHTML, html)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Debug("mail delivered",
		zap.String("to", message.To),
		zap.String("subject", message.Subject),
	)
	return nil
}

func (s *SMTPSender) actionURL(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}

// plainBody is the text/plain fallback for clients that reject HTML
func plainBody(message notification.Message) string {
	var b strings.Builder
	b.WriteString(message.Greeting)
	b.WriteString("\n\n")
	b.WriteString(message.Body)
	b.WriteString("\n")
	return b.String()
}

// Ensure SMTPSender implements Sender
var _ notification.Sender = (*SMTPSender)(nil)

// LogSender writes messages to the log instead of sending them. Used when
// mail delivery is disabled in config so local environments still show
// what would have gone out.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message instead of delivering it
func (s *LogSender) Send(ctx context.Context, message notification.Message) error {
	s.logger.Info("mail delivery disabled, message not sent",
		zap.String("to", message.To),
		zap.String("subject", message.Subject),
		zap.String("body", message.Body),
	)
	return nil
}

// Ensure LogSender implements Sender
var _ notification.Sender = (*LogSender)(nil)
