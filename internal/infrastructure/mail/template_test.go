package mail

import (
	"context"
	"testing"

	"github.com/eujim/backend/internal/application/notification"
	"github.com/eujim/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderMessage(t *testing.T) {
	t.Run("renders branded message with action button", func(t *testing.T) {
		html, err := renderMessage(templateData{
			OrgName:     "EUJIM Solutions Ltd",
			Greeting:    "Dear Jane,",
			Body:        "Your application has been approved.",
			ActionLabel: "Get Gate Pass",
			ActionURL:   "https://portal.example.com/documents",
		})

		require.NoError(t, err)
		assert.Contains(t, html, "EUJIM Solutions Ltd")
		assert.Contains(t, html, "Dear Jane,")
		assert.Contains(t, html, "Your application has been approved.")
		assert.Contains(t, html, `href="https://portal.example.com/documents"`)
		assert.Contains(t, html, "Get Gate Pass")
	})

	t.Run("omits button without action URL", func(t *testing.T) {
		html, err := renderMessage(templateData{
			OrgName:  "EUJIM Solutions Ltd",
			Greeting: "Dear Jane,",
			Body:     "Your application was received.",
		})

		require.NoError(t, err)
		assert.NotContains(t, html, "<a href")
	})

	t.Run("escapes HTML in user-supplied fields", func(t *testing.T) {
		html, err := renderMessage(templateData{
			OrgName:  "EUJIM Solutions Ltd",
			Greeting: "Dear <script>alert(1)</script>,",
			Body:     "body",
		})

		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
	})
}

func TestSMTPSender_ActionURL(t *testing.T) {
	sender := NewSMTPSender(config.MailConfig{}, "https://portal.example.com/", "EUJIM Solutions Ltd", zap.NewNop())

	assert.Equal(t, "https://portal.example.com/check-status", sender.actionURL("/check-status"))
	assert.Equal(t, "https://portal.example.com/documents", sender.actionURL("documents"))
	assert.Equal(t, "", sender.actionURL(""))
}

func TestLogSender_Send(t *testing.T) {
	sender := NewLogSender(zap.NewNop())

	err := sender.Send(context.Background(), notification.Message{
		To:      "jane@example.com",
		Subject: "Status Update - Ref: EUJ-2024-001",
		Body:    "Your application has been approved.",
	})

	assert.NoError(t, err)
}
