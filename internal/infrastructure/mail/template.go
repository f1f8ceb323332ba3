package mail

import (
	"html/template"
	"strings"
)

// templateData feeds the branded notification template
type templateData struct {
	OrgName     string
	Greeting    string
	Body        string
	ActionLabel string
	ActionURL   string
}

var messageTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:24px 0;">
    <tr>
      <td align="center">
        <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
          <tr>
            <td style="background-color:#1a3c6e;padding:20px 32px;">
              <span style="color:#ffffff;font-size:20px;font-weight:bold;">{{.OrgName}}</span>
            </td>
          </tr>
          <tr>
            <td style="padding:32px;">
              <p style="font-size:15px;color:#1f2933;margin:0 0 16px;">{{.Greeting}}</p>
              <p style="font-size:15px;color:#1f2933;line-height:1.6;margin:0 0 24px;">{{.Body}}</p>
              {{if .ActionURL}}
              <table role="presentation" cellpadding="0" cellspacing="0">
                <tr>
                  <td style="background-color:#1a3c6e;border-radius:4px;">
                    <a href="{{.ActionURL}}" style="display:inline-block;padding:12px 28px;color:#ffffff;font-size:14px;font-weight:bold;text-decoration:none;">{{.ActionLabel}}</a>
                  </td>
                </tr>
              </table>
              {{end}}
            </td>
          </tr>
          <tr>
            <td style="padding:20px 32px;background-color:#f9fafb;border-top:1px solid #e4e7eb;">
              <p style="font-size:12px;color:#7b8794;margin:0;">This is an automated message from {{.OrgName}}. Please do not reply to this email.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

// renderMessage renders the branded HTML body for a notification
func renderMessage(data templateData) (string, error) {
	var b strings.Builder
	if err := messageTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
