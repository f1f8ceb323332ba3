package docs

import (
	"fmt"
	"html/template"
	"strings"

	appdocument "github.com/eujim/backend/internal/application/document"
	"github.com/eujim/backend/internal/domain/document"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// templateFuncs are the helpers available to the document templates. The
// pronoun helpers follow the intake form's gender choices; anything other
// than Male or Female renders the neutral form.
var templateFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"titleCase": func(s string) string {
		return cases.Title(language.English).String(s)
	},
	"subjective": func(gender string) string {
		switch gender {
		case "Male":
			return "he"
		case "Female":
			return "she"
		}
		return "they"
	},
	"objective": func(gender string) string {
		switch gender {
		case "Male":
			return "him"
		case "Female":
			return "her"
		}
		return "them"
	},
	"possessive": func(gender string) string {
		switch gender {
		case "Male":
			return "his"
		case "Female":
			return "her"
		}
		return "their"
	},
}

// templateData wraps the application render data with branding fields only
// the infrastructure layer knows about
type templateData struct {
	appdocument.RenderData
	OrgName   string
	QRDataURL template.URL
}

var documentTemplates = template.Must(template.New("documents").Funcs(templateFuncs).Parse(`
{{define "letterhead"}}
<div style="border-bottom:3px solid #1a3c6e;padding-bottom:12px;margin-bottom:24px;">
  <div style="font-size:22px;font-weight:bold;color:#1a3c6e;">{{.OrgName}}</div>
  <div style="font-size:11px;color:#555;">Industrial Attachment Programme</div>
</div>
{{end}}

{{define "verify"}}
{{if .QRDataURL}}
<div style="margin-top:24px;text-align:center;">
  <img src="{{.QRDataURL}}" alt="Verification code" style="width:90px;height:90px;">
  <div style="font-size:9px;color:#777;">Scan to verify this document &middot; Ref: {{.TrackingID}}</div>
</div>
{{end}}
{{end}}

{{define "gate_pass"}}
<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="font-family:Georgia,serif;color:#1f2933;margin:40px;">
{{template "letterhead" .}}
<h1 style="font-size:18px;text-align:center;letter-spacing:1px;">{{upper .Title}}</h1>
<p style="font-size:13px;text-align:center;color:#555;">Ref: {{.TrackingID}}</p>
<p style="font-size:13px;line-height:1.7;">This is to certify that <strong>{{titleCase .FullName}}</strong>
(National ID No. <strong>{{.NationalID}}</strong>) of <strong>{{.Institution}}</strong> has been
admitted to the industrial attachment programme and is authorized to access the
company premises for the attachment period <strong>{{.StartDate}}</strong> to
<strong>{{.EndDate}}</strong>.</p>
<p style="font-size:13px;line-height:1.7;">The bearer must present this pass together with a
national identification document at the gate on their first day of reporting.</p>
<div style="margin-top:48px;">
  <div style="border-top:1px solid #333;width:220px;padding-top:4px;font-size:12px;">Attachment Coordinator</div>
</div>
{{template "verify" .}}
</body></html>
{{end}}

{{define "id_card"}}
<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="margin:0;font-family:Arial,Helvetica,sans-serif;">
<div style="width:100%;height:100%;box-sizing:border-box;padding:10px 14px;background:linear-gradient(135deg,#1a3c6e 0%,#2b5ca8 100%);color:#fff;">
  <div style="font-size:11px;font-weight:bold;">{{.OrgName}}</div>
  <div style="font-size:8px;opacity:.8;margin-bottom:8px;">ATTACHMENT ID CARD</div>
  <div style="font-size:13px;font-weight:bold;">{{.FullName}}</div>
  <div style="font-size:9px;margin-top:2px;">{{.Institution}}</div>
  <div style="font-size:9px;margin-top:6px;">Ref: {{.TrackingID}}</div>
  <div style="font-size:9px;">Valid: {{.StartDate}} &ndash; {{.EndDate}}</div>
  {{if .QRDataURL}}<img src="{{.QRDataURL}}" alt="" style="position:absolute;right:14px;bottom:10px;width:48px;height:48px;background:#fff;padding:2px;">{{end}}
</div>
</body></html>
{{end}}

{{define "completion_letter"}}
<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="font-family:Georgia,serif;color:#1f2933;margin:40px;">
{{template "letterhead" .}}
<h1 style="font-size:18px;text-align:center;letter-spacing:1px;">{{upper .Title}}</h1>
<p style="font-size:13px;text-align:center;color:#555;">Ref: {{.TrackingID}}</p>
<p style="font-size:13px;line-height:1.7;">This is to certify that <strong>{{titleCase .FullName}}</strong>
of <strong>{{.Institution}}</strong> successfully completed an industrial attachment with
{{.OrgName}} from <strong>{{.StartDate}}</strong> to <strong>{{.EndDate}}</strong>{{if .CompletionDate}},
concluding on <strong>{{.CompletionDate}}</strong>{{end}}.</p>
<p style="font-size:13px;line-height:1.7;">Throughout the attachment period the student observed
the company's policies and carried out the duties assigned to {{objective .Gender}}.</p>
<div style="margin-top:48px;">
  <div style="border-top:1px solid #333;width:220px;padding-top:4px;font-size:12px;">Attachment Coordinator</div>
</div>
{{template "verify" .}}
</body></html>
{{end}}

{{define "recommendation_letter"}}
<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="font-family:Georgia,serif;color:#1f2933;margin:40px;">
{{template "letterhead" .}}
<h1 style="font-size:18px;text-align:center;letter-spacing:1px;">{{upper .Title}}</h1>
<p style="font-size:13px;text-align:center;color:#555;">Ref: {{.TrackingID}}</p>
<p style="font-size:13px;line-height:1.7;">To whom it may concern,</p>
<p style="font-size:13px;line-height:1.7;"><strong>{{titleCase .FullName}}</strong> of
<strong>{{.Institution}}</strong> undertook an industrial attachment with {{.OrgName}}
from <strong>{{.StartDate}}</strong> to <strong>{{.EndDate}}</strong> and completed it
to our satisfaction.</p>
<p style="font-size:13px;line-height:1.7;">During this period {{subjective .Gender}} demonstrated
commitment to assigned work and a willingness to learn. We recommend {{objective .Gender}} for
opportunities in {{possessive .Gender}} field of study.</p>
<div style="margin-top:48px;">
  <div style="border-top:1px solid #333;width:220px;padding-top:4px;font-size:12px;">Attachment Coordinator</div>
</div>
{{template "verify" .}}
</body></html>
{{end}}
`))

// renderHTML renders the template for a document kind
func renderHTML(data templateData) (string, error) {
	name := data.Kind.String()
	if documentTemplates.Lookup(name) == nil {
		return "", fmt.Errorf("no template for document kind %q", name)
	}
	var b strings.Builder
	if err := documentTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// paperFor returns the paper width and height in inches for a document kind.
// The ID card prints at physical card size; everything else is A4.
func paperFor(kind document.Kind) (width, height float64) {
	if kind == document.KindIDCard {
		return 3.375, 2.125
	}
	return 8.27, 11.69
}
