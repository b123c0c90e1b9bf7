package document

import (
	"html/template"
	"strings"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

var previewTemplate = template.Must(template.New("preview").Parse(`<div style="position: relative; min-height: 277mm;">
<div style="position: absolute; inset: 8px; border: 1.5px solid #000;"></div>
<div style="position: absolute; inset: 12px; border: 0.5px solid #000;"></div>
<div style="padding: 20mm; position: relative; z-index: 1;">
<div style="text-align: center; margin-bottom: 30px;">
<h1 style="font-size: 16pt; font-weight: bold; margin-bottom: 8px; color: #000;">{{.Details.Title}}</h1>
<p style="font-size: 12pt; color: #000; margin: 0;">{{.Details.Company}} - {{.Details.Location}}</p>
</div>
<hr style="border: none; border-top: 0.8px solid #000; margin: 15px 10px;">
<div style="margin: 15px 0;">
<h3 style="font-size: 14pt; font-weight: bold; color: #000; margin-bottom: 10px;">Job Details</h3>
<div style="font-size: 12pt; color: #000;">
{{- range .Fields}}
<div style="margin-bottom: 6px;"><strong>{{.Label}}</strong> {{.Value}}</div>
{{- end}}
</div>
</div>
<hr style="border: none; border-top: 0.3px solid #000; margin: 8px 10px 15px 10px;">
<div style="margin-top: 15px;">
{{- range .Blocks}}
{{- if eq .Kind "header"}}
<h3 style="font-size: 16pt; font-weight: bold; color: #000; margin: 20px 0 10px 0;">{{.Text}}</h3>
{{- else if eq .Kind "paragraph"}}
<p style="font-size: 12pt; color: #000; margin: 0 0 12px 0; text-align: justify;">{{.Text}}</p>
{{- else if eq .Kind "bullet"}}
<div style="font-size: 12pt; color: #000; margin: 0 0 8px 0; padding-left: 15px;">• {{.Text}}</div>
{{- end}}
{{- end}}
</div>
</div>
<div style="position: absolute; bottom: 20px; left: 0; right: 0; text-align: center;">
<hr style="border: none; border-top: 0.3px solid #000; margin: 0 10px 10px 10px;">
<p style="font-size: 10pt; color: #505050; font-style: italic; margin: 0;">{{.Footer}}</p>
</div>
</div>
`))

// Preview renders the same blocks as PDF into one continuous HTML fragment,
// without page breaks.
func (e *Exporter) Preview(details dtos.JobDetails, rendered string) (string, error) {
	blocks, err := e.Blocks(rendered)
	if err != nil {
		return "", err
	}

	details = withDefaults(details)
	var b strings.Builder
	err = previewTemplate.Execute(&b, struct {
		Details dtos.JobDetails
		Fields  []detailField
		Blocks  []ContentBlock
		Footer  string
	}{
		Details: details,
		Fields:  detailFields(details),
		Blocks:  blocks,
		Footer:  footerText(e.cfg.now()),
	})
	if err != nil {
		return "", &ExportError{Message: "failed to render preview", Cause: err}
	}
	return b.String(), nil
}
