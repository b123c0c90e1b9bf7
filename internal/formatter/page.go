package formatter

import (
	"html/template"
	"strings"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

var pageTemplate = template.Must(template.New("page").Parse(`<div class="jd-page">
<div class="jd-header">
<h2 class="jd-title">{{.Details.Title}}</h2>
<p class="jd-company">{{.Details.Company}}</p>
<p class="jd-location">{{.Details.Location}}</p>
<div class="jd-facts">
<span class="jd-job-type">{{.Details.JobType}}</span>
<span class="jd-experience">{{.Details.ExperienceLevel}}</span>
{{- if .Details.Salary}}
<span class="jd-salary">{{.Details.Salary}}</span>
{{- end}}
</div>
</div>
<div class="jd-body">
{{.Body}}</div>
{{- if .Apply}}
<div class="jd-apply">
<h3 class="jd-heading">How to Apply</h3>
<p>Ready to join our team? Send your application to:</p>
<a href="mailto:{{.Details.Email}}">Apply Now - {{.Details.Email}}</a>
<span class="jd-meta">Generated with {{.Metadata.WordCount}} words</span>
</div>
{{- end}}
</div>
`))

// Page renders the full result view: header card, formatted body and the
// application section.
func Page(details dtos.JobDetails, meta dtos.Metadata, text string) (string, error) {
	return renderPage(details, meta, text, true)
}

// FallbackPage renders a placeholder document. The placeholder carries its
// own application section, so the apply card is left out.
func FallbackPage(details dtos.JobDetails, meta dtos.Metadata, text string) (string, error) {
	return renderPage(details, meta, text, false)
}

func renderPage(details dtos.JobDetails, meta dtos.Metadata, text string, apply bool) (string, error) {
	var b strings.Builder
	err := pageTemplate.Execute(&b, struct {
		Details  dtos.JobDetails
		Metadata dtos.Metadata
		Body     template.HTML
		Apply    bool
	}{
		Details:  details,
		Metadata: meta,
		Body:     template.HTML(Body(text)),
		Apply:    apply,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
