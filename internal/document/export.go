package document

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

type exporterConfig struct {
	geometry Geometry
	extract  ExtractOptions
	now      func() time.Time
	newPDF   func() *fpdf.Fpdf
}

// Option configures an [Exporter].
type Option func(*exporterConfig)

// WithClock sets the clock used for the footer date. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *exporterConfig) {
		c.now = now
	}
}

func WithExtractOptions(o ExtractOptions) Option {
	return func(c *exporterConfig) {
		c.extract = o
	}
}

// WithPDFFactory replaces the constructor of the underlying fpdf document.
// The factory must produce A4 portrait documents measured in millimetres.
func WithPDFFactory(f func() *fpdf.Fpdf) Option {
	return func(c *exporterConfig) {
		c.newPDF = f
	}
}

// Exporter turns rendered description HTML into a PDF download or an HTML preview.
// It holds no per-document state and is safe for concurrent use.
type Exporter struct {
	cfg exporterConfig
}

func NewExporter(opts ...Option) *Exporter {
	cfg := exporterConfig{
		geometry: A4,
		extract:  DefaultExtractOptions,
		now:      time.Now,
		newPDF: func() *fpdf.Fpdf {
			return fpdf.New("P", "mm", "A4", "")
		},
	}
	for _, o := range opts {
		o(&cfg)
	}
	return &Exporter{cfg: cfg}
}

// Blocks extracts the content blocks of rendered HTML. They are recomputed on every call.
func (e *Exporter) Blocks(rendered string) ([]ContentBlock, error) {
	if strings.TrimSpace(rendered) == "" {
		return nil, ErrNothingToExport
	}
	blocks, err := Extract(rendered, e.cfg.extract)
	if err != nil {
		return nil, &ExportError{Message: "failed to parse rendered description", Cause: err}
	}
	return blocks, nil
}

// PDF writes the paginated document to w and returns its download filename.
// Nothing is written to w unless the whole document was produced.
func (e *Exporter) PDF(details dtos.JobDetails, rendered string, w io.Writer) (filename string, err error) {
	blocks, err := e.Blocks(rendered)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ PDF generation panicked: %v", r)
			filename, err = "", &ExportError{Message: "PDF generation failed", Cause: fmt.Errorf("%v", r)}
		}
	}()

	now := e.cfg.now()
	pdf := e.cfg.newPDF()
	pdf.SetCreationDate(now)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	layout := Plan(details, blocks, fpdfMeasurer{pdf: pdf, tr: tr}, e.cfg.geometry, now)
	if err := Render(layout, pdf, tr); err != nil {
		log.Printf("❌ PDF rendering failed: %v", err)
		return "", &ExportError{Message: "failed to render PDF", Cause: err}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("❌ PDF output failed: %v", err)
		return "", &ExportError{Message: "failed to write PDF", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return "", &ExportError{Message: "failed to send PDF", Cause: err}
	}

	log.Printf("📄 Exported %q: %d blocks on %d page(s)", layout.Title, len(blocks), len(layout.Pages))
	return Filename(details.Title), nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename derives the download name from the job title,
// e.g. "Senior Go Dev" -> "senior_go_dev_position_description.pdf".
func Filename(title string) string {
	if strings.TrimSpace(title) == "" {
		title = withDefaults(dtos.JobDetails{}).Title
	}
	return strings.ToLower(nonAlphanumeric.ReplaceAllString(title, "_")) + "_position_description.pdf"
}
