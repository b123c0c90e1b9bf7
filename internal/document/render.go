package document

import (
	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// fpdfMeasurer measures with the core font metrics of the document being built.
// Text goes through the cp1252 translator first because core fonts index
// glyph widths by byte.
type fpdfMeasurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (m fpdfMeasurer) StringWidth(text, style string, size float64) float64 {
	m.pdf.SetFont(fontFamily, style, size)
	return m.pdf.GetStringWidth(m.tr(text))
}

// NewMeasurer returns a Measurer backed by a fresh A4 fpdf document.
func NewMeasurer() Measurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	return fpdfMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Render draws every page of the layout, each inside a double border.
func Render(l *Layout, pdf *fpdf.Fpdf, tr func(string) string) error {
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(l.Title, true)
	pdf.SetCreator("job-description-generator", false)

	for _, page := range l.Pages {
		pdf.AddPage()
		drawBorder(pdf, l.Geometry)

		for _, op := range page.Ops {
			switch op.Kind {
			case OpText:
				pdf.SetFont(fontFamily, op.Style, op.Size)
				pdf.SetTextColor(op.Gray, op.Gray, op.Gray)
				pdf.Text(op.X, op.Y, tr(op.Text))
			case OpRule:
				pdf.SetDrawColor(0, 0, 0)
				pdf.SetLineWidth(op.LineWidth)
				pdf.Line(op.X, op.Y, op.X2, op.Y)
			}
		}
	}
	return pdf.Error()
}

func drawBorder(pdf *fpdf.Fpdf, g Geometry) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.5)
	pdf.Rect(8, 8, g.PageWidth-16, g.PageHeight-16, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(12, 12, g.PageWidth-24, g.PageHeight-24, "D")
}
