package document

import (
	"math"
	"strings"
	"time"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

// Geometry describes the physical page in millimetres.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	BottomMargin float64 // body lines never start below PageHeight-BottomMargin
	LineHeight   float64
}

var A4 = Geometry{
	PageWidth:    210,
	PageHeight:   297,
	Margin:       20,
	BottomMargin: 40,
	LineHeight:   6,
}

// Unbounded returns the same geometry with an infinitely tall page, so a plan
// never breaks. Useful for measuring content.
func (g Geometry) Unbounded() Geometry {
	g.PageHeight = math.Inf(1)
	return g
}

func (g Geometry) contentX() float64     { return g.Margin + 8 }
func (g Geometry) contentWidth() float64 { return g.PageWidth - 2*g.Margin - 16 }
func (g Geometry) topOfPage() float64    { return g.Margin + 15 }

// PageCursor tracks the vertical position while laying out one page.
type PageCursor struct {
	Y            float64
	PageHeight   float64
	TopMargin    float64
	BottomMargin float64
}

// Full reports whether the next line would start past the bottom margin.
func (c *PageCursor) Full() bool { return c.Y > c.PageHeight-c.BottomMargin }

func (c *PageCursor) Reset() { c.Y = c.TopMargin }

// Measurer reports the width of text set in the body font.
// Style is "", "B" or "I"; size is in points.
type Measurer interface {
	StringWidth(text, style string, size float64) float64
}

type OpKind int

const (
	OpText OpKind = iota
	OpRule
)

// Op is a single drawing instruction. Block is set on text lines that come
// from a ContentBlock and empty for page furniture.
type Op struct {
	Kind      OpKind
	Block     Kind
	Text      string
	X, Y      float64
	X2        float64
	Style     string
	Size      float64
	Gray      int
	LineWidth float64
}

type Page struct {
	Ops []Op
}

// Layout is a fully paginated document, ready to draw.
type Layout struct {
	Geometry Geometry
	Title    string
	Pages    []Page
}

// BodyLines counts the text lines produced from content blocks across all pages.
func (l *Layout) BodyLines() int {
	n := 0
	for _, p := range l.Pages {
		for _, op := range p.Ops {
			if op.Kind == OpText && op.Block != "" {
				n++
			}
		}
	}
	return n
}

const (
	headerSize = 16
	bodySize   = 12
	footerSize = 10
	bulletMark = "•"
)

type detailField struct {
	Label string
	Value string
}

// withDefaults fills the header placeholders used when the generator echoed nothing.
func withDefaults(d dtos.JobDetails) dtos.JobDetails {
	if strings.TrimSpace(d.Title) == "" {
		d.Title = "Job Description"
	}
	if strings.TrimSpace(d.Company) == "" {
		d.Company = "Company"
	}
	if strings.TrimSpace(d.Location) == "" {
		d.Location = "Location"
	}
	return d
}

// detailFields lists the Job Details rows in their fixed order, skipping blanks.
func detailFields(d dtos.JobDetails) []detailField {
	all := []detailField{
		{"Job Title:", d.Title},
		{"Company:", d.Company},
		{"Location:", d.Location},
		{"Job Type:", d.JobType},
		{"Experience Level:", d.ExperienceLevel},
	}
	fields := all[:0]
	for _, f := range all {
		if strings.TrimSpace(f.Value) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func footerText(now time.Time) string {
	return "Document generated on " + now.Format("January 2, 2006")
}

type planner struct {
	g      Geometry
	m      Measurer
	layout *Layout
	cursor PageCursor
}

func (p *planner) newPage() {
	p.layout.Pages = append(p.layout.Pages, Page{})
	p.cursor.Reset()
}

func (p *planner) breakIfFull() {
	if p.cursor.Full() {
		p.newPage()
	}
}

func (p *planner) emit(op Op) {
	page := &p.layout.Pages[len(p.layout.Pages)-1]
	page.Ops = append(page.Ops, op)
}

func (p *planner) text(block Kind, text string, x float64, style string, size float64) {
	p.emit(Op{Kind: OpText, Block: block, Text: text, X: x, Y: p.cursor.Y, Style: style, Size: size})
}

func (p *planner) centered(text, style string, size float64, y float64) {
	x := (p.g.PageWidth - p.m.StringWidth(text, style, size)) / 2
	p.emit(Op{Kind: OpText, Text: text, X: x, Y: y, Style: style, Size: size})
}

func (p *planner) rule(y, width float64) {
	p.emit(Op{Kind: OpRule, X: p.g.Margin + 10, X2: p.g.PageWidth - p.g.Margin - 10, Y: y, LineWidth: width})
}

// Plan lays out the header, the content blocks and the dated footer.
//
// A page break is considered at the top of every block and again before each
// wrapped line of a paragraph or bullet, so one block may continue on the
// next page. Headers are only checked at their top.
func Plan(details dtos.JobDetails, blocks []ContentBlock, m Measurer, g Geometry, now time.Time) *Layout {
	details = withDefaults(details)
	p := &planner{
		g:      g,
		m:      m,
		layout: &Layout{Geometry: g, Title: details.Title},
		cursor: PageCursor{
			PageHeight:   g.PageHeight,
			TopMargin:    g.topOfPage(),
			BottomMargin: g.BottomMargin,
		},
	}
	p.newPage()

	y := g.topOfPage()
	p.centered(details.Title, "B", headerSize, y)
	y += 8
	p.centered(details.Company+" - "+details.Location, "", bodySize, y)
	y += 12
	p.rule(y, 0.8)

	y += 15
	p.emit(Op{Kind: OpText, Text: "Job Details", X: g.Margin + 8, Y: y, Style: "B", Size: 14})
	y += 10
	for _, f := range detailFields(details) {
		p.emit(Op{Kind: OpText, Text: f.Label, X: g.Margin + 8, Y: y, Style: "B", Size: bodySize})
		offset := m.StringWidth(f.Label+" ", "", bodySize)
		p.emit(Op{Kind: OpText, Text: f.Value, X: g.Margin + 8 + offset, Y: y, Size: bodySize})
		y += 6
	}
	y += 8
	p.rule(y, 0.3)
	p.cursor.Y = y + 15

	x, width, lh := g.contentX(), g.contentWidth(), g.LineHeight
	for _, b := range blocks {
		p.breakIfFull()

		switch b.Kind {
		case KindHeader:
			p.cursor.Y += 12
			for _, line := range wrap(b.Text, width, p.measure("B", headerSize)) {
				p.text(KindHeader, line, x, "B", headerSize)
				p.cursor.Y += lh
			}
			p.cursor.Y += 6

		case KindParagraph:
			for _, line := range wrap(b.Text, width, p.measure("", bodySize)) {
				p.breakIfFull()
				p.text(KindParagraph, line, x, "", bodySize)
				p.cursor.Y += lh
			}
			p.cursor.Y += 8

		case KindBullet:
			lines := wrap(b.Text, width-12, p.measure("", bodySize))
			for i, line := range lines {
				p.breakIfFull()
				if i == 0 {
					p.emit(Op{Kind: OpText, Text: bulletMark, X: x, Y: p.cursor.Y, Size: bodySize})
				}
				p.text(KindBullet, line, x+10, "", bodySize)
				if i < len(lines)-1 {
					p.cursor.Y += lh
				}
			}
			p.cursor.Y += lh + 4
		}
	}

	p.rule(g.PageHeight-25, 0.3)
	footer := footerText(now)
	x = (g.PageWidth - m.StringWidth(footer, "I", footerSize)) / 2
	p.emit(Op{Kind: OpText, Text: footer, X: x, Y: g.PageHeight - 15, Style: "I", Size: footerSize, Gray: 80})

	return p.layout
}

func (p *planner) measure(style string, size float64) func(string) float64 {
	return func(s string) float64 { return p.m.StringWidth(s, style, size) }
}

// wrap breaks text into lines no wider than width, splitting on whitespace.
// A single word wider than the line is cut at character boundaries.
func wrap(text string, width float64, measure func(string) float64) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		for word != "" && measure(word) > width {
			cut := fitPrefix(word, width, measure)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// fitPrefix returns the byte length of the longest prefix of word that fits,
// never less than one character.
func fitPrefix(word string, width float64, measure func(string) float64) int {
	cut := 0
	for i := range word {
		if i > 0 && measure(word[:i]) > width {
			break
		}
		cut = i
	}
	if cut == 0 {
		for i := range word {
			if i > 0 {
				return i
			}
		}
		return len(word)
	}
	return cut
}
