// Package document exports a rendered job description as a paginated PDF or
// an HTML print preview.
//
// Both outputs share one pipeline. Extract re-reads rendered HTML into an
// ordered list of ContentBlocks; Plan lays those blocks onto A4 pages and
// Render draws the plan with fpdf, while Preview projects the same blocks into
// a single scrollable HTML fragment.
package document

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Kind string

const (
	KindHeader    Kind = "header"
	KindParagraph Kind = "paragraph"
	KindBullet    Kind = "bullet"
)

// ContentBlock is one unit of exportable content. Blocks are kept in the
// order they appear in the source document.
type ContentBlock struct {
	Kind Kind   `json:"type"`
	Text string `json:"text"`
}

func Header(text string) ContentBlock    { return ContentBlock{Kind: KindHeader, Text: text} }
func Paragraph(text string) ContentBlock { return ContentBlock{Kind: KindParagraph, Text: text} }
func Bullet(text string) ContentBlock    { return ContentBlock{Kind: KindBullet, Text: text} }

// ExtractOptions controls which sections Extract keeps.
type ExtractOptions struct {
	// ExcludedHeadings drops a whole section when its heading contains one of
	// these labels, compared case-insensitively. A genuine section with that
	// title is dropped too.
	ExcludedHeadings []string
}

// DefaultExtractOptions excludes the application section, which the exported
// header already covers.
var DefaultExtractOptions = ExtractOptions{ExcludedHeadings: []string{"How to Apply"}}

func (o ExtractOptions) excluded(heading string) bool {
	lower := strings.ToLower(heading)
	for _, label := range o.ExcludedHeadings {
		if label != "" && strings.Contains(lower, strings.ToLower(label)) {
			return true
		}
	}
	return false
}

var (
	leadingNumber = regexp.MustCompile(`^\d+\.\s*`)
	leadingArrow  = regexp.MustCompile(`^\s*[►▶]\s*`)
)

const sectionHeadings = "h2, h3"

// Extract walks rendered HTML in document order. Every h2/h3 starts a section:
// the heading becomes a header block and the following siblings up to the
// next heading contribute one paragraph block per <p> and one bullet block per
// list item. Content before the first heading is not part of any section.
func Extract(rendered string, opts ExtractOptions) ([]ContentBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return nil, err
	}
	doc.Find("script, style").Remove()

	var blocks []ContentBlock
	doc.Find(sectionHeadings).Each(func(_ int, h *goquery.Selection) {
		heading := cleanHeading(normalizeText(h.Text()))
		if heading == "" || opts.excluded(heading) {
			return
		}
		blocks = append(blocks, Header(heading))

		h.NextUntil(sectionHeadings).Each(func(_ int, s *goquery.Selection) {
			switch goquery.NodeName(s) {
			case "p":
				if text := normalizeText(s.Text()); text != "" {
					blocks = append(blocks, Paragraph(text))
				}
			case "ul", "ol":
				s.Find("li").Each(func(_ int, li *goquery.Selection) {
					if text := normalizeText(li.Text()); text != "" {
						blocks = append(blocks, Bullet(text))
					}
				})
			}
		})
	})

	return blocks, nil
}

func cleanHeading(text string) string {
	text = leadingNumber.ReplaceAllString(text, "")
	text = leadingArrow.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// normalizeText trims and collapses runs of whitespace to single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
