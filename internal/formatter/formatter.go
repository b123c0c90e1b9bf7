// Package formatter turns generated job description text into sectioned HTML.
//
// The generator answers in a loose markdown dialect: bold or numbered lines
// introduce sections, hyphen or bullet lines are list items, everything else
// is prose. Body applies a fixed sequence of line patterns to that dialect.
// Input that matches none of them falls through as plain paragraphs.
package formatter

import (
	"html"
	"regexp"
	"strings"
)

var (
	numberedHeading = regexp.MustCompile(`^(\d+)\.\s*\*\*(.*?)\*\*(.*)$`)
	boldHeading     = regexp.MustCompile(`^\*\*(.*?)\*\*(.*)$`)
	markdownHeading = regexp.MustCompile(`^#{1,6}\s+(.*?)\s*#*$`)
	horizontalRule  = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	bulletLine      = regexp.MustCompile(`^(?:[-•]\s*|\*\s+)(.*)$`)
	inlineBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Body converts generated text into heading, list and paragraph markup.
// Adjacent list items share one <ul>; blank lines between items do not split the list.
func Body(text string) string {
	var b strings.Builder
	inList := false

	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || horizontalRule.MatchString(line) {
			continue
		}

		if m := numberedHeading.FindStringSubmatch(line); m != nil {
			closeList()
			writeHeading(&b, m[1]+". "+m[2], m[3])
			continue
		}
		if m := boldHeading.FindStringSubmatch(line); m != nil {
			closeList()
			writeHeading(&b, m[1], m[2])
			continue
		}
		if m := markdownHeading.FindStringSubmatch(line); m != nil {
			closeList()
			writeHeading(&b, strings.Trim(m[1], "* "), "")
			continue
		}
		if m := bulletLine.FindStringSubmatch(line); m != nil {
			item := inline(m[1])
			if item == "" {
				continue
			}
			if !inList {
				b.WriteString(`<ul class="jd-list">` + "\n")
				inList = true
			}
			b.WriteString("<li>" + item + "</li>\n")
			continue
		}

		closeList()
		writeParagraph(&b, line)
	}
	closeList()

	return b.String()
}

// writeHeading emits the heading and, when the line continues past the bold
// marker, the remainder as a paragraph of its own.
func writeHeading(b *strings.Builder, title, rest string) {
	title = strings.TrimSpace(title)
	if title != "" {
		b.WriteString(`<h3 class="jd-heading">` + inline(title) + "</h3>\n")
	}
	writeParagraph(b, strings.TrimLeft(rest, " :-–—"))
}

func writeParagraph(b *strings.Builder, text string) {
	if p := inline(text); p != "" {
		b.WriteString(`<p class="jd-paragraph">` + p + "</p>\n")
	}
}

// inline escapes text and converts **bold** spans.
func inline(text string) string {
	escaped := html.EscapeString(strings.TrimSpace(text))
	return inlineBold.ReplaceAllString(escaped, "<strong>$1</strong>")
}
