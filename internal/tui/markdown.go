package tui

import (
	"strings"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/markdown"
)

// PaintMarkdown renders md for the terminal. Headings are coloured by depth
// and list items are indented.
func PaintMarkdown(md string) string {
	lines := markdown.RenderLines(md)
	out := make([]string, 0, len(lines))

	for _, l := range lines {
		switch l.Kind {
		case markdown.Blank:
			out = append(out, "")
		case markdown.Heading:
			switch l.Level {
			case 1:
				out = append(out, h1Style.Render(l.Text()))
			case 2:
				out = append(out, h2Style.Render(l.Text()))
			default:
				out = append(out, h3Style.Render(l.Text()))
			}
		case markdown.Bullet:
			out = append(out, "  "+SpinnerStyle.Render("•")+" "+paintSpans(l.Spans))
		case markdown.Ordered:
			out = append(out, "  "+SpinnerStyle.Render(l.Marker+".")+" "+paintSpans(l.Spans))
		case markdown.Quote:
			out = append(out, quoteStyle.Render("│ "+l.Text()))
		default:
			out = append(out, paintSpans(l.Spans))
		}
	}
	return strings.Join(out, "\n")
}

func paintSpans(spans []markdown.Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch {
		case s.Bold:
			b.WriteString(boldStyle.Render(s.Text))
		case s.Italic:
			b.WriteString(emStyle.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
