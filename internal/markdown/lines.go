package markdown

import (
	"regexp"
	"strings"
)

// LineKind classifies a rendered line.
type LineKind int

const (
	Blank LineKind = iota
	Heading
	Bullet
	Ordered
	Quote
	Paragraph
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Heading:
		return "heading"
	case Bullet:
		return "bullet"
	case Ordered:
		return "ordered"
	case Quote:
		return "quote"
	default:
		return "paragraph"
	}
}

// MarshalText lets LineKind appear as a string in JSON.
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Span is a run of inline text.
type Span struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Line is one source line classified for display.
type Line struct {
	Kind LineKind `json:"kind"`

	// Level is the heading depth (1-3) for Heading lines.
	Level int `json:"level,omitempty"`

	// Marker is the item number for Ordered lines.
	Marker string `json:"marker,omitempty"`

	Spans []Span `json:"spans"`
}

// Text returns the line's text without inline formatting.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

var orderedPrefixRe = regexp.MustCompile(`^(\d+)\.\s`)

// RenderLines classifies each line of md. Headings and quotes keep their text
// as written; list items and paragraphs get inline bold and italic spans.
// Tables and fenced code are not recognised and come out as paragraphs.
func RenderLines(md string) []Line {
	src := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")
	lines := make([]Line, 0, len(src))

	for _, line := range src {
		switch {
		case strings.HasPrefix(line, "### "):
			lines = append(lines, Line{Kind: Heading, Level: 3, Spans: plain(line[4:])})
		case strings.HasPrefix(line, "## "):
			lines = append(lines, Line{Kind: Heading, Level: 2, Spans: plain(line[3:])})
		case strings.HasPrefix(line, "# "):
			lines = append(lines, Line{Kind: Heading, Level: 1, Spans: plain(line[2:])})
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			lines = append(lines, Line{Kind: Bullet, Spans: Inline(line[2:])})
		case orderedPrefixRe.MatchString(line):
			m := orderedPrefixRe.FindStringSubmatch(line)
			lines = append(lines, Line{Kind: Ordered, Marker: m[1], Spans: Inline(line[len(m[0]):])})
		case strings.HasPrefix(line, "> "):
			lines = append(lines, Line{Kind: Quote, Spans: plain(line[2:])})
		case strings.TrimSpace(line) == "":
			lines = append(lines, Line{Kind: Blank, Spans: []Span{}})
		default:
			lines = append(lines, Line{Kind: Paragraph, Spans: Inline(line)})
		}
	}
	return lines
}

func plain(s string) []Span {
	return []Span{{Text: s}}
}

var inlineBoldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Inline splits text into bold, italic and plain spans. Bold is matched
// first; italic is matched inside the remaining plain runs.
func Inline(text string) []Span {
	var spans []Span
	last := 0
	for _, loc := range inlineBoldRe.FindAllStringSubmatchIndex(text, -1) {
		spans = appendItalic(spans, text[last:loc[0]])
		if inner := text[loc[2]:loc[3]]; inner != "" {
			spans = append(spans, Span{Text: inner, Bold: true})
		}
		last = loc[1]
	}
	spans = appendItalic(spans, text[last:])
	if spans == nil {
		spans = []Span{}
	}
	return spans
}

func appendItalic(spans []Span, text string) []Span {
	last := 0
	for _, loc := range italicRe.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[2]:loc[3]], Italic: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
