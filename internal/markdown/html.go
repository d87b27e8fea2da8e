// Package markdown renders the Markdown dialect produced by PRD agents. Two
// renderers are provided: ToHTML for previews and exports, and RenderLines
// for line-by-line display surfaces such as terminals.
package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	fencedCodeRe = regexp.MustCompile("```(\\w*)\\n([\\s\\S]*?)```")
	tableRe      = regexp.MustCompile(`(?m)^(\|.+\|)\n(\|[-:| \t]+\|)(?:\n|$)((?:\|.+\|\n?)*)`)
	h3Re         = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Re         = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Re         = regexp.MustCompile(`(?m)^# (.+)$`)
	quoteRe      = regexp.MustCompile(`(?m)^> (.+)$`)
	ruleRe       = regexp.MustCompile(`(?m)^---$`)
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.+?)\*`)
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	orderedRe    = regexp.MustCompile(`(?m)^(\d+)\. (.+)$`)
	bulletRe     = regexp.MustCompile(`(?m)^[-*] (.+)$`)
	blankRunRe   = regexp.MustCompile(`\n{2,}`)
	blockTagRe   = regexp.MustCompile(`^<(h[1-6]|blockquote|hr|li|ul|ol|table|thead|tbody|tr|th|td|pre|div|p)[\s>/]`)
	placeholder  = regexp.MustCompile(`<pre data-block="(\d+)"></pre>`)
)

var codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// ToHTML converts Markdown to an HTML fragment. Rules apply in a fixed order:
// fenced code, tables, headings, blockquotes, rules, bold, italic, inline
// code, list items, paragraphs, then blank-line collapsing.
//
// Only fenced code is escaped. Other text is passed through as written, so the
// output must only be shown for trusted agent content.
func ToHTML(md string) string {
	s := strings.ReplaceAll(md, "\r\n", "\n")

	var blocks []string
	s = fencedCodeRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := fencedCodeRe.FindStringSubmatch(m)
		blocks = append(blocks, codeBlock(sub[1], sub[2]))
		return fmt.Sprintf(`<pre data-block="%d"></pre>`, len(blocks)-1)
	})

	s = replaceSubmatches(tableRe, s, func(g []string) string {
		out := renderTable(g[1], g[3])
		if strings.HasSuffix(g[0], "\n") {
			out += "\n"
		}
		return out
	})

	s = h3Re.ReplaceAllString(s, "<h3>$1</h3>")
	s = h2Re.ReplaceAllString(s, "<h2>$1</h2>")
	s = h1Re.ReplaceAllString(s, "<h1>$1</h1>")
	s = quoteRe.ReplaceAllString(s, "<blockquote>$1</blockquote>")
	s = ruleRe.ReplaceAllString(s, "<hr>")
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = inlineCodeRe.ReplaceAllString(s, "<code>$1</code>")
	s = orderedRe.ReplaceAllString(s, `<li class="ordered" value="$1">$2</li>`)
	s = bulletRe.ReplaceAllString(s, `<li class="bullet">$1</li>`)
	s = wrapParagraphs(s)
	s = blankRunRe.ReplaceAllString(s, "\n")

	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(placeholder.FindStringSubmatch(m)[1])
		if err != nil || n >= len(blocks) {
			return m
		}
		return blocks[n]
	})
}

func codeBlock(lang, code string) string {
	if lang == "" {
		return "<pre><code>" + codeEscaper.Replace(code) + "</code></pre>"
	}
	return `<pre><code class="language-` + lang + `">` + codeEscaper.Replace(code) + "</code></pre>"
}

func renderTable(header, body string) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, cell := range splitRow(header) {
		b.WriteString("<th>" + cell + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range strings.Split(strings.TrimSpace(body), "\n") {
		if strings.TrimSpace(row) == "" {
			continue
		}
		b.WriteString("<tr>")
		for _, cell := range splitRow(row) {
			b.WriteString("<td>" + cell + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// splitRow drops the empty cells produced by the outer pipes and trims the
// rest. Empty interior cells are kept so columns stay aligned.
func splitRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	cells := strings.Split(row, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func wrapParagraphs(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		if blockTagRe.MatchString(line) {
			continue
		}
		lines[i] = "<p>" + line + "</p>"
	}
	return strings.Join(lines, "\n")
}

func replaceSubmatches(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	idx := re.FindAllStringSubmatchIndex(s, -1)
	if idx == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, loc := range idx {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[loc[2*g]:loc[2*g+1]]
			}
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

var entityUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

// StripTags removes HTML tags and decodes the entities ToHTML produces.
func StripTags(html string) string {
	return entityUnescaper.Replace(tagRe.ReplaceAllString(html, ""))
}
