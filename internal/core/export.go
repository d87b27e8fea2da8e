package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SectionPlaceholder stands in for section bodies that were never captured.
const SectionPlaceholder = "*(Section content was not captured in Markdown when this PRD was generated.)*"

// Anchor derives a URL-safe heading anchor made of [a-z0-9-]: lower-case,
// accents folded, each space turned into a hyphen and everything else
// dropped. Runs of hyphens are kept as they are, so "KPIs & Metrics" becomes
// "kpis--metrics" and "Q&A" becomes "qa".
func Anchor(title string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(title))) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// ReconstructMarkdown rebuilds a Markdown document from a PRD's metadata and
// section list. Used when the agent returned no Markdown body.
func ReconstructMarkdown(p GeneratedPRD) string {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = DefaultSynthesisConfig().DefaultTitle
	}
	lines := []string{"# " + title, ""}

	var meta []string
	if p.Industry != "" {
		meta = append(meta, "**Industry:** "+p.Industry)
	}
	if p.ProductType != "" {
		meta = append(meta, "**Product Type:** "+p.ProductType)
	}
	if p.DetailLevel != "" {
		meta = append(meta, "**Detail Level:** "+p.DetailLevel)
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, " | "), "")
	}

	if len(p.Metadata.EmphasisAreas) > 0 {
		lines = append(lines, "**Emphasis Areas:** "+strings.Join(p.Metadata.EmphasisAreas, ", "), "")
	}

	if len(p.Sections) > 0 {
		lines = append(lines, "## Table of Contents", "")
		for i, s := range p.Sections {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, s.Title))
		}
		lines = append(lines, "")

		for _, s := range p.Sections {
			lines = append(lines, "## "+s.Title, "", SectionPlaceholder, "")
		}
	}

	return strings.Join(lines, "\n")
}

// DownloadableMarkdown returns the Markdown body, or a reconstruction when
// the body is blank. The result is never empty.
func DownloadableMarkdown(p GeneratedPRD) string {
	if strings.TrimSpace(p.MarkdownBody) != "" {
		return p.MarkdownBody
	}
	return ReconstructMarkdown(p)
}

var fileNameUnsafeRe = regexp.MustCompile(`[\s/\\]+`)

// ExportFileName derives a file name from a PRD title: whitespace runs become
// hyphens, the result is lower-cased and ext is appended. A blank title
// gives "prd".
func ExportFileName(title, ext string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "prd"
	}
	base = strings.ToLower(fileNameUnsafeRe.ReplaceAllString(base, "-"))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + ext
}

// ExportMarkdown returns the file name and content of a PRD's Markdown export.
func ExportMarkdown(p *GeneratedPRD) (name, content string, err error) {
	if p == nil {
		return "", "", ErrEmptyExport
	}
	return ExportFileName(p.Title, ".md"), DownloadableMarkdown(*p), nil
}
