package output

import (
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/markdown"
)

// MarkdownAdapter exports the PRD's Markdown body, reconstructed from its
// section list when the body is blank.
type MarkdownAdapter struct{}

func (MarkdownAdapter) Name() string        { return "md" }
func (MarkdownAdapter) Extension() string   { return ".md" }
func (MarkdownAdapter) ContentType() string { return "text/markdown; charset=utf-8" }

func (MarkdownAdapter) Render(p core.GeneratedPRD) ([]byte, error) {
	_, content, err := core.ExportMarkdown(&p)
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// HTMLAdapter exports a standalone HTML page.
type HTMLAdapter struct{}

func (HTMLAdapter) Name() string        { return "html" }
func (HTMLAdapter) Extension() string   { return ".html" }
func (HTMLAdapter) ContentType() string { return "text/html; charset=utf-8" }

func (HTMLAdapter) Render(p core.GeneratedPRD) ([]byte, error) {
	fragment := markdown.ToHTML(core.DownloadableMarkdown(p))
	return []byte(markdown.Document(p.Title, fragment)), nil
}
