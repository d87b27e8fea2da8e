package core

import (
	"fmt"
	"strings"
)

// IngestionSystemPrompt instructs a locally-driven model to behave like the
// hosted document ingestion agent.
const IngestionSystemPrompt = `You are a PRD analyst. You receive a Product Requirements Document and output ONLY a JSON object describing its structure. No explanations, no commentary.

## OUTPUT SCHEMA

{
  "document_title": "Title of the document",
  "sections_extracted": [
    {"heading": "Section heading", "level": 1, "summary": "One or two sentence summary"}
  ],
  "suggested_tags": {
    "industry": "Technology | Healthcare | Finance | E-commerce | Education | SaaS | Manufacturing | Retail | Other",
    "product_type": "B2B | B2C | Internal Tool",
    "complexity": "Low | Medium | High",
    "structural_type": "e.g. Feature Spec, Platform PRD, Technical PRD"
  },
  "kpi_frameworks": ["North Star Metric", "AARRR", "HEART"],
  "formatting_patterns": {"tone": "e.g. formal", "style": "e.g. structured with tables"},
  "content_summary": "A short paragraph summarising the document"
}

## RULES

- "level" is the heading depth: 1 for top-level sections, 2 for subsections.
- List every KPI or measurement framework the document relies on. Use [] if none.
- Start your response with { and end with }.`

// GenerationSystemPrompt instructs a locally-driven model to behave like the
// hosted PRD generation agent.
const GenerationSystemPrompt = `You are a senior product manager. You write Product Requirements Documents in Markdown and return them inside a JSON object. No explanations before or after the JSON.

## OUTPUT SCHEMA

{
  "prd_title": "Product name - Product Requirements Document",
  "prd_markdown": "# Title\n\n## Executive Summary\n...",
  "sections": [{"title": "Executive Summary", "anchor": "executive-summary"}],
  "metadata": {
    "word_count": 1200,
    "emphasis_areas": ["KPIs & Metrics"],
    "reference_documents_used": 0
  },
  "industry": "Technology",
  "product_type": "B2B",
  "detail_level": "Standard"
}

## RULES

- prd_markdown starts with a single "# " title line followed by "## " section headings.
- "sections" lists every "## " heading of prd_markdown, in order.
- Give emphasised areas their own section with concrete, measurable content.
- Match the depth to the detail level: Lean is brief, Comprehensive covers risks, rollout and open questions.
- When reference documents are provided, follow their structure and report how many you used.
- Escape newlines inside JSON strings. Start your response with { and end with }.`

// BuildIngestionPrompt renders the message sent to the ingestion agent after
// a document has been added to the knowledge base. excerpt may be empty.
func BuildIngestionPrompt(fileName, excerpt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this uploaded PRD document: %s. ", fileName)
	b.WriteString("Extract structural patterns, sections, metadata tags, and KPI frameworks.")
	if excerpt = strings.TrimSpace(excerpt); excerpt != "" {
		b.WriteString("\n\n## DOCUMENT CONTENT\n\n")
		b.WriteString(excerpt)
	}
	return b.String()
}

// BuildGenerationPrompt renders the message sent to the generation agent.
// references holds optional excerpts of knowledge base documents.
func BuildGenerationPrompt(req GenerateRequest, references []string) string {
	problem := strings.TrimSpace(req.ProblemStatement)
	if problem == "" {
		problem = "Not specified"
	}
	emphasis := "Standard coverage"
	if len(req.Emphasis) > 0 {
		emphasis = strings.Join(req.Emphasis, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s PRD for a %s product in the %s industry.\n", req.DetailLevel, req.ProductType, req.Industry)
	fmt.Fprintf(&b, "Product Name: %s\n", req.ProductName)
	fmt.Fprintf(&b, "Problem Statement: %s\n", problem)
	fmt.Fprintf(&b, "Emphasize these sections: %s\n", emphasis)
	b.WriteString("Output the PRD in well-structured Markdown format with clear section headings.")

	for i, ref := range references {
		if ref = strings.TrimSpace(ref); ref == "" {
			continue
		}
		fmt.Fprintf(&b, "\n\n## REFERENCE DOCUMENT %d\n\n%s", i+1, ref)
	}
	return b.String()
}
