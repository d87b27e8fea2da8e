package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func result(t *testing.T, v any) *agent.Result {
	t.Helper()
	r, err := agent.FromValue(v)
	require.NoError(t, err)
	return r
}

func TestBuildDocumentProfileStructured(t *testing.T) {
	r := result(t, map[string]any{
		"success": true,
		"response": map[string]any{"result": map[string]any{
			"document_title": "Payments Revamp",
			"sections_extracted": []any{
				map[string]any{"heading": "Overview", "level": float64(1), "summary": "Why"},
				map[string]any{"heading": "Details", "level": float64(0)},
				map[string]any{"summary": "no heading"},
				"not an object",
			},
			"suggested_tags":      map[string]any{"industry": "Finance", "product_type": "B2B", "complexity": "High", "structural_type": "Platform PRD"},
			"kpi_frameworks":      []any{"AARRR", "HEART", "AARRR"},
			"formatting_patterns": map[string]any{"tone": "formal", "style": "tables"},
			"content_summary":     "A summary.",
		}},
	})

	got := BuildDocumentProfile(DocumentInput{ID: "d1", FileName: "payments.pdf", UploadedAt: fixedTime}, r, DefaultSynthesisConfig())

	assert.Equal(t, AnalysisComplete, got.Status)
	p := got.Profile
	assert.Equal(t, "d1", p.ID)
	assert.Equal(t, "Payments Revamp", p.DocumentTitle)
	assert.Equal(t, []DocumentSection{
		{Heading: "Overview", Level: 1, Summary: "Why"},
		{Heading: "Details", Level: 1},
	}, p.Sections)
	assert.Equal(t, SuggestedTags{Industry: "Finance", ProductType: "B2B", Complexity: "High", StructuralType: "Platform PRD"}, p.SuggestedTags)
	assert.Equal(t, []string{"AARRR", "HEART"}, p.KPIFrameworks)
	assert.Equal(t, FormattingPatterns{Tone: "formal", Style: "tables"}, p.FormattingPatterns)
	assert.Equal(t, "A summary.", p.ContentSummary)
	assert.Equal(t, fixedTime, p.UploadedAt)
	assert.False(t, p.Starred)
	assert.Empty(t, p.CustomTags)
}

func TestBuildDocumentProfileDegraded(t *testing.T) {
	tests := []struct {
		name string
		r    *agent.Result
	}{
		{"nil result", nil},
		{"unsuccessful", agent.NewResult([]byte(`{"success":false,"error":"agent offline","response":{"result":{"document_title":"ignored"}}}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDocumentProfile(DocumentInput{ID: "d2", FileName: "spec.pdf", UploadedAt: fixedTime}, tt.r, DefaultSynthesisConfig())

			assert.Equal(t, AnalysisFailed, got.Status)
			assert.Equal(t, "spec", got.Profile.DocumentTitle)
			assert.Empty(t, got.Profile.Sections)
			assert.Empty(t, got.Profile.KPIFrameworks)
			assert.Empty(t, got.Profile.ContentSummary)
			assert.Equal(t, SuggestedTags{}, got.Profile.SuggestedTags)
		})
	}
}

func TestBuildDocumentProfileTextFallback(t *testing.T) {
	long := strings.Repeat("é", 700)
	r := result(t, map[string]any{"success": true, "response": map[string]any{"result": long}})

	got := BuildDocumentProfile(DocumentInput{ID: "d3", FileName: "notes.final.txt"}, r, DefaultSynthesisConfig())

	assert.Equal(t, AnalysisPartial, got.Status)
	assert.Equal(t, "notes.final", got.Profile.DocumentTitle)
	assert.Equal(t, 500, len([]rune(got.Profile.ContentSummary)))

	cfg := DefaultSynthesisConfig()
	cfg.SummaryMaxChars = 10
	got = BuildDocumentProfile(DocumentInput{ID: "d4", FileName: "notes.txt"}, r, cfg)
	assert.Equal(t, strings.Repeat("é", 10), got.Profile.ContentSummary)
}

func TestBuildDocumentProfileEmptyAnswer(t *testing.T) {
	for _, payload := range []string{
		`{"success":true,"response":{}}`,
		`{"success":true,"response":{"result":null,"message":""}}`,
	} {
		r := agent.NewResult([]byte(payload))
		got := BuildDocumentProfile(DocumentInput{ID: "d5", FileName: "empty.md"}, r, DefaultSynthesisConfig())

		assert.Equal(t, AnalysisPartial, got.Status, payload)
		assert.Equal(t, "empty", got.Profile.DocumentTitle, payload)
		assert.Empty(t, got.Profile.ContentSummary, payload)
	}
}

func widgetTrackerText() string {
	// 120 whitespace-delimited tokens: 8 in headings, 112 in the bodies.
	body := strings.TrimSpace(strings.Repeat("word ", 56))
	return "# Widget Tracker PRD\n\n## Goals\n\n" + body + "\n\n## Risks\n\n" + body + "\n"
}

func TestBuildPRDFromFreeText(t *testing.T) {
	text := widgetTrackerText()
	require.Equal(t, 120, WordCount(text))

	r := result(t, map[string]any{"success": true, "response": map[string]any{"result": text}})
	req := GenerateRequest{ProductName: "Widget", Industry: "Retail", ProductType: "B2C", DetailLevel: "Lean", Emphasis: []string{"Timeline"}}

	prd, err := BuildPRD(PRDInput{ID: "p1", CreatedAt: fixedTime, Request: req}, r, DefaultSynthesisConfig())
	require.NoError(t, err)

	assert.Equal(t, "Widget Tracker PRD", prd.Title)
	assert.Equal(t, []PRDSection{{Title: "Goals", Anchor: "goals"}, {Title: "Risks", Anchor: "risks"}}, prd.Sections)
	assert.Equal(t, 120, prd.Metadata.WordCount)
	assert.Equal(t, []string{"Timeline"}, prd.Metadata.EmphasisAreas)
	assert.Equal(t, 0, prd.Metadata.ReferenceDocumentsUsed)
	assert.Equal(t, text, prd.MarkdownBody)
	assert.Equal(t, "Retail", prd.Industry)
	assert.Equal(t, "B2C", prd.ProductType)
	assert.Equal(t, "Lean", prd.DetailLevel)
	assert.Equal(t, fixedTime, prd.CreatedAt)
}

func TestBuildPRDFreeTextTitleFallbacks(t *testing.T) {
	noHeading := strings.Repeat("plain text without headings ", 4)

	r := result(t, map[string]any{"success": true, "response": map[string]any{"result": noHeading}})
	prd, err := BuildPRD(PRDInput{Request: GenerateRequest{ProductName: "  Atlas "}}, r, DefaultSynthesisConfig())
	require.NoError(t, err)
	assert.Equal(t, "Atlas", prd.Title)

	prd, err = BuildPRD(PRDInput{}, r, DefaultSynthesisConfig())
	require.NoError(t, err)
	assert.Equal(t, "Untitled PRD", prd.Title)
}

func TestBuildPRDStructured(t *testing.T) {
	r := result(t, map[string]any{
		"success": true,
		"response": map[string]any{"result": map[string]any{
			"prd_title":    "Atlas PRD",
			"prd_markdown": "# Atlas PRD\n\n## KPIs & Metrics\n",
			"sections": []any{
				map[string]any{"title": "KPIs & Metrics"},
				map[string]any{"title": "Scope", "anchor": "custom-scope"},
				map[string]any{"anchor": "orphan"},
			},
			"metadata":     map[string]any{"word_count": float64(640), "emphasis_areas": []any{"Timeline"}, "reference_documents_used": float64(3)},
			"industry":     "Finance",
			"detail_level": "",
		}},
		"module_outputs": map[string]any{"artifact_files": []any{
			map[string]any{"file_url": "https://x/atlas.pdf", "name": "atlas.pdf", "format_type": "pdf"},
		}},
	})
	req := GenerateRequest{ProductName: "Atlas", Industry: "Technology", ProductType: "B2B", DetailLevel: "Comprehensive"}

	prd, err := BuildPRD(PRDInput{ID: "p2", CreatedAt: fixedTime, Request: req}, r, DefaultSynthesisConfig())
	require.NoError(t, err)

	assert.Equal(t, "Atlas PRD", prd.Title)
	assert.Equal(t, "Finance", prd.Industry)
	assert.Equal(t, "B2B", prd.ProductType)
	assert.Equal(t, "Comprehensive", prd.DetailLevel)
	assert.Equal(t, []PRDSection{
		{Title: "KPIs & Metrics", Anchor: "kpis--metrics"},
		{Title: "Scope", Anchor: "custom-scope"},
	}, prd.Sections)
	assert.Equal(t, PRDMetadata{WordCount: 640, EmphasisAreas: []string{"Timeline"}, ReferenceDocumentsUsed: 3}, prd.Metadata)
	assert.Equal(t, []agent.ArtifactFile{{FileURL: "https://x/atlas.pdf", Name: "atlas.pdf", FormatType: "pdf"}}, prd.Artifacts)
}

func TestBuildPRDStructuredDefaults(t *testing.T) {
	text := `{"sections": [], "metadata": {"word_count": -5}}`
	r := result(t, map[string]any{"success": true, "response": map[string]any{"result": text}})

	prd, err := BuildPRD(PRDInput{Request: GenerateRequest{ProductName: "Orbit", Industry: "SaaS"}}, r, DefaultSynthesisConfig())
	require.NoError(t, err)

	assert.Equal(t, "Orbit", prd.Title)
	assert.Equal(t, "SaaS", prd.Industry)
	assert.Equal(t, text, prd.MarkdownBody, "body falls back to the text answer")
	assert.Equal(t, 0, prd.Metadata.WordCount)
	assert.Empty(t, prd.Sections)
	assert.NotNil(t, prd.Metadata.EmphasisAreas)
}

func TestBuildPRDFailures(t *testing.T) {
	t.Run("agent failure surfaces message verbatim", func(t *testing.T) {
		r := agent.NewResult([]byte(`{"success":false,"error":"Rate limit exceeded (429)"}`))
		_, err := BuildPRD(PRDInput{}, r, DefaultSynthesisConfig())
		var agentErr *AgentError
		require.ErrorAs(t, err, &agentErr)
		assert.Equal(t, "Rate limit exceeded (429)", err.Error())
	})

	t.Run("short text is unparseable", func(t *testing.T) {
		r := result(t, map[string]any{"success": true, "response": map[string]any{"result": "Too short."}})
		_, err := BuildPRD(PRDInput{}, r, DefaultSynthesisConfig())
		assert.ErrorIs(t, err, ErrUnparseableResponse)
	})

	t.Run("record without PRD fields and no text", func(t *testing.T) {
		r := result(t, map[string]any{"success": true, "response": map[string]any{"result": map[string]any{"industry": "Retail"}}})
		_, err := BuildPRD(PRDInput{}, r, DefaultSynthesisConfig())
		assert.ErrorIs(t, err, ErrUnparseableResponse)
	})

	t.Run("threshold is configurable", func(t *testing.T) {
		r := result(t, map[string]any{"success": true, "response": map[string]any{"result": "# Tiny\n\n## One"}})
		cfg := DefaultSynthesisConfig()
		cfg.MinFallbackChars = 5
		prd, err := BuildPRD(PRDInput{}, r, cfg)
		require.NoError(t, err)
		assert.Equal(t, "Tiny", prd.Title)
	})
}

func TestFileStem(t *testing.T) {
	tests := map[string]string{
		"report.pdf":       "report",
		"report.final.pdf": "report.final",
		"README":           "README",
		".env":             ".env",
		"":                 "Untitled document",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileStem(in), in)
	}
}
