package core

import (
	"time"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// DocumentSection is one heading found in an uploaded reference document.
type DocumentSection struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"` // 1 or greater
	Summary string `json:"summary"`
}

// SuggestedTags are the classification tags proposed by the ingestion agent.
type SuggestedTags struct {
	Industry       string `json:"industry"`
	ProductType    string `json:"product_type"`
	Complexity     string `json:"complexity"`
	StructuralType string `json:"structural_type"`
}

// FormattingPatterns describes the writing style of a reference document.
type FormattingPatterns struct {
	Tone  string `json:"tone"`
	Style string `json:"style"`
}

// UploadedDocumentProfile is the library entry for one uploaded document.
// Everything except Starred and CustomTags is fixed at creation.
type UploadedDocumentProfile struct {
	ID                 string             `json:"id"`
	FileName           string             `json:"file_name"`
	DocumentTitle      string             `json:"document_title"`
	Sections           []DocumentSection  `json:"sections_extracted"`
	SuggestedTags      SuggestedTags      `json:"suggested_tags"`
	KPIFrameworks      []string           `json:"kpi_frameworks"`
	FormattingPatterns FormattingPatterns `json:"formatting_patterns"`
	ContentSummary     string             `json:"content_summary"`
	UploadedAt         time.Time          `json:"uploaded_at"`
	Starred            bool               `json:"starred"`
	CustomTags         []string           `json:"custom_tags"`
}

// PRDSection is one entry in a generated PRD's table of contents.
type PRDSection struct {
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// PRDMetadata carries generation statistics.
type PRDMetadata struct {
	WordCount              int      `json:"word_count"`
	EmphasisAreas          []string `json:"emphasis_areas"`
	ReferenceDocumentsUsed int      `json:"reference_documents_used"`
}

// GeneratedPRD is a PRD produced by the generation agent. Immutable once
// created; it can only be deleted.
type GeneratedPRD struct {
	ID           string               `json:"id"`
	Title        string               `json:"prd_title"`
	Industry     string               `json:"industry"`
	ProductType  string               `json:"product_type"`
	DetailLevel  string               `json:"detail_level"`
	MarkdownBody string               `json:"prd_markdown"`
	Sections     []PRDSection         `json:"sections"`
	Metadata     PRDMetadata          `json:"metadata"`
	Artifacts    []agent.ArtifactFile `json:"artifacts"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ActivityKind distinguishes activity log entries.
type ActivityKind string

const (
	ActivityUpload     ActivityKind = "upload"
	ActivityGeneration ActivityKind = "generation"
)

// ActivityEntry is one line of the newest-first activity log.
type ActivityEntry struct {
	Kind      ActivityKind `json:"type"`
	Title     string       `json:"title"`
	Timestamp time.Time    `json:"timestamp"`
}

// GenerateRequest holds the user's PRD generation form.
type GenerateRequest struct {
	ProductName      string   `json:"product_name" yaml:"product_name"`
	Industry         string   `json:"industry" yaml:"industry"`
	ProductType      string   `json:"product_type" yaml:"product_type"`
	DetailLevel      string   `json:"detail_level" yaml:"detail_level"`
	ProblemStatement string   `json:"problem_statement" yaml:"problem_statement"`
	Emphasis         []string `json:"emphasis" yaml:"emphasis"`
}

// DefaultGenerateRequest returns an empty form with the default choices.
func DefaultGenerateRequest() GenerateRequest {
	return GenerateRequest{
		ProductType: "B2B",
		DetailLevel: "Standard",
	}
}

// DocumentInput is what the synthesizer needs to know about an uploaded file.
type DocumentInput struct {
	ID         string
	FileName   string
	UploadedAt time.Time
}

// SynthesisConfig holds the tunable thresholds of record synthesis.
type SynthesisConfig struct {
	// SummaryMaxChars caps a summary taken from free text.
	SummaryMaxChars int `yaml:"summary_max_chars"`

	// MinFallbackChars is the shortest free-text answer accepted as a PRD.
	MinFallbackChars int `yaml:"min_fallback_chars"`

	// DefaultTitle names PRDs with no recoverable title.
	DefaultTitle string `yaml:"default_title"`
}

// DefaultSynthesisConfig returns the standard thresholds.
func DefaultSynthesisConfig() SynthesisConfig {
	return SynthesisConfig{
		SummaryMaxChars:  500,
		MinFallbackChars: 50,
		DefaultTitle:     "Untitled PRD",
	}
}

func (c SynthesisConfig) withDefaults() SynthesisConfig {
	d := DefaultSynthesisConfig()
	if c.SummaryMaxChars <= 0 {
		c.SummaryMaxChars = d.SummaryMaxChars
	}
	if c.MinFallbackChars <= 0 {
		c.MinFallbackChars = d.MinFallbackChars
	}
	if c.DefaultTitle == "" {
		c.DefaultTitle = d.DefaultTitle
	}
	return c
}
