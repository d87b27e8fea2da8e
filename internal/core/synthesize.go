package core

import (
	"regexp"
	"strings"
	"time"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// AnalysisStatus reports how much of an upload analysis succeeded. It is
// returned to the caller and never stored on the profile.
type AnalysisStatus string

const (
	// AnalysisComplete means a structured record was recovered.
	AnalysisComplete AnalysisStatus = "complete"

	// AnalysisPartial means the agent answered but only free text was usable.
	AnalysisPartial AnalysisStatus = "partial"

	// AnalysisFailed means the agent call failed; the profile is degraded.
	AnalysisFailed AnalysisStatus = "failed"
)

// DocumentAnalysis is the outcome of BuildDocumentProfile.
type DocumentAnalysis struct {
	Profile UploadedDocumentProfile
	Status  AnalysisStatus
}

// PRDInput identifies the PRD being synthesized.
type PRDInput struct {
	ID        string
	CreatedAt time.Time
	Request   GenerateRequest
}

// BuildDocumentProfile always yields a profile. A nil or unsuccessful result
// gives a degraded profile whose agent-derived fields are empty.
func BuildDocumentProfile(in DocumentInput, r *agent.Result, cfg SynthesisConfig) DocumentAnalysis {
	cfg = cfg.withDefaults()

	profile := UploadedDocumentProfile{
		ID:            in.ID,
		FileName:      in.FileName,
		DocumentTitle: FileStem(in.FileName),
		Sections:      []DocumentSection{},
		KPIFrameworks: []string{},
		UploadedAt:    in.UploadedAt,
		CustomTags:    []string{},
	}

	if r == nil || !r.Success() {
		return DocumentAnalysis{Profile: profile, Status: AnalysisFailed}
	}

	ext := agent.ExtractData(r)
	rec := ext.Record

	if title := strings.TrimSpace(rec.String("document_title")); title != "" {
		profile.DocumentTitle = title
	}
	profile.Sections = documentSections(rec.Slice("sections_extracted"))

	tags := rec.Map("suggested_tags")
	profile.SuggestedTags = SuggestedTags{
		Industry:       strings.TrimSpace(tags.String("industry")),
		ProductType:    strings.TrimSpace(tags.String("product_type")),
		Complexity:     strings.TrimSpace(tags.String("complexity")),
		StructuralType: strings.TrimSpace(tags.String("structural_type")),
	}

	if kpis := rec.Strings("kpi_frameworks"); kpis != nil {
		profile.KPIFrameworks = kpis
	}

	patterns := rec.Map("formatting_patterns")
	profile.FormattingPatterns = FormattingPatterns{
		Tone:  strings.TrimSpace(patterns.String("tone")),
		Style: strings.TrimSpace(patterns.String("style")),
	}

	profile.ContentSummary = strings.TrimSpace(rec.String("content_summary"))
	if profile.ContentSummary == "" {
		profile.ContentSummary = Truncate(strings.TrimSpace(agent.ExtractText(r)), cfg.SummaryMaxChars)
	}

	status := AnalysisComplete
	if !ext.Found {
		status = AnalysisPartial
	}
	return DocumentAnalysis{Profile: profile, Status: status}
}

func documentSections(items []any) []DocumentSection {
	sections := []DocumentSection{}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := agent.Record(m)
		heading := strings.TrimSpace(rec.String("heading"))
		if heading == "" {
			continue
		}
		level := rec.Int("level")
		if level < 1 {
			level = 1
		}
		sections = append(sections, DocumentSection{
			Heading: heading,
			Level:   level,
			Summary: strings.TrimSpace(rec.String("summary")),
		})
	}
	return sections
}

// BuildPRD turns a generation result into a PRD record.
//
// A structured record with a title, markdown body or section list wins.
// Otherwise free text of at least MinFallbackChars is mined for headings.
// Anything else is ErrUnparseableResponse. An unsuccessful result returns an
// *AgentError carrying the agent's message.
func BuildPRD(in PRDInput, r *agent.Result, cfg SynthesisConfig) (*GeneratedPRD, error) {
	cfg = cfg.withDefaults()

	if r == nil {
		return nil, &AgentError{Message: "Failed to generate PRD"}
	}
	if !r.Success() {
		msg := r.ErrorMessage()
		if msg == "" {
			msg = "Failed to generate PRD"
		}
		return nil, &AgentError{Message: msg}
	}

	ext := agent.ExtractData(r)
	text := agent.ExtractText(r)

	if ext.Found && (ext.Record.Truthy("prd_title") || ext.Record.Truthy("prd_markdown") || ext.Record.Truthy("sections")) {
		return structuredPRD(in, ext.Record, text, r.Artifacts(), cfg), nil
	}

	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) >= cfg.MinFallbackChars {
		return textPRD(in, text, r.Artifacts(), cfg), nil
	}

	return nil, ErrUnparseableResponse
}

func structuredPRD(in PRDInput, rec agent.Record, text string, artifacts []agent.ArtifactFile, cfg SynthesisConfig) *GeneratedPRD {
	req := in.Request
	meta := rec.Map("metadata")

	markdown := rec.String("prd_markdown")
	if strings.TrimSpace(markdown) == "" {
		markdown = text
	}

	emphasis := meta.Strings("emphasis_areas")
	if emphasis == nil {
		emphasis = []string{}
	}

	return &GeneratedPRD{
		ID:           in.ID,
		Title:        firstNonBlank(rec.String("prd_title"), req.ProductName, cfg.DefaultTitle),
		Industry:     firstNonBlank(rec.String("industry"), req.Industry),
		ProductType:  firstNonBlank(rec.String("product_type"), req.ProductType),
		DetailLevel:  firstNonBlank(rec.String("detail_level"), req.DetailLevel),
		MarkdownBody: markdown,
		Sections:     prdSections(rec.Slice("sections")),
		Metadata: PRDMetadata{
			WordCount:              meta.Int("word_count"),
			EmphasisAreas:          emphasis,
			ReferenceDocumentsUsed: meta.Int("reference_documents_used"),
		},
		Artifacts: orEmptyArtifacts(artifacts),
		CreatedAt: in.CreatedAt,
	}
}

func prdSections(items []any) []PRDSection {
	sections := []PRDSection{}
	for _, item := range items {
		var title, anchor string
		switch v := item.(type) {
		case string:
			title = v
		case map[string]any:
			rec := agent.Record(v)
			title = rec.String("title")
			anchor = strings.TrimSpace(rec.String("anchor"))
		}
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if anchor == "" {
			anchor = Anchor(title)
		}
		sections = append(sections, PRDSection{Title: title, Anchor: anchor})
	}
	return sections
}

var (
	titleLineRe   = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t\r]*$`)
	sectionLineRe = regexp.MustCompile(`(?m)^##[ \t]+(.+?)[ \t\r]*$`)
)

func textPRD(in PRDInput, text string, artifacts []agent.ArtifactFile, cfg SynthesisConfig) *GeneratedPRD {
	req := in.Request

	title := ""
	if m := titleLineRe.FindStringSubmatch(text); m != nil {
		title = m[1]
	}

	sections := []PRDSection{}
	for _, m := range sectionLineRe.FindAllStringSubmatch(text, -1) {
		heading := strings.TrimSpace(m[1])
		if heading == "" {
			continue
		}
		sections = append(sections, PRDSection{Title: heading, Anchor: Anchor(heading)})
	}

	emphasis := append([]string{}, req.Emphasis...)

	return &GeneratedPRD{
		ID:           in.ID,
		Title:        firstNonBlank(title, req.ProductName, cfg.DefaultTitle),
		Industry:     req.Industry,
		ProductType:  req.ProductType,
		DetailLevel:  req.DetailLevel,
		MarkdownBody: text,
		Sections:     sections,
		Metadata: PRDMetadata{
			WordCount:              WordCount(text),
			EmphasisAreas:          emphasis,
			ReferenceDocumentsUsed: 0,
		},
		Artifacts: orEmptyArtifacts(artifacts),
		CreatedAt: in.CreatedAt,
	}
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

var extensionRe = regexp.MustCompile(`\.[^/.]+$`)

// FileStem returns the file name without its last extension. It never
// returns an empty string.
func FileStem(name string) string {
	if stem := strings.TrimSpace(extensionRe.ReplaceAllString(name, "")); stem != "" {
		return stem
	}
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return "Untitled document"
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func orEmptyArtifacts(a []agent.ArtifactFile) []agent.ArtifactFile {
	if a == nil {
		return []agent.ArtifactFile{}
	}
	return a
}
