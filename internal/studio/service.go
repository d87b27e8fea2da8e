// Package studio runs the upload and generation workflows: validate, call the
// knowledge base and agents, synthesize a record and commit it to the
// session.
package studio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/knowledge"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/store"
)

// AgentCaller sends a message to a remote agent.
type AgentCaller interface {
	Call(ctx context.Context, message, agentID string) (*agent.Result, error)
}

// Config holds the workflow settings.
type Config struct {
	KnowledgeBaseID   string
	IngestionAgentID  string
	GenerationAgentID string
	Synthesis         core.SynthesisConfig

	// ExcerptChars caps the document text sent to the ingestion agent.
	ExcerptChars int

	// ReferenceChars caps each reference excerpt sent to the generation agent.
	ReferenceChars int

	// MaxReferences caps how many library documents are quoted.
	MaxReferences int
}

// DefaultConfig returns the hosted deployment's identifiers and standard
// limits.
func DefaultConfig() Config {
	return Config{
		KnowledgeBaseID:   core.DefaultKnowledgeBaseID,
		IngestionAgentID:  core.DefaultIngestionAgentID,
		GenerationAgentID: core.DefaultGenerationAgentID,
		Synthesis:         core.DefaultSynthesisConfig(),
		ExcerptChars:      12000,
		ReferenceChars:    2000,
		MaxReferences:     3,
	}
}

// KnowledgeBaseError reports a failed knowledge base upload.
type KnowledgeBaseError struct {
	File string
	Err  error
}

func (e *KnowledgeBaseError) Error() string {
	return fmt.Sprintf("failed to upload %s to knowledge base: %v", e.File, e.Err)
}

func (e *KnowledgeBaseError) Unwrap() error {
	return e.Err
}

// Service coordinates one session's workflows.
type Service struct {
	session   *store.Session
	kb        knowledge.Base
	validator *knowledge.Validator
	agent     AgentCaller
	cfg       Config
	log       *slog.Logger

	newID func() string
	now   func() time.Time
}

// New creates a service. log may be nil.
func New(session *store.Session, kb knowledge.Base, validator *knowledge.Validator, caller AgentCaller, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if validator == nil {
		validator = knowledge.NewValidator(0)
	}
	return &Service{
		session:   session,
		kb:        kb,
		validator: validator,
		agent:     caller,
		cfg:       cfg,
		log:       log,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Session returns the underlying session store.
func (s *Service) Session() *store.Session {
	return s.session
}

// UploadOutcome reports a committed upload.
type UploadOutcome struct {
	Document  core.UploadedDocumentProfile `json:"document"`
	Status    core.AnalysisStatus          `json:"status"`
	SessionID string                       `json:"session_id,omitempty"`
}

// Upload validates the file at path, adds it to the knowledge base, asks the
// ingestion agent to profile it and commits the profile.
//
// A validation failure touches nothing. A knowledge base failure returns an
// error and commits nothing. An agent failure still commits a degraded
// profile and reports AnalysisFailed.
func (s *Service) Upload(ctx context.Context, path string) (*UploadOutcome, error) {
	v := s.validator.Validate(path)
	if !v.Valid {
		return nil, &core.ValidationError{Field: "file", Message: v.Error}
	}
	f := v.File

	log := s.log.With("file", f.Name, "size", f.Size)
	log.Info("uploading document")

	if err := s.kb.UploadAndTrain(ctx, s.cfg.KnowledgeBaseID, f); err != nil {
		log.Error("knowledge base upload failed", "error", err)
		return nil, &KnowledgeBaseError{File: f.Name, Err: err}
	}

	excerpt := knowledge.Excerpt(ctx, s.kb, s.cfg.KnowledgeBaseID, f.Name, s.cfg.ExcerptChars)
	prompt := core.BuildIngestionPrompt(f.Name, excerpt)

	r, err := s.agent.Call(ctx, prompt, s.cfg.IngestionAgentID)
	if err != nil {
		log.Warn("ingestion agent call failed", "error", err)
		r = nil
	} else if !r.Success() {
		log.Warn("ingestion agent reported failure", "error", r.ErrorMessage())
	}

	analysis := core.BuildDocumentProfile(core.DocumentInput{
		ID:         s.newID(),
		FileName:   f.Name,
		UploadedAt: s.now().UTC(),
	}, r, s.cfg.Synthesis)

	if err := s.session.AddDocument(ctx, analysis.Profile); err != nil {
		return nil, err
	}
	log.Info("document added", "id", analysis.Profile.ID, "status", analysis.Status)

	return &UploadOutcome{
		Document:  analysis.Profile,
		Status:    analysis.Status,
		SessionID: r.SessionID(),
	}, nil
}

// GenerateOutcome reports a committed PRD.
type GenerateOutcome struct {
	PRD       core.GeneratedPRD `json:"prd"`
	SessionID string            `json:"session_id,omitempty"`

	// Usage is the token usage the agent reported, if any.
	Usage *agent.Usage `json:"usage,omitempty"`

	// PromptChars and ResponseChars size the exchange for estimates when
	// the agent reports no usage.
	PromptChars   int `json:"prompt_chars"`
	ResponseChars int `json:"response_chars"`
}

// Generate validates req, asks the generation agent for a PRD and commits it.
func (s *Service) Generate(ctx context.Context, req core.GenerateRequest) (*GenerateOutcome, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	refs := s.references(ctx)
	prompt := core.BuildGenerationPrompt(req, refs)

	log := s.log.With("product", req.ProductName, "industry", req.Industry)
	log.Info("generating PRD", "references", len(refs))

	r, err := s.agent.Call(ctx, prompt, s.cfg.GenerationAgentID)
	if err != nil {
		log.Error("generation agent call failed", "error", err)
		return nil, &core.AgentError{Message: err.Error()}
	}

	p, err := core.BuildPRD(core.PRDInput{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Request:   req,
	}, r, s.cfg.Synthesis)
	if err != nil {
		log.Warn("no PRD recovered", "error", err)
		return nil, err
	}

	if err := s.session.AddPRD(ctx, *p); err != nil {
		return nil, err
	}
	log.Info("PRD added", "id", p.ID, "title", p.Title, "words", p.Metadata.WordCount)

	out := &GenerateOutcome{
		PRD:           *p,
		SessionID:     r.SessionID(),
		PromptChars:   len(prompt),
		ResponseChars: len(r.Raw()),
	}
	if u, ok := r.Usage(); ok {
		out.Usage = &u
	}
	return out, nil
}

// references quotes up to MaxReferences library documents, starred ones
// first, when the knowledge base can supply their text.
func (s *Service) references(ctx context.Context) []string {
	if s.cfg.MaxReferences <= 0 {
		return nil
	}
	docs := s.session.Snapshot().Documents
	ordered := append(core.FilterDocuments(docs, core.DocumentFilter{StarredOnly: true}), docs...)

	var names []string
	seen := map[string]bool{}
	for _, d := range ordered {
		if seen[d.FileName] {
			continue
		}
		seen[d.FileName] = true
		names = append(names, d.FileName)
		if len(names) == s.cfg.MaxReferences {
			break
		}
	}
	return knowledge.References(ctx, s.kb, s.cfg.KnowledgeBaseID, names, s.cfg.ReferenceChars)
}
