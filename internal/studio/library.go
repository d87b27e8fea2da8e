package studio

import (
	"context"
	"time"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/store"
)

// Documents returns the library filtered by f.
func (s *Service) Documents(f core.DocumentFilter) []core.UploadedDocumentProfile {
	return core.FilterDocuments(s.session.Snapshot().Documents, f)
}

// Document looks up one document.
func (s *Service) Document(id string) (core.UploadedDocumentProfile, error) {
	return s.session.Document(id)
}

// ToggleStar flips a document's starred flag.
func (s *Service) ToggleStar(ctx context.Context, id string) (core.UploadedDocumentProfile, error) {
	return s.session.ToggleStar(ctx, id)
}

// AddTag adds a custom tag to a document.
func (s *Service) AddTag(ctx context.Context, id, tag string) (core.UploadedDocumentProfile, error) {
	return s.session.AddCustomTag(ctx, id, tag)
}

// RemoveTag removes a custom tag from a document.
func (s *Service) RemoveTag(ctx context.Context, id, tag string) (core.UploadedDocumentProfile, error) {
	return s.session.RemoveCustomTag(ctx, id, tag)
}

// DeleteDocument removes a document from the knowledge base and the library.
// Knowledge base errors are logged and do not stop the local delete.
func (s *Service) DeleteDocument(ctx context.Context, id string) (core.UploadedDocumentProfile, error) {
	doc, err := s.session.Document(id)
	if err != nil {
		return core.UploadedDocumentProfile{}, err
	}
	if err := s.kb.DeleteDocuments(ctx, s.cfg.KnowledgeBaseID, []string{doc.FileName}); err != nil {
		s.log.Warn("knowledge base delete failed", "file", doc.FileName, "error", err)
	}
	return s.session.DeleteDocument(ctx, id)
}

// PRDs returns the generated PRDs, newest first.
func (s *Service) PRDs() []core.GeneratedPRD {
	return s.session.Snapshot().PRDs
}

// PRD looks up one PRD.
func (s *Service) PRD(id string) (core.GeneratedPRD, error) {
	return s.session.PRD(id)
}

// DeletePRD removes a PRD.
func (s *Service) DeletePRD(ctx context.Context, id string) (core.GeneratedPRD, error) {
	return s.session.DeletePRD(ctx, id)
}

// ExportMarkdown returns the file name and content of a PRD's markdown
// download.
func (s *Service) ExportMarkdown(id string) (name, content string, err error) {
	p, err := s.session.PRD(id)
	if err != nil {
		return "", "", err
	}
	return core.ExportMarkdown(&p)
}

// Activity returns the activity log, newest first.
func (s *Service) Activity() []core.ActivityEntry {
	return s.session.Snapshot().Activity
}

// Dashboard summarises the session.
func (s *Service) Dashboard() core.Dashboard {
	snap := s.session.Snapshot()
	return core.Summarize(snap.Documents, snap.PRDs, snap.Activity)
}

// LoadSample replaces the session with the demonstration library.
func (s *Service) LoadSample(ctx context.Context) error {
	docs, prds, activity := core.SampleData(s.now().UTC().Truncate(time.Second))
	return s.session.Replace(ctx, store.Snapshot{Documents: docs, PRDs: prds, Activity: activity})
}

// Clear empties the session.
func (s *Service) Clear(ctx context.Context) error {
	return s.session.Clear(ctx)
}
