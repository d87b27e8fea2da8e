// Package store keeps the session's document library, PRD history and
// activity log. Every change replaces whole collections, so a snapshot handed
// out earlier never changes underneath its holder.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
)

// ErrNotFound is returned when an id matches nothing.
var ErrNotFound = errors.New("not found")

// Snapshot is an immutable view of the session. Callers must not modify the
// slices it holds.
type Snapshot struct {
	Documents []core.UploadedDocumentProfile `json:"documents"`
	PRDs      []core.GeneratedPRD            `json:"prds"`
	Activity  []core.ActivityEntry           `json:"activity"`
}

// Persister saves and restores snapshots.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Session is the single logical store of one user session. Transitions are
// serialised; reads are lock-free.
type Session struct {
	mu        sync.Mutex
	current   atomic.Pointer[Snapshot]
	persister Persister
}

// NewSession creates an empty session. persister may be nil.
func NewSession(persister Persister) *Session {
	s := &Session{persister: persister}
	s.current.Store(emptySnapshot())
	return s
}

// Open creates a session and restores the persisted snapshot, if any.
func Open(ctx context.Context, persister Persister) (*Session, error) {
	s := NewSession(persister)
	if persister == nil {
		return s, nil
	}
	snap, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if snap != nil {
		s.current.Store(normalize(*snap))
	}
	return s, nil
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Documents: []core.UploadedDocumentProfile{},
		PRDs:      []core.GeneratedPRD{},
		Activity:  []core.ActivityEntry{},
	}
}

func normalize(snap Snapshot) *Snapshot {
	if snap.Documents == nil {
		snap.Documents = []core.UploadedDocumentProfile{}
	}
	if snap.PRDs == nil {
		snap.PRDs = []core.GeneratedPRD{}
	}
	if snap.Activity == nil {
		snap.Activity = []core.ActivityEntry{}
	}
	return &snap
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return *s.current.Load()
}

// Document looks up a document by id.
func (s *Session) Document(id string) (core.UploadedDocumentProfile, error) {
	for _, d := range s.Snapshot().Documents {
		if d.ID == id {
			return d, nil
		}
	}
	return core.UploadedDocumentProfile{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
}

// PRD looks up a PRD by id.
func (s *Session) PRD(id string) (core.GeneratedPRD, error) {
	for _, p := range s.Snapshot().PRDs {
		if p.ID == id {
			return p, nil
		}
	}
	return core.GeneratedPRD{}, fmt.Errorf("PRD %s: %w", id, ErrNotFound)
}

// commit builds the next snapshot from the current one, persists it and
// swaps it in. If next or the persister fails, the state is left unchanged.
func (s *Session) commit(ctx context.Context, next func(cur Snapshot) (Snapshot, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := next(*s.current.Load())
	if err != nil {
		return err
	}
	if s.persister != nil {
		if err := s.persister.Save(ctx, snap); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
	}
	s.current.Store(normalize(snap))
	return nil
}

// AddDocument prepends doc to the library and logs the upload.
func (s *Session) AddDocument(ctx context.Context, doc core.UploadedDocumentProfile) error {
	return s.commit(ctx, func(cur Snapshot) (Snapshot, error) {
		if containsID(cur.Documents, doc.ID, docID) {
			return cur, fmt.Errorf("document %s already exists", doc.ID)
		}
		cur.Documents = prepend(cur.Documents, doc)
		cur.Activity = prepend(cur.Activity, core.UploadActivity(doc))
		return cur, nil
	})
}

// ToggleStar flips the starred flag of a document and returns the new value.
func (s *Session) ToggleStar(ctx context.Context, id string) (core.UploadedDocumentProfile, error) {
	return s.updateDocument(ctx, id, func(d core.UploadedDocumentProfile) core.UploadedDocumentProfile {
		d.Starred = !d.Starred
		return d
	})
}

// AddCustomTag appends tag to a document's custom tags unless present.
func (s *Session) AddCustomTag(ctx context.Context, id, tag string) (core.UploadedDocumentProfile, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return core.UploadedDocumentProfile{}, &core.ValidationError{Field: "tag", Message: "tag cannot be empty"}
	}
	return s.updateDocument(ctx, id, func(d core.UploadedDocumentProfile) core.UploadedDocumentProfile {
		if !slices.Contains(d.CustomTags, tag) {
			d.CustomTags = append(slices.Clone(d.CustomTags), tag)
		}
		return d
	})
}

// RemoveCustomTag removes tag from a document's custom tags.
func (s *Session) RemoveCustomTag(ctx context.Context, id, tag string) (core.UploadedDocumentProfile, error) {
	return s.updateDocument(ctx, id, func(d core.UploadedDocumentProfile) core.UploadedDocumentProfile {
		d.CustomTags = slices.DeleteFunc(slices.Clone(d.CustomTags), func(t string) bool { return t == tag })
		return d
	})
}

func (s *Session) updateDocument(ctx context.Context, id string, fn func(core.UploadedDocumentProfile) core.UploadedDocumentProfile) (core.UploadedDocumentProfile, error) {
	var updated core.UploadedDocumentProfile
	err := s.commit(ctx, func(cur Snapshot) (Snapshot, error) {
		docs, found := mapMatch(cur.Documents, id, docID, func(d core.UploadedDocumentProfile) core.UploadedDocumentProfile {
			updated = fn(d)
			return updated
		})
		if !found {
			return cur, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		cur.Documents = docs
		return cur, nil
	})
	return updated, err
}

// DeleteDocument removes a document and returns it.
func (s *Session) DeleteDocument(ctx context.Context, id string) (core.UploadedDocumentProfile, error) {
	var removed core.UploadedDocumentProfile
	err := s.commit(ctx, func(cur Snapshot) (Snapshot, error) {
		docs, gone, found := filterOut(cur.Documents, id, docID)
		if !found {
			return cur, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		removed = gone
		cur.Documents = docs
		return cur, nil
	})
	return removed, err
}

// AddPRD prepends p to the history and logs the generation.
func (s *Session) AddPRD(ctx context.Context, p core.GeneratedPRD) error {
	return s.commit(ctx, func(cur Snapshot) (Snapshot, error) {
		if containsID(cur.PRDs, p.ID, prdID) {
			return cur, fmt.Errorf("PRD %s already exists", p.ID)
		}
		cur.PRDs = prepend(cur.PRDs, p)
		cur.Activity = prepend(cur.Activity, core.GenerationActivity(p))
		return cur, nil
	})
}

// DeletePRD removes a PRD and returns it.
func (s *Session) DeletePRD(ctx context.Context, id string) (core.GeneratedPRD, error) {
	var removed core.GeneratedPRD
	err := s.commit(ctx, func(cur Snapshot) (Snapshot, error) {
		prds, gone, found := filterOut(cur.PRDs, id, prdID)
		if !found {
			return cur, fmt.Errorf("PRD %s: %w", id, ErrNotFound)
		}
		removed = gone
		cur.PRDs = prds
		return cur, nil
	})
	return removed, err
}

// Replace swaps in a whole snapshot, for example sample data.
func (s *Session) Replace(ctx context.Context, snap Snapshot) error {
	return s.commit(ctx, func(Snapshot) (Snapshot, error) {
		return Snapshot{
			Documents: slices.Clone(snap.Documents),
			PRDs:      slices.Clone(snap.PRDs),
			Activity:  slices.Clone(snap.Activity),
		}, nil
	})
}

// Clear empties the session.
func (s *Session) Clear(ctx context.Context) error {
	return s.Replace(ctx, *emptySnapshot())
}

func docID(d core.UploadedDocumentProfile) string { return d.ID }

func prdID(p core.GeneratedPRD) string { return p.ID }
