package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type memoryPersister struct {
	saved   []Snapshot
	loaded  *Snapshot
	failErr error
}

func (m *memoryPersister) Load(context.Context) (*Snapshot, error) {
	return m.loaded, nil
}

func (m *memoryPersister) Save(_ context.Context, snap Snapshot) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.saved = append(m.saved, snap)
	return nil
}

func doc(id string) core.UploadedDocumentProfile {
	return core.UploadedDocumentProfile{
		ID:            id,
		FileName:      id + ".pdf",
		DocumentTitle: "Doc " + id,
		UploadedAt:    fixedTime,
		CustomTags:    []string{},
	}
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := NewSession(nil)
	snap := s.Snapshot()
	assert.Empty(t, snap.Documents)
	assert.NotNil(t, snap.Documents)
	assert.Empty(t, snap.PRDs)
	assert.Empty(t, snap.Activity)
}

func TestAddDocumentPrependsAndLogs(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)

	require.NoError(t, s.AddDocument(ctx, doc("a")))
	require.NoError(t, s.AddDocument(ctx, doc("b")))

	snap := s.Snapshot()
	require.Len(t, snap.Documents, 2)
	assert.Equal(t, "b", snap.Documents[0].ID)
	assert.Equal(t, "a", snap.Documents[1].ID)

	require.Len(t, snap.Activity, 2)
	assert.Equal(t, core.ActivityUpload, snap.Activity[0].Kind)
	assert.Equal(t, "Doc b", snap.Activity[0].Title)
}

func TestAddDocumentRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	require.NoError(t, s.AddDocument(ctx, doc("a")))
	assert.Error(t, s.AddDocument(ctx, doc("a")))
	assert.Len(t, s.Snapshot().Documents, 1)
}

func TestSnapshotsAreNotMutatedByLaterTransitions(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	require.NoError(t, s.AddDocument(ctx, doc("a")))

	before := s.Snapshot()
	_, err := s.ToggleStar(ctx, "a")
	require.NoError(t, err)
	_, err = s.AddCustomTag(ctx, "a", "mobile")
	require.NoError(t, err)
	require.NoError(t, s.AddDocument(ctx, doc("b")))

	assert.Len(t, before.Documents, 1)
	assert.False(t, before.Documents[0].Starred)
	assert.Empty(t, before.Documents[0].CustomTags)

	after := s.Snapshot()
	assert.True(t, after.Documents[1].Starred)
	assert.Equal(t, []string{"mobile"}, after.Documents[1].CustomTags)
}

func TestToggleStar(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	require.NoError(t, s.AddDocument(ctx, doc("a")))

	d, err := s.ToggleStar(ctx, "a")
	require.NoError(t, err)
	assert.True(t, d.Starred)

	d, err = s.ToggleStar(ctx, "a")
	require.NoError(t, err)
	assert.False(t, d.Starred)

	_, err = s.ToggleStar(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomTags(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	require.NoError(t, s.AddDocument(ctx, doc("a")))

	_, err := s.AddCustomTag(ctx, "a", "  mobile ")
	require.NoError(t, err)
	d, err := s.AddCustomTag(ctx, "a", "mobile")
	require.NoError(t, err)
	assert.Equal(t, []string{"mobile"}, d.CustomTags)

	_, err = s.AddCustomTag(ctx, "a", "   ")
	assert.True(t, core.IsValidation(err))

	d, err = s.RemoveCustomTag(ctx, "a", "mobile")
	require.NoError(t, err)
	assert.Empty(t, d.CustomTags)

	d, err = s.RemoveCustomTag(ctx, "a", "never-added")
	require.NoError(t, err)
	assert.Empty(t, d.CustomTags)
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	require.NoError(t, s.AddDocument(ctx, doc("a")))
	require.NoError(t, s.AddDocument(ctx, doc("b")))

	removed, err := s.DeleteDocument(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)

	snap := s.Snapshot()
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, "b", snap.Documents[0].ID)
	assert.Len(t, snap.Activity, 2, "deleting does not touch the activity log")

	_, err = s.DeleteDocument(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPRDLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	p := core.GeneratedPRD{ID: "p1", Title: "Fleet Tracker", CreatedAt: fixedTime}

	require.NoError(t, s.AddPRD(ctx, p))
	assert.Error(t, s.AddPRD(ctx, p))

	got, err := s.PRD("p1")
	require.NoError(t, err)
	assert.Equal(t, "Fleet Tracker", got.Title)

	snap := s.Snapshot()
	require.Len(t, snap.Activity, 1)
	assert.Equal(t, core.ActivityGeneration, snap.Activity[0].Kind)
	assert.Equal(t, "Fleet Tracker", snap.Activity[0].Title)

	_, err = s.DeletePRD(ctx, "p1")
	require.NoError(t, err)
	_, err = s.PRD("p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	p := &memoryPersister{}
	s := NewSession(p)
	require.NoError(t, s.AddDocument(ctx, doc("a")))
	require.Len(t, p.saved, 1)

	p.failErr = errors.New("disk full")
	err := s.AddDocument(ctx, doc("b"))
	require.Error(t, err)
	assert.ErrorIs(t, err, p.failErr)

	_, err = s.ToggleStar(ctx, "a")
	require.Error(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Documents, 1)
	assert.False(t, snap.Documents[0].Starred)
}

func TestOpenRestoresSnapshot(t *testing.T) {
	docs, prds, activity := core.SampleData(fixedTime)
	p := &memoryPersister{loaded: &Snapshot{Documents: docs, PRDs: prds, Activity: activity}}

	s, err := Open(context.Background(), p)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Len(t, snap.Documents, 3)
	assert.Len(t, snap.PRDs, 1)
	assert.Len(t, snap.Activity, 4)
}

func TestReplaceAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	docs, prds, activity := core.SampleData(fixedTime)

	require.NoError(t, s.Replace(ctx, Snapshot{Documents: docs, PRDs: prds, Activity: activity}))
	d, err := s.Document("sample-doc-claims")
	require.NoError(t, err)
	assert.Equal(t, "Healthcare", d.SuggestedTags.Industry)

	require.NoError(t, s.Clear(ctx))
	snap := s.Snapshot()
	assert.Empty(t, snap.Documents)
	assert.Empty(t, snap.PRDs)
	assert.Empty(t, snap.Activity)
}
