package knowledge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/store/sqlite"
)

// LocalBase keeps extracted document text in the session database.
type LocalBase struct {
	store *sqlite.Store
	now   func() time.Time
}

// NewLocalBase creates a knowledge base backed by db.
func NewLocalBase(db *sqlite.Store) *LocalBase {
	return &LocalBase{store: db, now: time.Now}
}

// UploadAndTrain extracts the file's text and stores it.
func (b *LocalBase) UploadAndTrain(ctx context.Context, kbID string, f File) error {
	text, err := ExtractText(f)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text could be extracted from %s", f.Name)
	}
	return b.store.PutFile(ctx, sqlite.StoredFile{
		KnowledgeBaseID: kbID,
		Name:            f.Name,
		MIME:            f.MIME,
		Size:            f.Size,
		Content:         text,
		UploadedAt:      b.now().UTC(),
	})
}

// DeleteDocuments removes the named files.
func (b *LocalBase) DeleteDocuments(ctx context.Context, kbID string, names []string) error {
	return b.store.DeleteFiles(ctx, kbID, names)
}

// Excerpt returns the first maxChars characters of a stored file.
func (b *LocalBase) Excerpt(ctx context.Context, kbID, name string, maxChars int) (string, error) {
	files, err := b.store.Files(ctx, kbID)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if f.Name == name {
			return core.Truncate(strings.TrimSpace(f.Content), maxChars), nil
		}
	}
	return "", fmt.Errorf("document %s: %w", name, ErrDocumentNotFound)
}
