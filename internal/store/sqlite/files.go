package sqlite

import (
	"context"
	"fmt"
	"time"
)

// StoredFile is a document held by the local knowledge base.
type StoredFile struct {
	KnowledgeBaseID string
	Name            string
	MIME            string
	Size            int64
	Content         string
	UploadedAt      time.Time
}

// PutFile inserts or replaces a knowledge base file.
func (s *Store) PutFile(ctx context.Context, f StoredFile) error {
	query := `
		INSERT INTO kb_files (kb_id, name, mime, size, content, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(kb_id, name) DO UPDATE SET
			mime = excluded.mime,
			size = excluded.size,
			content = excluded.content,
			uploaded_at = excluded.uploaded_at`

	_, err := s.db.ExecContext(ctx, query,
		f.KnowledgeBaseID, f.Name, f.MIME, f.Size, f.Content, f.UploadedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("store file %s: %w", f.Name, err)
	}
	return nil
}

// DeleteFiles removes the named files from a knowledge base. Missing names
// are ignored.
func (s *Store) DeleteFiles(ctx context.Context, kbID string, names []string) error {
	for _, name := range names {
		if _, err := s.db.ExecContext(ctx,
			"DELETE FROM kb_files WHERE kb_id = ? AND name = ?", kbID, name); err != nil {
			return fmt.Errorf("delete file %s: %w", name, err)
		}
	}
	return nil
}

// Files lists a knowledge base's files, newest first.
func (s *Store) Files(ctx context.Context, kbID string) ([]StoredFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kb_id, name, mime, size, content, uploaded_at
		FROM kb_files WHERE kb_id = ?
		ORDER BY uploaded_at DESC, name`, kbID)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var out []StoredFile
	for rows.Next() {
		var f StoredFile
		var uploadedAt int64
		if err := rows.Scan(&f.KnowledgeBaseID, &f.Name, &f.MIME, &f.Size, &f.Content, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		f.UploadedAt = time.UnixMilli(uploadedAt).UTC()
		out = append(out, f)
	}
	return out, rows.Err()
}
