package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrDocumentNotFound is returned when a knowledge base has no such document.
var ErrDocumentNotFound = errors.New("document not found in knowledge base")

// Base is a knowledge base the generation agent retrieves from.
type Base interface {
	// UploadAndTrain stores f in the knowledge base and indexes it.
	UploadAndTrain(ctx context.Context, kbID string, f File) error

	// DeleteDocuments removes the named documents.
	DeleteDocuments(ctx context.Context, kbID string, names []string) error
}

// Excerpter is implemented by bases that can return document text locally.
type Excerpter interface {
	Excerpt(ctx context.Context, kbID, name string, maxChars int) (string, error)
}

// Excerpt returns up to maxChars of a document's text when base supports
// it, and "" otherwise.
func Excerpt(ctx context.Context, base Base, kbID, name string, maxChars int) string {
	ex, ok := base.(Excerpter)
	if !ok {
		return ""
	}
	text, err := ex.Excerpt(ctx, kbID, name, maxChars)
	if err != nil {
		return ""
	}
	return text
}

// References builds short reference notes for the generation prompt, one per
// named document that has text available.
func References(ctx context.Context, base Base, kbID string, names []string, maxChars int) []string {
	var refs []string
	for _, name := range names {
		text := strings.TrimSpace(Excerpt(ctx, base, kbID, name, maxChars))
		if text == "" {
			continue
		}
		refs = append(refs, fmt.Sprintf("%s:\n%s", name, text))
	}
	return refs
}
