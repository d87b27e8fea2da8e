// Package output renders generated PRDs into downloadable files.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
)

// Adapter is the interface all export formats must implement.
type Adapter interface {
	// Name returns the format identifier.
	Name() string

	// Extension returns the file extension, including the dot.
	Extension() string

	// ContentType returns the MIME type served for the format.
	ContentType() string

	// Render produces the file content for p.
	Render(p core.GeneratedPRD) ([]byte, error)
}

// Config configures where exports are written.
type Config struct {
	// OutputDir receives the exported files.
	OutputDir string

	// DryRun previews without writing files.
	DryRun bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{OutputDir: "."}
}

// Written describes one exported file.
type Written struct {
	Format string
	Path   string
	Bytes  int
}

// Formats lists the supported format names.
var Formats = []string{"md", "html", "json"}

// ForFormat returns the adapter for a format name.
func ForFormat(name string) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "md", "markdown":
		return MarkdownAdapter{}, nil
	case "html":
		return HTMLAdapter{}, nil
	case "json":
		return JSONAdapter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (choose from %s)", name, strings.Join(Formats, ", "))
	}
}

// Write renders p with a and writes it to cfg.OutputDir under a name derived
// from the PRD title.
func Write(a Adapter, p core.GeneratedPRD, cfg Config) (*Written, error) {
	content, err := a.Render(p)
	if err != nil {
		return nil, err
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, core.ExportFileName(p.Title, a.Extension()))
	w := &Written{Format: a.Name(), Path: path, Bytes: len(content)}

	if cfg.DryRun {
		fmt.Printf("[dry-run] Would write %s (%d bytes)\n", path, len(content))
		return w, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	return w, nil
}
