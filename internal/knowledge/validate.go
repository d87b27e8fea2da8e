// Package knowledge validates reference documents and stores them in a
// knowledge base that the generation agent can draw on.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes is the default upload size limit.
const DefaultMaxBytes int64 = 10 << 20

// Supported content types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// UnsupportedTypeMessage is shown for files that are not PDF, DOCX or text.
const UnsupportedTypeMessage = "Unsupported file type. Use PDF, DOCX, or TXT."

var extensionTypes = map[string]string{
	".pdf":      MIMEPDF,
	".docx":     MIMEDOCX,
	".txt":      MIMEText,
	".md":       MIMEText,
	".markdown": MIMEText,
}

// File is a validated file ready for upload.
type File struct {
	Name string
	Path string
	Size int64
	MIME string
}

// Validation is the outcome of checking a file before upload.
type Validation struct {
	Valid bool
	Error string
	File  File
}

// Validator checks extension, size and content type.
type Validator struct {
	MaxBytes int64
}

// NewValidator creates a validator with the given size limit. A limit of
// zero or less uses DefaultMaxBytes.
func NewValidator(maxBytes int64) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Validator{MaxBytes: maxBytes}
}

// Validate inspects the file at path. Failures are reported in the returned
// Validation rather than as an error, so callers can show the message as is.
func (v *Validator) Validate(path string) Validation {
	name := filepath.Base(path)
	want, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return Validation{Error: UnsupportedTypeMessage}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Validation{Error: fmt.Sprintf("Cannot read %s: %v", name, err)}
	}
	if info.IsDir() {
		return Validation{Error: fmt.Sprintf("%s is a directory", name)}
	}
	if info.Size() == 0 {
		return Validation{Error: fmt.Sprintf("%s is empty", name)}
	}
	limit := v.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	if info.Size() > limit {
		return Validation{Error: fmt.Sprintf("%s is %s; the limit is %s",
			name, humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(limit)))}
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Validation{Error: fmt.Sprintf("Cannot read %s: %v", name, err)}
	}
	if !matches(mt, want) {
		return Validation{Error: fmt.Sprintf("%s does not look like a %s file (detected %s)",
			name, strings.ToUpper(strings.TrimPrefix(filepath.Ext(name), ".")), mt.String())}
	}

	return Validation{
		Valid: true,
		File:  File{Name: name, Path: path, Size: info.Size(), MIME: want},
	}
}

func matches(mt *mimetype.MIME, want string) bool {
	switch want {
	case MIMEDOCX:
		// Some writers produce DOCX files that only sniff as generic zip.
		return mt.Is(MIMEDOCX) || mt.Is("application/zip")
	case MIMEText:
		for m := mt; m != nil; m = m.Parent() {
			if m.Is(MIMEText) {
				return true
			}
		}
		return false
	default:
		return mt.Is(want)
	}
}
