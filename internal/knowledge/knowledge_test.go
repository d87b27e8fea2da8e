package knowledge

import (
	"archive/zip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/store/sqlite"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeDOCX(t *testing.T, name string, paragraphs ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	zw := zip.NewWriter(out)
	ct, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`)
	require.NoError(t, err)

	body, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		b.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	b.WriteString(`</w:body></w:document>`)
	_, err = io.WriteString(body, b.String())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestValidate(t *testing.T) {
	v := NewValidator(0)

	t.Run("text file", func(t *testing.T) {
		got := v.Validate(writeFile(t, "notes.txt", "Problem statement\nGoals\n"))
		require.True(t, got.Valid, got.Error)
		assert.Equal(t, "notes.txt", got.File.Name)
		assert.Equal(t, MIMEText, got.File.MIME)
		assert.EqualValues(t, len("Problem statement\nGoals\n"), got.File.Size)
	})

	t.Run("markdown file", func(t *testing.T) {
		got := v.Validate(writeFile(t, "prd.MD", "# Checkout\n\n## Goals\n"))
		require.True(t, got.Valid, got.Error)
		assert.Equal(t, MIMEText, got.File.MIME)
	})

	t.Run("docx file", func(t *testing.T) {
		got := v.Validate(writeDOCX(t, "claims.docx", "Background"))
		require.True(t, got.Valid, got.Error)
		assert.Equal(t, MIMEDOCX, got.File.MIME)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		got := v.Validate(writeFile(t, "image.png", "not really"))
		assert.False(t, got.Valid)
		assert.Equal(t, UnsupportedTypeMessage, got.Error)
	})

	t.Run("missing file", func(t *testing.T) {
		got := v.Validate(filepath.Join(t.TempDir(), "gone.pdf"))
		assert.False(t, got.Valid)
		assert.Contains(t, got.Error, "gone.pdf")
	})

	t.Run("empty file", func(t *testing.T) {
		got := v.Validate(writeFile(t, "empty.txt", ""))
		assert.False(t, got.Valid)
		assert.Contains(t, got.Error, "empty")
	})

	t.Run("content does not match extension", func(t *testing.T) {
		got := v.Validate(writeFile(t, "fake.pdf", "just some plain words"))
		assert.False(t, got.Valid)
		assert.Contains(t, got.Error, "PDF")
	})

	t.Run("too large", func(t *testing.T) {
		small := NewValidator(10)
		got := small.Validate(writeFile(t, "long.txt", strings.Repeat("a", 20)))
		assert.False(t, got.Valid)
		assert.Contains(t, got.Error, "20 B")
		assert.Contains(t, got.Error, "10 B")
	})
}

func TestExtractText(t *testing.T) {
	t.Run("docx", func(t *testing.T) {
		path := writeDOCX(t, "claims.docx", "Background", "Claims take 9 days &amp; more")
		text, err := ExtractText(File{Name: "claims.docx", Path: path, MIME: MIMEDOCX})
		require.NoError(t, err)
		assert.Equal(t, "Background\nClaims take 9 days & more\n", text)
	})

	t.Run("plain text", func(t *testing.T) {
		path := writeFile(t, "a.txt", "hello")
		text, err := ExtractText(File{Name: "a.txt", Path: path, MIME: MIMEText})
		require.NoError(t, err)
		assert.Equal(t, "hello", text)
	})

	t.Run("broken docx", func(t *testing.T) {
		path := writeFile(t, "bad.docx", "not a zip")
		_, err := ExtractText(File{Name: "bad.docx", Path: path, MIME: MIMEDOCX})
		assert.Error(t, err)
	})
}

func TestLocalBase(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	base := NewLocalBase(db)
	path := writeFile(t, "billing.txt", "Metered API calls with monthly commitments.")
	f := File{Name: "billing.txt", Path: path, Size: 44, MIME: MIMEText}

	require.NoError(t, base.UploadAndTrain(ctx, "kb-1", f))

	text, err := base.Excerpt(ctx, "kb-1", "billing.txt", 7)
	require.NoError(t, err)
	assert.Equal(t, "Metered", text)

	_, err = base.Excerpt(ctx, "kb-2", "billing.txt", 7)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	refs := References(ctx, base, "kb-1", []string{"billing.txt", "missing.txt"}, 7)
	assert.Equal(t, []string{"billing.txt:\nMetered"}, refs)

	require.NoError(t, base.DeleteDocuments(ctx, "kb-1", []string{"billing.txt"}))
	_, err = base.Excerpt(ctx, "kb-1", "billing.txt", 7)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestLocalBaseRejectsTextlessFile(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	path := writeFile(t, "blank.txt", "   \n\t")
	err = NewLocalBase(db).UploadAndTrain(context.Background(), "kb", File{Name: "blank.txt", Path: path, MIME: MIMEText})
	assert.Error(t, err)
}

func TestHTTPBaseUpload(t *testing.T) {
	var gotName, gotContent, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/knowledge-bases/kb-1/documents", r.URL.Path)
		gotKey = r.Header.Get("x-api-key")

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName, gotContent = header.Filename, string(data)
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	base, err := NewHTTPBase(HTTPConfig{BaseURL: srv.URL + "/v1/", APIKey: "secret"})
	require.NoError(t, err)

	path := writeFile(t, "notes.txt", "reference text")
	require.NoError(t, base.UploadAndTrain(context.Background(), "kb-1", File{Name: "notes.txt", Path: path, MIME: MIMEText}))

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "notes.txt", gotName)
	assert.Equal(t, "reference text", gotContent)
}

func TestHTTPBaseDelete(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	base, err := NewHTTPBase(HTTPConfig{BaseURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, base.DeleteDocuments(context.Background(), "kb-1", []string{"a.pdf", "b.docx"}))
	assert.Equal(t, []string{"a.pdf", "b.docx"}, got["documents"])
}

func TestHTTPBaseErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"nested error message", http.StatusInternalServerError, `{"error": {"message": "quota exceeded"}}`, "quota exceeded"},
		{"detail", http.StatusUnprocessableEntity, `{"detail": "unsupported document"}`, "unsupported document"},
		{"plain body", http.StatusBadGateway, "upstream down", "upstream down"},
		{"success false", http.StatusOK, `{"success": false, "message": "training failed"}`, "training failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			base, err := NewHTTPBase(HTTPConfig{BaseURL: srv.URL})
			require.NoError(t, err)
			err = base.DeleteDocuments(context.Background(), "kb", []string{"a.pdf"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewHTTPBaseRequiresURL(t *testing.T) {
	_, err := NewHTTPBase(HTTPConfig{})
	assert.Error(t, err)
}
