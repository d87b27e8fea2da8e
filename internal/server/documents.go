package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	docs := s.svc.Documents(core.DocumentFilter{
		Query:       q.Get("q"),
		Industry:    q.Get("industry"),
		StarredOnly: q.Get("starred") == "true",
	})
	if docs == nil {
		docs = []core.UploadedDocumentProfile{}
	}
	JSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Document(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, doc)
}

// handleUpload stores the multipart "file" part under its own name in a
// scratch directory and runs the upload workflow on it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.uploading.CompareAndSwap(false, true) {
		Error(w, http.StatusConflict, "an upload is already in progress")
		return
	}
	defer s.uploading.Store(false)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, "upload is too large")
			return
		}
		Error(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	name := filepath.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		Error(w, http.StatusBadRequest, "file name is required")
		return
	}

	dir, err := os.MkdirTemp("", "prd-ai-upload-*")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	if err := saveTo(path, file); err != nil {
		s.fail(w, r, err)
		return
	}

	out, err := s.svc.Upload(r.Context(), path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, out)
}

func saveTo(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.DeleteDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, doc)
}

func (s *Server) handleToggleStar(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.ToggleStar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, doc)
}

type tagRequest struct {
	Tag string `json:"tag"`
}

func (s *Server) handleAddTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	doc, err := s.svc.AddTag(r.Context(), chi.URLParam(r, "id"), req.Tag)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, doc)
}

func (s *Server) handleRemoveTag(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.RemoveTag(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "tag"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, doc)
}
