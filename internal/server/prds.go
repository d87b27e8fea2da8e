package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/markdown"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/output"
)

func (s *Server) handleListPRDs(w http.ResponseWriter, r *http.Request) {
	prds := s.svc.PRDs()
	if prds == nil {
		prds = []core.GeneratedPRD{}
	}
	JSON(w, http.StatusOK, prds)
}

func (s *Server) handleGetPRD(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.PRD(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, p)
}

// handleGenerate decodes the form over the configured defaults, so a request
// only needs the fields it changes.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !s.generating.CompareAndSwap(false, true) {
		Error(w, http.StatusConflict, "a generation is already in progress")
		return
	}
	defer s.generating.Store(false)

	req := s.cfg.Defaults
	req.Emphasis = slices.Clone(req.Emphasis)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	out, err := s.svc.Generate(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, out)
}

func (s *Server) handleDeletePRD(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.DeletePRD(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, p)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	a, err := output.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writePRD(w, r, a, true)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.writePRD(w, r, output.HTMLAdapter{}, false)
}

func (s *Server) writePRD(w http.ResponseWriter, r *http.Request, a output.Adapter, attachment bool) {
	p, err := s.svc.PRD(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := a.Render(p)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", a.ContentType())
	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", core.ExportFileName(p.Title, a.Extension())))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type renderRequest struct {
	Markdown string `json:"markdown"`
}

type renderResponse struct {
	HTML  string          `json:"html"`
	Lines []markdown.Line `json:"lines"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	JSON(w, http.StatusOK, renderResponse{
		HTML:  markdown.ToHTML(req.Markdown),
		Lines: markdown.RenderLines(req.Markdown),
	})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	activity := s.svc.Activity()
	if activity == nil {
		activity = []core.ActivityEntry{}
	}
	JSON(w, http.StatusOK, activity)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.svc.Dashboard())
}
