package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/store"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/studio"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// StatusFor maps a workflow error to its HTTP status.
func StatusFor(err error) int {
	var (
		agentErr *core.AgentError
		kbErr    *studio.KnowledgeBaseError
	)
	switch {
	case core.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUnparseableResponse):
		return http.StatusUnprocessableEntity
	case errors.As(err, &agentErr), errors.As(err, &kbErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	}

	var v *core.ValidationError
	if errors.As(err, &v) {
		JSON(w, status, map[string]string{"error": v.Message, "field": v.Field})
		return
	}
	Error(w, status, err.Error())
}
