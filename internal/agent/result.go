// Package agent models the response of a remote AI agent call and recovers
// structured records or plain text from it, whatever shape the agent chose.
package agent

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Result is an agent call result. It wraps the raw JSON document so that every
// accessor tolerates absent or mistyped fields.
//
// Recognised keys: success, error, session_id, response.result,
// response.message, raw_response, module_outputs.artifact_files, usage.
type Result struct {
	raw []byte
}

// ArtifactFile is a file produced by the agent alongside its answer.
type ArtifactFile struct {
	FileURL    string `json:"file_url"`
	Name       string `json:"name"`
	FormatType string `json:"format_type"`
}

// NewResult wraps raw JSON. Invalid JSON yields a result where every accessor
// reports absence.
func NewResult(raw []byte) *Result {
	if !gjson.ValidBytes(raw) {
		raw = []byte("{}")
	}
	return &Result{raw: raw}
}

// FromValue marshals v and wraps it.
func FromValue(v any) (*Result, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent result: %w", err)
	}
	return NewResult(raw), nil
}

// Raw returns the underlying JSON document.
func (r *Result) Raw() []byte {
	if r == nil {
		return nil
	}
	return r.raw
}

// Pretty returns the document indented for display.
func (r *Result) Pretty() string {
	if r == nil {
		return ""
	}
	return string(pretty.Pretty(r.raw))
}

func (r *Result) get(path string) gjson.Result {
	if r == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.raw, path)
}

// Success reports whether the agent call succeeded. Only a literal true counts.
func (r *Result) Success() bool {
	return r.get("success").Type == gjson.True
}

// ErrorMessage returns the error reported by the agent, if any.
func (r *Result) ErrorMessage() string {
	e := r.get("error")
	switch {
	case e.Type == gjson.String:
		return e.Str
	case e.IsObject():
		if msg := e.Get("message"); msg.Type == gjson.String {
			return msg.Str
		}
		return e.Raw
	default:
		return ""
	}
}

// SessionID returns the agent session id, if one was issued.
func (r *Result) SessionID() string {
	if s := r.get("session_id"); s.Type == gjson.String {
		return s.Str
	}
	return ""
}

// Artifacts returns module_outputs.artifact_files entries that carry a URL.
func (r *Result) Artifacts() []ArtifactFile {
	files := r.get("module_outputs.artifact_files")
	if !files.IsArray() {
		return nil
	}

	var out []ArtifactFile
	files.ForEach(func(_, f gjson.Result) bool {
		url := f.Get("file_url")
		if url.Type != gjson.String || url.Str == "" {
			return true
		}
		out = append(out, ArtifactFile{
			FileURL:    url.Str,
			Name:       f.Get("name").String(),
			FormatType: f.Get("format_type").String(),
		})
		return true
	})
	return out
}

// Usage is the token usage reported for a call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Usage returns usage.input_tokens and usage.output_tokens. ok is false when
// the agent reported no usage.
func (r *Result) Usage() (u Usage, ok bool) {
	usage := r.get("usage")
	if !usage.IsObject() {
		return Usage{}, false
	}
	return Usage{
		InputTokens:  int(usage.Get("input_tokens").Int()),
		OutputTokens: int(usage.Get("output_tokens").Int()),
	}, true
}
