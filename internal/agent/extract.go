package agent

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/llmjson"
)

// SchemaKeys are the field names the ingestion and generation agents use.
// An object under response.result carrying any of them is taken as-is.
var SchemaKeys = []string{
	"prd_title",
	"prd_markdown",
	"document_title",
	"sections_extracted",
	"content_summary",
	"suggested_tags",
	"kpi_frameworks",
	"formatting_patterns",
	"industry",
	"product_type",
	"detail_level",
	"sections",
	"metadata",
}

// Extraction is the outcome of ExtractData: either a recovered record or
// nothing. A zero Extraction means nothing was found.
type Extraction struct {
	Record Record
	Found  bool
	// Stage names the strategy that produced the record, for diagnostics.
	Stage string
}

// Recovered builds a successful extraction.
func Recovered(rec Record, stage string) Extraction {
	return Extraction{Record: rec, Found: true, Stage: stage}
}

// NotFound builds an empty extraction.
func NotFound() Extraction {
	return Extraction{}
}

// IsFailureEnvelope reports whether obj has the failure shape
// {"success": false, "data": null}. Such objects are parse-failure reports,
// never records.
func IsFailureEnvelope(obj map[string]any) bool {
	success, ok := obj["success"].(bool)
	if !ok || success {
		return false
	}
	data, hasData := obj["data"]
	return hasData && data == nil
}

// ExtractData recovers a structured record from r. Strategies run in a fixed
// order and the first success wins:
//
//  1. response.result is an object carrying at least one schema key
//  2. response.result is a string holding JSON
//  3. response.result when set, otherwise response, parsed as a whole; an
//     object carrying nothing but blank values does not count
//  4. raw_response
//  5. response.message
func ExtractData(r *Result) Extraction {
	if r == nil {
		return NotFound()
	}

	result := r.get("response.result")

	if result.IsObject() {
		if obj, ok := result.Value().(map[string]any); ok && hasSchemaKey(obj) && !IsFailureEnvelope(obj) {
			return Recovered(Record(obj), "response.result")
		}
	}

	if result.Type == gjson.String && result.Str != "" {
		if rec, ok := accept(llmjson.Parse(result.Str)); ok {
			return Recovered(rec, "response.result text")
		}
	}

	target, wrapper := r.get("response"), true
	if isTruthy(result) {
		target, wrapper = result, false
	}
	if target.Exists() {
		if rec, ok := accept(parseNode(target)); ok && hasContent(rec, wrapper) {
			return Recovered(rec, "response")
		}
	}

	if raw := r.get("raw_response"); raw.Type == gjson.String && raw.Str != "" {
		if rec, ok := accept(llmjson.Parse(raw.Str)); ok {
			return Recovered(rec, "raw_response")
		}
	}

	if msg := r.get("response.message"); msg.Type == gjson.String && msg.Str != "" {
		if rec, ok := accept(llmjson.Parse(msg.Str)); ok {
			return Recovered(rec, "response.message")
		}
	}

	return NotFound()
}

// ExtractText returns the first non-empty plain-text field of r. It never
// parses JSON.
func ExtractText(r *Result) string {
	if r == nil {
		return ""
	}
	for _, path := range []string{
		"response.result",
		"response.message",
		"response.result.text",
		"response.result.message",
		"response.result.content",
		"response.result.prd_markdown",
		"raw_response",
	} {
		if v := r.get(path); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func hasSchemaKey(obj map[string]any) bool {
	for _, k := range SchemaKeys {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}

// hasContent reports whether at least one value of rec is not blank. For the
// response wrapper, result and message are left out: a falsy result got
// here by being unusable and message has its own strategy.
func hasContent(rec Record, wrapper bool) bool {
	for k, v := range rec {
		if wrapper && (k == "result" || k == "message") {
			continue
		}
		if !isBlank(v) {
			return true
		}
	}
	return false
}

// isBlank treats null, false, zero, whitespace-only strings and empty
// containers as carrying nothing.
func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

func accept(v llmjson.Value) (Record, bool) {
	obj, ok := v.Object()
	if !ok || IsFailureEnvelope(obj) {
		return nil, false
	}
	return Record(obj), true
}

func parseNode(n gjson.Result) llmjson.Value {
	if n.Type == gjson.String {
		return llmjson.Parse(n.Str)
	}
	return llmjson.ParseAny(n.Value())
}

func isTruthy(n gjson.Result) bool {
	switch n.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return n.Str != ""
	case gjson.Number:
		return n.Num != 0
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}
