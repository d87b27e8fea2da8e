package llm

import (
	"github.com/tidwall/sjson"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/llmjson"
)

// textResult wraps a model's text answer in the agent response envelope.
// An answer that holds a JSON object is stored as response.result; anything
// else is stored as a string.
func textResult(text, sessionID string, usage *agent.Usage) *agent.Result {
	doc := `{}`
	doc, _ = sjson.Set(doc, "success", true)
	doc, _ = sjson.Set(doc, "response.status", "success")

	if obj, ok := llmjson.Parse(text).Object(); ok {
		doc, _ = sjson.Set(doc, "response.result", obj)
	} else {
		doc, _ = sjson.Set(doc, "response.result", text)
	}

	doc, _ = sjson.Set(doc, "raw_response", text)
	if sessionID != "" {
		doc, _ = sjson.Set(doc, "session_id", sessionID)
	}
	if usage != nil {
		doc, _ = sjson.Set(doc, "usage.input_tokens", usage.InputTokens)
		doc, _ = sjson.Set(doc, "usage.output_tokens", usage.OutputTokens)
	}
	return agent.NewResult([]byte(doc))
}

// failureResult builds an envelope for an agent that reported an error.
func failureResult(message, sessionID string) *agent.Result {
	doc := `{}`
	doc, _ = sjson.Set(doc, "success", false)
	doc, _ = sjson.Set(doc, "error", message)
	doc, _ = sjson.Set(doc, "response.status", "error")
	doc, _ = sjson.Set(doc, "response.message", message)
	if sessionID != "" {
		doc, _ = sjson.Set(doc, "session_id", sessionID)
	}
	return agent.NewResult([]byte(doc))
}
