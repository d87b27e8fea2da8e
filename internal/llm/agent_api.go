package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// DefaultAgentTimeout bounds one hosted agent call. Generation can take
// minutes.
const DefaultAgentTimeout = 5 * time.Minute

// AgentAPIAdapter calls hosted agents over HTTP. Each agent is addressed by
// id; the service keeps conversation state per session id.
type AgentAPIAdapter struct {
	client    *http.Client
	url       string
	apiKey    string
	userID    string
	sessionID string
}

// agentRequest is the hosted agent request body.
type agentRequest struct {
	UserID    string `json:"user_id"`
	AgentID   string `json:"agent_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// NewAgentAPIAdapter creates a hosted agent adapter.
func NewAgentAPIAdapter(config Config) (*AgentAPIAdapter, error) {
	cfg := config.AgentAPI
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("agent API URL not set")
	}
	userID := cfg.UserID
	if userID == "" {
		userID = "prd-ai"
	}
	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &AgentAPIAdapter{
		client:    &http.Client{Timeout: DefaultAgentTimeout},
		url:       cfg.URL,
		apiKey:    cfg.APIKey,
		userID:    userID,
		sessionID: sessionID,
	}, nil
}

func (a *AgentAPIAdapter) Name() string {
	return "agent-api"
}

func (a *AgentAPIAdapter) IsAvailable() bool {
	return a.url != ""
}

// SessionID returns the session id sent with every call.
func (a *AgentAPIAdapter) SessionID() string {
	return a.sessionID
}

func (a *AgentAPIAdapter) Call(ctx context.Context, message, agentID string) (*agent.Result, error) {
	payload, err := json.Marshal(agentRequest{
		UserID:    a.userID,
		AgentID:   agentID,
		SessionID: a.sessionID,
		Message:   message,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		req.Header.Set("x-api-key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failureResult(fmt.Sprintf("agent error (status %d): %s", resp.StatusCode, agentError(body)), a.sessionID), nil
	}
	return a.envelope(body), nil
}

// envelope normalises a hosted agent response. Bodies that already carry a
// success flag are used as they are; bare {"response": ...} bodies are
// wrapped.
func (a *AgentAPIAdapter) envelope(body []byte) *agent.Result {
	if !gjson.ValidBytes(body) {
		return textResult(string(body), a.sessionID, nil)
	}
	if gjson.GetBytes(body, "success").Exists() {
		return agent.NewResult(body)
	}

	response := gjson.GetBytes(body, "response")
	if !response.Exists() {
		return textResult(string(body), a.sessionID, nil)
	}

	doc := `{}`
	doc, _ = sjson.Set(doc, "success", true)
	doc, _ = sjson.Set(doc, "response.status", "success")
	doc, _ = sjson.SetRaw(doc, "response.result", response.Raw)
	if response.Type == gjson.String {
		doc, _ = sjson.Set(doc, "raw_response", response.Str)
	} else {
		doc, _ = sjson.Set(doc, "raw_response", response.Raw)
	}

	sessionID := gjson.GetBytes(body, "session_id").String()
	if sessionID == "" {
		sessionID = a.sessionID
	}
	doc, _ = sjson.Set(doc, "session_id", sessionID)

	if files := gjson.GetBytes(body, "module_outputs"); files.IsObject() {
		doc, _ = sjson.SetRaw(doc, "module_outputs", files.Raw)
	}
	return agent.NewResult([]byte(doc))
}

func agentError(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error.message", "error", "detail", "message"} {
			if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return "empty response"
}
