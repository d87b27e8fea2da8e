package llm

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/tidwall/gjson"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// ClaudeCLIAdapter uses the Claude Code CLI as a local stand-in for the
// hosted agents. This is preferred because users already have it
// authenticated.
type ClaudeCLIAdapter struct {
	model  string
	config Config
	run    commandRunner
}

// NewClaudeCLIAdapter creates a Claude CLI adapter.
func NewClaudeCLIAdapter(config Config) *ClaudeCLIAdapter {
	model := config.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	return &ClaudeCLIAdapter{model: model, config: config, run: execRunner}
}

func (a *ClaudeCLIAdapter) Name() string {
	return "claude-cli"
}

func (a *ClaudeCLIAdapter) Model() string {
	return a.model
}

// IsAvailable checks if the claude CLI is installed.
func (a *ClaudeCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

func (a *ClaudeCLIAdapter) Call(ctx context.Context, message, agentID string) (*agent.Result, error) {
	// The system prompt goes through a file; long prompts are unreliable as
	// arguments.
	systemFile, err := os.CreateTemp("", "prd-ai-system-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create system prompt file: %w", err)
	}
	defer os.Remove(systemFile.Name())

	if _, err := systemFile.WriteString(a.config.SystemPrompt(agentID)); err != nil {
		systemFile.Close()
		return nil, fmt.Errorf("failed to write system prompt: %w", err)
	}
	systemFile.Close()

	output, err := a.run(ctx, message, "claude",
		"--model", a.model,
		"--system-prompt-file", systemFile.Name(),
		"--print",
		"--output-format", "json",
		"--tools", "",
		"--no-session-persistence",
	)
	if err != nil {
		return nil, err
	}

	return claudeResult(output), nil
}

// claudeResult maps the CLI's JSON wrapper onto the agent envelope. Output
// that is not a wrapper is treated as the answer text.
func claudeResult(output []byte) *agent.Result {
	if !gjson.ValidBytes(output) || gjson.GetBytes(output, "type").String() != "result" {
		return textResult(string(output), "", nil)
	}

	wrapper := gjson.ParseBytes(output)
	sessionID := wrapper.Get("session_id").String()
	text := wrapper.Get("result").String()

	if wrapper.Get("is_error").Bool() {
		if text == "" {
			text = "claude CLI reported an error"
		}
		return failureResult(text, sessionID)
	}

	var usage *agent.Usage
	if u := wrapper.Get("usage"); u.IsObject() {
		usage = &agent.Usage{
			InputTokens:  int(u.Get("input_tokens").Int()),
			OutputTokens: int(u.Get("output_tokens").Int()),
		}
	}
	return textResult(text, sessionID, usage)
}
