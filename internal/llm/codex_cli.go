package llm

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// CodexCLIAdapter uses the Codex CLI as a local stand-in for the hosted
// agents.
type CodexCLIAdapter struct {
	model  string
	config Config
	run    commandRunner
}

// NewCodexCLIAdapter creates a Codex CLI adapter.
func NewCodexCLIAdapter(config Config) *CodexCLIAdapter {
	model := config.Model
	if model == "" {
		model = "o3" // Default to o3 for best reasoning
	}
	return &CodexCLIAdapter{model: model, config: config, run: execRunner}
}

func (a *CodexCLIAdapter) Name() string {
	return "codex-cli"
}

func (a *CodexCLIAdapter) Model() string {
	return a.model
}

// IsAvailable checks if the codex CLI is installed.
func (a *CodexCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("codex")
	return err == nil
}

func (a *CodexCLIAdapter) Call(ctx context.Context, message, agentID string) (*agent.Result, error) {
	// Codex takes no separate system prompt, so both go in one message.
	combined := fmt.Sprintf("SYSTEM INSTRUCTIONS:\n%s\n\nUSER REQUEST:\n%s", a.config.SystemPrompt(agentID), message)

	output, err := a.run(ctx, combined, "codex",
		"--model", a.model,
		"--quiet", // Less verbose output
	)
	if err != nil {
		return nil, err
	}
	return textResult(string(output), "", nil), nil
}
