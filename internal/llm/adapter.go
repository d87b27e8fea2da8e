package llm

import (
	"context"
	"os"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
)

// Adapter is the interface all agent adapters must implement.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// IsAvailable checks if this adapter can be used (CLI installed, API key set, etc.)
	IsAvailable() bool

	// Call sends message to the agent identified by agentID and returns its
	// response envelope. A returned error means the call itself failed; an
	// agent that answered with an error yields a result with success false.
	Call(ctx context.Context, message, agentID string) (*agent.Result, error)
}

// ModelReporter is implemented by adapters that run a specific model.
type ModelReporter interface {
	Model() string
}

// AgentAPIConfig configures the hosted agent service.
type AgentAPIConfig struct {
	URL       string `yaml:"url"`
	APIKey    string `yaml:"api_key"`
	UserID    string `yaml:"user_id"`
	SessionID string `yaml:"session_id"`
}

// Config holds configuration for agent adapters.
type Config struct {
	// Provider forces an adapter by name; empty or "auto" detects one.
	Provider string

	// PreferCLI prefers CLI tools (claude, codex) over API when available.
	PreferCLI bool

	// Model specifies which model to use (optional, adapter chooses default).
	Model string

	// APIKey for direct Anthropic API access (optional if CLI is used).
	APIKey string

	// OpenAIKey and OpenAIBaseURL configure the OpenAI adapter.
	OpenAIKey     string
	OpenAIBaseURL string

	// AnthropicBaseURL overrides the Anthropic API endpoint.
	AnthropicBaseURL string

	// AgentAPI configures the hosted agent service.
	AgentAPI AgentAPIConfig

	// MaxTokens limits response length.
	MaxTokens int

	// Personas maps agent ids to the system prompt a local model should
	// adopt when standing in for that agent.
	Personas map[string]string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PreferCLI: true, // Use CLI tools when available (already authenticated)
		MaxTokens: 16384,
		Personas:  Personas(core.DefaultIngestionAgentID, core.DefaultGenerationAgentID),
	}
}

// Personas maps the ingestion and generation agent ids to their system
// prompts.
func Personas(ingestionID, generationID string) map[string]string {
	return map[string]string{
		ingestionID:  core.IngestionSystemPrompt,
		generationID: core.GenerationSystemPrompt,
	}
}

// SystemPrompt returns the persona for agentID. Unknown ids get the
// generation persona.
func (c Config) SystemPrompt(agentID string) string {
	if p, ok := c.Personas[agentID]; ok && p != "" {
		return p
	}
	return core.GenerationSystemPrompt
}

func (c Config) anthropicKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}

func (c Config) openAIKey() string {
	if c.OpenAIKey != "" {
		return c.OpenAIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}
