package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// AnthropicAPIAdapter uses the Anthropic API directly.
// Fallback when Claude CLI is not available.
type AnthropicAPIAdapter struct {
	client    anthropic.Client
	model     string
	maxTokens int
	config    Config
}

// NewAnthropicAPIAdapter creates an Anthropic API adapter.
func NewAnthropicAPIAdapter(config Config) (*AnthropicAPIAdapter, error) {
	apiKey := config.anthropicKey()
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.AnthropicBaseURL))
	}
	client := anthropic.NewClient(opts...)

	model := config.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 16384
	}

	return &AnthropicAPIAdapter{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		config:    config,
	}, nil
}

func (a *AnthropicAPIAdapter) Name() string {
	return "anthropic-api"
}

func (a *AnthropicAPIAdapter) Model() string {
	return a.model
}

func (a *AnthropicAPIAdapter) IsAvailable() bool {
	return a.config.anthropicKey() != ""
}

func (a *AnthropicAPIAdapter) Call(ctx context.Context, message, agentID string) (*agent.Result, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: a.config.SystemPrompt(agentID)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	// Extract text from response
	var output strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			output.WriteString(block.Text)
		}
	}

	usage := &agent.Usage{
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}
	return textResult(output.String(), "", usage), nil
}
