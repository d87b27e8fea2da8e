package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	ooption "github.com/openai/openai-go/option"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// OpenAIAPIAdapter uses the OpenAI chat completions API, or any service
// compatible with it.
type OpenAIAPIAdapter struct {
	client openai.Client
	model  string
	config Config
}

// NewOpenAIAPIAdapter creates an OpenAI API adapter.
func NewOpenAIAPIAdapter(config Config) (*OpenAIAPIAdapter, error) {
	apiKey := config.openAIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	opts := []ooption.RequestOption{ooption.WithAPIKey(apiKey)}
	if config.OpenAIBaseURL != "" {
		opts = append(opts, ooption.WithBaseURL(config.OpenAIBaseURL))
	}

	model := config.Model
	if model == "" {
		model = "gpt-4o"
	}

	return &OpenAIAPIAdapter{
		client: openai.NewClient(opts...),
		model:  model,
		config: config,
	}, nil
}

func (a *OpenAIAPIAdapter) Name() string {
	return "openai-api"
}

func (a *OpenAIAPIAdapter) Model() string {
	return a.model
}

func (a *OpenAIAPIAdapter) IsAvailable() bool {
	return a.config.openAIKey() != ""
}

func (a *OpenAIAPIAdapter) Call(ctx context.Context, message, agentID string) (*agent.Result, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(a.config.SystemPrompt(agentID)),
			openai.UserMessage(message),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return failureResult("openai API returned no choices", ""), nil
	}

	usage := &agent.Usage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}
	return textResult(resp.Choices[0].Message.Content, "", usage), nil
}
