package tui

import (
	"fmt"
	"strings"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// Pricing is the USD price per million tokens.
type Pricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

// Cost prices u.
func (p Pricing) Cost(u agent.Usage) float64 {
	return float64(u.InputTokens)*p.InputPer1M/1_000_000 +
		float64(u.OutputTokens)*p.OutputPer1M/1_000_000
}

// DefaultPricing prices models missing from ModelPricing, including hosted
// agents that do not name their model.
var DefaultPricing = Pricing{InputPer1M: 5.0, OutputPer1M: 15.0}

// ModelPricing maps model families to prices. A model id is priced by the
// longest family it starts with, so dated snapshots share their family's
// price.
var ModelPricing = map[string]Pricing{
	"claude-opus-4-5":   {InputPer1M: 5.0, OutputPer1M: 25.0},
	"claude-sonnet-4-5": {InputPer1M: 3.0, OutputPer1M: 15.0},
	"claude-haiku-4-5":  {InputPer1M: 1.0, OutputPer1M: 5.0},
	"claude-opus-4":     {InputPer1M: 15.0, OutputPer1M: 75.0},
	"claude-sonnet-4":   {InputPer1M: 3.0, OutputPer1M: 15.0},
	"claude-3-7-sonnet": {InputPer1M: 3.0, OutputPer1M: 15.0},
	"claude-3-haiku":    {InputPer1M: 0.25, OutputPer1M: 1.25},

	"gpt-4o":      {InputPer1M: 2.5, OutputPer1M: 10.0},
	"gpt-4o-mini": {InputPer1M: 0.15, OutputPer1M: 0.60},
	"gpt-4-turbo": {InputPer1M: 10.0, OutputPer1M: 30.0},
	"o1":          {InputPer1M: 15.0, OutputPer1M: 60.0},
	"o1-mini":     {InputPer1M: 1.10, OutputPer1M: 4.40},
	"o3":          {InputPer1M: 10.0, OutputPer1M: 40.0},
	"o3-mini":     {InputPer1M: 1.10, OutputPer1M: 4.40},
	"codex":       {InputPer1M: 15.0, OutputPer1M: 60.0},
}

// PriceFor returns the pricing of model's family, or DefaultPricing.
func PriceFor(model string) Pricing {
	best, found := "", false
	for family := range ModelPricing {
		if strings.HasPrefix(model, family) && len(family) > len(best) {
			best, found = family, true
		}
	}
	if !found {
		return DefaultPricing
	}
	return ModelPricing[best]
}

// EstimateCost returns the USD cost of a call to model.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	return PriceFor(model).Cost(agent.Usage{InputTokens: inputTokens, OutputTokens: outputTokens})
}

// EstimateTokens approximates a token count at four characters per token.
func EstimateTokens(chars int) int {
	if chars <= 0 {
		return 0
	}
	return chars / 4
}

// UsageOrEstimate returns reported usage when present, otherwise an estimate
// from character counts.
func UsageOrEstimate(u *agent.Usage, inputChars, outputChars int) agent.Usage {
	if u != nil {
		return *u
	}
	return agent.Usage{
		InputTokens:  EstimateTokens(inputChars),
		OutputTokens: EstimateTokens(outputChars),
	}
}

// FormatCost shows sub-cent costs with enough digits to stay non-zero.
func FormatCost(cost float64) string {
	switch {
	case cost < 0.001:
		return fmt.Sprintf("$%.4f", cost)
	case cost < 0.01:
		return fmt.Sprintf("$%.3f", cost)
	default:
		return fmt.Sprintf("$%.2f", cost)
	}
}

// FormatTokens formats a token count with a k suffix above a thousand.
func FormatTokens(tokens int) string {
	switch {
	case tokens < 1000:
		return fmt.Sprintf("%d", tokens)
	case tokens < 10000:
		return fmt.Sprintf("%.1fk", float64(tokens)/1000)
	default:
		return fmt.Sprintf("%dk", tokens/1000)
	}
}
