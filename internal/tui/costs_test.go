package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name     string
		chars    int
		expected int
	}{
		{"empty", 0, 0},
		{"negative", -10, 0},
		{"small", 40, 10},
		{"medium", 1000, 250},
		{"large", 4000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EstimateTokens(tt.chars))
		})
	}
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name         string
		model        string
		inputTokens  int
		outputTokens int
		wantMin      float64
		wantMax      float64
	}{
		{"claude sonnet 4.5", "claude-sonnet-4-5-20250929", 1000, 500, 0.0104, 0.0106},
		{"gpt-4o", "gpt-4o", 1000, 500, 0.0074, 0.0076},
		{"unknown model uses default", "unknown-model", 1000, 500, 0.01, 0.02},
		{"zero tokens", "o3", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCost(tt.model, tt.inputTokens, tt.outputTokens)
			assert.GreaterOrEqual(t, got, tt.wantMin)
			assert.LessOrEqual(t, got, tt.wantMax)
		})
	}
}

func TestPriceFor(t *testing.T) {
	assert.Equal(t, ModelPricing["gpt-4o-mini"], PriceFor("gpt-4o-mini-2024-07-18"))
	assert.Equal(t, ModelPricing["gpt-4o"], PriceFor("gpt-4o-2024-08-06"))
	assert.Equal(t, ModelPricing["claude-opus-4-5"], PriceFor("claude-opus-4-5-20251101"))
	assert.Equal(t, ModelPricing["claude-opus-4"], PriceFor("claude-opus-4-1-20250805"))
	assert.Equal(t, DefaultPricing, PriceFor("agent-api"))
	assert.Equal(t, DefaultPricing, PriceFor(""))
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		cost     float64
		expected string
	}{
		{0.0001, "$0.0001"},
		{0.005, "$0.005"},
		{0.05, "$0.05"},
		{1.50, "$1.50"},
		{100.00, "$100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCost(tt.cost))
		})
	}
}

func TestFormatTokens(t *testing.T) {
	assert.Equal(t, "500", FormatTokens(500))
	assert.Equal(t, "1.5k", FormatTokens(1500))
	assert.Equal(t, "15k", FormatTokens(15000))
	assert.Equal(t, "150k", FormatTokens(150000))
}

func TestUsageOrEstimate(t *testing.T) {
	reported := &agent.Usage{InputTokens: 1200, OutputTokens: 340}
	assert.Equal(t, *reported, UsageOrEstimate(reported, 4, 4))
	assert.Equal(t, agent.Usage{InputTokens: 100, OutputTokens: 25}, UsageOrEstimate(nil, 400, 100))
}

func TestRunStageNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	stage := Stage{Name: "Generating PRD", Model: "gpt-4o", InputChars: 4000}

	err := runStage(&buf, false, stage, func() (StageResult, error) {
		return StageResult{OutputChars: 2000, Usage: &agent.Usage{InputTokens: 1200, OutputTokens: 340}}, nil
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Generating PRD")
	assert.Contains(t, lines[0], "~1.0k input tokens")
	assert.Contains(t, lines[1], "1.5k tokens")
	assert.NotContains(t, lines[1], "~1.5k")
}

func TestRunStageFailure(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("agent unreachable")

	err := runStage(&buf, false, Stage{Name: "Analyzing"}, func() (StageResult, error) {
		return StageResult{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, buf.String(), "✓")
}

func TestPaintMarkdown(t *testing.T) {
	out := PaintMarkdown("# Title\n\n## Goals\n\n- **fast** checkout\n1. first\n> quoted\nplain *soft* text")

	assert.Contains(t, out, "Title")
	assert.NotContains(t, out, "# ")
	assert.Contains(t, out, "• ")
	assert.Contains(t, out, "fast")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "│ quoted")
	assert.Contains(t, out, "soft")
	assert.Len(t, strings.Split(out, "\n"), 8)
}
