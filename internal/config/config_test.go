package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/knowledge"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/llm"
)

// isolate points HOME at an empty directory so a developer's own
// ~/.prd-ai.yaml never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Path)
	assert.Equal(t, llm.ProviderAuto, cfg.Provider)
	assert.True(t, cfg.PreferCLI)
	assert.Equal(t, core.DefaultIngestionAgentID, cfg.Agents.Ingestion)
	assert.Equal(t, core.DefaultGenerationAgentID, cfg.Agents.Generation)
	assert.Equal(t, int64(knowledge.DefaultMaxBytes), cfg.KnowledgeBase.MaxBytes)
	assert.Equal(t, filepath.Join(home, ".prd-ai", "state.db"), cfg.StatePath)
	assert.Equal(t, "B2B", cfg.Defaults.ProductType)
	assert.Equal(t, "Standard", cfg.Defaults.DetailLevel)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: openai-api
model: gpt-4o-mini
agents:
  generation: gen-2
knowledge_base:
  id: kb-9
  url: https://kb.example.com
synthesis:
  min_fallback_chars: 80
defaults:
  industry: "  SaaS "
  detail_level: Lean
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, core.DefaultIngestionAgentID, cfg.Agents.Ingestion, "unset keys keep their defaults")
	assert.Equal(t, "gen-2", cfg.Agents.Generation)
	assert.Equal(t, "kb-9", cfg.KnowledgeBase.ID)
	assert.Equal(t, 80, cfg.Synthesis.MinFallbackChars)
	assert.Equal(t, 500, cfg.Synthesis.SummaryMaxChars)
	assert.Equal(t, "SaaS", cfg.Defaults.Industry)
	assert.Equal(t, "Lean", cfg.Defaults.DetailLevel)
	assert.Equal(t, "B2B", cfg.Defaults.ProductType)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PRD_AI_PROVIDER", "anthropic-api")
	t.Setenv("PRD_AI_PREFER_CLI", "off")
	t.Setenv("PRD_AI_KB_MAX_BYTES", "2048")
	t.Setenv("PRD_AI_STATE_PATH", "/tmp/prd-ai-test.db")
	t.Setenv("PRD_AI_ADDR", "127.0.0.1:9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderAnthropic, cfg.Provider)
	assert.False(t, cfg.PreferCLI)
	assert.Equal(t, int64(2048), cfg.KnowledgeBase.MaxBytes)
	assert.Equal(t, "/tmp/prd-ai-test.db", cfg.StatePath)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("provider: [unterminated"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	t.Setenv("PRD_AI_PROVIDER", "gemini")
	_, err = Load("")
	var v *core.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "provider", v.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"default", func(c *Config) {}, ""},
		{"empty provider means auto", func(c *Config) { c.Provider = "" }, ""},
		{"agent api without url", func(c *Config) { c.Provider = llm.ProviderAgentAPI }, "agent_api.url"},
		{"missing ingestion agent", func(c *Config) { c.Agents.Ingestion = " " }, "agents.ingestion"},
		{"same agents", func(c *Config) { c.Agents.Generation = c.Agents.Ingestion }, "agents"},
		{"missing kb", func(c *Config) { c.KnowledgeBase.ID = "" }, "knowledge_base.id"},
		{"zero size limit", func(c *Config) { c.KnowledgeBase.MaxBytes = 0 }, "knowledge_base.max_bytes"},
		{"missing state", func(c *Config) { c.StatePath = "" }, "state_path"},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var v *core.ValidationError
			require.ErrorAs(t, err, &v)
			assert.Equal(t, tt.field, v.Field)
		})
	}
}

func TestFindOrder(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, "", Find(""))
	assert.Equal(t, "explicit.yaml", Find("explicit.yaml"))

	require.NoError(t, os.WriteFile(filepath.Join(home, FileName), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(home, FileName), Find(""))
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", FileName)

	c := Default()
	c.Provider = llm.ProviderClaudeCLI
	c.Defaults.Industry = "Healthcare"
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderClaudeCLI, loaded.Provider)
	assert.Equal(t, "Healthcare", loaded.Defaults.Industry)
	assert.Equal(t, c.StatePath, loaded.StatePath)
}

func TestDerivedConfigs(t *testing.T) {
	c := Default()
	c.Agents = AgentsConfig{Ingestion: "ing", Generation: "gen"}
	c.Model = "o3"

	lc := c.LLMConfig()
	assert.Equal(t, "o3", lc.Model)
	assert.Equal(t, core.IngestionSystemPrompt, lc.SystemPrompt("ing"))
	assert.Equal(t, core.GenerationSystemPrompt, lc.SystemPrompt("gen"))

	sc := c.StudioConfig()
	assert.Equal(t, "ing", sc.IngestionAgentID)
	assert.Equal(t, "gen", sc.GenerationAgentID)
	assert.Equal(t, core.DefaultKnowledgeBaseID, sc.KnowledgeBaseID)
	assert.Equal(t, 3, sc.MaxReferences)
}
