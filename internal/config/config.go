// Package config loads prd-ai settings from a YAML file, a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/knowledge"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/llm"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/studio"
)

// FileName is the config file looked up in the working and home directories.
const FileName = ".prd-ai.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PRD_AI_"

// AgentsConfig names the hosted agents.
type AgentsConfig struct {
	Ingestion  string `yaml:"ingestion"`
	Generation string `yaml:"generation"`
}

// KnowledgeBaseConfig selects the knowledge base. An empty URL keeps the
// documents in the local state database.
type KnowledgeBaseConfig struct {
	ID       string `yaml:"id"`
	URL      string `yaml:"url,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// ServerConfig configures `prd-ai serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the full prd-ai configuration.
type Config struct {
	Provider      string               `yaml:"provider"`
	Model         string               `yaml:"model,omitempty"`
	PreferCLI     bool                 `yaml:"prefer_cli"`
	AgentAPI      llm.AgentAPIConfig   `yaml:"agent_api,omitempty"`
	Agents        AgentsConfig         `yaml:"agents"`
	KnowledgeBase KnowledgeBaseConfig  `yaml:"knowledge_base"`
	Synthesis     core.SynthesisConfig `yaml:"synthesis"`
	Defaults      core.GenerateRequest `yaml:"defaults"`
	StatePath     string               `yaml:"state_path"`
	Server        ServerConfig         `yaml:"server"`

	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider:  llm.ProviderAuto,
		PreferCLI: true,
		Agents: AgentsConfig{
			Ingestion:  core.DefaultIngestionAgentID,
			Generation: core.DefaultGenerationAgentID,
		},
		KnowledgeBase: KnowledgeBaseConfig{
			ID:       core.DefaultKnowledgeBaseID,
			MaxBytes: knowledge.DefaultMaxBytes,
		},
		Synthesis: core.DefaultSynthesisConfig(),
		Defaults:  core.DefaultGenerateRequest(),
		StatePath: DefaultStatePath(),
		Server:    ServerConfig{Addr: ":8080"},
	}
}

// DefaultStatePath returns ~/.prd-ai/state.db, or a relative path when the
// home directory is unknown.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".prd-ai", "state.db")
	}
	return filepath.Join(home, ".prd-ai", "state.db")
}

// UserPath returns ~/.prd-ai.yaml, where `prd-ai setup` saves.
func UserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Find returns the config file to read: explicit when set, else
// ./.prd-ai.yaml, else ~/.prd-ai.yaml. It returns "" when none exists.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if p := UserPath(); p != FileName {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads .env, the config file found by Find and then PRD_AI_*
// overrides, and validates the result. A missing explicit file is an error;
// a missing default file is not.
func Load(explicit string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	cfg := Default()
	if path := Find(explicit); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.Path = path
	}

	cfg.applyEnv()
	cfg.Defaults = cfg.Defaults.Normalized()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Provider = getEnv("PROVIDER", c.Provider)
	c.Model = getEnv("MODEL", c.Model)
	c.PreferCLI = getEnvBool("PREFER_CLI", c.PreferCLI)
	c.AgentAPI.URL = getEnv("AGENT_API_URL", c.AgentAPI.URL)
	c.AgentAPI.APIKey = getEnv("AGENT_API_KEY", c.AgentAPI.APIKey)
	c.AgentAPI.UserID = getEnv("AGENT_API_USER_ID", c.AgentAPI.UserID)
	c.Agents.Ingestion = getEnv("INGESTION_AGENT_ID", c.Agents.Ingestion)
	c.Agents.Generation = getEnv("GENERATION_AGENT_ID", c.Agents.Generation)
	c.KnowledgeBase.ID = getEnv("KB_ID", c.KnowledgeBase.ID)
	c.KnowledgeBase.URL = getEnv("KB_URL", c.KnowledgeBase.URL)
	c.KnowledgeBase.APIKey = getEnv("KB_API_KEY", c.KnowledgeBase.APIKey)
	c.KnowledgeBase.MaxBytes = getEnvInt64("KB_MAX_BYTES", c.KnowledgeBase.MaxBytes)
	c.StatePath = getEnv("STATE_PATH", c.StatePath)
	c.Server.Addr = getEnv("ADDR", c.Server.Addr)
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if !isProvider(c.Provider) {
		return &core.ValidationError{Field: "provider", Message: fmt.Sprintf("unknown provider %q (choose from %s)", c.Provider, strings.Join(llm.Providers, ", "))}
	}
	if c.Provider == llm.ProviderAgentAPI && c.AgentAPI.URL == "" {
		return &core.ValidationError{Field: "agent_api.url", Message: "required for the agent-api provider"}
	}
	if strings.TrimSpace(c.Agents.Ingestion) == "" {
		return &core.ValidationError{Field: "agents.ingestion", Message: "cannot be empty"}
	}
	if strings.TrimSpace(c.Agents.Generation) == "" {
		return &core.ValidationError{Field: "agents.generation", Message: "cannot be empty"}
	}
	if c.Agents.Ingestion == c.Agents.Generation {
		return &core.ValidationError{Field: "agents", Message: "ingestion and generation agents must differ"}
	}
	if strings.TrimSpace(c.KnowledgeBase.ID) == "" {
		return &core.ValidationError{Field: "knowledge_base.id", Message: "cannot be empty"}
	}
	if c.KnowledgeBase.MaxBytes <= 0 {
		return &core.ValidationError{Field: "knowledge_base.max_bytes", Message: "must be > 0"}
	}
	if c.StatePath == "" {
		return &core.ValidationError{Field: "state_path", Message: "cannot be empty"}
	}
	if c.Server.Addr == "" {
		return &core.ValidationError{Field: "server.addr", Message: "cannot be empty"}
	}
	return nil
}

func isProvider(name string) bool {
	if name == "" || name == llm.ProviderAuto {
		return true
	}
	for _, p := range llm.Providers {
		if p == name {
			return true
		}
	}
	return false
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0600)
}

// LLMConfig returns the adapter settings.
func (c *Config) LLMConfig() llm.Config {
	lc := llm.DefaultConfig()
	lc.Provider = c.Provider
	lc.Model = c.Model
	lc.PreferCLI = c.PreferCLI
	lc.AgentAPI = c.AgentAPI
	lc.Personas = llm.Personas(c.Agents.Ingestion, c.Agents.Generation)
	return lc
}

// StudioConfig returns the workflow settings.
func (c *Config) StudioConfig() studio.Config {
	sc := studio.DefaultConfig()
	sc.KnowledgeBaseID = c.KnowledgeBase.ID
	sc.IngestionAgentID = c.Agents.Ingestion
	sc.GenerationAgentID = c.Agents.Generation
	sc.Synthesis = c.Synthesis
	return sc
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
