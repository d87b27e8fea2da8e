package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/config"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/knowledge"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/llm"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/store"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/store/sqlite"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/studio"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

var (
	configFile  string // Config file path
	statePath   string // State database path
	llmProvider string
	llmModel    string
	verbose     bool
)

// RegisterGlobalFlags adds the flags every command shares.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .prd-ai.yaml)")
	root.PersistentFlags().StringVar(&statePath, "state", "", "State database (default: ~/.prd-ai/state.db)")
	root.PersistentFlags().StringVarP(&llmProvider, "llm", "l", "", "LLM provider (auto/agent-api/claude-cli/codex-cli/anthropic-api/openai-api)")
	root.PersistentFlags().StringVarP(&llmModel, "model", "m", "", "Model to use (provider-specific)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// loadConfig reads the config file and applies flags that were set
// explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("state") && statePath != "" {
		cfg.StatePath = statePath
	}
	if cmd.Flags().Changed("llm") && llmProvider != "" {
		cfg.Provider = llmProvider
	}
	if cmd.Flags().Changed("model") && llmModel != "" {
		cfg.Model = llmModel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// app holds everything a command needs. Close releases the database.
type app struct {
	cfg   *config.Config
	db    *sqlite.Store
	svc   *studio.Service
	agent llm.Adapter
	log   *slog.Logger
}

// openApp loads config, opens the state database and builds the service.
// withAgent detects an LLM adapter; library commands skip it.
func openApp(cmd *cobra.Command, withAgent bool) (*app, error) {
	return openAppWithLogger(cmd, withAgent, newLogger())
}

func openAppWithLogger(cmd *cobra.Command, withAgent bool, log *slog.Logger) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.StatePath)
	if err != nil {
		return nil, err
	}

	session, err := store.Open(cmd.Context(), db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	kb, err := newKnowledgeBase(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	a := &app{cfg: cfg, db: db, log: log}
	var caller studio.AgentCaller
	if withAgent {
		adapter, err := llm.DetectBestAdapter(cfg.LLMConfig())
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create LLM adapter: %w", err)
		}
		a.agent = adapter
		caller = adapter
		log.Debug("using LLM", "adapter", adapter.Name(), "model", llm.ModelOf(adapter))
	}

	validator := knowledge.NewValidator(cfg.KnowledgeBase.MaxBytes)
	a.svc = studio.New(session, kb, validator, caller, cfg.StudioConfig(), log)
	return a, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn("failed to close state database", "error", err)
	}
}

// agentLabel names the adapter and model for progress lines.
func (a *app) agentLabel() string {
	if a.agent == nil {
		return ""
	}
	if m := llm.ModelOf(a.agent); m != "" {
		return m
	}
	return a.agent.Name()
}

func newKnowledgeBase(cfg *config.Config, db *sqlite.Store) (knowledge.Base, error) {
	if cfg.KnowledgeBase.URL == "" {
		return knowledge.NewLocalBase(db), nil
	}
	kb, err := knowledge.NewHTTPBase(knowledge.HTTPConfig{
		BaseURL: cfg.KnowledgeBase.URL,
		APIKey:  cfg.KnowledgeBase.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create knowledge base client: %w", err)
	}
	return kb, nil
}

// withTimeout bounds an agent workflow.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, llm.DefaultAgentTimeout)
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func printSuccess(format string, args ...any) {
	fmt.Println(tui.SuccessStyle.Render("✓") + " " + fmt.Sprintf(format, args...))
}
