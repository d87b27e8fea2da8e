package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/llm"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/server"
)

var serveAddr string

// ServeCmd represents the serve command.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the studio over HTTP",
	Long: `Serve the document library and PRD generation as a JSON API.

Only one upload and one generation run at a time; concurrent requests of
the same kind get 409 Conflict.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	a, err := openAppWithLogger(cmd, true, log)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := server.DefaultConfig()
	cfg.Addr = a.cfg.Server.Addr
	if cmd.Flags().Changed("addr") && serveAddr != "" {
		cfg.Addr = serveAddr
	}
	cfg.MaxUploadBytes = a.cfg.KnowledgeBase.MaxBytes + 1<<20
	cfg.Defaults = a.cfg.Defaults

	log.Info("starting server",
		"addr", cfg.Addr,
		"state", a.cfg.StatePath,
		"llm", a.agent.Name(),
		"model", llm.ModelOf(a.agent),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(a.svc, cfg, log).Run(ctx)
}
