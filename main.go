package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/cmd"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/config"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/version"
)

var appVersion = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "prd-ai",
		Short: "Learn from your PRDs and generate new ones with AI agents",
		Long: `prd-ai keeps a library of reference PRDs, profiles each one with an
ingestion agent and generates new PRDs in the same style with a generation
agent.`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			if c.Name() == "serve" || c.Name() == "setup" {
				return
			}
			if version.IsFirstRun(config.Find(""), version.StateDir()) {
				version.PrintFirstRunNotice(version.StateDir())
			}
		},
		PersistentPostRun: func(c *cobra.Command, args []string) {
			if c.Name() == "serve" {
				return
			}
			version.PrintUpdateNotice(version.CheckForUpdate(appVersion))
		},
	}

	cmd.RegisterGlobalFlags(rootCmd)
	rootCmd.AddCommand(
		cmd.UploadCmd,
		cmd.GenerateCmd,
		cmd.DocsCmd,
		cmd.PRDsCmd,
		cmd.RenderCmd,
		cmd.ActivityCmd,
		cmd.DashboardCmd,
		cmd.SampleCmd,
		cmd.SetupCmd,
		cmd.ServeCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
