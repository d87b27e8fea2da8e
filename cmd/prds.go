package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/output"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

var (
	showRaw      bool
	prdExportDir string
	prdFormat    string
	prdDryRun    bool
)

// PRDsCmd groups the generated PRD commands.
var PRDsCmd = &cobra.Command{
	Use:   "prds",
	Short: "Browse, export and delete generated PRDs",
}

var prdsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated PRDs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		prds := a.svc.PRDs()
		if len(prds) == 0 {
			fmt.Println(tui.HelpStyle.Render("No PRDs yet. Create one with 'prd-ai generate'."))
			return nil
		}
		for _, p := range prds {
			fmt.Printf("%s  %s  %s  %s\n",
				tui.HelpStyle.Render(p.ID),
				tui.SelectedStyle.Render(p.Title),
				tui.ModelStyle.Render(fmt.Sprintf("%d words", p.Metadata.WordCount)),
				tui.HelpStyle.Render(ago(p.CreatedAt)),
			)
		}
		return nil
	},
}

var prdsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a PRD",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.svc.PRD(args[0])
		if err != nil {
			return err
		}
		body := core.DownloadableMarkdown(p)
		if showRaw {
			fmt.Println(body)
			return nil
		}
		fmt.Println(tui.PaintMarkdown(body))
		return nil
	},
}

var prdsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a PRD to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := output.ForFormat(prdFormat)
		if err != nil {
			return err
		}

		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.svc.PRD(args[0])
		if err != nil {
			return err
		}
		w, err := output.Write(exporter, p, output.Config{OutputDir: prdExportDir, DryRun: prdDryRun})
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if !prdDryRun {
			printSuccess("Wrote %s", w.Path)
		}
		return nil
	},
}

var prdsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a PRD",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.svc.DeletePRD(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSuccess("Deleted %s", p.Title)
		return nil
	},
}

func init() {
	prdsShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the Markdown source")

	prdsExportCmd.Flags().StringVarP(&prdExportDir, "dir", "o", ".", "Output directory")
	prdsExportCmd.Flags().StringVarP(&prdFormat, "format", "f", "md", "Export format (md/html/json)")
	prdsExportCmd.Flags().BoolVar(&prdDryRun, "dry-run", false, "Preview without writing files")

	PRDsCmd.AddCommand(prdsListCmd, prdsShowCmd, prdsExportCmd, prdsRmCmd)
}
