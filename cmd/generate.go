package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/output"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/studio"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

var (
	productName      string
	industry         string
	productType      string
	detailLevel      string
	problemStatement string
	emphasis         []string
	exportDir        string
	exportFormat     string
	printBody        bool
	dryRun           bool
)

// GenerateCmd represents the generate command.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new PRD",
	Long: `Generate a Product Requirements Document with the generation agent.

Up to three library documents, starred ones first, are quoted as references
so the new PRD follows the structure of your existing ones.

Examples:
  prd-ai generate --name "Atlas" --industry SaaS
  prd-ai generate -n "Claims Portal" -i Healthcare --detail Comprehensive \
    --emphasis "Risk Analysis" --emphasis "Timeline" --export-dir docs/`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&productName, "name", "n", "", "Product name (required)")
	GenerateCmd.Flags().StringVarP(&industry, "industry", "i", "", "Industry ("+strings.Join(core.Industries, "/")+")")
	GenerateCmd.Flags().StringVarP(&productType, "type", "t", "", "Product type ("+strings.Join(core.ProductTypes, "/")+")")
	GenerateCmd.Flags().StringVarP(&detailLevel, "detail", "d", "", "Detail level ("+strings.Join(core.DetailLevels, "/")+")")
	GenerateCmd.Flags().StringVarP(&problemStatement, "problem", "p", "", "Problem statement")
	GenerateCmd.Flags().StringArrayVarP(&emphasis, "emphasis", "e", nil, "Section to emphasize (repeatable)")

	GenerateCmd.Flags().StringVar(&exportDir, "export-dir", "", "Write the PRD to this directory")
	GenerateCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format ("+strings.Join(output.Formats, "/")+")")
	GenerateCmd.Flags().BoolVar(&printBody, "print", false, "Print the PRD to the terminal")
	GenerateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the export without writing files")
}

// generateRequest starts from the configured defaults and applies the flags
// that were set.
func generateRequest(cmd *cobra.Command, defaults core.GenerateRequest) core.GenerateRequest {
	req := defaults
	if cmd.Flags().Changed("name") {
		req.ProductName = productName
	}
	if cmd.Flags().Changed("industry") {
		req.Industry = industry
	}
	if cmd.Flags().Changed("type") {
		req.ProductType = productType
	}
	if cmd.Flags().Changed("detail") {
		req.DetailLevel = detailLevel
	}
	if cmd.Flags().Changed("problem") {
		req.ProblemStatement = problemStatement
	}
	if cmd.Flags().Changed("emphasis") {
		req.Emphasis = emphasis
	}
	return req.Normalized()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var exporter output.Adapter
	if exportDir != "" {
		var err error
		if exporter, err = output.ForFormat(exportFormat); err != nil {
			return err
		}
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	req := generateRequest(cmd, a.cfg.Defaults)
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	var out *studio.GenerateOutcome
	stage := tui.Stage{
		Name:       "Generating PRD for " + req.ProductName,
		Model:      a.agentLabel(),
		InputChars: len(core.BuildGenerationPrompt(req, nil)),
	}
	err = tui.RunStage(stage, func() (tui.StageResult, error) {
		var err error
		out, err = a.svc.Generate(ctx, req)
		if err != nil {
			return tui.StageResult{}, err
		}
		return tui.StageResult{OutputChars: out.ResponseChars, Usage: out.Usage}, nil
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	p := out.PRD
	fmt.Println()
	fmt.Println(tui.TitleStyle.Render(p.Title))
	fmt.Printf("  ID:       %s\n", p.ID)
	fmt.Printf("  Profile:  %s · %s · %s\n", p.Industry, p.ProductType, p.DetailLevel)
	fmt.Printf("  Words:    %d\n", p.Metadata.WordCount)
	fmt.Printf("  Sections: %d\n", len(p.Sections))
	for _, s := range p.Sections {
		fmt.Printf("    %s %s\n", tui.HelpStyle.Render("#"+s.Anchor), s.Title)
	}

	if printBody {
		fmt.Println()
		fmt.Println(tui.PaintMarkdown(core.DownloadableMarkdown(p)))
	}

	if exporter != nil {
		w, err := output.Write(exporter, p, output.Config{OutputDir: exportDir, DryRun: dryRun})
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if !dryRun {
			printSuccess("Wrote %s", w.Path)
		}
	}
	return nil
}
