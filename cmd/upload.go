package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/studio"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

// UploadCmd represents the upload command.
var UploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Add reference PRDs to the knowledge base",
	Long: `Upload one or more reference PRDs (PDF, DOCX, TXT or Markdown).

Each file is validated, added to the knowledge base and profiled by the
ingestion agent: title, sections, industry and type tags, KPI frameworks
and writing style. Files are processed one at a time; a failure stops the
run and leaves earlier uploads in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, path := range args {
		ctx, cancel := withTimeout(cmd.Context())

		var out *studio.UploadOutcome
		stage := tui.Stage{Name: "Analyzing " + filepath.Base(path), Model: a.agentLabel()}
		err := tui.RunStage(stage, func() (tui.StageResult, error) {
			var err error
			out, err = a.svc.Upload(ctx, path)
			return tui.StageResult{}, err
		})
		cancel()
		if err != nil {
			return fmt.Errorf("upload %s failed: %w", path, err)
		}

		printUploadOutcome(out)
	}
	return nil
}

func printUploadOutcome(out *studio.UploadOutcome) {
	doc := out.Document
	fmt.Println()
	fmt.Println(tui.TitleStyle.Render(doc.DocumentTitle))
	fmt.Printf("  ID:       %s\n", doc.ID)
	fmt.Printf("  File:     %s\n", doc.FileName)

	tags := []string{}
	for _, t := range []string{doc.SuggestedTags.Industry, doc.SuggestedTags.ProductType, doc.SuggestedTags.Complexity, doc.SuggestedTags.StructuralType} {
		if t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > 0 {
		fmt.Printf("  Tags:     %s\n", tui.ModelStyle.Render(strings.Join(tags, " · ")))
	}
	fmt.Printf("  Sections: %d\n", len(doc.Sections))
	if len(doc.KPIFrameworks) > 0 {
		fmt.Printf("  KPIs:     %s\n", strings.Join(doc.KPIFrameworks, ", "))
	}
	if doc.ContentSummary != "" {
		fmt.Printf("  %s\n", tui.HelpStyle.Render(doc.ContentSummary))
	}

	switch out.Status {
	case core.AnalysisPartial:
		fmt.Printf("%s Only a partial profile could be recovered from the agent's answer\n", tui.WarningStyle.Render("!"))
	case core.AnalysisFailed:
		fmt.Printf("%s Document analysis failed; it was added with a basic profile\n", tui.WarningStyle.Render("!"))
	}
}
