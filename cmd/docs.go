package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

var (
	docQuery    string
	docIndustry string
	docStarred  bool
)

// DocsCmd groups the document library commands.
var DocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Browse and manage uploaded reference documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		docs := a.svc.Documents(core.DocumentFilter{Query: docQuery, Industry: docIndustry, StarredOnly: docStarred})
		if len(docs) == 0 {
			fmt.Println(tui.HelpStyle.Render("No documents match. Upload one with 'prd-ai upload <file>'."))
			return nil
		}
		for _, d := range docs {
			star := " "
			if d.Starred {
				star = tui.WarningStyle.Render("★")
			}
			fmt.Printf("%s %s  %s  %s  %s\n",
				star,
				tui.HelpStyle.Render(d.ID),
				tui.SelectedStyle.Render(d.DocumentTitle),
				tui.ModelStyle.Render(d.SuggestedTags.Industry),
				tui.HelpStyle.Render(ago(d.UploadedAt)),
			)
		}
		return nil
	},
}

var docsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a document profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.svc.Document(args[0])
		if err != nil {
			return err
		}

		fmt.Println(tui.TitleStyle.Render(d.DocumentTitle))
		fmt.Printf("  File:       %s (uploaded %s)\n", d.FileName, ago(d.UploadedAt))
		fmt.Printf("  Industry:   %s\n", d.SuggestedTags.Industry)
		fmt.Printf("  Type:       %s\n", d.SuggestedTags.ProductType)
		fmt.Printf("  Complexity: %s\n", d.SuggestedTags.Complexity)
		fmt.Printf("  Structure:  %s\n", d.SuggestedTags.StructuralType)
		if len(d.KPIFrameworks) > 0 {
			fmt.Printf("  KPIs:       %s\n", strings.Join(d.KPIFrameworks, ", "))
		}
		if d.FormattingPatterns.Tone != "" || d.FormattingPatterns.Style != "" {
			fmt.Printf("  Style:      %s / %s\n", d.FormattingPatterns.Tone, d.FormattingPatterns.Style)
		}
		if len(d.CustomTags) > 0 {
			fmt.Printf("  Tags:       %s\n", tui.CostStyle.Render(strings.Join(d.CustomTags, ", ")))
		}
		if d.ContentSummary != "" {
			fmt.Println()
			fmt.Println("  " + d.ContentSummary)
		}
		if len(d.Sections) > 0 {
			fmt.Println()
			fmt.Println(tui.SubtitleStyle.Render("Sections"))
			for _, s := range d.Sections {
				indent := strings.Repeat("  ", max(s.Level, 1))
				fmt.Printf("%s%s", indent, tui.StageStyle.Render(s.Heading))
				if s.Summary != "" {
					fmt.Printf("  %s", tui.HelpStyle.Render(s.Summary))
				}
				fmt.Println()
			}
		}
		return nil
	},
}

var docsStarCmd = &cobra.Command{
	Use:   "star <id>",
	Short: "Star or unstar a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.svc.ToggleStar(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if d.Starred {
			printSuccess("Starred %s", d.DocumentTitle)
		} else {
			printSuccess("Unstarred %s", d.DocumentTitle)
		}
		return nil
	},
}

var docsTagCmd = &cobra.Command{
	Use:   "tag <id> <tag>",
	Short: "Add a custom tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.svc.AddTag(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		printSuccess("%s tags: %s", d.DocumentTitle, strings.Join(d.CustomTags, ", "))
		return nil
	},
}

var docsUntagCmd = &cobra.Command{
	Use:   "untag <id> <tag>",
	Short: "Remove a custom tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.svc.RemoveTag(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		printSuccess("Removed %q from %s", args[1], d.DocumentTitle)
		return nil
	},
}

var docsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a document from the library and the knowledge base",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.svc.DeleteDocument(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSuccess("Deleted %s", d.DocumentTitle)
		return nil
	},
}

func init() {
	docsListCmd.Flags().StringVarP(&docQuery, "query", "q", "", "Match title or file name")
	docsListCmd.Flags().StringVarP(&docIndustry, "industry", "i", "", "Filter by industry tag")
	docsListCmd.Flags().BoolVar(&docStarred, "starred", false, "Only starred documents")

	DocsCmd.AddCommand(docsListCmd, docsShowCmd, docsStarCmd, docsTagCmd, docsUntagCmd, docsRmCmd)
}
