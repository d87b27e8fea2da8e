package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/markdown"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

var renderHTML bool

// RenderCmd represents the render command.
var RenderCmd = &cobra.Command{
	Use:   "render <file.md>",
	Short: "Render a Markdown file for the terminal or as HTML",
	Long: `Render a Markdown PRD. Without --html it is painted for the terminal;
with --html a standalone page is written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		md := string(data)

		if !renderHTML {
			fmt.Println(tui.PaintMarkdown(md))
			return nil
		}

		title := core.FileStem(filepath.Base(args[0]))
		for _, l := range markdown.RenderLines(md) {
			if l.Kind == markdown.Heading && l.Level == 1 {
				title = strings.TrimSpace(l.Text())
				break
			}
		}
		fmt.Print(markdown.Document(title, markdown.ToHTML(md)))
		return nil
	},
}

func init() {
	RenderCmd.Flags().BoolVar(&renderHTML, "html", false, "Write a standalone HTML page")
}
