package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

var activityLimit int

// ActivityCmd represents the activity command.
var ActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent uploads and generations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		entries := a.svc.Activity()
		if activityLimit > 0 && len(entries) > activityLimit {
			entries = entries[:activityLimit]
		}
		if len(entries) == 0 {
			fmt.Println(tui.HelpStyle.Render("No activity yet."))
			return nil
		}
		printActivity(entries)
		return nil
	},
}

// DashboardCmd represents the dashboard command.
var DashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Summarize the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		d := a.svc.Dashboard()
		avg := "-"
		if d.AvgReferenceDocs != nil {
			avg = fmt.Sprintf("%d", *d.AvgReferenceDocs)
		}

		stats := fmt.Sprintf("Documents: %s   Starred: %s   PRDs: %s   Avg. references: %s",
			tui.SelectedStyle.Render(fmt.Sprintf("%d", d.Documents)),
			tui.WarningStyle.Render(fmt.Sprintf("%d", d.Starred)),
			tui.SelectedStyle.Render(fmt.Sprintf("%d", d.PRDs)),
			tui.CostStyle.Render(avg),
		)
		fmt.Println(tui.HighlightBoxStyle.Render(tui.TitleStyle.Render("PRD Studio") + "\n\n" + stats))

		if len(d.RecentActivity) > 0 {
			fmt.Println()
			fmt.Println(tui.SubtitleStyle.Render("Recent activity"))
			printActivity(d.RecentActivity)
		}
		return nil
	},
}

func printActivity(entries []core.ActivityEntry) {
	for _, e := range entries {
		icon := tui.ModelStyle.Render("↑")
		verb := "Uploaded"
		if e.Kind == core.ActivityGeneration {
			icon = tui.SuccessStyle.Render("✦")
			verb = "Generated"
		}
		fmt.Printf("  %s %s %s  %s\n", icon, verb, e.Title, tui.HelpStyle.Render(ago(e.Timestamp)))
	}
}

func init() {
	ActivityCmd.Flags().IntVarP(&activityLimit, "limit", "n", 20, "Maximum entries to show (0 for all)")
}
