package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

var clearState bool

// SampleCmd represents the sample command.
var SampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Load demonstration data, or clear everything",
	Long: `Replace the library with three sample reference documents, one sample
PRD and their activity. With --clear the library is emptied instead.

Sample documents are not added to the knowledge base, so they are never
quoted as references.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if clearState {
			if err := a.svc.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Library cleared")
			return nil
		}

		if err := a.svc.LoadSample(cmd.Context()); err != nil {
			return err
		}
		d := a.svc.Dashboard()
		printSuccess("Loaded %d sample documents and %d PRD", d.Documents, d.PRDs)
		fmt.Printf("  %s\n", tui.HelpStyle.Render("Try 'prd-ai dashboard' or 'prd-ai prds list'"))
		return nil
	},
}

func init() {
	SampleCmd.Flags().BoolVar(&clearState, "clear", false, "Remove all documents, PRDs and activity")
}
