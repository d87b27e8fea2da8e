package version

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

// IsFirstRun reports whether neither the config file at configPath nor the
// first-run marker in stateDir exists.
func IsFirstRun(configPath, stateDir string) bool {
	if stateDir == "" {
		return false
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return false
		}
	}
	if _, err := os.Stat(filepath.Join(stateDir, ".initialized")); err == nil {
		return false
	}
	return true
}

// MarkInitialized creates the first-run marker.
func MarkInitialized(stateDir string) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(stateDir, ".initialized"), []byte{}, 0644)
}

// PrintFirstRunNotice prints a welcome message for first-time users and
// records that it was shown.
func PrintFirstRunNotice(stateDir string) {
	fmt.Println()
	fmt.Printf("%s Welcome to prd-ai!\n", tui.TitleStyle.Render("*"))
	fmt.Println()
	fmt.Println("  Quick start:")
	fmt.Printf("    1. Run %s to pick a provider and your defaults\n", tui.ModelStyle.Render("prd-ai setup"))
	fmt.Printf("    2. Add a reference PRD: %s\n", tui.ModelStyle.Render("prd-ai upload docs/checkout-prd.pdf"))
	fmt.Printf("    3. Generate a new one: %s\n", tui.ModelStyle.Render(`prd-ai generate --name "Atlas" --industry SaaS`))
	fmt.Println()
	fmt.Printf("  %s\n", tui.HelpStyle.Render("Run 'prd-ai sample' to explore with demo data, or 'prd-ai --help' for all commands"))
	fmt.Println()

	MarkInitialized(stateDir)
}
