// Package version checks for newer prd-ai releases and greets first-time
// users.
package version

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

const (
	// GitHubRepo is the repository for version checks.
	GitHubRepo = "Lyzr-Apps/prd-ai-amazing-zone-8xq5"

	// CheckInterval is how often to check for updates (24 hours).
	CheckInterval = 24 * time.Hour
)

// CheckResult holds the result of a version check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Checker looks up the latest release at most once per Interval.
type Checker struct {
	Repo     string
	APIBase  string
	StateDir string
	Interval time.Duration
	Client   *http.Client
}

// NewChecker returns a checker for the public repository that keeps its
// marker under ~/.prd-ai.
func NewChecker() *Checker {
	return &Checker{
		Repo:     GitHubRepo,
		APIBase:  "https://api.github.com",
		StateDir: StateDir(),
		Interval: CheckInterval,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// StateDir returns ~/.prd-ai, or "" when the home directory is unknown.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".prd-ai")
}

// CheckForUpdate checks with the default checker.
func CheckForUpdate(currentVersion string) *CheckResult {
	return NewChecker().Check(context.Background(), currentVersion)
}

// Check reports a newer release. It returns nil for dev builds, when the
// last check was recent and on any error.
func (c *Checker) Check(ctx context.Context, currentVersion string) *CheckResult {
	if currentVersion == "dev" || currentVersion == "" {
		return nil
	}
	if c.checkedRecently() {
		return nil
	}
	c.markChecked()

	tag, url, err := c.latestRelease(ctx)
	if err != nil {
		return nil
	}

	if !isNewerVersion(strings.TrimPrefix(tag, "v"), strings.TrimPrefix(currentVersion, "v")) {
		return nil
	}
	return &CheckResult{
		CurrentVersion:  currentVersion,
		LatestVersion:   tag,
		UpdateAvailable: true,
		ReleaseURL:      url,
	}
}

// PrintUpdateNotice prints a notice if an update is available.
func PrintUpdateNotice(result *CheckResult) {
	if result == nil || !result.UpdateAvailable {
		return
	}

	fmt.Println()
	fmt.Printf("%s A new version of prd-ai is available: %s (you have %s)\n",
		tui.WarningStyle.Render("!"),
		tui.SuccessStyle.Render(result.LatestVersion),
		result.CurrentVersion,
	)
	fmt.Printf("  Update: %s\n", tui.HelpStyle.Render("go install github.com/"+GitHubRepo+"@latest"))
	if result.ReleaseURL != "" {
		fmt.Printf("  Notes: %s\n", tui.HelpStyle.Render(result.ReleaseURL))
	}
	fmt.Println()
}

func (c *Checker) latestRelease(ctx context.Context) (tag, url string, err error) {
	endpoint := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimSuffix(c.APIBase, "/"), c.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", err
	}
	tag = gjson.GetBytes(body, "tag_name").String()
	if tag == "" {
		return "", "", fmt.Errorf("release has no tag")
	}
	return tag, gjson.GetBytes(body, "html_url").String(), nil
}

func (c *Checker) markerPath() string {
	if c.StateDir == "" {
		return ""
	}
	return filepath.Join(c.StateDir, ".last-update-check")
}

func (c *Checker) checkedRecently() bool {
	path := c.markerPath()
	if path == "" {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < c.Interval
}

func (c *Checker) markChecked() {
	path := c.markerPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = os.WriteFile(path, []byte{}, 0644)
	} else {
		now := time.Now()
		_ = os.Chtimes(path, now, now)
	}
}

// isNewerVersion returns true if latest is newer than current.
// Simple comparison: splits by dots and compares numerically.
func isNewerVersion(latest, current string) bool {
	latestParts := strings.Split(latest, ".")
	currentParts := strings.Split(current, ".")

	for i := 0; i < len(latestParts) && i < len(currentParts); i++ {
		l := parseVersionPart(latestParts[i])
		c := parseVersionPart(currentParts[i])

		if l > c {
			return true
		}
		if l < c {
			return false
		}
	}

	// If all compared parts are equal, longer version is newer
	return len(latestParts) > len(currentParts)
}

// parseVersionPart extracts a number from a version part (e.g., "1" from "1-beta").
func parseVersionPart(s string) int {
	var n int
	_, _ = fmt.Sscanf(s, "%d", &n)
	return n
}
