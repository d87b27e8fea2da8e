package tui

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the CLI and the markdown painter.
var (
	ColorPrimary = lipgloss.Color("#9b59b6") // Purple
	ColorAccent  = lipgloss.Color("#27ae60") // Green
	ColorMuted   = lipgloss.Color("#95a5a6") // Gray
	ColorStar    = lipgloss.Color("#f39c12") // Amber
	ColorError   = lipgloss.Color("#e74c3c") // Red
	ColorInfo    = lipgloss.Color("#3498db") // Blue
	ColorSuccess = lipgloss.Color("#2ecc71") // Bright green
)

// Text styles.
var (
	// TitleStyle for document and PRD titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle for section headings in detail views.
	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// WarningStyle is shared by warnings and the starred marker.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorStar)

	// SelectedStyle highlights the primary column of a listing and the
	// cursor row of the setup wizard.
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// HelpStyle for ids, timestamps and hints.
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	// ModelStyle for model names and classification tags.
	ModelStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	// CostStyle for costs and custom tags.
	CostStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// StageStyle for agent stage names and outline headings.
	StageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)
)

// Markdown styles used by PaintMarkdown.
var (
	h1Style    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	h2Style    = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	h3Style    = lipgloss.NewStyle().Bold(true)
	quoteStyle = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)
	boldStyle  = lipgloss.NewStyle().Bold(true)
	emStyle    = lipgloss.NewStyle().Italic(true)
)

// HighlightBoxStyle frames the dashboard.
var HighlightBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorPrimary).
	Padding(1, 2)
