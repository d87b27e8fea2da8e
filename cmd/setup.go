package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/config"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/llm"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/tui"
)

var resetConfig bool

// SetupCmd represents the setup command.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Long: `Configure prd-ai with an interactive wizard.

The wizard asks for:
- Provider: which agent backend answers (hosted agents, Claude, Codex, APIs)
- Model: the model a local provider should run
- Industry, product type and detail level: defaults for 'prd-ai generate'

Configuration is saved to ~/.prd-ai.yaml (or the --config path).`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	SetupCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to defaults")
}

func setupPath() string {
	if configFile != "" {
		return configFile
	}
	return config.UserPath()
}

func runSetup(cmd *cobra.Command, args []string) error {
	configPath := setupPath()

	if resetConfig {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		printSuccess("Configuration reset to defaults")
		fmt.Printf("  Removed: %s\n", configPath)
		return nil
	}

	cfg := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	p := tea.NewProgram(newSetupModel(setupSteps(cfg.LLMConfig())))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	final := m.(setupModel)
	if final.cancelled {
		fmt.Println("Setup cancelled")
		return nil
	}

	cfg.Provider = final.selected[stepProvider]
	cfg.Model = final.selected[stepModel]
	cfg.Defaults.Industry = final.selected[stepIndustry]
	cfg.Defaults.ProductType = final.selected[stepProductType]
	cfg.Defaults.DetailLevel = final.selected[stepDetail]

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "provider default"
	}

	fmt.Println()
	printSuccess("Configuration saved to %s", configPath)
	fmt.Println()
	fmt.Printf("  Provider: %s\n", tui.ModelStyle.Render(cfg.Provider))
	fmt.Printf("  Model:    %s\n", tui.ModelStyle.Render(model))
	fmt.Printf("  Defaults: %s · %s · %s\n", cfg.Defaults.Industry, cfg.Defaults.ProductType, cfg.Defaults.DetailLevel)
	return nil
}

const (
	stepProvider = iota
	stepModel
	stepIndustry
	stepProductType
	stepDetail
)

var stepNames = []string{"Provider", "Model", "Industry", "Type", "Detail"}

type choiceItem struct {
	title string
	desc  string
	value string
}

func (c choiceItem) Title() string       { return c.title }
func (c choiceItem) Description() string { return c.desc }
func (c choiceItem) FilterValue() string { return c.title }

type setupStep struct {
	title string
	items []list.Item
}

var providerDescriptions = map[string]string{
	llm.ProviderAuto:      "Detect the best available backend on each run",
	llm.ProviderAgentAPI:  "Hosted ingestion and generation agents (agent_api.url)",
	llm.ProviderClaudeCLI: "Claude Code CLI, already authenticated",
	llm.ProviderCodexCLI:  "Codex CLI, already authenticated",
	llm.ProviderAnthropic: "Anthropic API (ANTHROPIC_API_KEY)",
	llm.ProviderOpenAI:    "OpenAI API (OPENAI_API_KEY)",
}

func setupSteps(lc llm.Config) []setupStep {
	available := map[string]bool{}
	for _, name := range llm.ListAvailableAdapters(lc) {
		available[name] = true
	}

	providers := []list.Item{choiceItem{title: llm.ProviderAuto, desc: providerDescriptions[llm.ProviderAuto], value: llm.ProviderAuto}}
	for _, name := range llm.Providers {
		desc := providerDescriptions[name]
		if !available[name] {
			desc += " (not detected)"
		}
		providers = append(providers, choiceItem{title: name, desc: desc, value: name})
	}

	models := []list.Item{choiceItem{title: "Provider default", desc: "Let the provider choose", value: ""}}
	for _, m := range llm.AllModels(lc) {
		models = append(models, choiceItem{title: m.Name, desc: m.Description, value: m.ID})
	}

	return []setupStep{
		{title: "Select Provider", items: providers},
		{title: "Select Model", items: models},
		{title: "Default Industry", items: plainChoices(core.Industries)},
		{title: "Default Product Type", items: plainChoices(core.ProductTypes)},
		{title: "Default Detail Level", items: plainChoices(core.DetailLevels)},
	}
}

func plainChoices(values []string) []list.Item {
	items := make([]list.Item, len(values))
	for i, v := range values {
		items[i] = choiceItem{title: v, value: v}
	}
	return items
}

// Bubble Tea model for the setup wizard

type setupModel struct {
	step      int
	lists     []list.Model
	selected  []string
	cancelled bool
}

func newSetupModel(steps []setupStep) setupModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(tui.ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(tui.ColorMuted)

	lists := make([]list.Model, len(steps))
	for i, s := range steps {
		l := list.New(s.items, delegate, 60, 14)
		l.Title = s.title
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.Styles.Title = tui.TitleStyle
		lists[i] = l
	}

	return setupModel{
		lists:    lists,
		selected: make([]string, len(steps)),
	}
}

func (m setupModel) Init() tea.Cmd {
	return nil
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for i := range m.lists {
			m.lists[i].SetWidth(msg.Width)
			m.lists[i].SetHeight(msg.Height - 4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.lists[m.step].SelectedItem().(choiceItem); ok {
				m.selected[m.step] = item.value
			}

			m.step++
			if m.step >= len(m.lists) {
				return m, tea.Quit
			}
			return m, nil

		case "left", "h":
			if m.step > 0 {
				m.step--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lists[m.step], cmd = m.lists[m.step].Update(msg)
	return m, cmd
}

func (m setupModel) View() string {
	if m.cancelled || m.step >= len(m.lists) {
		return ""
	}

	progress := "\n  "
	for i, s := range stepNames[:len(m.lists)] {
		switch {
		case i == m.step:
			progress += tui.SelectedStyle.Render(fmt.Sprintf("[%s]", s))
		case i < m.step:
			progress += tui.SuccessStyle.Render(fmt.Sprintf("✓ %s", s))
		default:
			progress += tui.UnselectedStyle.Render(fmt.Sprintf("○ %s", s))
		}
		if i < len(m.lists)-1 {
			progress += " → "
		}
	}
	progress += "\n\n"

	help := tui.HelpStyle.Render("\n  ↑/↓: navigate • enter: select • ←: back • q: quit")

	return progress + m.lists[m.step].View() + help
}
