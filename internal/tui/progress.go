package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/agent"
)

// Stage describes one long-running agent call shown to the user.
type Stage struct {
	Name       string
	Model      string
	InputChars int
}

// StageResult is what a finished stage reports for the summary line.
type StageResult struct {
	OutputChars int
	Usage       *agent.Usage
}

type stageDoneMsg struct {
	result StageResult
	err    error
}

// stageModel is a Bubble Tea model that spins while a stage runs.
type stageModel struct {
	spinner spinner.Model
	stage   Stage
	start   time.Time
	done    bool
	result  StageResult
	err     error
}

func newStageModel(stage Stage) stageModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return stageModel{spinner: s, stage: stage, start: time.Now()}
}

// Init implements tea.Model.
func (m stageModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m stageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stageDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m stageModel) View() string {
	if m.done {
		return ""
	}
	elapsed := time.Since(m.start).Truncate(time.Second)
	return fmt.Sprintf("%s %s  %s  %s  ~%s input\n",
		m.spinner.View(),
		StageStyle.Render(m.stage.Name),
		ModelStyle.Render(m.stage.Model),
		HelpStyle.Render(elapsed.String()),
		FormatTokens(EstimateTokens(m.stage.InputChars)),
	)
}

// IsInteractive reports whether stderr is a terminal that can host a spinner.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RunStage runs fn while showing progress on stderr. Terminals get a spinner;
// anything else gets one line before and one after. The completion line is
// printed in both modes unless fn fails.
func RunStage(stage Stage, fn func() (StageResult, error)) error {
	return runStage(os.Stderr, IsInteractive(), stage, fn)
}

func runStage(w io.Writer, interactive bool, stage Stage, fn func() (StageResult, error)) error {
	start := time.Now()

	if !interactive {
		fmt.Fprintln(w, RenderStageStart(stage.Name, stage.Model, stage.InputChars))
		result, err := fn()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, RenderStageComplete(stage, result, time.Since(start)))
		return nil
	}

	p := tea.NewProgram(newStageModel(stage), tea.WithOutput(w), tea.WithInput(nil))

	var (
		result StageResult
		err    error
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		result, err = fn()
		p.Send(stageDoneMsg{result: result, err: err})
	}()

	// A program that fails to start only loses the spinner.
	_, _ = p.Run()
	<-finished

	if err != nil {
		return err
	}
	fmt.Fprintln(w, RenderStageComplete(stage, result, time.Since(start)))
	return nil
}

// RenderStageStart returns the line printed when a stage begins in
// non-interactive mode.
func RenderStageStart(name, model string, inputChars int) string {
	return fmt.Sprintf("%s %s  %s  ~%s input tokens",
		SpinnerStyle.Render("→"),
		StageStyle.Render(name),
		ModelStyle.Render(model),
		FormatTokens(EstimateTokens(inputChars)),
	)
}

// RenderStageComplete returns the line printed when a stage finishes.
// Reported token usage wins over the character estimate.
func RenderStageComplete(stage Stage, result StageResult, duration time.Duration) string {
	u := UsageOrEstimate(result.Usage, stage.InputChars, result.OutputChars)
	cost := PriceFor(stage.Model).Cost(u)

	prefix := "~"
	if result.Usage != nil {
		prefix = ""
	}

	return fmt.Sprintf("%s %s  %s  %s%s tokens  %s",
		SuccessStyle.Render("✓"),
		StageStyle.Render(stage.Name),
		HelpStyle.Render(duration.Truncate(time.Second).String()),
		prefix,
		FormatTokens(u.InputTokens+u.OutputTokens),
		CostStyle.Render(FormatCost(cost)),
	)
}
