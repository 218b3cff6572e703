package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/tenderlogic-cli/internal/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type phaseMsg progress.Snapshot

type operationDoneMsg struct {
	err error
}

type phaseModel struct {
	spinner  spinner.Model
	title    string
	snapshot progress.Snapshot
	run      tea.Cmd
	err      error
	done     bool
}

var phaseCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

func newPhaseModel(title string, run tea.Cmd) phaseModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return phaseModel{
		spinner: s,
		title:   title,
		run:     run,
	}
}

func (m phaseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m phaseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case phaseMsg:
		m.snapshot = progress.Snapshot(msg)
		return m, nil
	case operationDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m phaseModel) View() string {
	if m.done {
		return ""
	}
	if m.snapshot.Total == 0 {
		return fmt.Sprintf("%s %s...", m.spinner.View(), m.title)
	}

	return fmt.Sprintf("%s %s: %s... %s",
		m.spinner.View(),
		m.title,
		m.snapshot.Phase.Label,
		phaseCountStyle.Render(fmt.Sprintf("(%d/%d)", m.snapshot.Index+1, m.snapshot.Total)),
	)
}

// runWithPhases shows the operation's current phase on output until run
// returns. Observer calls are forwarded to the view as they happen.
func runWithPhases(ctx context.Context, output io.Writer, title string, run func(context.Context, progress.Observer) error) error {
	var p *tea.Program
	observer := func(snapshot progress.Snapshot) {
		p.Send(phaseMsg(snapshot))
	}
	runCmd := func() tea.Msg {
		return operationDoneMsg{err: run(ctx, observer)}
	}

	p = tea.NewProgram(
		newPhaseModel(title, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(phaseModel)
	if !ok {
		return fmt.Errorf("unexpected final phase model type %T", finalModel)
	}

	return result.err
}
