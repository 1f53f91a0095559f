package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/fsx/internal/tui/components"
)

// Task is a unit of long-running work shown behind a spinner. It calls step
// for every filesystem step it takes and returns a one-line summary.
type Task func(step func(detail string)) (string, error)

// spinnerModel drives a components.Spinner until its task finishes.
type spinnerModel struct {
	spinner components.Spinner
	run     func() tea.Msg
}

func newSpinnerModel(message string, task Task, step func(string)) spinnerModel {
	return spinnerModel{
		spinner: components.NewSpinner(message),
		run: func() tea.Msg {
			result, err := task(step)
			return components.DoneMsg{Result: result, Err: err}
		},
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), m.run)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.spinner.IsDone() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m spinnerModel) View() string {
	return m.spinner.View() + "\n"
}

// RunWithSpinner runs task, showing a spinner on stderr when interactive.
// In non-interactive mode the task runs silently.
func RunWithSpinner(ctx context.Context, message string, task Task) error {
	if !IsInteractive() {
		_, err := task(func(string) {})
		return err
	}
	return runSpinner(ctx, nil, os.Stderr, message, task)
}

func runSpinner(ctx context.Context, in io.Reader, out io.Writer, message string, task Task) error {
	var program *tea.Program
	step := func(detail string) {
		program.Send(components.StepMsg{Detail: detail})
	}

	program = tea.NewProgram(
		newSpinnerModel(message, task, step),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("spinner: %w", err)
	}
	m, ok := final.(spinnerModel)
	if !ok {
		return fmt.Errorf("spinner: unexpected model %T", final)
	}
	return m.spinner.Err()
}
