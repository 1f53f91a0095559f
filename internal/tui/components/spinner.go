package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Spinner shows a long filesystem operation: the number of steps taken so
// far and the most recent one.
type Spinner struct {
	spinner spinner.Model
	message string
	steps   int
	last    string
	done    bool
	result  string
	err     error
}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return Spinner{spinner: s, message: message}
}

// StepMsg reports one completed step, such as "unlink ./tmp/a.txt".
type StepMsg struct {
	Detail string
}

// DoneMsg ends the spinner. A nil Err means success.
type DoneMsg struct {
	Result string
	Err    error
}

// Init implements tea.Model.
func (s Spinner) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update counts steps, animates ticks and records the outcome.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	switch msg := msg.(type) {
	case StepMsg:
		s.steps++
		s.last = msg.Detail
	case DoneMsg:
		s.done = true
		s.result = msg.Result
		s.err = msg.Err
	case spinner.TickMsg:
		if s.done {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View renders the progress line, or the outcome once done.
func (s Spinner) View() string {
	if s.done {
		if s.err != nil {
			return failureStyle.Render("✗ " + s.err.Error())
		}
		return successStyle.Render("✓ " + s.result)
	}

	line := s.spinner.View() + " " + messageStyle.Render(s.message)
	if s.steps > 0 {
		line += detailStyle.Render(fmt.Sprintf(" (%d) %s", s.steps, s.last))
	}
	return line
}

// IsDone returns true once a DoneMsg was received.
func (s Spinner) IsDone() bool {
	return s.done
}

// Steps returns how many StepMsg were received.
func (s Spinner) Steps() int {
	return s.steps
}

// Err returns the error of a failed operation.
func (s Spinner) Err() error {
	return s.err
}
