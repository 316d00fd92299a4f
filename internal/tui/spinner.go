// internal/tui/spinner.go
// Package tui provides the terminal progress display shown while the
// designer's preview call is in flight.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// doneMsg signals that the wrapped operation has finished.
type doneMsg struct {
	err error
}

// waitModel is the Bubble Tea model rendering a spinner with elapsed time.
type waitModel struct {
	spinner spinner.Model
	message string
	start   time.Time
	err     error
}

func newWaitModel(message string) waitModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	return waitModel{
		spinner: s,
		message: message,
		start:   time.Now(),
	}
}

func (m waitModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m waitModel) View() string {
	elapsed := time.Since(m.start).Round(time.Second)
	return fmt.Sprintf("%s %s (%s)\n", m.spinner.View(), m.message, elapsed)
}

// WithSpinner runs fn while displaying an animated spinner and elapsed timer.
// When disabled (config flag, piped output), fn runs directly with no display.
// The error returned is fn's own.
func WithSpinner(disabled bool, message string, fn func() error) error {
	if disabled {
		return fn()
	}

	p := tea.NewProgram(newWaitModel(message))
	result := make(chan error, 1)
	go func() {
		err := fn()
		result <- err
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		// The progress display failing must not mask the operation itself.
		return <-result
	}
	return <-result
}
