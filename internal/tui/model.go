// Package tui shows the progress of a budget optimization in the terminal.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/financeflow/internal/optimize"
)

// stateMsg reports that the pipeline entered a new state.
type stateMsg struct {
	state optimize.State
}

// doneMsg carries the pipeline's outcome.
type doneMsg struct {
	outcome optimize.Outcome
}

// steps are the non-terminal states shown as a checklist.
var steps = []struct {
	state optimize.State
	label string
}{
	{optimize.StateBuilding, "Checking spending and goals"},
	{optimize.StateInvoking, "Asking the model for a budget"},
	{optimize.StateValidating, "Validating the suggestion"},
}

// Model is the bubbletea model of the progress view.
type Model struct {
	theme     Theme
	keymap    KeyMap
	spinner   spinner.Model
	startTime time.Time
	title     string
	outcome   *optimize.Outcome
	state     optimize.State
	cancelled bool
}

func newModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cfg.Theme.Spinner

	return Model{
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		spinner:   s,
		startTime: time.Now(),
		title:     cfg.Title,
		state:     optimize.StateIdle,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.cancelled = true
			return m, tea.Quit
		}

	case stateMsg:
		m.state = msg.state

	case doneMsg:
		outcome := msg.outcome
		m.outcome = &outcome
		m.state = outcome.State
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the checklist of pipeline steps.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.title))
	b.WriteByte('\n')

	for _, step := range steps {
		b.WriteString(m.renderStep(step.state, step.label))
		b.WriteByte('\n')
	}

	switch {
	case m.cancelled:
		b.WriteString(m.theme.StatusError.Render("Cancelled"))
	case m.state == optimize.StateSucceeded:
		b.WriteString(m.theme.StatusSuccess.Render("Done"))
	case m.state == optimize.StateFailed:
		b.WriteString(m.theme.StatusError.Render("Failed"))
	default:
		elapsed := time.Since(m.startTime).Truncate(time.Second)
		b.WriteString(m.theme.Muted.Render(elapsed.String() + " elapsed, q to cancel"))
	}

	return m.theme.Box.Render(b.String()) + "\n"
}

func (m Model) renderStep(state optimize.State, label string) string {
	switch {
	case m.state == optimize.StateSucceeded || (m.state != optimize.StateFailed && m.state > state):
		return m.theme.StepDone.Render("✓ " + label)
	case m.state == state:
		return m.spinner.View() + " " + m.theme.StepActive.Render(label)
	case m.state == optimize.StateFailed && m.failedAt() == state:
		return m.theme.StatusError.Render("✗ " + label)
	default:
		return m.theme.StepPending.Render("  " + label)
	}
}

// failedAt is the step the pipeline failed in, derived from the error kind.
func (m Model) failedAt() optimize.State {
	if m.outcome == nil {
		return optimize.StateIdle
	}
	switch optimize.KindOf(m.outcome.Err) {
	case optimize.KindEmptySpending, optimize.KindEmptyGoals:
		return optimize.StateBuilding
	case optimize.KindInvocationFailed:
		return optimize.StateInvoking
	case optimize.KindSchemaMismatch:
		return optimize.StateValidating
	default:
		return optimize.StateIdle
	}
}
