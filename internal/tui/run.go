package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/financeflow/internal/optimize"
)

// ErrCancelled is returned when the user quits before the pipeline finishes.
var ErrCancelled = errors.New("optimization cancelled")

// RunFunc runs one optimization, reporting transitions to observer.
type RunFunc func(ctx context.Context, observer optimize.Observer) optimize.Outcome

// Run shows the progress view while run executes and returns its outcome.
// Quitting the view cancels the context passed to run.
func Run(ctx context.Context, run RunFunc, opts ...Option) (optimize.Outcome, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}
	program := tea.NewProgram(newModel(cfg), programOpts...)

	done := make(chan optimize.Outcome, 1)
	go func() {
		outcome := run(ctx, func(s optimize.State) {
			program.Send(stateMsg{state: s})
		})
		done <- outcome
		program.Send(doneMsg{outcome: outcome})
	}()

	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return optimize.Outcome{}, fmt.Errorf("progress view failed: %w", err)
	}

	if m, ok := final.(Model); ok && m.cancelled {
		cancel()
		<-done
		return optimize.Outcome{}, ErrCancelled
	}

	return <-done, nil
}
