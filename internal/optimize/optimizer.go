package optimize

import (
	"context"

	"github.com/Veraticus/financeflow/internal/llm"
	"github.com/Veraticus/financeflow/internal/model"
)

// State is a step of one optimization call.
type State int

// Pipeline states. Succeeded and Failed are terminal.
const (
	StateIdle State = iota
	StateBuilding
	StateInvoking
	StateValidating
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateInvoking:
		return "invoking"
	case StateValidating:
		return "validating"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Outcome is the terminal state of one optimization call.
// Result is set when State is StateSucceeded, Err when it is StateFailed.
type Outcome struct {
	Err    error
	Result model.OptimizationResult
	State  State
}

// Observer is notified of every state a call enters.
type Observer func(State)

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithObserver registers fn to receive state transitions.
func WithObserver(fn Observer) Option {
	return func(o *Optimizer) {
		o.observer = fn
	}
}

// Optimizer runs the build, render, invoke and validate pipeline.
// An Optimizer holds no per-call state and may be shared across goroutines
// as long as its observer is safe for concurrent use.
type Optimizer struct {
	invoker  *Invoker
	observer Observer
}

// NewOptimizer creates an Optimizer that calls client.
func NewOptimizer(client llm.Client, opts ...Option) *Optimizer {
	o := &Optimizer{invoker: NewInvoker(client)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize runs one optimization call. There is no retry: a failed call must
// be started again by the caller.
func (o *Optimizer) Optimize(ctx context.Context, spending model.SpendingRecord, goals string) Outcome {
	o.enter(StateBuilding)
	req, err := BuildRequest(spending, goals)
	if err != nil {
		return o.fail(err)
	}

	prompt := RenderPrompt(req)

	o.enter(StateInvoking)
	raw, err := o.invoker.Invoke(ctx, prompt, OutputSchema)
	if err != nil {
		return o.fail(err)
	}

	o.enter(StateValidating)
	result, err := ValidateResponse(raw)
	if err != nil {
		return o.fail(err)
	}

	o.enter(StateSucceeded)
	return Outcome{State: StateSucceeded, Result: result}
}

// Run is Optimize returning the result and error directly.
func (o *Optimizer) Run(ctx context.Context, spending model.SpendingRecord, goals string) (model.OptimizationResult, error) {
	outcome := o.Optimize(ctx, spending, goals)
	return outcome.Result, outcome.Err
}

// OptimizeTracked aggregates recorded expenses and optimizes the resulting
// spending. The error return is reserved for aggregation failures; pipeline
// failures are reported in the Outcome.
func (o *Optimizer) OptimizeTracked(ctx context.Context, expenses []model.Expense, categories []model.Category, goals string) (Outcome, error) {
	spending, err := AggregateSpending(expenses, categories)
	if err != nil {
		return Outcome{}, err
	}
	return o.Optimize(ctx, spending, goals), nil
}

func (o *Optimizer) enter(s State) {
	if o.observer != nil {
		o.observer(s)
	}
}

func (o *Optimizer) fail(err error) Outcome {
	o.enter(StateFailed)
	return Outcome{State: StateFailed, Err: err}
}
