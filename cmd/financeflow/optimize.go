package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/llm"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/optimize"
	"github.com/Veraticus/financeflow/internal/service"
	"github.com/Veraticus/financeflow/internal/tui"
)

// optimizeRetryDelay is the wait before the first retry of a failed model call.
var optimizeRetryDelay = time.Second

type optimizeOptions struct {
	goals       string
	manual      string
	manualFile  string
	from        string
	to          string
	attempts    int
	interactive bool
	jsonOutput  bool
	plain       bool
}

func optimizeCmd() *cobra.Command {
	var opts optimizeOptions

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Suggest a monthly budget for your goals",
		Long: `Ask the configured language model for a monthly budget allocation.

Spending comes from recorded expenses unless --manual or --manual-file gives it
as a JSON object of category to amount. With --interactive, missing goals and
spending are asked for on the terminal.`,
		Example: `  # Use tracked expenses from this year
  financeflow optimize --goals "Save 500 a month for a house" --from 2026-01-01

  # Enter spending by hand
  financeflow optimize --goals "Pay off my card" --manual '{"Groceries": 300, "Dining Out": 150}'

  # Machine-readable output, retrying transient failures
  financeflow optimize --goals "Cut eating out" --attempts 3 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOptimize(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.goals, "goals", "g", "", "Financial goals in plain language")
	cmd.Flags().StringVar(&opts.manual, "manual", "", `Spending as JSON, e.g. '{"Groceries": 300}'`)
	cmd.Flags().StringVar(&opts.manualFile, "manual-file", "", "Read spending JSON from a file")
	cmd.Flags().StringVar(&opts.from, "from", "", "Only use tracked expenses on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Only use tracked expenses on or before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.attempts, "attempts", 1, "Attempts when the model cannot be reached")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Ask for missing goals and spending")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the allocation as JSON")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Disable the progress view")
	cmd.MarkFlagsMutuallyExclusive("manual", "manual-file")

	return cmd
}

func runOptimize(cmd *cobra.Command, opts optimizeOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.attempts < 1 {
		return common.NewUserError("--attempts must be at least 1", common.ErrInvalidInput)
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), out)
	spending, err := loadSpending(ctx, opts, prompter, out)
	if err != nil {
		return err
	}

	goals := opts.goals
	if goals == "" && opts.interactive {
		if goals, err = prompter.AskGoals(ctx); err != nil {
			return err
		}
	}

	client, err := createLLMClient()
	if err != nil {
		return err
	}

	outcome, err := runOptimization(ctx, client, spending, goals, opts, out)
	if err != nil {
		return err
	}
	if outcome.Err != nil {
		return outcome.Err
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome.Result)
	}

	printAllocation(out, spending, goals, outcome.Result)
	return nil
}

// loadSpending resolves the spending record from flags, the terminal, or
// tracked expenses, in that order.
func loadSpending(ctx context.Context, opts optimizeOptions, prompter *cli.Prompter, out io.Writer) (model.SpendingRecord, error) {
	switch {
	case opts.manual != "":
		return parseManualSpending([]byte(opts.manual))
	case opts.manualFile != "":
		data, err := os.ReadFile(opts.manualFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read spending file: %w", err)
		}
		return parseManualSpending(data)
	case opts.interactive:
		spending, err := prompter.AskSpending(ctx)
		if err != nil {
			return nil, err
		}
		if spending == nil {
			spending = optimize.DefaultSpending()
			fmt.Fprintln(out, cli.FormatInfo("No spending entered, using the example record."))
		}
		return spending, nil
	}

	filter, err := dateFilter(opts.from, opts.to)
	if err != nil {
		return nil, err
	}
	return trackedSpending(ctx, filter)
}

func parseManualSpending(data []byte) (model.SpendingRecord, error) {
	spending, err := optimize.ParseSpending(data)
	if err != nil {
		return nil, common.NewUserError(err.Error(), common.ErrInvalidInput)
	}
	return spending, nil
}

// trackedSpending aggregates recorded expenses in filter by category name.
func trackedSpending(ctx context.Context, filter service.DateFilter) (model.SpendingRecord, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	expenses, err := store.GetExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	categories, err := store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return optimize.AggregateSpending(expenses, categories)
}

// runOptimization executes the pipeline behind the progress view, or with
// state changes logged when the view is disabled.
func runOptimization(ctx context.Context, client llm.Client, spending model.SpendingRecord, goals string, opts optimizeOptions, out io.Writer) (optimize.Outcome, error) {
	run := func(ctx context.Context, observer optimize.Observer) optimize.Outcome {
		return optimizeWithRetry(ctx, client, spending, goals, opts.attempts, observer)
	}

	if opts.plain || opts.jsonOutput {
		handler := cli.NewInterruptHandler(os.Stderr, "Optimization")
		ctx = handler.HandleInterrupts(ctx, "")
		return run(ctx, func(s optimize.State) {
			slog.Debug("optimization state", "state", s.String())
		}), nil
	}

	theme, err := tui.ThemeByName(viper.GetString("tui.theme"))
	if err != nil {
		return optimize.Outcome{}, err
	}
	return tui.Run(ctx, run, tui.WithTheme(theme), tui.WithIO(nil, out))
}

// optimizeWithRetry repeats the pipeline while the model invocation fails
// transiently. Validation, schema and client errors are returned at once.
func optimizeWithRetry(ctx context.Context, client llm.Client, spending model.SpendingRecord, goals string, attempts int, observer optimize.Observer) optimize.Outcome {
	optimizer := optimize.NewOptimizer(client, optimize.WithObserver(observer))

	var outcome optimize.Outcome
	err := common.WithRetry(ctx, func() error {
		outcome = optimizer.Optimize(ctx, spending, goals)
		if outcome.Err == nil {
			return nil
		}
		var apiErr *llm.APIError
		if optimize.KindOf(outcome.Err) != optimize.KindInvocationFailed ||
			(errors.As(outcome.Err, &apiErr) && !apiErr.Temporary()) {
			return &common.RetryableError{Err: outcome.Err, Retryable: false}
		}
		return outcome.Err
	}, service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: optimizeRetryDelay,
		MaxDelay:     10 * time.Second,
		Multiplier:   2,
	})
	if err != nil && outcome.Err == nil {
		outcome = optimize.Outcome{State: optimize.StateFailed, Err: err}
	}
	return outcome
}

func printAllocation(w io.Writer, spending model.SpendingRecord, goals string, result model.OptimizationResult) {
	fmt.Fprintln(w, cli.FormatTitle("Suggested monthly budget"))
	if strings.TrimSpace(goals) != "" {
		fmt.Fprintln(w, cli.RenderBox("Goals", goals))
	}

	table := cli.NewTable("CATEGORY", "CURRENT", "SUGGESTED", "CHANGE").AlignRight(1, 2, 3)
	for _, category := range result.Categories() {
		suggested := result[category]
		current, tracked := spending[category]
		currentCell, changeCell := "-", "new"
		if tracked {
			currentCell = cli.FormatMoney(current)
			changeCell = formatChange(suggested - current)
		}
		table.AddRow(category, currentCell, cli.FormatMoney(suggested), changeCell)
	}
	table.AddRow("Total", cli.FormatMoney(spending.Total()), cli.FormatMoney(result.Total()), formatChange(result.Total()-spending.Total()))
	fmt.Fprintln(w, table.Render())

	var dropped []string
	for _, category := range spending.Categories() {
		if _, ok := result[category]; !ok {
			dropped = append(dropped, category)
		}
	}
	if len(dropped) > 0 {
		fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("No allocation suggested for: %v", dropped)))
	}
}

func formatChange(delta float64) string {
	if delta > 0 {
		return "+" + cli.FormatMoney(delta)
	}
	return cli.FormatMoney(delta)
}
