package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/report"
	"github.com/Veraticus/financeflow/internal/service"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "Set and track category budgets",
	}

	cmd.AddCommand(addBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(editBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())
	cmd.AddCommand(budgetStatusCmd())

	return cmd
}

func addBudgetCmd() *cobra.Command {
	var (
		amount   float64
		category string
		period   string
		start    string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a budget for a category",
		Example: `  financeflow budgets add --category groceries --amount 400 --period monthly --start 2026-01-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			p, err := model.ParseBudgetPeriod(period)
			if err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}
			startDate, err := parseDate(start, today())
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			cat, err := resolveCategory(model.ExpenseCategories(categories), category)
			if err != nil {
				return err
			}

			budget := model.Budget{
				Amount:     amount,
				CategoryID: cat.ID,
				Period:     p,
				StartDate:  startDate,
			}
			if err := store.CreateBudget(ctx, &budget); err != nil {
				return fmt.Errorf("failed to create budget: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Budgeted %s %s for %s (%s)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.FormatMoney(budget.Amount),
				budget.Period,
				cat.Name,
				cli.SubtleStyle.Render(budget.ID))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Budgeted amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category ID or name")
	cmd.Flags().StringVarP(&period, "period", "p", string(model.PeriodMonthly), "monthly or yearly")
	cmd.Flags().StringVar(&start, "start", "", "Start date, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No budgets yet. Create one with 'financeflow budgets add'."))
				return nil
			}

			names := model.CategoryNames(categories)
			table := cli.NewTable("CATEGORY", "AMOUNT", "PERIOD", "START", "ID").AlignRight(1)
			for _, b := range budgets {
				table.AddRow(categoryLabel(names, b.CategoryID), cli.FormatMoney(b.Amount), string(b.Period), b.StartDate.Format(model.DateLayout), b.ID)
			}
			fmt.Fprintln(out, table.Render())
			return nil
		},
	}
}

func editBudgetCmd() *cobra.Command {
	var (
		amount float64
		period string
		start  string
	)

	cmd := &cobra.Command{
		Use:   "edit <budget-id>",
		Short: "Change a budget's amount, period or start date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			if !anyChanged(flags, "amount", "period", "start") {
				return common.NewUserError("nothing to change: pass --amount, --period or --start", common.ErrInvalidInput)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, err := store.GetBudget(ctx, args[0])
			if err != nil {
				return err
			}

			if flags.Changed("amount") {
				budget.Amount = amount
			}
			if flags.Changed("period") {
				if budget.Period, err = model.ParseBudgetPeriod(period); err != nil {
					return common.NewUserError(err.Error(), common.ErrInvalidInput)
				}
			}
			if flags.Changed("start") {
				if budget.StartDate, err = parseDate(start, budget.StartDate); err != nil {
					return err
				}
			}

			if err := store.UpdateBudget(ctx, budget); err != nil {
				return fmt.Errorf("failed to update budget: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated budget %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(budget.ID))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "New amount")
	cmd.Flags().StringVarP(&period, "period", "p", "", "New period (monthly or yearly)")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <budget-id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete budget %s?", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Delete cancelled."))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteBudget(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted budget %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func budgetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how much of each budget has been used",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}
			expenses, err := store.GetExpenses(ctx, service.DateFilter{})
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No budgets yet. Create one with 'financeflow budgets add'."))
				return nil
			}

			fmt.Fprintln(out, cli.FormatTitle("Budget status"))
			printBudgetProgress(out, report.ProgressAll(budgets, expenses, categories))
			return nil
		},
	}
}

const gaugeWidth = 20

func printBudgetProgress(w io.Writer, progress []report.BudgetProgress) {
	table := cli.NewTable("CATEGORY", "SPENT", "BUDGET", "USED", "").AlignRight(1, 2, 3)
	for _, p := range progress {
		used := cli.FormatPercent(p.Progress)
		if p.OverBudget {
			used = cli.OverBudgetStyle.Render(used)
		}
		table.AddRow(p.CategoryName, cli.FormatMoney(p.Spent), cli.FormatMoney(p.Budget.Amount), used, gauge(p.Progress, p.OverBudget))
	}
	fmt.Fprintln(w, table.Render())
}

// gauge draws a fixed-width bar filled to pct, capped at full.
func gauge(pct float64, over bool) string {
	filled := int(pct / 100 * gaugeWidth)
	if filled > gaugeWidth {
		filled = gaugeWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)
	if over {
		return cli.OverBudgetStyle.Render(bar)
	}
	return cli.SuccessStyle.Render(bar)
}
