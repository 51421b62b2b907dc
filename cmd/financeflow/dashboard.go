package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/report"
	"github.com/Veraticus/financeflow/internal/service"
)

func dashboardCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals, spending by category and budget status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			all := service.DateFilter{}
			expenses, err := store.GetExpenses(ctx, all)
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}
			incomes, err := store.GetIncomes(ctx, all)
			if err != nil {
				return fmt.Errorf("failed to load incomes: %w", err)
			}
			budgets, err := store.GetBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to load budgets: %w", err)
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			dashboard := report.BuildDashboard(expenses, incomes, budgets, categories)
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(dashboard)
			}

			fmt.Fprintln(out, cli.FormatTitle("Dashboard"))
			printTotals(out, dashboard.Totals)
			printByCategory(out, dashboard.ByCategory)

			if len(dashboard.Budgets) > 0 {
				fmt.Fprintln(out, cli.BoldStyle.Render("Budgets vs actual"))
				table := cli.NewTable("CATEGORY", "BUDGETED", "SPENT", "REMAINING").AlignRight(1, 2, 3)
				for _, b := range dashboard.Budgets {
					remaining := cli.FormatMoney(b.Remaining)
					if b.Remaining < 0 {
						remaining = cli.OverBudgetStyle.Render(remaining)
					}
					table.AddRow(b.Name, cli.FormatMoney(b.Budgeted), cli.FormatMoney(b.Spent), remaining)
				}
				fmt.Fprintln(out, table.Render())
				fmt.Fprintln(out)
			}

			if len(dashboard.RecentExpenses) > 0 {
				fmt.Fprintln(out, cli.BoldStyle.Render("Recent expenses"))
				names := model.CategoryNames(categories)
				table := cli.NewTable("DATE", "CATEGORY", "AMOUNT", "DESCRIPTION").AlignRight(2)
				for _, e := range dashboard.RecentExpenses {
					table.AddRow(e.Date.Format(model.DateLayout), categoryLabel(names, e.CategoryID), cli.FormatMoney(e.Amount), e.Description)
				}
				fmt.Fprintln(out, table.Render())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the dashboard as JSON")

	return cmd
}

func printTotals(w io.Writer, totals report.Totals) {
	net := cli.FormatMoney(totals.NetBalance)
	if totals.NetBalance < 0 {
		net = cli.OverBudgetStyle.Render(net)
	} else {
		net = cli.SuccessStyle.Render(net)
	}
	fmt.Fprintf(w, "Income:   %s\nExpenses: %s\nNet:      %s\n\n",
		cli.FormatMoney(totals.Income), cli.FormatMoney(totals.Expenses), net)
}

func printByCategory(w io.Writer, totals []report.CategoryTotal) {
	if len(totals) == 0 {
		fmt.Fprintln(w, cli.SubtitleStyle.Render("No spending recorded."))
		return
	}
	fmt.Fprintln(w, cli.BoldStyle.Render("Spending by category"))
	table := cli.NewTable("CATEGORY", "SPENT", "SHARE").AlignRight(1, 2)
	for _, c := range totals {
		table.AddRow(c.Name, cli.FormatMoney(c.Amount), cli.FormatPercent(c.Percent))
	}
	fmt.Fprintln(w, table.Render())
	fmt.Fprintln(w)
}
