package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/report"
)

func reportCmd() *cobra.Command {
	var (
		from, to   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show spending distribution and the monthly trend",
		Example: `  financeflow report
  financeflow report --from 2026-01-01 --to 2026-06-30`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter, err := dateFilter(from, to)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.GetExpenses(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}
			incomes, err := store.GetIncomes(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to load incomes: %w", err)
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			rep := report.BuildReport(expenses, incomes, categories)
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			fmt.Fprintln(out, cli.FormatTitle("Report"))
			printTotals(out, rep.Totals)
			printByCategory(out, rep.ByCategory)

			if len(rep.Monthly) > 0 {
				fmt.Fprintln(out, cli.BoldStyle.Render("Monthly flow"))
				table := cli.NewTable("MONTH", "INCOME", "EXPENSES", "NET", "BALANCE").AlignRight(1, 2, 3, 4)
				for _, m := range rep.Monthly {
					table.AddRow(m.Label, cli.FormatMoney(m.Income), cli.FormatMoney(m.Expenses), cli.FormatMoney(m.Net), cli.FormatMoney(m.RunningBalance))
				}
				fmt.Fprintln(out, table.Render())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	return cmd
}
