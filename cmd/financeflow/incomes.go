package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/model"
)

func incomesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "incomes",
		Aliases: []string{"income"},
		Short:   "Record and manage income",
	}

	cmd.AddCommand(addIncomeCmd())
	cmd.AddCommand(listIncomesCmd())
	cmd.AddCommand(deleteIncomeCmd())

	return cmd
}

func addIncomeCmd() *cobra.Command {
	var (
		amount      float64
		source      string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record income",
		Example: `  financeflow incomes add --amount 3200 --source Salary --date 2026-03-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			day, err := parseDate(date, today())
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			income := model.Income{
				Amount:      amount,
				Source:      strings.TrimSpace(source),
				Date:        day,
				Description: strings.TrimSpace(description),
			}
			if err := store.CreateIncome(ctx, &income); err != nil {
				return fmt.Errorf("failed to record income: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Recorded %s from %s on %s (%s)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.FormatMoney(income.Amount),
				income.Source,
				income.Date.Format(model.DateLayout),
				cli.SubtleStyle.Render(income.ID))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount received")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Where the money came from")
	cmd.Flags().StringVar(&date, "date", "", "Date received, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional note")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func listIncomesCmd() *cobra.Command {
	var (
		from, to string
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded income",
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

			incomes, err := store.GetIncomes(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list incomes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(incomes) == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No income found."))
				return nil
			}

			table := cli.NewTable("DATE", "SOURCE", "AMOUNT", "DESCRIPTION", "ID").AlignRight(2)
			for _, i := range incomes {
				table.AddRow(i.Date.Format(model.DateLayout), i.Source, cli.FormatMoney(i.Amount), i.Description, i.ID)
			}
			if plain {
				fmt.Fprintln(out, table.RenderPlain())
				return nil
			}
			fmt.Fprintln(out, table.Render())
			fmt.Fprintf(out, "\n%d entries, %s total\n", len(incomes), cli.BoldStyle.Render(cli.FormatMoney(model.TotalIncome(incomes))))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Tab-separated output without styling")

	return cmd
}

func deleteIncomeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <income-id>",
		Short: "Delete recorded income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete income %s?", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Delete cancelled."))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteIncome(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete income: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted income %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
