package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense"},
		Short:   "Record and manage expenses",
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(editExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		amount      float64
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Example: `  financeflow expenses add --amount 42.50 --category groceries --description "Weekly shop"
  financeflow expenses add --amount 12 --category "Dining Out" --date 2026-03-14`,
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

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			cat, err := resolveCategory(model.ExpenseCategories(categories), category)
			if err != nil {
				return err
			}

			expense := model.Expense{
				Amount:      amount,
				CategoryID:  cat.ID,
				Date:        day,
				Description: strings.TrimSpace(description),
			}
			if err := store.CreateExpense(ctx, &expense); err != nil {
				return fmt.Errorf("failed to record expense: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Recorded %s in %s on %s (%s)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.FormatMoney(expense.Amount),
				cat.Name,
				expense.Date.Format(model.DateLayout),
				cli.SubtleStyle.Render(expense.ID))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount spent")
	cmd.Flags().StringVarP(&category, "category", "c", model.OtherCategoryID, "Category ID or name")
	cmd.Flags().StringVar(&date, "date", "", "Date spent, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "What the money went on")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var (
		from, to string
		category string
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
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
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			categoryID := ""
			if category != "" {
				cat, err := resolveCategory(categories, category)
				if err != nil {
					return err
				}
				categoryID = cat.ID
			}

			names := model.CategoryNames(categories)
			table := cli.NewTable("DATE", "CATEGORY", "AMOUNT", "DESCRIPTION", "ID").AlignRight(2)
			var total float64
			for _, e := range expenses {
				if categoryID != "" && e.CategoryID != categoryID {
					continue
				}
				total += e.Amount
				table.AddRow(e.Date.Format(model.DateLayout), categoryLabel(names, e.CategoryID), cli.FormatMoney(e.Amount), e.Description, e.ID)
			}

			out := cmd.OutOrStdout()
			if table.Len() == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No expenses found."))
				return nil
			}
			if plain {
				fmt.Fprintln(out, table.RenderPlain())
				return nil
			}
			fmt.Fprintln(out, table.Render())
			fmt.Fprintf(out, "\n%d expenses, %s total\n", table.Len(), cli.BoldStyle.Render(cli.FormatMoney(total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show this category")
	cmd.Flags().BoolVar(&plain, "plain", false, "Tab-separated output without styling")

	return cmd
}

func editExpenseCmd() *cobra.Command {
	var (
		amount      float64
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "edit <expense-id>",
		Short: "Change a recorded expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			if !anyChanged(flags, "amount", "category", "date", "description") {
				return common.NewUserError("nothing to change: pass --amount, --category, --date or --description", common.ErrInvalidInput)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expense, err := store.GetExpense(ctx, args[0])
			if err != nil {
				return err
			}

			if flags.Changed("amount") {
				expense.Amount = amount
			}
			if flags.Changed("category") {
				categories, err := store.GetCategories(ctx)
				if err != nil {
					return fmt.Errorf("failed to load categories: %w", err)
				}
				cat, err := resolveCategory(model.ExpenseCategories(categories), category)
				if err != nil {
					return err
				}
				expense.CategoryID = cat.ID
			}
			if flags.Changed("date") {
				if expense.Date, err = parseDate(date, expense.Date); err != nil {
					return err
				}
			}
			if flags.Changed("description") {
				expense.Description = strings.TrimSpace(description)
			}

			if err := store.UpdateExpense(ctx, expense); err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated expense %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(expense.ID))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "New amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category ID or name")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <expense-id>",
		Short: "Delete a recorded expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expense, err := store.GetExpense(ctx, args[0])
			if err != nil {
				return err
			}

			if !force {
				question := fmt.Sprintf("Delete %s expense from %s?", cli.FormatMoney(expense.Amount), expense.Date.Format(model.DateLayout))
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Delete cancelled."))
					return nil
				}
			}

			if err := store.DeleteExpense(ctx, expense.ID); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted expense %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(expense.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func anyChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if flags.Changed(name) {
			return true
		}
	}
	return false
}

// categoryLabel names a category, marking IDs whose category was deleted.
func categoryLabel(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id + " (deleted)"
}
