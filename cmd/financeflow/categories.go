package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage spending categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			if !all {
				categories = model.ExpenseCategories(categories)
			}

			table := cli.NewTable("ID", "NAME", "ICON", "COLOR")
			for _, c := range categories {
				table.AddRow(c.ID, c.Name, c.Icon, c.Color)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include the income category")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var id, icon, color string

	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a spending category",
		Example: `  financeflow categories add "Pet Care" --color "#8D6E63"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := model.Category{
				ID:    strings.TrimSpace(id),
				Name:  args[0],
				Icon:  icon,
				Color: color,
			}
			if err := store.CreateCategory(ctx, &category); err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added category %s (%s)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				category.Name,
				cli.InfoStyle.Render(category.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Category ID (derived from the name by default)")
	cmd.Flags().StringVar(&icon, "icon", "tag", "Icon name")
	cmd.Flags().StringVar(&color, "color", "#607D8B", "Display color")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category",
		Long: `Delete a category. Expenses and budgets in it are kept and show as
uncategorized. The income and other categories cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category, err := store.GetCategory(ctx, args[0])
			if err != nil {
				return err
			}

			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete category %q?", category.Name)) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Delete cancelled."))
				return nil
			}

			if err := store.DeleteCategory(ctx, category.ID); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted category %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				category.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
