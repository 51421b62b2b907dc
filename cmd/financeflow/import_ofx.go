package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var (
		category string
		dryRun   bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import expenses and income from OFX/QFX files",
		Long: `Import bank statements exported as OFX or QFX files. Debits become expenses
in the chosen category and credits become income. Transactions already
imported from the same account are skipped.`,
		Example: `  # Import a single statement
  financeflow import-ofx ~/Downloads/checking_jan.qfx

  # Import several files into the groceries category
  financeflow import-ofx ~/Downloads/card_*.qfx --category groceries

  # Preview without saving
  financeflow import-ofx ~/Downloads/*.ofx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			parser := ofx.NewParser(category)
			stmt := &ofx.Statement{}
			for _, path := range files {
				fileStmt, err := parseOFXFile(cmd, parser, path)
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", path, "error", err)
					continue
				}
				slog.Info("Processed file",
					"file", filepath.Base(path),
					"expenses", len(fileStmt.Expenses),
					"incomes", len(fileStmt.Incomes))
				stmt.Expenses = append(stmt.Expenses, fileStmt.Expenses...)
				stmt.Incomes = append(stmt.Incomes, fileStmt.Incomes...)
				stmt.Accounts = append(stmt.Accounts, fileStmt.Accounts...)
			}

			if stmt.Len() == 0 {
				return common.NewUserError("no transactions found to import", common.ErrNoTransactions)
			}

			printStatementSummary(out, stmt)
			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo("Dry run complete, nothing saved."))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if category != "" {
				if _, err := store.GetCategory(ctx, category); err != nil {
					return err
				}
			}

			if !noBackup {
				if info, err := autoBackup(ctx, store, "import"); err != nil {
					slog.Warn("Continuing import without a backup", "error", err)
				} else {
					slog.Info("Created backup", "id", info.ID)
				}
			}

			bar := cli.NewProgressBar(out, stmt.Len(), "Importing transactions...")
			summary, err := ofx.Import(ctx, store, stmt, cli.StepFunc(bar))
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s Imported %d expenses and %d incomes",
				cli.SuccessStyle.Render(cli.SuccessIcon), summary.Expenses, summary.Incomes)
			if summary.Duplicates > 0 {
				fmt.Fprintf(out, ", skipped %d already imported", summary.Duplicates)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category for imported expenses (default other)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the automatic backup")

	return cmd
}

// expandFiles resolves glob patterns, keeping literal paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("no files found to import", common.ErrInvalidInput)
	}
	return files, nil
}

func parseOFXFile(cmd *cobra.Command, parser *ofx.Parser, path string) (*ofx.Statement, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied import path
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(cmd.Context(), f)
}

func printStatementSummary(w io.Writer, stmt *ofx.Statement) {
	fmt.Fprintf(w, "\n%s Found %d expenses (%s) and %d incomes (%s) across %d accounts\n",
		cli.ChartIcon,
		len(stmt.Expenses), cli.FormatMoney(model.TotalExpenses(stmt.Expenses)),
		len(stmt.Incomes), cli.FormatMoney(model.TotalIncome(stmt.Incomes)),
		len(uniqueStrings(stmt.Accounts)))

	table := cli.NewTable("DATE", "TYPE", "AMOUNT", "DESCRIPTION").AlignRight(2)
	for i, e := range stmt.Expenses {
		if i >= 5 {
			break
		}
		table.AddRow(e.Date.Format(model.DateLayout), "expense", cli.FormatMoney(e.Amount), e.Description)
	}
	for i, inc := range stmt.Incomes {
		if i >= 5 {
			break
		}
		table.AddRow(inc.Date.Format(model.DateLayout), "income", cli.FormatMoney(inc.Amount), inc.Source)
	}
	fmt.Fprintln(w, cli.SubtitleStyle.Render("Sample entries:"))
	fmt.Fprintln(w, table.Render())
	fmt.Fprintln(w)
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
