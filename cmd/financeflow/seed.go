package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/seed"
)

func seedCmd() *cobra.Command {
	var (
		months   int
		seedFlag int64
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo data",
		Long: `Generate realistic demo expenses, income and monthly budgets ending this
month. The same --seed always produces the same data.`,
		Example: `  financeflow seed --months 6 --seed 42`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			ds, err := seed.NewGenerator(seedFlag).Generate(months, time.Now())
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !noBackup {
				if _, err := autoBackup(ctx, store, "seed"); err != nil {
					slog.Warn("Continuing without a backup", "error", err)
				}
			}

			bar := cli.NewProgressBar(out, ds.Len(), "Seeding demo data...")
			if err := seed.Insert(ctx, store, ds, cli.StepFunc(bar)); err != nil {
				return err
			}

			fmt.Fprintf(out, "%s Seeded %d expenses, %d incomes and %d budgets over %d months\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				len(ds.Expenses), len(ds.Incomes), len(ds.Budgets), months)
			return nil
		},
	}

	cmd.Flags().IntVarP(&months, "months", "m", 6, "Number of months to generate")
	cmd.Flags().Int64Var(&seedFlag, "seed", time.Now().UnixNano(), "Random seed")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the automatic backup")

	return cmd
}
