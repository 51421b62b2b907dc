package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/config"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/optimize"
	"github.com/Veraticus/financeflow/internal/sheets"
)

func exportSheetsCmd() *cobra.Command {
	var (
		from, to string
		goals    string
		attempts int
	)

	cmd := &cobra.Command{
		Use:   "export-sheets",
		Short: "Export a report to Google Sheets",
		Long: `Write summary, budget, monthly flow, expense and income tabs to a Google
Sheets spreadsheet. With --goals, a suggested budget for the exported
spending is added as its own tab.

Authenticate once with 'financeflow export-sheets auth' or configure a
service account under sheets.service_account_path.`,
		Example: `  financeflow export-sheets --from 2026-01-01 --to 2026-03-31
  financeflow export-sheets --goals "Build a 3 month emergency fund"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			filter, err := dateFilter(from, to)
			if err != nil {
				return err
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return common.NewUserError("Google Sheets is not configured (run 'financeflow export-sheets auth')", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			in := sheets.ExportInput{Goals: goals}
			if in.Expenses, err = store.GetExpenses(ctx, filter); err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}
			if in.Incomes, err = store.GetIncomes(ctx, filter); err != nil {
				return fmt.Errorf("failed to load incomes: %w", err)
			}
			if in.Budgets, err = store.GetBudgets(ctx); err != nil {
				return fmt.Errorf("failed to load budgets: %w", err)
			}
			if in.Categories, err = store.GetCategories(ctx); err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			in.DateRange = exportRange(filter.Start, filter.End, in.Expenses, in.Incomes)

			if goals != "" {
				allocation, err := suggestAllocation(cmd, in.Expenses, in.Categories, goals, attempts)
				if err != nil {
					return err
				}
				in.Allocation = allocation
			}

			writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
			if err != nil {
				return err
			}
			spreadsheetID, err := writer.Write(ctx, sheets.BuildTabData(in))
			if err != nil {
				return fmt.Errorf("failed to export to Google Sheets: %w", err)
			}

			fmt.Fprintf(out, "%s Exported to https://docs.google.com/spreadsheets/d/%s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon), spreadsheetID)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&goals, "goals", "g", "", "Also export a suggested budget for these goals")
	cmd.Flags().IntVar(&attempts, "attempts", 1, "Attempts when the model cannot be reached")

	cmd.AddCommand(sheetsAuthCmd())

	return cmd
}

// suggestAllocation optimizes the exported spending. A failed optimization
// fails the export so a half-complete spreadsheet is never written.
func suggestAllocation(cmd *cobra.Command, expenses []model.Expense, categories []model.Category, goals string, attempts int) (model.OptimizationResult, error) {
	spending, err := optimize.AggregateSpending(expenses, categories)
	if err != nil {
		return nil, err
	}
	client, err := createLLMClient()
	if err != nil {
		return nil, err
	}

	slog.Info("Requesting suggested budget", "categories", len(spending))
	outcome := optimizeWithRetry(cmd.Context(), client, spending, goals, attempts, func(s optimize.State) {
		slog.Debug("optimization state", "state", s.String())
	})
	if outcome.Err != nil {
		return nil, fmt.Errorf("failed to suggest a budget: %w", outcome.Err)
	}
	return outcome.Result, nil
}

// exportRange uses the requested bounds, filling open ends from the data.
func exportRange(start, end *time.Time, expenses []model.Expense, incomes []model.Income) sheets.DateRange {
	var r sheets.DateRange
	widen := func(d time.Time) {
		if r.Start.IsZero() || d.Before(r.Start) {
			r.Start = d
		}
		if r.End.IsZero() || d.After(r.End) {
			r.End = d
		}
	}
	for _, e := range expenses {
		widen(e.Date)
	}
	for _, i := range incomes {
		widen(i.Date)
	}
	if start != nil {
		r.Start = *start
	}
	if end != nil {
		r.End = *end
	}
	return r
}

func sheetsAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Print a Google consent URL to open in your browser
2. Receive the authorization on a local callback
3. Save the refresh token to your config file

You'll need to run this once to set up Google Sheets integration.`,
		RunE: runSheetsAuth,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().String("callback-addr", "localhost:8085", "Local address for the OAuth2 redirect")

	return cmd
}

func runSheetsAuth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}
	clientID = firstNonEmpty(clientID, os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	clientSecret = firstNonEmpty(clientSecret, os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))

	if clientID == "" || clientSecret == "" {
		return common.NewUserError("OAuth2 credentials not found: set sheets.client_id and sheets.client_secret or pass --client-id and --client-secret", common.ErrMissingConfig)
	}

	callbackAddr, _ := cmd.Flags().GetString("callback-addr")
	tokenFile := filepath.Join(config.Dir(), "sheets-token.json")
	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		CallbackAddr: callbackAddr,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.client_id", clientID)
	viper.Set("sheets.client_secret", clientSecret)
	viper.Set("sheets.refresh_token", token.RefreshToken)
	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		fmt.Fprintf(cmd.OutOrStdout(), "Add this to your config.yaml:\nsheets:\n  refresh_token: %q\n", token.RefreshToken)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Google Sheets is configured. Run 'financeflow export-sheets' to export.\n",
		cli.SuccessStyle.Render(cli.SuccessIcon))
	return nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = filepath.Join(config.Dir(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
