package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/financeflow/internal/api"
	"github.com/Veraticus/financeflow/internal/optimize"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve expenses, incomes, categories, budgets, reports and budget
optimization over a local JSON HTTP API under /api.

Without model credentials the server still starts; optimization requests then
fail with InvocationFailed.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var optimizer *optimize.Optimizer
	if client, err := createLLMClient(); err != nil {
		slog.Warn("Budget optimization disabled", "error", err)
	} else {
		optimizer = optimize.NewOptimizer(client)
	}

	handler := api.NewHandler(store, optimizer, slog.Default())
	server := &http.Server{
		Addr:              viper.GetString("server.addr"),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Serving API", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Shutting down API server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
