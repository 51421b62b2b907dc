package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/config"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/service"
	"github.com/Veraticus/financeflow/internal/storage"
)

// initStorage opens the database and applies pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// autoBackup snapshots the database before a bulk write. Failure is logged
// by the caller's choice; the bulk write may still proceed.
func autoBackup(ctx context.Context, store *storage.SQLiteStorage, operation string) (*storage.BackupInfo, error) {
	manager, err := store.NewBackupManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create backup manager: %w", err)
	}
	return manager.Auto(ctx, operation)
}

// parseDate parses a YYYY-MM-DD flag value. An empty value yields fallback.
func parseDate(value string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("invalid date %q: use YYYY-MM-DD", value), common.ErrInvalidInput)
	}
	return t, nil
}

// dateFilter builds a storage filter from optional --from/--to values.
func dateFilter(from, to string) (service.DateFilter, error) {
	var filter service.DateFilter
	if from != "" {
		start, err := parseDate(from, time.Time{})
		if err != nil {
			return filter, err
		}
		filter.Start = &start
	}
	if to != "" {
		end, err := parseDate(to, time.Time{})
		if err != nil {
			return filter, err
		}
		filter.End = &end
	}
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return filter, common.NewUserError("--to must not be before --from", common.ErrInvalidInput)
	}
	return filter, nil
}

// today returns the current calendar day in UTC.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveCategory finds a category by ID or, case-insensitively, by name.
func resolveCategory(categories []model.Category, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	for _, c := range categories {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return model.Category{}, common.NewUserError(fmt.Sprintf("unknown category %q (see 'financeflow categories list')", ref), common.ErrNotFound)
}

// confirm asks a yes/no question, defaulting to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s (y/N) ", question)
	response, _ := bufio.NewReader(in).ReadString('\n')
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(response)), "y")
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
