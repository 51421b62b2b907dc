package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/service"
)

const expenseColumns = `id, amount, category_id, date, description, COALESCE(import_id, '')`

// CreateExpense stores a new expense, assigning an ID when none is set.
// An expense whose ImportID was already imported returns common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, amount, category_id, date, description, import_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Amount, expense.CategoryID, formatDate(expense.Date),
		expense.Description, nullIfEmpty(expense.ImportID))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("expense %s: %w", expense.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Debug("created expense", "id", expense.ID, "category", expense.CategoryID, "amount", expense.Amount)
	return nil
}

// GetExpense returns the expense with the given ID.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}

	return expense, nil
}

// GetExpenses returns expenses within filter, newest first.
func (s *SQLiteStorage) GetExpenses(ctx context.Context, filter service.DateFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	clause, args := dateRangeClause("date", filter)
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1` + clause + ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// UpdateExpense overwrites an existing expense.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}
	if err := validateString(expense.ID, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE expenses SET amount = ?, category_id = ?, date = ?, description = ?
		WHERE id = ?`,
		expense.Amount, expense.CategoryID, formatDate(expense.Date), expense.Description, expense.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return requireAffected(result, "expense", expense.ID)
}

// DeleteExpense removes an expense.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return requireAffected(result, "expense", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*model.Expense, error) {
	var (
		expense model.Expense
		date    string
	)
	if err := row.Scan(&expense.ID, &expense.Amount, &expense.CategoryID, &date, &expense.Description, &expense.ImportID); err != nil {
		return nil, err
	}

	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	expense.Date = parsed

	return &expense, nil
}

// requireAffected turns a zero-row update or delete into common.ErrNotFound.
func requireAffected(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, common.ErrNotFound)
	}
	return nil
}
