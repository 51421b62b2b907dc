package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
)

// CreateBudget stores a new budget, assigning an ID when none is set.
func (s *SQLiteStorage) CreateBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, amount, category_id, period, start_date)
		VALUES (?, ?, ?, ?, ?)`,
		budget.ID, budget.Amount, budget.CategoryID, string(budget.Period), formatDate(budget.StartDate))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("budget %s: %w", budget.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create budget: %w", err)
	}

	return nil
}

// GetBudget returns a budget by ID.
func (s *SQLiteStorage) GetBudget(ctx context.Context, id string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, amount, category_id, period, start_date
		FROM budgets WHERE id = ?`, id)
	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	return budget, nil
}

// GetBudgets returns all budgets ordered by category.
func (s *SQLiteStorage) GetBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, category_id, period, start_date
		FROM budgets
		ORDER BY category_id, start_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, *budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// UpdateBudget overwrites an existing budget.
func (s *SQLiteStorage) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}
	if err := validateString(budget.ID, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET amount = ?, category_id = ?, period = ?, start_date = ?
		WHERE id = ?`,
		budget.Amount, budget.CategoryID, string(budget.Period), formatDate(budget.StartDate), budget.ID)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	return requireAffected(result, "budget", budget.ID)
}

// DeleteBudget removes a budget.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	return requireAffected(result, "budget", id)
}

func scanBudget(row rowScanner) (*model.Budget, error) {
	var (
		budget    model.Budget
		period    string
		startDate string
	)
	if err := row.Scan(&budget.ID, &budget.Amount, &budget.CategoryID, &period, &startDate); err != nil {
		return nil, err
	}

	budget.Period = model.BudgetPeriod(period)
	parsed, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	budget.StartDate = parsed

	return &budget, nil
}
