package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/service"
)

// CreateIncome stores a new income, assigning an ID when none is set.
func (s *SQLiteStorage) CreateIncome(ctx context.Context, income *model.Income) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateIncome(income); err != nil {
		return err
	}

	if income.ID == "" {
		income.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO incomes (id, amount, source, date, description, import_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		income.ID, income.Amount, income.Source, formatDate(income.Date),
		income.Description, nullIfEmpty(income.ImportID))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("income %s: %w", income.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create income: %w", err)
	}

	return nil
}

// GetIncomes returns incomes within filter, newest first.
func (s *SQLiteStorage) GetIncomes(ctx context.Context, filter service.DateFilter) ([]model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	clause, args := dateRangeClause("date", filter)
	query := `
		SELECT id, amount, source, date, description, COALESCE(import_id, '')
		FROM incomes WHERE 1=1` + clause + ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var incomes []model.Income
	for rows.Next() {
		var (
			income model.Income
			date   string
		)
		if err := rows.Scan(&income.ID, &income.Amount, &income.Source, &date, &income.Description, &income.ImportID); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		if income.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incomes: %w", err)
	}

	return incomes, nil
}

// DeleteIncome removes an income.
func (s *SQLiteStorage) DeleteIncome(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	return requireAffected(result, "income", id)
}
