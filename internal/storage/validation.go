// Package storage provides the data persistence layer for financeflow.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
)

// Validation errors. All but ErrNilContext wrap common.ErrInvalidInput.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = fmt.Errorf("%w: string parameter cannot be empty", common.ErrInvalidInput)
	ErrNilParameter    = fmt.Errorf("%w: parameter cannot be nil", common.ErrInvalidInput)
	ErrInvalidAmount   = fmt.Errorf("%w: amount must be a positive number", common.ErrInvalidInput)
	ErrInvalidExpense  = fmt.Errorf("%w: invalid expense", common.ErrInvalidInput)
	ErrInvalidIncome   = fmt.Errorf("%w: invalid income", common.ErrInvalidInput)
	ErrInvalidBudget   = fmt.Errorf("%w: invalid budget", common.ErrInvalidInput)
	ErrInvalidCategory = fmt.Errorf("%w: invalid category", common.ErrInvalidInput)
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAmount, amount)
	}
	return nil
}

// validateExpense validates an expense before it is written.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if err := validateAmount(expense.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(expense.CategoryID) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidExpense)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidExpense)
	}
	return nil
}

// validateIncome validates an income before it is written.
func validateIncome(income *model.Income) error {
	if income == nil {
		return fmt.Errorf("%w: income", ErrNilParameter)
	}
	if err := validateAmount(income.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(income.Source) == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidIncome)
	}
	if income.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidIncome)
	}
	return nil
}

// validateBudget validates a budget before it is written.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if err := validateAmount(budget.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(budget.CategoryID) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBudget)
	}
	if _, err := model.ParseBudgetPeriod(string(budget.Period)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBudget, err)
	}
	if budget.StartDate.IsZero() {
		return fmt.Errorf("%w: missing start date", ErrInvalidBudget)
	}
	return nil
}

// validateCategory validates a category before it is written.
func validateCategory(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	return nil
}
