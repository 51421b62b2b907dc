package model

import (
	"fmt"
	"strings"
	"time"
)

// BudgetPeriod is how often a budget resets.
type BudgetPeriod string

const (
	// PeriodMonthly budgets cover one calendar month.
	PeriodMonthly BudgetPeriod = "monthly"
	// PeriodYearly budgets cover one calendar year.
	PeriodYearly BudgetPeriod = "yearly"
)

// ParseBudgetPeriod accepts "monthly" or "yearly" in any case.
func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	switch BudgetPeriod(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodMonthly:
		return PeriodMonthly, nil
	case PeriodYearly:
		return PeriodYearly, nil
	default:
		return "", fmt.Errorf("invalid budget period %q: must be monthly or yearly", s)
	}
}

// Budget caps spending in one category from StartDate onwards.
type Budget struct {
	StartDate  time.Time
	ID         string
	CategoryID string
	Period     BudgetPeriod
	Amount     float64
}
