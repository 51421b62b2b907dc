package report

import (
	"github.com/Veraticus/financeflow/internal/model"
)

// recentLimit is how many expenses the dashboard lists.
const recentLimit = 5

// Dashboard is the overview screen.
type Dashboard struct {
	ByCategory     []CategoryTotal    `json:"expenseByCategory"`
	Budgets        []BudgetComparison `json:"budgetStatus"`
	RecentExpenses []model.Expense    `json:"recentExpenses"`
	Totals
}

// Report is the reports screen for a date range.
type Report struct {
	ByCategory []CategoryTotal `json:"expenseByCategory"`
	Monthly    []MonthFlow     `json:"monthly"`
	Totals
}

// BuildDashboard assembles the dashboard. expenses are expected newest first,
// as storage returns them.
func BuildDashboard(expenses []model.Expense, incomes []model.Income, budgets []model.Budget, categories []model.Category) Dashboard {
	recent := expenses
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return Dashboard{
		Totals:         ComputeTotals(expenses, incomes),
		ByCategory:     SpendingByCategory(expenses, categories),
		Budgets:        CompareBudgets(budgets, expenses, categories),
		RecentExpenses: append([]model.Expense(nil), recent...),
	}
}

// BuildReport assembles the report for the given records.
func BuildReport(expenses []model.Expense, incomes []model.Income, categories []model.Category) Report {
	return Report{
		Totals:     ComputeTotals(expenses, incomes),
		ByCategory: SpendingByCategory(expenses, categories),
		Monthly:    MonthlyFlow(expenses, incomes),
	}
}
