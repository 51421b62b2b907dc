// Package report computes the dashboard and report aggregates shown by the
// CLI, the API and the Sheets export. Everything here is a pure function of
// the records passed in.
package report

import (
	"sort"
	"time"

	"github.com/Veraticus/financeflow/internal/model"
)

// Fallback labels for records whose category no longer exists.
const (
	UncategorizedLabel = "Uncategorized"
	OverallLabel       = "Overall"
)

// monthLabelLayout renders months as "Jan 2024".
const monthLabelLayout = "Jan 2006"

// Totals is the income/expense summary of a set of records.
type Totals struct {
	Income     float64 `json:"totalIncome"`
	Expenses   float64 `json:"totalExpenses"`
	NetBalance float64 `json:"netBalance"`
}

// CategoryTotal is the spending in one category.
type CategoryTotal struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// BudgetComparison is a budget against all spending in its category.
type BudgetComparison struct {
	Name      string  `json:"name"`
	Budgeted  float64 `json:"budgeted"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// BudgetProgress is a budget against spending since its start date.
type BudgetProgress struct {
	Budget       model.Budget `json:"budget"`
	CategoryName string       `json:"categoryName"`
	Spent        float64      `json:"spent"`
	Progress     float64      `json:"progress"`
	OverBudget   bool         `json:"overBudget"`
}

// MonthFlow is the money in and out during one calendar month.
type MonthFlow struct {
	Month          time.Time `json:"month"`
	Label          string    `json:"label"`
	Income         float64   `json:"income"`
	Expenses       float64   `json:"expenses"`
	Net            float64   `json:"net"`
	RunningBalance float64   `json:"runningBalance"`
}

// ComputeTotals sums incomes and expenses.
func ComputeTotals(expenses []model.Expense, incomes []model.Income) Totals {
	income := model.TotalIncome(incomes)
	spent := model.TotalExpenses(expenses)
	return Totals{
		Income:     income,
		Expenses:   spent,
		NetBalance: income - spent,
	}
}

// SpendingByCategory sums expenses per category name, largest first.
// Expenses in deleted categories are grouped under UncategorizedLabel.
func SpendingByCategory(expenses []model.Expense, categories []model.Category) []CategoryTotal {
	names := model.CategoryNames(categories)
	sums := make(map[string]float64)
	var total float64

	for _, e := range expenses {
		name, ok := names[e.CategoryID]
		if !ok {
			name = UncategorizedLabel
		}
		sums[name] += e.Amount
		total += e.Amount
	}

	result := make([]CategoryTotal, 0, len(sums))
	for name, amount := range sums {
		ct := CategoryTotal{Name: name, Amount: amount}
		if total > 0 {
			ct.Percent = amount / total * 100
		}
		result = append(result, ct)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// CompareBudgets sets each budget against every expense in its category,
// regardless of date.
func CompareBudgets(budgets []model.Budget, expenses []model.Expense, categories []model.Category) []BudgetComparison {
	names := model.CategoryNames(categories)
	spent := spentByCategory(expenses)

	result := make([]BudgetComparison, 0, len(budgets))
	for _, b := range budgets {
		name, ok := names[b.CategoryID]
		if !ok {
			name = OverallLabel
		}
		result = append(result, BudgetComparison{
			Name:      name,
			Budgeted:  b.Amount,
			Spent:     spent[b.CategoryID],
			Remaining: b.Amount - spent[b.CategoryID],
		})
	}
	return result
}

// Progress reports how much of a budget has been used by expenses in its
// category dated on or after the budget's start date.
func Progress(budget model.Budget, expenses []model.Expense, categories []model.Category) BudgetProgress {
	name, ok := model.CategoryNames(categories)[budget.CategoryID]
	if !ok {
		name = "N/A"
	}

	var spent float64
	for _, e := range expenses {
		if e.CategoryID == budget.CategoryID && !e.Date.Before(budget.StartDate) {
			spent += e.Amount
		}
	}

	progress := BudgetProgress{
		Budget:       budget,
		CategoryName: name,
		Spent:        spent,
		OverBudget:   spent > budget.Amount,
	}
	if budget.Amount > 0 {
		progress.Progress = spent / budget.Amount * 100
	}
	return progress
}

// ProgressAll applies Progress to every budget.
func ProgressAll(budgets []model.Budget, expenses []model.Expense, categories []model.Category) []BudgetProgress {
	result := make([]BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		result = append(result, Progress(b, expenses, categories))
	}
	return result
}

// MonthlyFlow groups incomes and expenses by calendar month in chronological
// order, carrying a running balance.
func MonthlyFlow(expenses []model.Expense, incomes []model.Income) []MonthFlow {
	months := make(map[time.Time]*MonthFlow)
	month := func(t time.Time) *MonthFlow {
		key := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		if m, ok := months[key]; ok {
			return m
		}
		m := &MonthFlow{Month: key, Label: key.Format(monthLabelLayout)}
		months[key] = m
		return m
	}

	for _, e := range expenses {
		month(e.Date).Expenses += e.Amount
	}
	for _, i := range incomes {
		month(i.Date).Income += i.Amount
	}

	result := make([]MonthFlow, 0, len(months))
	for _, m := range months {
		m.Net = m.Income - m.Expenses
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})

	var running float64
	for i := range result {
		running += result[i].Net
		result[i].RunningBalance = running
	}

	return result
}

func spentByCategory(expenses []model.Expense) map[string]float64 {
	spent := make(map[string]float64)
	for _, e := range expenses {
		spent[e.CategoryID] += e.Amount
	}
	return spent
}
