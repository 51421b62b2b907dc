package sheets

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/report"
)

// Tab titles, in the order they appear in the spreadsheet.
const (
	SummaryTab    = "Summary"
	BudgetsTab    = "Budgets"
	MonthlyTab    = "Monthly Flow"
	ExpensesTab   = "Expenses"
	IncomeTab     = "Income"
	AllocationTab = "Suggested Budget"
)

// ExpenseRow represents a single row in the Expenses tab.
type ExpenseRow struct {
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// IncomeRow represents a single row in the Income tab.
type IncomeRow struct {
	Date        time.Time
	Amount      decimal.Decimal
	Source      string
	Description string
}

// CategorySummaryRow is one category on the Summary tab.
type CategorySummaryRow struct {
	CategoryName string
	Amount       decimal.Decimal
	Percent      decimal.Decimal
}

// BudgetRow represents a single row in the Budgets tab.
type BudgetRow struct {
	StartDate    time.Time
	CategoryName string
	Period       string
	Budgeted     decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	OverBudget   bool
}

// MonthlyFlowRow represents a single row in the Monthly Flow tab.
type MonthlyFlowRow struct {
	Month          string // e.g., "Jan 2024"
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	NetFlow        decimal.Decimal
	RunningBalance decimal.Decimal
}

// AllocationRow is one category of a suggested budget.
type AllocationRow struct {
	CategoryName string
	Suggested    decimal.Decimal
	Current      decimal.Decimal
	Change       decimal.Decimal
}

// DateRange represents the time period covered by the export.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// TabData holds all the data for the complete spreadsheet export.
type TabData struct {
	DateRange       DateRange
	TotalIncome     decimal.Decimal
	TotalExpenses   decimal.Decimal
	NetBalance      decimal.Decimal
	CategorySummary []CategorySummaryRow
	Budgets         []BudgetRow
	MonthlyFlow     []MonthlyFlowRow
	Expenses        []ExpenseRow
	Income          []IncomeRow
	Goals           string
	Allocation      []AllocationRow
}

// ExportInput is the raw data an export is built from.
type ExportInput struct {
	Expenses   []model.Expense
	Incomes    []model.Income
	Budgets    []model.Budget
	Categories []model.Category
	DateRange  DateRange
	// Allocation and Goals are optional; a Suggested Budget tab is written
	// only when Allocation is non-empty.
	Allocation model.OptimizationResult
	Goals      string
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// BuildTabData converts stored records into spreadsheet rows.
func BuildTabData(in ExportInput) *TabData {
	r := report.BuildReport(in.Expenses, in.Incomes, in.Categories)
	names := model.CategoryNames(in.Categories)

	data := &TabData{
		DateRange:     in.DateRange,
		TotalIncome:   money(r.Income),
		TotalExpenses: money(r.Expenses),
		NetBalance:    money(r.NetBalance),
		Goals:         in.Goals,
	}

	for _, c := range r.ByCategory {
		data.CategorySummary = append(data.CategorySummary, CategorySummaryRow{
			CategoryName: c.Name,
			Amount:       money(c.Amount),
			Percent:      decimal.NewFromFloat(c.Percent).Round(1),
		})
	}

	for _, p := range report.ProgressAll(in.Budgets, in.Expenses, in.Categories) {
		spent := money(p.Spent)
		budgeted := money(p.Budget.Amount)
		data.Budgets = append(data.Budgets, BudgetRow{
			StartDate:    p.Budget.StartDate,
			CategoryName: p.CategoryName,
			Period:       string(p.Budget.Period),
			Budgeted:     budgeted,
			Spent:        spent,
			Remaining:    budgeted.Sub(spent),
			OverBudget:   p.OverBudget,
		})
	}

	for _, m := range r.Monthly {
		data.MonthlyFlow = append(data.MonthlyFlow, MonthlyFlowRow{
			Month:          m.Label,
			TotalIncome:    money(m.Income),
			TotalExpenses:  money(m.Expenses),
			NetFlow:        money(m.Net),
			RunningBalance: money(m.RunningBalance),
		})
	}

	for _, e := range in.Expenses {
		category, ok := names[e.CategoryID]
		if !ok {
			category = report.UncategorizedLabel
		}
		data.Expenses = append(data.Expenses, ExpenseRow{
			Date:        e.Date,
			Amount:      money(e.Amount),
			Category:    category,
			Description: e.Description,
		})
	}
	sort.SliceStable(data.Expenses, func(i, j int) bool {
		return data.Expenses[i].Date.After(data.Expenses[j].Date)
	})

	for _, i := range in.Incomes {
		data.Income = append(data.Income, IncomeRow{
			Date:        i.Date,
			Amount:      money(i.Amount),
			Source:      i.Source,
			Description: i.Description,
		})
	}
	sort.SliceStable(data.Income, func(a, b int) bool {
		return data.Income[a].Date.After(data.Income[b].Date)
	})

	if len(in.Allocation) > 0 {
		current := make(map[string]decimal.Decimal, len(r.ByCategory))
		for _, c := range data.CategorySummary {
			current[c.CategoryName] = c.Amount
		}
		for _, name := range in.Allocation.Categories() {
			suggested := money(in.Allocation[name])
			data.Allocation = append(data.Allocation, AllocationRow{
				CategoryName: name,
				Suggested:    suggested,
				Current:      current[name],
				Change:       suggested.Sub(current[name]),
			})
		}
	}

	return data
}
