package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/financeflow/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

var testCategories = []model.Category{
	{ID: "groceries", Name: "Groceries"},
	{ID: "dining", Name: "Dining Out"},
	{ID: "income", Name: "Income"},
}

func TestComputeTotals(t *testing.T) {
	expenses := []model.Expense{{Amount: 100}, {Amount: 50.5}}
	incomes := []model.Income{{Amount: 1000}}

	totals := ComputeTotals(expenses, incomes)
	assert.InDelta(t, 1000, totals.Income, 0.001)
	assert.InDelta(t, 150.5, totals.Expenses, 0.001)
	assert.InDelta(t, 849.5, totals.NetBalance, 0.001)

	empty := ComputeTotals(nil, nil)
	assert.Equal(t, Totals{}, empty)
}

func TestSpendingByCategory(t *testing.T) {
	expenses := []model.Expense{
		{Amount: 30, CategoryID: "groceries"},
		{Amount: 45, CategoryID: "groceries"},
		{Amount: 20, CategoryID: "dining"},
		{Amount: 5, CategoryID: "deleted-category"},
	}

	got := SpendingByCategory(expenses, testCategories)
	require.Len(t, got, 3)

	assert.Equal(t, "Groceries", got[0].Name)
	assert.InDelta(t, 75, got[0].Amount, 0.001)
	assert.InDelta(t, 75, got[0].Percent, 0.001)

	assert.Equal(t, "Dining Out", got[1].Name)
	assert.Equal(t, UncategorizedLabel, got[2].Name)
	assert.InDelta(t, 5, got[2].Percent, 0.001)
}

func TestSpendingByCategory_Empty(t *testing.T) {
	assert.Empty(t, SpendingByCategory(nil, testCategories))
}

func TestCompareBudgets(t *testing.T) {
	budgets := []model.Budget{
		{ID: "b1", CategoryID: "groceries", Amount: 100, StartDate: date("2024-06-01")},
		{ID: "b2", CategoryID: "gone", Amount: 50},
	}
	expenses := []model.Expense{
		{Amount: 60, CategoryID: "groceries", Date: date("2024-01-01")},
		{Amount: 70, CategoryID: "groceries", Date: date("2024-07-01")},
	}

	got := CompareBudgets(budgets, expenses, testCategories)
	require.Len(t, got, 2)

	// Every expense counts, even before the start date.
	assert.Equal(t, BudgetComparison{Name: "Groceries", Budgeted: 100, Spent: 130, Remaining: -30}, got[0])
	assert.Equal(t, BudgetComparison{Name: OverallLabel, Budgeted: 50, Spent: 0, Remaining: 50}, got[1])
}

func TestProgress(t *testing.T) {
	budget := model.Budget{ID: "b1", CategoryID: "groceries", Amount: 200, Period: model.PeriodMonthly, StartDate: date("2024-03-01")}

	tests := []struct {
		name         string
		expenses     []model.Expense
		wantSpent    float64
		wantProgress float64
		wantOver     bool
	}{
		{
			name:         "no spending",
			wantSpent:    0,
			wantProgress: 0,
		},
		{
			name: "counts from start date inclusive",
			expenses: []model.Expense{
				{Amount: 999, CategoryID: "groceries", Date: date("2024-02-29")},
				{Amount: 50, CategoryID: "groceries", Date: date("2024-03-01")},
				{Amount: 50, CategoryID: "groceries", Date: date("2024-04-10")},
				{Amount: 500, CategoryID: "dining", Date: date("2024-03-05")},
			},
			wantSpent:    100,
			wantProgress: 50,
		},
		{
			name: "over budget",
			expenses: []model.Expense{
				{Amount: 250, CategoryID: "groceries", Date: date("2024-03-02")},
			},
			wantSpent:    250,
			wantProgress: 125,
			wantOver:     true,
		},
		{
			name: "exactly at budget is not over",
			expenses: []model.Expense{
				{Amount: 200, CategoryID: "groceries", Date: date("2024-03-02")},
			},
			wantSpent:    200,
			wantProgress: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(budget, tt.expenses, testCategories)
			assert.Equal(t, "Groceries", got.CategoryName)
			assert.InDelta(t, tt.wantSpent, got.Spent, 0.001)
			assert.InDelta(t, tt.wantProgress, got.Progress, 0.001)
			assert.Equal(t, tt.wantOver, got.OverBudget)
		})
	}
}

func TestProgressAll_UnknownCategory(t *testing.T) {
	got := ProgressAll([]model.Budget{{CategoryID: "gone", Amount: 10}}, nil, testCategories)
	require.Len(t, got, 1)
	assert.Equal(t, "N/A", got[0].CategoryName)
}

func TestMonthlyFlow(t *testing.T) {
	expenses := []model.Expense{
		{Amount: 300, Date: date("2024-02-10")},
		{Amount: 100, Date: date("2024-01-05")},
		{Amount: 50, Date: date("2024-01-20")},
		{Amount: 25, Date: date("2023-12-31")},
	}
	incomes := []model.Income{
		{Amount: 1000, Date: date("2024-01-01")},
		{Amount: 200, Date: date("2024-03-15")},
	}

	got := MonthlyFlow(expenses, incomes)
	require.Len(t, got, 4)

	labels := make([]string, len(got))
	for i, m := range got {
		labels[i] = m.Label
	}
	assert.Equal(t, []string{"Dec 2023", "Jan 2024", "Feb 2024", "Mar 2024"}, labels)

	assert.InDelta(t, -25, got[0].Net, 0.001)
	assert.InDelta(t, 1000, got[1].Income, 0.001)
	assert.InDelta(t, 150, got[1].Expenses, 0.001)
	assert.InDelta(t, 850, got[1].Net, 0.001)
	assert.InDelta(t, 825, got[1].RunningBalance, 0.001)
	assert.InDelta(t, 525, got[2].RunningBalance, 0.001)
	assert.InDelta(t, 725, got[3].RunningBalance, 0.001)
}

func TestBuildDashboard(t *testing.T) {
	var expenses []model.Expense
	for i := range 8 {
		expenses = append(expenses, model.Expense{ID: string(rune('a' + i)), Amount: 10, CategoryID: "groceries", Date: date("2024-01-01")})
	}
	incomes := []model.Income{{Amount: 500}}
	budgets := []model.Budget{{CategoryID: "groceries", Amount: 100}}

	d := BuildDashboard(expenses, incomes, budgets, testCategories)
	assert.InDelta(t, 420, d.NetBalance, 0.001)
	assert.Len(t, d.RecentExpenses, recentLimit)
	assert.Equal(t, "a", d.RecentExpenses[0].ID)
	require.Len(t, d.ByCategory, 1)
	require.Len(t, d.Budgets, 1)
	assert.InDelta(t, 20, d.Budgets[0].Remaining, 0.001)

	d.RecentExpenses[0].ID = "changed"
	assert.Equal(t, "a", expenses[0].ID)
}

func TestBuildReport(t *testing.T) {
	expenses := []model.Expense{{Amount: 10, CategoryID: "dining", Date: date("2024-05-05")}}
	r := BuildReport(expenses, nil, testCategories)

	assert.InDelta(t, -10, r.NetBalance, 0.001)
	require.Len(t, r.ByCategory, 1)
	require.Len(t, r.Monthly, 1)
	assert.Equal(t, "May 2024", r.Monthly[0].Label)
}
