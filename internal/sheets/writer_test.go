package sheets

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/Veraticus/financeflow/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleInput() ExportInput {
	return ExportInput{
		Categories: model.DefaultCategories,
		Expenses: []model.Expense{
			{ID: "e1", Amount: 50.10, CategoryID: "groceries", Date: date("2024-01-15"), Description: "Weekly shop"},
			{ID: "e2", Amount: 30.20, CategoryID: "dining", Date: date("2024-02-03"), Description: "Pizza"},
			{ID: "e3", Amount: 12, CategoryID: "deleted", Date: date("2024-02-10"), Description: "Mystery"},
		},
		Incomes: []model.Income{
			{ID: "i1", Amount: 1000, Source: "Salary", Date: date("2024-01-01")},
		},
		Budgets: []model.Budget{
			{ID: "b1", Amount: 25, CategoryID: "dining", Period: model.PeriodMonthly, StartDate: date("2024-02-01")},
		},
	}
}

func TestBuildTabData(t *testing.T) {
	data := BuildTabData(sampleInput())

	assert.True(t, decimal.NewFromInt(1000).Equal(data.TotalIncome))
	assert.True(t, decimal.RequireFromString("92.30").Equal(data.TotalExpenses), data.TotalExpenses.String())
	assert.True(t, decimal.RequireFromString("907.70").Equal(data.NetBalance), data.NetBalance.String())

	require.Len(t, data.CategorySummary, 3)
	assert.Equal(t, "Groceries", data.CategorySummary[0].CategoryName)

	require.Len(t, data.Expenses, 3)
	assert.Equal(t, "Mystery", data.Expenses[0].Description, "newest first")
	assert.Equal(t, "Uncategorized", data.Expenses[0].Category)

	require.Len(t, data.Budgets, 1)
	budget := data.Budgets[0]
	assert.Equal(t, "Dining Out", budget.CategoryName)
	assert.True(t, budget.OverBudget)
	assert.True(t, decimal.RequireFromString("-5.20").Equal(budget.Remaining), budget.Remaining.String())

	require.Len(t, data.MonthlyFlow, 2)
	assert.Equal(t, "Jan 2024", data.MonthlyFlow[0].Month)
	assert.Equal(t, "Feb 2024", data.MonthlyFlow[1].Month)

	assert.Empty(t, data.Allocation)
}

func TestBuildTabDataWithAllocation(t *testing.T) {
	in := sampleInput()
	in.Goals = "save for a trip"
	in.Allocation = model.OptimizationResult{"Groceries": 45, "Savings": 100}

	data := BuildTabData(in)
	require.Len(t, data.Allocation, 2)

	groceries := data.Allocation[0]
	assert.Equal(t, "Groceries", groceries.CategoryName)
	assert.True(t, decimal.RequireFromString("50.10").Equal(groceries.Current))
	assert.True(t, decimal.RequireFromString("-5.10").Equal(groceries.Change))

	savings := data.Allocation[1]
	assert.True(t, savings.Current.IsZero())
	assert.True(t, decimal.NewFromInt(100).Equal(savings.Change))
}

func TestTabs(t *testing.T) {
	data := BuildTabData(sampleInput())

	tabs := data.Tabs()
	titles := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		titles = append(titles, tab.Title)
	}
	assert.Equal(t, []string{SummaryTab, BudgetsTab, MonthlyTab, ExpensesTab, IncomeTab}, titles)

	summary := tabs[0]
	assert.Equal(t, []any{"Finance Report", "All time"}, summary.Values[0])
	assert.Equal(t, []any{"Net Balance", 907.7}, summary.Values[4])

	expenses := tabs[3]
	require.Len(t, expenses.Values, 4)
	assert.Equal(t, []any{"2024-02-10", 12.0, "Uncategorized", "Mystery"}, expenses.Values[1])

	budgets := tabs[1]
	assert.Equal(t, "Over budget", budgets.Values[1][6])

	data.Allocation = []AllocationRow{{CategoryName: "Rent", Suggested: decimal.NewFromInt(900)}}
	tabs = data.Tabs()
	require.Len(t, tabs, 6)
	allocation := tabs[5]
	assert.Equal(t, AllocationTab, allocation.Title)
	assert.Equal(t, []any{"Total", 900.0}, allocation.Values[len(allocation.Values)-1])
}

func TestPeriodLabel(t *testing.T) {
	data := &TabData{DateRange: DateRange{Start: date("2024-01-01")}}
	assert.Equal(t, "Jan 1, 2024 - today", data.periodLabel())

	data.DateRange.End = date("2024-03-31")
	assert.Equal(t, "Jan 1, 2024 - Mar 31, 2024", data.periodLabel())
}

func TestFormattingRequests(t *testing.T) {
	tabs := []Tab{
		{Title: "A", Values: [][]any{{"h1", "h2"}, {"x", 1.0}}, CurrencyColumns: []int{1}, HeaderRows: 1},
		{Title: "missing", Values: [][]any{{"h"}}, HeaderRows: 1},
	}

	requests := formattingRequests(tabs, map[string]int64{"A": 7})

	// bold header, one currency column, resize, freeze
	require.Len(t, requests, 4)
	currency := requests[1].RepeatCell
	require.NotNil(t, currency)
	assert.Equal(t, int64(7), currency.Range.SheetId)
	assert.Equal(t, int64(1), currency.Range.StartColumnIndex)
	assert.Equal(t, int64(2), requests[2].AutoResizeDimensions.Dimensions.EndIndex)
	assert.Equal(t, int64(1), requests[3].UpdateSheetProperties.Properties.GridProperties.FrozenRowCount)
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, SaveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)

	_, err = LoadToken(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
