package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBudgetPeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    BudgetPeriod
		wantErr bool
	}{
		{input: "monthly", want: PeriodMonthly},
		{input: "Yearly", want: PeriodYearly},
		{input: "  MONTHLY ", want: PeriodMonthly},
		{input: "weekly", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBudgetPeriod(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpenseCategories_ExcludesIncome(t *testing.T) {
	cats := ExpenseCategories(DefaultCategories)

	assert.Len(t, cats, len(DefaultCategories)-1)
	for _, c := range cats {
		assert.NotEqual(t, IncomeCategoryID, c.ID)
	}
}

func TestCategoryNames(t *testing.T) {
	names := CategoryNames([]Category{{ID: "food", Name: "Food"}, {ID: "rent", Name: "Rent"}})

	assert.Equal(t, map[string]string{"food": "Food", "rent": "Rent"}, names)
}

func TestSpendingRecord_CategoriesSortedAndTotal(t *testing.T) {
	record := SpendingRecord{"Rent": 1200, "Groceries": 300, "Dining Out": 150.5}

	assert.Equal(t, []string{"Dining Out", "Groceries", "Rent"}, record.Categories())
	assert.InDelta(t, 1650.5, record.Total(), 0.0001)
}

func TestOptimizationResult_Total(t *testing.T) {
	result := OptimizationResult{"Savings": 100, "Groceries": 250}

	assert.Equal(t, []string{"Groceries", "Savings"}, result.Categories())
	assert.InDelta(t, 350.0, result.Total(), 0.0001)
}

func TestTotals(t *testing.T) {
	assert.InDelta(t, 80.0, TotalExpenses([]Expense{{Amount: 50}, {Amount: 30}}), 0.0001)
	assert.InDelta(t, 0.0, TotalExpenses(nil), 0.0001)
	assert.InDelta(t, 3000.0, TotalIncome([]Income{{Amount: 2500}, {Amount: 500}}), 0.0001)
}
