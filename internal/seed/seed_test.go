package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/service"
	"github.com/Veraticus/financeflow/internal/testutil"
)

var end = time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

func TestGenerate(t *testing.T) {
	ds, err := NewGenerator(42).Generate(3, end)
	require.NoError(t, err)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range ds.Expenses {
		assert.Positive(t, e.Amount)
		assert.NotEqual(t, model.IncomeCategoryID, e.CategoryID)
		assert.False(t, e.Date.Before(start), "expense before range: %s", e.Date)
		assert.False(t, e.Date.After(end), "expense after end: %s", e.Date)
		assert.NotEmpty(t, e.Description)
	}

	salaries := 0
	for _, i := range ds.Incomes {
		if i.Source == "Salary" {
			salaries++
		}
	}
	assert.Equal(t, 3, salaries)

	assert.Len(t, ds.Budgets, len(expenseProfiles))
	for _, b := range ds.Budgets {
		assert.Equal(t, start, b.StartDate)
		assert.Equal(t, model.PeriodMonthly, b.Period)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := NewGenerator(7).Generate(2, end)
	require.NoError(t, err)
	b, err := NewGenerator(7).Generate(2, end)
	require.NoError(t, err)

	require.Len(t, b.Expenses, len(a.Expenses))
	for i := range a.Expenses {
		assert.Equal(t, a.Expenses[i].Amount, b.Expenses[i].Amount)
		assert.Equal(t, a.Expenses[i].Date, b.Expenses[i].Date)
		assert.Equal(t, a.Expenses[i].Description, b.Expenses[i].Description)
	}
}

func TestGenerateRejectsNonPositiveMonths(t *testing.T) {
	_, err := NewGenerator(1).Generate(0, end)
	assert.Error(t, err)
}

func TestInsert(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)

	ds, err := NewGenerator(3).Generate(1, end)
	require.NoError(t, err)

	var ticks int
	require.NoError(t, Insert(ctx, db.Storage, ds, func() { ticks++ }))
	assert.Equal(t, ds.Len(), ticks)

	expenses, err := db.Storage.GetExpenses(ctx, service.DateFilter{})
	require.NoError(t, err)
	assert.Len(t, expenses, len(ds.Expenses))

	budgets, err := db.Storage.GetBudgets(ctx)
	require.NoError(t, err)
	assert.Len(t, budgets, len(ds.Budgets))
}

func TestRoundTo(t *testing.T) {
	assert.InDelta(t, 12.35, roundTo(12.346, 0.01), 1e-9)
	assert.InDelta(t, 130, roundTo(127, 10), 1e-9)
}
