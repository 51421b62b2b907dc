// Package testutil provides test helpers for packages that need a populated
// financeflow database.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/storage"
)

// TestDB is a migrated in-memory database with fixture helpers.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database seeded with the default
// categories. It is closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.AddExpense("groceries", 42.50, "2024-03-01", "Weekly shop")
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// AddExpense records an expense or fails the test.
func (db *TestDB) AddExpense(categoryID string, amount float64, date, description string) model.Expense {
	db.t.Helper()

	expense := model.Expense{
		Amount:      amount,
		CategoryID:  categoryID,
		Date:        MustDate(db.t, date),
		Description: description,
	}
	if err := db.Storage.CreateExpense(context.Background(), &expense); err != nil {
		db.t.Fatalf("failed to add expense: %v", err)
	}
	return expense
}

// AddIncome records an income or fails the test.
func (db *TestDB) AddIncome(source string, amount float64, date string) model.Income {
	db.t.Helper()

	income := model.Income{
		Amount: amount,
		Source: source,
		Date:   MustDate(db.t, date),
	}
	if err := db.Storage.CreateIncome(context.Background(), &income); err != nil {
		db.t.Fatalf("failed to add income: %v", err)
	}
	return income
}

// AddBudget records a budget or fails the test.
func (db *TestDB) AddBudget(categoryID string, amount float64, period model.BudgetPeriod, startDate string) model.Budget {
	db.t.Helper()

	budget := model.Budget{
		Amount:     amount,
		CategoryID: categoryID,
		Period:     period,
		StartDate:  MustDate(db.t, startDate),
	}
	if err := db.Storage.CreateBudget(context.Background(), &budget); err != nil {
		db.t.Fatalf("failed to add budget: %v", err)
	}
	return budget
}

// MustDate parses a YYYY-MM-DD date or fails the test.
func MustDate(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", s, err)
	}
	return d
}
