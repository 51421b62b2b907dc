package model

import "time"

// DateLayout is the calendar-day format used for expense, income and budget dates.
const DateLayout = "2006-01-02"

// Expense is a single recorded outflow.
type Expense struct {
	Date        time.Time
	ID          string
	CategoryID  string
	Description string
	// ImportID is the bank's transaction ID for imported entries. Empty for
	// entries recorded by hand.
	ImportID string
	Amount   float64
}

// Income is a single recorded inflow.
type Income struct {
	Date        time.Time
	ID          string
	Source      string
	Description string
	ImportID    string
	Amount      float64
}

// TotalExpenses sums the amounts of the given expenses.
func TotalExpenses(expenses []Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// TotalIncome sums the amounts of the given incomes.
func TotalIncome(incomes []Income) float64 {
	var total float64
	for _, i := range incomes {
		total += i.Amount
	}
	return total
}
