// Package seed generates demo expenses, incomes and budgets.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/service"
)

// amountRange bounds a single generated expense in one category.
type amountRange struct {
	min, max float64
	// perMonth is how many expenses the category gets in a typical month.
	perMonth int
}

var expenseProfiles = map[string]amountRange{
	"groceries":     {min: 20, max: 150, perMonth: 8},
	"dining":        {min: 12, max: 90, perMonth: 5},
	"transport":     {min: 5, max: 60, perMonth: 6},
	"utilities":     {min: 40, max: 180, perMonth: 2},
	"housing":       {min: 900, max: 1600, perMonth: 1},
	"entertainment": {min: 10, max: 80, perMonth: 3},
	"health":        {min: 15, max: 200, perMonth: 1},
	"shopping":      {min: 15, max: 250, perMonth: 3},

	model.OtherCategoryID: {min: 5, max: 100, perMonth: 1},
}

var descriptions = map[string][]string{
	"groceries":     {"Weekly shop", "Farmers market", "Corner store", "Bulk groceries"},
	"dining":        {"Lunch", "Dinner out", "Coffee", "Takeout"},
	"transport":     {"Fuel", "Bus pass", "Parking", "Ride share"},
	"utilities":     {"Electricity", "Water", "Internet", "Phone"},
	"housing":       {"Rent"},
	"entertainment": {"Cinema", "Concert tickets", "Streaming", "Books"},
	"health":        {"Pharmacy", "Doctor visit", "Gym membership"},
	"shopping":      {"Clothes", "Electronics", "Home goods"},

	model.OtherCategoryID: {"Gift", "Miscellaneous"},
}

// Dataset is one batch of generated records.
type Dataset struct {
	Expenses []model.Expense
	Incomes  []model.Income
	Budgets  []model.Budget
}

// Len is the number of generated records.
func (d *Dataset) Len() int {
	return len(d.Expenses) + len(d.Incomes) + len(d.Budgets)
}

// Generator produces deterministic demo data for a given seed.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a generator. The same seed always yields the same
// amounts, dates and descriptions.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Generate builds months of data ending in the month containing end. Each
// month gets a salary, a scattering of expenses per category, and the
// first month starts a monthly budget for every profiled category.
func (g *Generator) Generate(months int, end time.Time) (*Dataset, error) {
	if months <= 0 {
		return nil, fmt.Errorf("months must be positive, got %d", months)
	}

	ds := &Dataset{}
	first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	salary := g.money(2500, 5000)

	for m := 0; m < months; m++ {
		monthStart := first.AddDate(0, m, 0)
		days := monthStart.AddDate(0, 1, -1).Day()
		lastDay := days
		if monthStart.Year() == end.Year() && monthStart.Month() == end.Month() {
			lastDay = end.Day()
		}

		ds.Incomes = append(ds.Incomes, model.Income{
			ID:          uuid.NewString(),
			Amount:      salary,
			Source:      "Salary",
			Date:        monthStart,
			Description: g.faker.Company() + " payroll",
		})
		if g.faker.Float64() < 0.3 {
			ds.Incomes = append(ds.Incomes, model.Income{
				ID:          uuid.NewString(),
				Amount:      g.money(50, 600),
				Source:      "Freelance",
				Date:        g.day(monthStart, lastDay),
				Description: g.faker.BS(),
			})
		}

		for _, categoryID := range profileOrder() {
			profile := expenseProfiles[categoryID]
			count := profile.perMonth
			if count > 1 {
				count = g.faker.IntRange(count/2, count)
			}
			for i := 0; i < count; i++ {
				ds.Expenses = append(ds.Expenses, model.Expense{
					ID:          uuid.NewString(),
					Amount:      g.money(profile.min, profile.max),
					CategoryID:  categoryID,
					Date:        g.day(monthStart, lastDay),
					Description: g.faker.RandomString(descriptions[categoryID]),
				})
			}
		}
	}

	for _, categoryID := range profileOrder() {
		profile := expenseProfiles[categoryID]
		typical := (profile.min + profile.max) / 2 * float64(profile.perMonth)
		ds.Budgets = append(ds.Budgets, model.Budget{
			ID:         uuid.NewString(),
			Amount:     roundTo(typical, 10),
			CategoryID: categoryID,
			Period:     model.PeriodMonthly,
			StartDate:  first,
		})
	}

	return ds, nil
}

// profileOrder is the profiled categories in a fixed order so a seed is
// reproducible despite map iteration order.
func profileOrder() []string {
	order := make([]string, 0, len(expenseProfiles))
	for _, c := range model.DefaultCategories {
		if _, ok := expenseProfiles[c.ID]; ok {
			order = append(order, c.ID)
		}
	}
	return order
}

func (g *Generator) money(lo, hi float64) float64 {
	return roundTo(g.faker.Float64Range(lo, hi), 0.01)
}

func (g *Generator) day(monthStart time.Time, lastDay int) time.Time {
	return monthStart.AddDate(0, 0, g.faker.IntRange(1, lastDay)-1)
}

func roundTo(v, unit float64) float64 {
	return float64(int64(v/unit+0.5)) * unit
}

// Insert writes a dataset to storage, calling progress once per record.
func Insert(ctx context.Context, store service.Storage, ds *Dataset, progress func()) error {
	tick := func() {
		if progress != nil {
			progress()
		}
	}

	for i := range ds.Incomes {
		if err := store.CreateIncome(ctx, &ds.Incomes[i]); err != nil {
			return fmt.Errorf("failed to insert income: %w", err)
		}
		tick()
	}
	for i := range ds.Expenses {
		if err := store.CreateExpense(ctx, &ds.Expenses[i]); err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		tick()
	}
	for i := range ds.Budgets {
		if err := store.CreateBudget(ctx, &ds.Budgets[i]); err != nil {
			return fmt.Errorf("failed to insert budget: %w", err)
		}
		tick()
	}
	return nil
}
