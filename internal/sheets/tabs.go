package sheets

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/financeflow/internal/model"
)

// Tab is one sheet's worth of values.
type Tab struct {
	Title  string
	Values [][]any
	// CurrencyColumns are zero-based column indexes formatted as money.
	CurrencyColumns []int
	// HeaderRows is how many leading rows are frozen and bolded.
	HeaderRows int
}

func cell(d decimal.Decimal) any {
	return d.InexactFloat64()
}

// Tabs lays the data out as spreadsheet tabs.
func (d *TabData) Tabs() []Tab {
	tabs := []Tab{
		d.summaryTab(),
		d.budgetsTab(),
		d.monthlyTab(),
		d.expensesTab(),
		d.incomeTab(),
	}
	if len(d.Allocation) > 0 {
		tabs = append(tabs, d.allocationTab())
	}
	return tabs
}

func (d *TabData) periodLabel() string {
	if d.DateRange.Start.IsZero() && d.DateRange.End.IsZero() {
		return "All time"
	}
	start, end := "beginning", "today"
	if !d.DateRange.Start.IsZero() {
		start = d.DateRange.Start.Format("Jan 2, 2006")
	}
	if !d.DateRange.End.IsZero() {
		end = d.DateRange.End.Format("Jan 2, 2006")
	}
	return fmt.Sprintf("%s - %s", start, end)
}

func (d *TabData) summaryTab() Tab {
	values := make([][]any, 0, 9+len(d.CategorySummary))
	values = append(values,
		[]any{"Finance Report", d.periodLabel()},
		[]any{},
		[]any{"Total Income", cell(d.TotalIncome)},
		[]any{"Total Expenses", cell(d.TotalExpenses)},
		[]any{"Net Balance", cell(d.NetBalance)},
		[]any{},
		[]any{"Spending by Category"},
		[]any{"Category", "Amount", "Percent"},
	)
	for _, c := range d.CategorySummary {
		values = append(values, []any{c.CategoryName, cell(c.Amount), c.Percent.StringFixed(1) + "%"})
	}
	return Tab{Title: SummaryTab, Values: values, CurrencyColumns: []int{1}, HeaderRows: 1}
}

func (d *TabData) budgetsTab() Tab {
	values := [][]any{{"Category", "Period", "Start Date", "Budgeted", "Spent", "Remaining", "Status"}}
	for _, b := range d.Budgets {
		status := "On track"
		if b.OverBudget {
			status = "Over budget"
		}
		values = append(values, []any{
			b.CategoryName,
			b.Period,
			b.StartDate.Format(model.DateLayout),
			cell(b.Budgeted),
			cell(b.Spent),
			cell(b.Remaining),
			status,
		})
	}
	return Tab{Title: BudgetsTab, Values: values, CurrencyColumns: []int{3, 4, 5}, HeaderRows: 1}
}

func (d *TabData) monthlyTab() Tab {
	values := [][]any{{"Month", "Income", "Expenses", "Net", "Running Balance"}}
	for _, m := range d.MonthlyFlow {
		values = append(values, []any{
			m.Month,
			cell(m.TotalIncome),
			cell(m.TotalExpenses),
			cell(m.NetFlow),
			cell(m.RunningBalance),
		})
	}
	return Tab{Title: MonthlyTab, Values: values, CurrencyColumns: []int{1, 2, 3, 4}, HeaderRows: 1}
}

func (d *TabData) expensesTab() Tab {
	values := [][]any{{"Date", "Amount", "Category", "Description"}}
	for _, e := range d.Expenses {
		values = append(values, []any{e.Date.Format(model.DateLayout), cell(e.Amount), e.Category, e.Description})
	}
	return Tab{Title: ExpensesTab, Values: values, CurrencyColumns: []int{1}, HeaderRows: 1}
}

func (d *TabData) incomeTab() Tab {
	values := [][]any{{"Date", "Amount", "Source", "Description"}}
	for _, i := range d.Income {
		values = append(values, []any{i.Date.Format(model.DateLayout), cell(i.Amount), i.Source, i.Description})
	}
	return Tab{Title: IncomeTab, Values: values, CurrencyColumns: []int{1}, HeaderRows: 1}
}

func (d *TabData) allocationTab() Tab {
	values := [][]any{
		{"Goals", d.Goals},
		{},
		{"Category", "Suggested", "Current Spending", "Change"},
	}
	var total decimal.Decimal
	for _, a := range d.Allocation {
		total = total.Add(a.Suggested)
		values = append(values, []any{a.CategoryName, cell(a.Suggested), cell(a.Current), cell(a.Change)})
	}
	values = append(values, []any{"Total", cell(total)})
	return Tab{Title: AllocationTab, Values: values, CurrencyColumns: []int{1, 2, 3}, HeaderRows: 3}
}
