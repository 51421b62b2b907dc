package api

import (
	"net/http"

	"github.com/Veraticus/financeflow/internal/report"
	"github.com/Veraticus/financeflow/internal/service"
)

// dashboardResponse swaps the dashboard's recent expenses for their DTOs.
type dashboardResponse struct {
	ByCategory     []report.CategoryTotal    `json:"expenseByCategory"`
	Budgets        []report.BudgetComparison `json:"budgetStatus"`
	RecentExpenses []ExpenseDTO              `json:"recentExpenses"`
	report.Totals
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	expenses, err := h.storage.GetExpenses(ctx, service.DateFilter{})
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	incomes, err := h.storage.GetIncomes(ctx, service.DateFilter{})
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	budgets, err := h.storage.GetBudgets(ctx)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	categories, err := h.storage.GetCategories(ctx)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	d := report.BuildDashboard(expenses, incomes, budgets, categories)
	recent := make([]ExpenseDTO, 0, len(d.RecentExpenses))
	for _, e := range d.RecentExpenses {
		recent = append(recent, ExpenseToDTO(e))
	}

	h.writeJSON(w, http.StatusOK, dashboardResponse{
		ByCategory:     d.ByCategory,
		Budgets:        d.Budgets,
		RecentExpenses: recent,
		Totals:         d.Totals,
	})
}

// GetReport returns totals, category breakdown and monthly flow for the
// optional from/to range.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := dateFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	expenses, err := h.storage.GetExpenses(ctx, filter)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	incomes, err := h.storage.GetIncomes(ctx, filter)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	categories, err := h.storage.GetCategories(ctx)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, report.BuildReport(expenses, incomes, categories))
}
