package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Veraticus/financeflow/internal/report"
	"github.com/Veraticus/financeflow/internal/service"
)

// budgetResponse pairs a budget with its progress against recorded spending.
type budgetResponse struct {
	BudgetDTO
	CategoryName string  `json:"categoryName"`
	Spent        float64 `json:"spent"`
	Progress     float64 `json:"progress"`
	OverBudget   bool    `json:"isOverBudget"`
}

func toBudgetResponse(p report.BudgetProgress) budgetResponse {
	return budgetResponse{
		BudgetDTO:    BudgetToDTO(p.Budget),
		CategoryName: p.CategoryName,
		Spent:        p.Spent,
		Progress:     p.Progress,
		OverBudget:   p.OverBudget,
	}
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	budgets, err := h.storage.GetBudgets(ctx)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	expenses, err := h.storage.GetExpenses(ctx, service.DateFilter{})
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	categories, err := h.storage.GetCategories(ctx)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	progress := report.ProgressAll(budgets, expenses, categories)
	result := make([]budgetResponse, 0, len(progress))
	for _, p := range progress {
		result = append(result, toBudgetResponse(p))
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var dto BudgetDTO
	if err := decodeBody(r, &dto); err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}

	budget, err := DTOToBudget(dto)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	if err := h.storage.CreateBudget(r.Context(), &budget); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, BudgetToDTO(budget))
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var dto BudgetDTO
	if err := decodeBody(r, &dto); err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	dto.ID = mux.Vars(r)["id"]

	budget, err := DTOToBudget(dto)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	if err := h.storage.UpdateBudget(r.Context(), &budget); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, BudgetToDTO(budget))
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.DeleteBudget(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
