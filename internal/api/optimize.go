package api

import (
	"net/http"

	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/optimize"
	"github.com/Veraticus/financeflow/internal/service"
)

// OptimizeRequest is the body of POST /api/optimize. When UseTracked is set
// the spending is aggregated from recorded expenses and PastSpending is
// ignored.
type OptimizeRequest struct {
	PastSpending   map[string]float64 `json:"pastSpending"`
	FinancialGoals string             `json:"financialGoals"`
	UseTracked     bool               `json:"useTracked"`
}

// OptimizeResponse carries the suggested allocation.
type OptimizeResponse struct {
	Allocation map[string]float64 `json:"allocation"`
	Total      float64            `json:"total"`
}

// Optimize runs the budget optimization pipeline.
func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OptimizeRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}

	var outcome optimize.Outcome
	if req.UseTracked {
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
		outcome, err = h.optimizer.OptimizeTracked(ctx, expenses, categories, req.FinancialGoals)
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, err, "")
			return
		}
	} else {
		spending := model.SpendingRecord(req.PastSpending)
		if err := optimize.ValidateSpending(spending); err != nil {
			h.writeError(w, http.StatusBadRequest, err, "")
			return
		}
		outcome = h.optimizer.Optimize(ctx, spending, req.FinancialGoals)
	}

	if outcome.Err != nil {
		kind := optimize.KindOf(outcome.Err)
		h.writeError(w, optimizeStatus(kind), outcome.Err, string(kind))
		return
	}

	h.logger.Info("budget optimized", "categories", len(outcome.Result), "total", outcome.Result.Total())
	h.writeJSON(w, http.StatusOK, OptimizeResponse{
		Allocation: outcome.Result,
		Total:      outcome.Result.Total(),
	})
}

func optimizeStatus(kind optimize.Kind) int {
	switch kind {
	case optimize.KindEmptySpending, optimize.KindEmptyGoals:
		return http.StatusBadRequest
	case optimize.KindSchemaMismatch, optimize.KindInvocationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
