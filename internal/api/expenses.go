package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Veraticus/financeflow/internal/service"
)

// dateFilter reads the optional from/to query parameters.
func dateFilter(r *http.Request) (service.DateFilter, error) {
	var filter service.DateFilter
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := parseDate("from", s)
		if err != nil {
			return filter, err
		}
		filter.Start = &t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := parseDate("to", s)
		if err != nil {
			return filter, err
		}
		filter.End = &t
	}
	return filter, nil
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := dateFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}

	expenses, err := h.storage.GetExpenses(r.Context(), filter)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	result := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, ExpenseToDTO(e))
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.storage.GetExpense(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ExpenseToDTO(*expense))
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto ExpenseDTO
	if err := decodeBody(r, &dto); err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	if dto.Date == "" {
		dto.Date = h.now().Format(time.DateOnly)
	}

	expense, err := DTOToExpense(dto)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	if err := h.storage.CreateExpense(r.Context(), &expense); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, ExpenseToDTO(expense))
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var dto ExpenseDTO
	if err := decodeBody(r, &dto); err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	dto.ID = mux.Vars(r)["id"]

	expense, err := DTOToExpense(dto)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	if err := h.storage.UpdateExpense(r.Context(), &expense); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ExpenseToDTO(expense))
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.DeleteExpense(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
