package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	filter, err := dateFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}

	incomes, err := h.storage.GetIncomes(r.Context(), filter)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	result := make([]IncomeDTO, 0, len(incomes))
	for _, i := range incomes {
		result = append(result, IncomeToDTO(i))
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var dto IncomeDTO
	if err := decodeBody(r, &dto); err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	if dto.Date == "" {
		dto.Date = h.now().Format(time.DateOnly)
	}

	income, err := DTOToIncome(dto)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}
	if err := h.storage.CreateIncome(r.Context(), &income); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, IncomeToDTO(income))
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.DeleteIncome(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
