package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Veraticus/financeflow/internal/model"
)

// ListCategories returns the expense categories. Pass ?all=true to include
// the income category.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.storage.GetCategories(r.Context())
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	if r.URL.Query().Get("all") != "true" {
		categories = model.ExpenseCategories(categories)
	}

	result := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		result = append(result, CategoryToDTO(c))
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CategoryDTO
	if err := decodeBody(r, &dto); err != nil {
		h.writeError(w, http.StatusBadRequest, err, "")
		return
	}

	category := model.Category{ID: dto.ID, Name: dto.Name, Icon: dto.Icon, Color: dto.Color}
	if err := h.storage.CreateCategory(r.Context(), &category); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, CategoryToDTO(category))
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
