// Package api serves financeflow over a local JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/optimize"
	"github.com/Veraticus/financeflow/internal/service"
)

// Handler serves the API routes.
type Handler struct {
	storage   service.Storage
	optimizer *optimize.Optimizer
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler creates a Handler. optimizer may be nil, in which case
// optimization requests fail with InvocationFailed.
func NewHandler(storage service.Storage, optimizer *optimize.Optimizer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if optimizer == nil {
		optimizer = optimize.NewOptimizer(nil)
	}
	return &Handler{
		storage:   storage,
		optimizer: optimizer,
		logger:    logger,
		now:       time.Now,
	}
}

// NewRouter registers all API endpoints.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)

	api := r.PathPrefix("/api").Subrouter()

	// Expenses
	api.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	api.HandleFunc("/expenses/{id}", h.GetExpense).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods(http.MethodPut)
	api.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods(http.MethodDelete)

	// Incomes
	api.HandleFunc("/incomes", h.ListIncomes).Methods(http.MethodGet)
	api.HandleFunc("/incomes", h.CreateIncome).Methods(http.MethodPost)
	api.HandleFunc("/incomes/{id}", h.DeleteIncome).Methods(http.MethodDelete)

	// Categories
	api.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", h.DeleteCategory).Methods(http.MethodDelete)

	// Budgets
	api.HandleFunc("/budgets", h.ListBudgets).Methods(http.MethodGet)
	api.HandleFunc("/budgets", h.CreateBudget).Methods(http.MethodPost)
	api.HandleFunc("/budgets/{id}", h.UpdateBudget).Methods(http.MethodPut)
	api.HandleFunc("/budgets/{id}", h.DeleteBudget).Methods(http.MethodDelete)

	// Overview
	api.HandleFunc("/dashboard", h.GetDashboard).Methods(http.MethodGet)
	api.HandleFunc("/reports", h.GetReport).Methods(http.MethodGet)

	// Budget optimization
	api.HandleFunc("/optimize", h.Optimize).Methods(http.MethodPost)

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error, kind string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "status", status, "error", err)
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

// writeStorageError maps storage errors onto HTTP statuses.
func (h *Handler) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err, "")
	case errors.Is(err, common.ErrDuplicateEntry):
		h.writeError(w, http.StatusConflict, err, "")
	case errors.Is(err, common.ErrInvalidInput):
		h.writeError(w, http.StatusBadRequest, err, "")
	default:
		h.writeError(w, http.StatusInternalServerError, err, "")
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return common.NewUserError("invalid request body", err)
	}
	return nil
}
