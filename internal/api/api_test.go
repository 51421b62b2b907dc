package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/financeflow/internal/llm"
	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/optimize"
	"github.com/Veraticus/financeflow/internal/testutil"
)

type stubClient struct {
	err      error
	response string
	prompts  []string
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.prompts = append(s.prompts, req.Prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestRouter(t *testing.T, client llm.Client) (http.Handler, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db.Storage, optimize.NewOptimizer(client), nil)
	return NewRouter(h), db
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestExpenseLifecycle(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := do(t, router, http.MethodPost, "/api/expenses", ExpenseDTO{
		Amount:      42.5,
		CategoryID:  "groceries",
		Date:        "2024-03-01",
		Description: "Weekly shop",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[ExpenseDTO](t, rr)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-03-01", created.Date)

	rr = do(t, router, http.MethodGet, "/api/expenses/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created, decode[ExpenseDTO](t, rr))

	created.Amount = 50
	rr = do(t, router, http.MethodPut, "/api/expenses/"+created.ID, created)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.InDelta(t, 50, decode[ExpenseDTO](t, rr).Amount, 0.001)

	rr = do(t, router, http.MethodDelete, "/api/expenses/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/expenses/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateExpenseRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	tests := []struct {
		name string
		body any
	}{
		{"bad date", ExpenseDTO{Amount: 10, CategoryID: "groceries", Date: "03/01/2024"}},
		{"zero amount", ExpenseDTO{Amount: 0, CategoryID: "groceries", Date: "2024-03-01"}},
		{"unknown field", map[string]any{"amount": 10, "category": "groceries"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodPost, "/api/expenses", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			assert.NotEmpty(t, decode[errorResponse](t, rr).Error)
		})
	}
}

func TestListExpensesFiltersByDate(t *testing.T) {
	router, db := newTestRouter(t, nil)
	db.AddExpense("groceries", 10, "2024-01-15", "january")
	db.AddExpense("groceries", 20, "2024-02-15", "february")
	db.AddExpense("groceries", 30, "2024-03-15", "march")

	rr := do(t, router, http.MethodGet, "/api/expenses?from=2024-02-01&to=2024-02-29", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	expenses := decode[[]ExpenseDTO](t, rr)
	require.Len(t, expenses, 1)
	assert.Equal(t, "february", expenses[0].Description)

	rr = do(t, router, http.MethodGet, "/api/expenses?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCategories(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := do(t, router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	for _, c := range decode[[]CategoryDTO](t, rr) {
		assert.NotEqual(t, "income", c.ID)
	}

	rr = do(t, router, http.MethodPost, "/api/categories", CategoryDTO{Name: "Pet Care"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "pet-care", decode[CategoryDTO](t, rr).ID)

	rr = do(t, router, http.MethodPost, "/api/categories", CategoryDTO{Name: "Pet Care"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, router, http.MethodDelete, "/api/categories/income", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBudgetsIncludeProgress(t *testing.T) {
	router, db := newTestRouter(t, nil)
	db.AddExpense("dining", 80, "2024-02-20", "before start")
	db.AddExpense("dining", 120, "2024-03-05", "after start")

	rr := do(t, router, http.MethodPost, "/api/budgets", BudgetDTO{
		Amount:     100,
		CategoryID: "dining",
		Period:     "Monthly",
		StartDate:  "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "monthly", decode[BudgetDTO](t, rr).Period)

	rr = do(t, router, http.MethodGet, "/api/budgets", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	budgets := decode[[]budgetResponse](t, rr)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Dining Out", budgets[0].CategoryName)
	assert.InDelta(t, 120, budgets[0].Spent, 0.001)
	assert.True(t, budgets[0].OverBudget)

	rr = do(t, router, http.MethodPost, "/api/budgets", BudgetDTO{
		Amount: 100, CategoryID: "dining", Period: "weekly", StartDate: "2024-03-01",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDashboard(t *testing.T) {
	router, db := newTestRouter(t, nil)
	db.AddIncome("Salary", 3000, "2024-03-01")
	db.AddExpense("groceries", 200, "2024-03-02", "shop")
	db.AddExpense("dining", 100, "2024-03-03", "dinner")
	db.AddBudget("dining", 150, model.PeriodMonthly, "2024-03-01")

	rr := do(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	d := decode[dashboardResponse](t, rr)
	assert.InDelta(t, 3000, d.Income, 0.001)
	assert.InDelta(t, 300, d.Expenses, 0.001)
	assert.InDelta(t, 2700, d.NetBalance, 0.001)
	require.Len(t, d.RecentExpenses, 2)
	assert.Equal(t, "dinner", d.RecentExpenses[0].Description)
	require.NotEmpty(t, d.ByCategory)
	assert.Equal(t, "Groceries", d.ByCategory[0].Name)
	require.Len(t, d.Budgets, 1)
	assert.Equal(t, "Dining Out", d.Budgets[0].Name)
	assert.InDelta(t, 50, d.Budgets[0].Remaining, 0.001)
}

func TestReport(t *testing.T) {
	router, db := newTestRouter(t, nil)
	db.AddExpense("groceries", 50, "2024-01-10", "jan")
	db.AddExpense("groceries", 70, "2024-02-10", "feb")

	rr := do(t, router, http.MethodGet, "/api/reports?from=2024-02-01", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Monthly []struct {
			Label string `json:"label"`
		} `json:"monthly"`
		TotalExpenses float64 `json:"totalExpenses"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.InDelta(t, 70, body.TotalExpenses, 0.001)
	require.Len(t, body.Monthly, 1)
	assert.Equal(t, "Feb 2024", body.Monthly[0].Label)
}

func TestOptimize(t *testing.T) {
	t.Run("manual spending", func(t *testing.T) {
		client := &stubClient{response: `{"Groceries": 280, "Savings": 220}`}
		router, _ := newTestRouter(t, client)

		rr := do(t, router, http.MethodPost, "/api/optimize", OptimizeRequest{
			PastSpending:   map[string]float64{"Groceries": 300, "Dining Out": 200},
			FinancialGoals: "save more",
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decode[OptimizeResponse](t, rr)
		assert.Equal(t, map[string]float64{"Groceries": 280, "Savings": 220}, resp.Allocation)
		assert.InDelta(t, 500, resp.Total, 0.001)
		require.Len(t, client.prompts, 1)
		assert.Contains(t, client.prompts[0], "Dining Out: $200")
	})

	t.Run("tracked spending", func(t *testing.T) {
		client := &stubClient{response: `{"Groceries": 100}`}
		router, db := newTestRouter(t, client)
		db.AddExpense("groceries", 120, "2024-03-02", "shop")

		rr := do(t, router, http.MethodPost, "/api/optimize", OptimizeRequest{
			FinancialGoals: "save more",
			UseTracked:     true,
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		require.Len(t, client.prompts, 1)
		assert.Contains(t, client.prompts[0], "Groceries: $120")
	})

	t.Run("rejects unnamed and negative categories", func(t *testing.T) {
		client := &stubClient{response: `{"Rent": 100}`}
		router, _ := newTestRouter(t, client)

		for _, spending := range []map[string]float64{
			{"": -500, "Rent": -1000},
			{" ": 50},
			{"Rent": -1000},
		} {
			rr := do(t, router, http.MethodPost, "/api/optimize", OptimizeRequest{
				PastSpending:   spending,
				FinancialGoals: "save",
			})
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			resp := decode[errorResponse](t, rr)
			assert.Empty(t, resp.Kind)
			assert.Contains(t, resp.Error, "invalid spending")
		}
		assert.Empty(t, client.prompts, "invalid spending must not reach the model")
	})

	tests := []struct {
		name     string
		client   *stubClient
		body     OptimizeRequest
		wantCode int
		wantKind optimize.Kind
	}{
		{
			name:     "empty spending",
			client:   &stubClient{},
			body:     OptimizeRequest{FinancialGoals: "save"},
			wantCode: http.StatusBadRequest,
			wantKind: optimize.KindEmptySpending,
		},
		{
			name:     "blank goals",
			client:   &stubClient{},
			body:     OptimizeRequest{PastSpending: map[string]float64{"Rent": 1000}, FinancialGoals: "   "},
			wantCode: http.StatusBadRequest,
			wantKind: optimize.KindEmptyGoals,
		},
		{
			name:     "provider failure",
			client:   &stubClient{err: errors.New("connection refused")},
			body:     OptimizeRequest{PastSpending: map[string]float64{"Rent": 1000}, FinancialGoals: "save"},
			wantCode: http.StatusBadGateway,
			wantKind: optimize.KindInvocationFailed,
		},
		{
			name:     "malformed response",
			client:   &stubClient{response: `{"Rent": "lots"}`},
			body:     OptimizeRequest{PastSpending: map[string]float64{"Rent": 1000}, FinancialGoals: "save"},
			wantCode: http.StatusBadGateway,
			wantKind: optimize.KindSchemaMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, tt.client)
			rr := do(t, router, http.MethodPost, "/api/optimize", tt.body)
			assert.Equal(t, tt.wantCode, rr.Code, rr.Body.String())
			assert.Equal(t, string(tt.wantKind), decode[errorResponse](t, rr).Kind)
		})
	}
}

func TestOptimizeWithoutClient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := NewRouter(NewHandler(db.Storage, nil, nil))

	rr := do(t, router, http.MethodPost, "/api/optimize", OptimizeRequest{
		PastSpending:   map[string]float64{"Rent": 1000},
		FinancialGoals: "save",
	})
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
