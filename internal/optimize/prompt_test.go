package optimize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/financeflow/internal/model"
)

func TestRenderPrompt(t *testing.T) {
	req := model.OptimizationRequest{
		Spending: model.SpendingRecord{"Groceries": 300, "Dining Out": 150},
		Goals:    "Save more",
	}

	want := "You are a financial advisor. Analyze the user's past spending and financial goals to suggest an optimized budget allocation across different categories.\n" +
		"\n" +
		"Past Spending:\n" +
		"Dining Out: $150\n" +
		"Groceries: $300\n" +
		"\n" +
		"Financial Goals: Save more\n" +
		"\n" +
		"Based on this information, suggest a budget allocation for each category. " +
		"The total of all categories should not exceed the user's income. " +
		"Respond with ONLY a JSON object where the keys are the spending categories and the values are the suggested budget amounts as plain numbers."

	assert.Equal(t, want, RenderPrompt(req))
}

func TestRenderPrompt_Deterministic(t *testing.T) {
	spending := model.SpendingRecord{}
	for _, name := range []string{"Rent", "Groceries", "Transport", "Utilities", "Dining Out", "Health", "Gym", "Books"} {
		spending[name] = float64(len(name)) * 10.5
	}
	req := model.OptimizationRequest{Spending: spending, Goals: "Build an emergency fund"}

	first := RenderPrompt(req)
	for range 50 {
		assert.Equal(t, first, RenderPrompt(req))
	}
}

func TestRenderPrompt_OneLinePerCategory(t *testing.T) {
	req := model.OptimizationRequest{
		Spending: model.SpendingRecord{"A": 1, "B": 2.5, "C": 0},
		Goals:    "goal",
	}

	prompt := RenderPrompt(req)
	for category, amount := range req.Spending {
		assert.Equal(t, 1, strings.Count(prompt, "\n"+SpendingLine(category, amount)+"\n"))
	}
}

func TestSpendingLine(t *testing.T) {
	tests := []struct {
		category string
		want     string
		amount   float64
	}{
		{category: "Groceries", amount: 300, want: "Groceries: $300"},
		{category: "Dining Out", amount: 12.5, want: "Dining Out: $12.5"},
		{category: "Coffee", amount: 3.99, want: "Coffee: $3.99"},
		{category: "Nothing", amount: 0, want: "Nothing: $0"},
		{category: "Big", amount: 1234567, want: "Big: $1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SpendingLine(tt.category, tt.amount))
		})
	}
}
