package optimize

import (
	"strconv"
	"strings"

	"github.com/Veraticus/financeflow/internal/model"
)

// SystemRole is the fixed system instruction sent with every optimization call.
const SystemRole = "You are a financial advisor. Suggest realistic budget allocations and answer with JSON only."

const (
	promptIntro = "You are a financial advisor. Analyze the user's past spending and financial goals to suggest an optimized budget allocation across different categories."

	// The income constraint is advisory: no income figure reaches the model.
	promptInstructions = "Based on this information, suggest a budget allocation for each category. " +
		"The total of all categories should not exceed the user's income. " +
		"Respond with ONLY a JSON object where the keys are the spending categories and the values are the suggested budget amounts as plain numbers."
)

// RenderPrompt renders req into the model prompt. Categories are listed in
// sorted order so the same request always yields the same prompt.
func RenderPrompt(req model.OptimizationRequest) string {
	var b strings.Builder

	b.WriteString(promptIntro)
	b.WriteString("\n\nPast Spending:\n")
	for _, category := range req.Spending.Categories() {
		b.WriteString(SpendingLine(category, req.Spending[category]))
		b.WriteByte('\n')
	}

	b.WriteString("\nFinancial Goals: ")
	b.WriteString(req.Goals)
	b.WriteString("\n\n")
	b.WriteString(promptInstructions)

	return b.String()
}

// SpendingLine formats one category as "{category}: ${amount}".
func SpendingLine(category string, amount float64) string {
	return category + ": $" + strconv.FormatFloat(amount, 'f', -1, 64)
}
