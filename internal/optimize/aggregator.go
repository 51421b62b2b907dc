package optimize

import (
	"errors"
	"fmt"
	"math"

	"github.com/Veraticus/financeflow/internal/model"
)

// OtherBucket receives spending whose category cannot be resolved.
const OtherBucket = "Other"

// ErrNonFiniteAmount reports an expense whose amount is NaN or infinite.
var ErrNonFiniteAmount = errors.New("non-finite expense amount")

// AggregateSpending sums expense amounts per category name.
// Expenses pointing at unknown categories are attributed to OtherBucket.
func AggregateSpending(expenses []model.Expense, categories []model.Category) (model.SpendingRecord, error) {
	names := model.CategoryNames(categories)
	record := make(model.SpendingRecord)

	for _, expense := range expenses {
		if math.IsNaN(expense.Amount) || math.IsInf(expense.Amount, 0) {
			return nil, fmt.Errorf("%w: expense %s has amount %v", ErrNonFiniteAmount, expense.ID, expense.Amount)
		}

		name := names[expense.CategoryID]
		if name == "" {
			name = OtherBucket
		}
		record[name] += expense.Amount
	}

	return record, nil
}
