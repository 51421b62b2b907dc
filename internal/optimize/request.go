package optimize

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/financeflow/internal/model"
)

// BuildRequest validates spending and goals and bundles them into a request.
// Spending is checked before goals. The returned request owns a copy of
// spending.
func BuildRequest(spending model.SpendingRecord, goals string) (model.OptimizationRequest, error) {
	if len(spending) == 0 {
		return model.OptimizationRequest{}, &Error{Kind: KindEmptySpending}
	}

	goals = strings.TrimSpace(goals)
	if goals == "" {
		return model.OptimizationRequest{}, &Error{Kind: KindEmptyGoals}
	}

	spendingCopy := make(model.SpendingRecord, len(spending))
	for category, amount := range spending {
		spendingCopy[category] = amount
	}

	return model.OptimizationRequest{
		Spending: spendingCopy,
		Goals:    goals,
	}, nil
}

// DefaultSpending is the example record offered when the user picks manual
// entry but supplies nothing.
func DefaultSpending() model.SpendingRecord {
	return model.SpendingRecord{
		"Groceries":     300,
		"Dining Out":    150,
		"Entertainment": 100,
		"Transport":     80,
	}
}

// ErrInvalidSpending reports a spending record with an unnamed category or an
// amount that is negative or not finite.
var ErrInvalidSpending = errors.New("invalid spending")

// ValidateSpending checks every entry of a caller-supplied record. Categories
// are visited in sorted order so the first problem reported is stable.
func ValidateSpending(spending model.SpendingRecord) error {
	for _, category := range spending.Categories() {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("%w: category names must not be empty", ErrInvalidSpending)
		}
		amount := spending[category]
		if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
			return fmt.Errorf("%w: %q has amount %v, want a non-negative number", ErrInvalidSpending, category, amount)
		}
	}
	return nil
}

// ParseSpending parses manually entered spending of the form
// {"Category": amount, ...}.
func ParseSpending(data []byte) (model.SpendingRecord, error) {
	values, err := decodeNumberObject(data)
	if err != nil {
		var optErr *Error
		if !errors.As(err, &optErr) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSpending, err)
		}
		switch {
		case optErr.Key != "" && optErr.Err != nil:
			return nil, fmt.Errorf("%w for %q: %v", ErrInvalidSpending, optErr.Key, optErr.Err)
		case optErr.Key != "":
			return nil, fmt.Errorf("%w for %q: %s is not a non-negative number", ErrInvalidSpending, optErr.Key, optErr.Fragment)
		default:
			return nil, fmt.Errorf("%w: expected a JSON object like {\"Groceries\": 300}, got %s", ErrInvalidSpending, optErr.Fragment)
		}
	}

	record := model.SpendingRecord(values)
	if err := ValidateSpending(record); err != nil {
		return nil, err
	}
	return record, nil
}
