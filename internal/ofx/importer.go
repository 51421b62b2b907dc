package ofx

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/service"
)

// ImportSummary counts what an import wrote.
type ImportSummary struct {
	Expenses   int
	Incomes    int
	Duplicates int
}

// Import writes a parsed statement to storage. Entries whose bank
// transaction ID was already imported are counted as duplicates and skipped.
// progress, if non-nil, is called once per entry.
func Import(ctx context.Context, store service.Storage, stmt *Statement, progress func()) (ImportSummary, error) {
	var summary ImportSummary
	tick := func() {
		if progress != nil {
			progress()
		}
	}

	for i := range stmt.Expenses {
		err := store.CreateExpense(ctx, &stmt.Expenses[i])
		switch {
		case errors.Is(err, common.ErrDuplicateEntry):
			summary.Duplicates++
		case err != nil:
			return summary, fmt.Errorf("failed to import expense %s: %w", stmt.Expenses[i].ImportID, err)
		default:
			summary.Expenses++
		}
		tick()
	}

	for i := range stmt.Incomes {
		err := store.CreateIncome(ctx, &stmt.Incomes[i])
		switch {
		case errors.Is(err, common.ErrDuplicateEntry):
			summary.Duplicates++
		case err != nil:
			return summary, fmt.Errorf("failed to import income %s: %w", stmt.Incomes[i].ImportID, err)
		default:
			summary.Incomes++
		}
		tick()
	}

	return summary, nil
}
