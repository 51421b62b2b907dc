package optimize

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/financeflow/internal/model"
)

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		spending model.SpendingRecord
		name     string
		goals    string
		wantKind Kind
		wantGoal string
	}{
		{
			name:     "valid request",
			spending: model.SpendingRecord{"Groceries": 300},
			goals:    "Save more",
			wantGoal: "Save more",
		},
		{
			name:     "goals are trimmed",
			spending: model.SpendingRecord{"Groceries": 300, "Rent": 1200},
			goals:    "  \tPay off my card\n",
			wantGoal: "Pay off my card",
		},
		{
			name:     "zero amounts are still spending",
			spending: model.SpendingRecord{"Groceries": 0},
			goals:    "x",
			wantGoal: "x",
		},
		{
			name:     "empty spending",
			spending: model.SpendingRecord{},
			goals:    "Save more",
			wantKind: KindEmptySpending,
		},
		{
			name:     "nil spending",
			goals:    "Save more",
			wantKind: KindEmptySpending,
		},
		{
			name:     "empty goals",
			spending: model.SpendingRecord{"Groceries": 300},
			goals:    "",
			wantKind: KindEmptyGoals,
		},
		{
			name:     "whitespace goals",
			spending: model.SpendingRecord{"Groceries": 300},
			goals:    " \n\t ",
			wantKind: KindEmptyGoals,
		},
		{
			name:     "spending is checked first",
			spending: model.SpendingRecord{},
			goals:    "   ",
			wantKind: KindEmptySpending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildRequest(tt.spending, tt.goals)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
				assert.Empty(t, req.Spending)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantGoal, req.Goals)
			assert.Equal(t, tt.spending, req.Spending)
		})
	}
}

func TestBuildRequest_CopiesSpending(t *testing.T) {
	spending := model.SpendingRecord{"Groceries": 300}

	req, err := BuildRequest(spending, "Save more")
	require.NoError(t, err)

	spending["Groceries"] = 1
	spending["Rent"] = 1200

	assert.Equal(t, model.SpendingRecord{"Groceries": 300}, req.Spending)
}

func TestBuildRequest_SentinelErrors(t *testing.T) {
	_, err := BuildRequest(nil, "goal")
	assert.True(t, errors.Is(err, ErrEmptySpending))
	assert.False(t, errors.Is(err, ErrEmptyGoals))

	_, err = BuildRequest(model.SpendingRecord{"a": 1}, "")
	assert.True(t, errors.Is(err, ErrEmptyGoals))
}

func TestParseSpending(t *testing.T) {
	tests := []struct {
		want        model.SpendingRecord
		name        string
		input       string
		errContains string
	}{
		{
			name:  "object of numbers",
			input: `{"Groceries": 300, "Dining Out": 150.25}`,
			want:  model.SpendingRecord{"Groceries": 300, "Dining Out": 150.25},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  model.SpendingRecord{},
		},
		{
			name:        "array",
			input:       `["Groceries", 300]`,
			errContains: "expected a JSON object",
		},
		{
			name:        "string value",
			input:       `{"Groceries": "300"}`,
			errContains: `"Groceries"`,
		},
		{
			name:        "negative value",
			input:       `{"Groceries": -5}`,
			errContains: "non-negative",
		},
		{
			name:        "empty key",
			input:       `{" ": 5}`,
			errContains: "must not be empty",
		},
		{
			name:        "duplicate key",
			input:       `{"Groceries": 300, "Groceries": 10}`,
			errContains: "duplicate key",
		},
		{
			name:        "malformed",
			input:       `{"Groceries": 300`,
			errContains: "invalid spending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpending([]byte(tt.input))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultSpending(t *testing.T) {
	spending := DefaultSpending()
	assert.Equal(t, model.SpendingRecord{
		"Groceries":     300,
		"Dining Out":    150,
		"Entertainment": 100,
		"Transport":     80,
	}, spending)

	spending["Groceries"] = 0
	assert.InDelta(t, 300, DefaultSpending()["Groceries"], 0.001)
}

func TestValidateSpending(t *testing.T) {
	tests := []struct {
		spending model.SpendingRecord
		name     string
		wantErr  string
	}{
		{name: "valid", spending: model.SpendingRecord{"Groceries": 300, "Savings": 0}},
		{name: "empty record", spending: model.SpendingRecord{}},
		{name: "unnamed category", spending: model.SpendingRecord{"": 500}, wantErr: "must not be empty"},
		{name: "blank category", spending: model.SpendingRecord{"  ": 5}, wantErr: "must not be empty"},
		{name: "negative amount", spending: model.SpendingRecord{"Rent": -1000}, wantErr: `"Rent" has amount -1000`},
		{name: "not a number", spending: model.SpendingRecord{"Rent": math.NaN()}, wantErr: `"Rent"`},
		{name: "infinite", spending: model.SpendingRecord{"Rent": math.Inf(1)}, wantErr: `"Rent"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpending(tt.spending)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidSpending)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildRequest_AcceptsAnyNonEmptyRecord(t *testing.T) {
	req, err := BuildRequest(model.SpendingRecord{"Rent": -1}, "save")
	require.NoError(t, err)
	assert.InDelta(t, -1, req.Spending["Rent"], 0.001)
}
