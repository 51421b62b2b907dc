package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/financeflow/internal/model"
)

func TestParseSpendingLine(t *testing.T) {
	tests := []struct {
		line         string
		wantCategory string
		wantAmount   float64
		wantErr      bool
	}{
		{line: "Groceries: 300", wantCategory: "Groceries", wantAmount: 300},
		{line: "Dining Out=$1,250.50", wantCategory: "Dining Out", wantAmount: 1250.5},
		{line: "  Rent :  0 ", wantCategory: "Rent", wantAmount: 0},
		{line: "Ratio 1:2: 40", wantCategory: "Ratio 1:2", wantAmount: 40},
		{line: "no separator", wantErr: true},
		{line: ": 10", wantErr: true},
		{line: "Fun: -5", wantErr: true},
		{line: "Fun: lots", wantErr: true},
		{line: "Fun: NaN", wantErr: true},
		{line: "Fun: Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			category, amount, err := ParseSpendingLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, category)
			assert.InDelta(t, tt.wantAmount, amount, 1e-9)
		})
	}
}

func TestAskSpending(t *testing.T) {
	in := strings.NewReader("Groceries: 300\nbogus\nDining Out: 150\nGroceries: 20\n\nignored: 1\n")
	var out bytes.Buffer
	p := NewPrompter(in, &out)

	record, err := p.AskSpending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SpendingRecord{"Groceries": 320, "Dining Out": 150}, record)
	assert.Contains(t, out.String(), "expected \"Category: amount\"")
}

func TestAskSpendingEmpty(t *testing.T) {
	p := NewPrompter(strings.NewReader("\n"), io.Discard)

	record, err := p.AskSpending(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestAskSpendingStopsAtEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("Rent: 900"), io.Discard)

	record, err := p.AskSpending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SpendingRecord{"Rent": 900}, record)
}

func TestAskGoalsRepromptsOnBlank(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n   \nsave for a house\n"), &out)

	goals, err := p.AskGoals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "save for a house", goals)
	assert.Equal(t, 2, strings.Count(out.String(), "Goals are required."))
}

func TestReadLineCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	p := NewPrompter(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.readLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)

	// The pending read is handed to the next caller.
	go func() { _, _ = pw.Write([]byte("late line\n")) }()
	line, err := p.readLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late line", line)
}
