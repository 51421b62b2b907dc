package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/Veraticus/financeflow/internal/model"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Prompter asks the user for optimization input on a terminal.
type Prompter struct {
	reader  *bufio.Reader
	out     io.Writer
	readMu  sync.Mutex
	results chan readResult
}

type readResult struct {
	err   error
	value string
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// readLine reads one trimmed line. A canceled context returns
// ErrInputCancelled immediately; the pending read finishes in the
// background and its line is delivered to the next call.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.readMu.Lock()
	if p.results == nil {
		p.results = make(chan readResult, 1)
		go func(ch chan readResult) {
			value, err := p.reader.ReadString('\n')
			if err == io.EOF && value != "" {
				err = nil
			}
			ch <- readResult{value: value, err: err}
		}(p.results)
	}
	ch := p.results
	p.readMu.Unlock()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-ch:
		p.readMu.Lock()
		p.results = nil
		p.readMu.Unlock()
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// AskGoals prompts until a non-blank goals description is entered.
func (p *Prompter) AskGoals(ctx context.Context) (string, error) {
	for {
		_, _ = fmt.Fprint(p.out, FormatPrompt("Describe your financial goals"))
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		_, _ = fmt.Fprintln(p.out, FormatWarning("Goals are required."))
	}
}

// AskSpending reads "Category: amount" lines until a blank line. An empty
// entry returns nil so the caller can fall back to a default record.
func (p *Prompter) AskSpending(ctx context.Context) (model.SpendingRecord, error) {
	_, _ = fmt.Fprintln(p.out, StyleInfo("Enter past spending as \"Category: amount\", one per line. Finish with an empty line."))

	record := model.SpendingRecord{}
	for {
		_, _ = fmt.Fprint(p.out, FormatPrompt("spending"))
		line, err := p.readLine(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}

		category, amount, err := ParseSpendingLine(line)
		if err != nil {
			_, _ = fmt.Fprintln(p.out, FormatError(err.Error()))
			continue
		}
		record[category] += amount
	}

	if len(record) == 0 {
		return nil, nil
	}
	return record, nil
}

// ParseSpendingLine parses "Category: amount" (or "Category=amount"). A
// leading dollar sign on the amount is allowed.
func ParseSpendingLine(line string) (string, float64, error) {
	idx := strings.LastIndexAny(line, ":=")
	if idx < 0 {
		return "", 0, fmt.Errorf("expected \"Category: amount\", got %q", line)
	}

	category := strings.TrimSpace(line[:idx])
	if category == "" {
		return "", 0, fmt.Errorf("missing category in %q", line)
	}

	raw := strings.TrimPrefix(strings.TrimSpace(line[idx+1:]), "$")
	amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", 0, fmt.Errorf("invalid amount %q for %s: must be a non-negative number", raw, category)
	}
	return category, amount, nil
}
