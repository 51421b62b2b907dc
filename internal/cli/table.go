package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormatMoney renders an amount with two decimals and a dollar sign.
// Negative amounts render as -$12.50.
func FormatMoney(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// Table is a simple column-aligned text table.
type Table struct {
	headers []string
	rows    [][]string
	// rightAlign marks numeric columns.
	rightAlign map[int]bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, rightAlign: make(map[int]bool)}
}

// AlignRight right-aligns the given columns.
func (t *Table) AlignRight(columns ...int) *Table {
	for _, c := range columns {
		t.rightAlign[c] = true
	}
	return t
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	return widths
}

func (t *Table) line(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pos := lipgloss.Left
		if t.rightAlign[i] {
			pos = lipgloss.Right
		}
		parts[i] = TableCellStyle.Render(lipgloss.PlaceHorizontal(widths[i], pos, cell))
	}
	return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
}

// Render draws the table with a styled header.
func (t *Table) Render() string {
	widths := t.widths()
	total := 0
	for _, w := range widths {
		total += w + TableCellStyle.GetPaddingRight()
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Width(total).Render(t.line(t.headers, widths)))
	for _, row := range t.rows {
		b.WriteByte('\n')
		b.WriteString(t.line(row, widths))
	}
	return b.String()
}

// RenderPlain draws the table with tab-separated cells and no styling, for
// piping into other tools.
func (t *Table) RenderPlain() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}
