// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#2EC4B6")
	green   = lipgloss.Color("#7BD389")
	amber   = lipgloss.Color("#FFE66D")
	red     = lipgloss.Color("#FF6B6B")
	teal    = lipgloss.Color("#95E1D3")
	gray    = lipgloss.Color("#666666")
	divider = lipgloss.Color("#333333")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	errorStyle = lipgloss.NewStyle().Foreground(red)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(divider).
			Padding(0, 1)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().Foreground(gray).MarginBottom(1)
	// SuccessStyle marks completed actions and money left over.
	SuccessStyle = lipgloss.NewStyle().Foreground(green)
	// WarningStyle marks things the user should look at.
	WarningStyle = lipgloss.NewStyle().Foreground(amber)
	// InfoStyle is for neutral notes.
	InfoStyle = lipgloss.NewStyle().Foreground(teal)
	// SubtleStyle dims secondary details such as IDs.
	SubtleStyle = lipgloss.NewStyle().Foreground(gray)
	BoldStyle   = lipgloss.NewStyle().Bold(true)
	// OverBudgetStyle highlights amounts past their budget.
	OverBudgetStyle = lipgloss.NewStyle().Bold(true).Foreground(red)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(divider)
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	ChartIcon   = "📊"

	errorIcon = "✗"
	moneyIcon = "💰"
)

func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

func FormatError(message string) string {
	return errorStyle.Render(errorIcon + " " + message)
}

func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle renders a section heading prefixed with the money icon.
func FormatTitle(title string) string {
	return titleStyle.Render(moneyIcon + " " + title)
}

// FormatPrompt renders a question followed by an input arrow.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox draws content under a bold title inside a rounded border.
func RenderBox(title, content string) string {
	heading := titleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}

// StyleInfo renders text in the info color without an icon.
func StyleInfo(text string) string {
	return InfoStyle.Render(text)
}
