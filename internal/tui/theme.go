package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style of the progress view.
type Theme struct {
	Title         lipgloss.Style
	Muted         lipgloss.Style
	Spinner       lipgloss.Style
	StepDone      lipgloss.Style
	StepActive    lipgloss.Style
	StepPending   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	Box           lipgloss.Style
}

func newTheme(primary, success, errColor, muted, border lipgloss.Color) Theme {
	return Theme{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Muted:         lipgloss.NewStyle().Foreground(muted),
		Spinner:       lipgloss.NewStyle().Foreground(primary),
		StepDone:      lipgloss.NewStyle().Foreground(success),
		StepActive:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		StepPending:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		StatusSuccess: lipgloss.NewStyle().Foreground(success).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(errColor).Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
	}
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#2EC4B6"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
)

// ThemeByName looks up a theme by its config name.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return Default, nil
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}
