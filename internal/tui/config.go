package tui

import "io"

// Config holds TUI configuration.
type Config struct {
	Theme  Theme
	Input  io.Reader
	Output io.Writer
	Title  string
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme: Default,
		Title: "Optimizing your budget",
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithTitle sets the heading shown above the steps.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithIO redirects the program's input and output, mainly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
	}
}
