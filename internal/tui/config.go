package tui

import (
	"github.com/Veraticus/shelf/internal/cli"
	"github.com/Veraticus/shelf/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Width     int
	Height    int
	MaxErrors int
	ShowHelp  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     80,
		Height:    24,
		MaxErrors: cli.DefaultMaxErrors,
	}
}

// WithTheme sets the color scheme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithMaxErrors sets how many error details the batch report lists.
func WithMaxErrors(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxErrors = n
		}
	}
}

// WithSize sets the initial terminal size, used until the first resize.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp starts with the full key help expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
