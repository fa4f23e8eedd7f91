package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorPass   = lipgloss.Color("#10b981") // green-500
	colorFail   = lipgloss.Color("#ef4444") // red-500
	colorWarn   = lipgloss.Color("#eab308") // yellow-500
	colorDim    = lipgloss.Color("#6b7280") // gray-500
	colorAccent = lipgloss.Color("#3b82f6") // blue-500
)

// Styles holds the lipgloss styles for command output.
type Styles struct {
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warn    lipgloss.Style
	Dim     lipgloss.Style
	Path    lipgloss.Style
	Name    lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style

	SymbolPass string
	SymbolFail string
	SymbolWarn string
}

// DefaultStyles returns colored styles.
func DefaultStyles() *Styles {
	return &Styles{
		Pass:    lipgloss.NewStyle().Foreground(colorPass).Bold(true),
		Fail:    lipgloss.NewStyle().Foreground(colorFail).Bold(true),
		Warn:    lipgloss.NewStyle().Foreground(colorWarn).Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(colorDim),
		Path:    lipgloss.NewStyle().Foreground(colorAccent),
		Name:    lipgloss.NewStyle().Bold(true),
		Added:   lipgloss.NewStyle().Foreground(colorPass),
		Removed: lipgloss.NewStyle().Foreground(colorFail),

		SymbolPass: "✓",
		SymbolFail: "✗",
		SymbolWarn: "!",
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()

	return &Styles{
		Pass:    plain,
		Fail:    plain,
		Warn:    plain,
		Dim:     plain,
		Path:    plain,
		Name:    plain,
		Added:   plain,
		Removed: plain,

		SymbolPass: "ok",
		SymbolFail: "FAIL",
		SymbolWarn: "warn",
	}
}

// stylesFor picks colored styles only when w is a terminal.
func stylesFor(w io.Writer) *Styles {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return DefaultStyles()
	}

	return PlainStyles()
}
