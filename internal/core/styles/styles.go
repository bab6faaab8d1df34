// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"plain": {
		Primary:    lipgloss.Color("12"),
		Secondary:  lipgloss.Color("14"),
		Foreground: lipgloss.Color("7"),
		Muted:      lipgloss.Color("8"),
		Surface:    lipgloss.Color("0"),
		Success:    lipgloss.Color("10"),
		Warning:    lipgloss.Color("11"),
		Error:      lipgloss.Color("9"),
	},
}

// GetPalette returns a named palette, falling back to the default theme.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	if !ok {
		return themes[DefaultTheme], false
	}
	return p, true
}

// Theme is the active palette plus the derived styles used by views.
type Theme struct {
	Palette Palette

	Title      lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Highlight  lipgloss.Style
	Current    lipgloss.Style
	Solved     lipgloss.Style
	ErrorText  lipgloss.Style
	DimmedEdge lipgloss.Style
	Label      lipgloss.Style
}

// NewTheme derives the view styles from a palette.
func NewTheme(p Palette) Theme {
	return Theme{
		Palette:    p,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Muted:      lipgloss.NewStyle().Foreground(p.Muted),
		Selected:   lipgloss.NewStyle().Background(p.Surface).Foreground(p.Secondary).Bold(true),
		Highlight:  lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Current:    lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		Solved:     lipgloss.NewStyle().Foreground(p.Success),
		ErrorText:  lipgloss.NewStyle().Foreground(p.Error),
		DimmedEdge: lipgloss.NewStyle().Foreground(p.Muted).Faint(true),
		Label:      lipgloss.NewStyle().Foreground(p.Secondary),
	}
}
