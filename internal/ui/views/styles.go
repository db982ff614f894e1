package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Filter      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Branch      lipgloss.Style
	Leaf        lipgloss.Style
	Selected    lipgloss.Style
	Indicated   lipgloss.Style
	Tentative   lipgloss.Style
	SelectionBg lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Branch:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Leaf:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Indicated:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Tentative:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}
