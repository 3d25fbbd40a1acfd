// Package components provides shared UI components for the TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/plab/internal/particle"
)

// FamilyColor returns the display color for a particle family.
func FamilyColor(f particle.Family) lipgloss.Color {
	switch f {
	case particle.FamilyQuark:
		return lipgloss.Color("#ff6b6b")
	case particle.FamilyAntiquark:
		return lipgloss.Color("#c77dff")
	case particle.FamilyLepton:
		return lipgloss.Color("#4ecdc4")
	case particle.FamilyBoson:
		return lipgloss.Color("#ffe66d")
	case particle.FamilyHadron:
		return lipgloss.Color("#f4a261")
	case particle.FamilyUnstable:
		return lipgloss.Color("#e76f51")
	case particle.FamilyIsotope:
		return lipgloss.Color("#90be6d")
	case particle.FamilyAtom:
		return lipgloss.Color("#a8dadc")
	case particle.FamilyMolecule:
		return lipgloss.Color("#a8e6cf")
	}
	return lipgloss.Color("#f1faee")
}

var (
	selectedChip = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	cursorChip = lipgloss.NewStyle().
			Reverse(true)
)

// Label returns the symbol of t fitted to width terminal cells.
func Label(t particle.Type, width int) string {
	return runewidth.Truncate(particle.Symbol(t), width, "…")
}

// Chip renders the symbol of t in its family color.
func Chip(t particle.Type, width int, selected, cursor bool) string {
	style := lipgloss.NewStyle().Foreground(FamilyColor(particle.FamilyOf(t)))
	if selected {
		style = style.Inherit(selectedChip)
	}
	if cursor {
		style = style.Inherit(cursorChip)
	}
	return style.Render(Label(t, width))
}

// Swatch renders a name in the family color of t.
func Swatch(t particle.Type) string {
	return lipgloss.NewStyle().Foreground(FamilyColor(particle.FamilyOf(t))).Render(particle.Name(t))
}
