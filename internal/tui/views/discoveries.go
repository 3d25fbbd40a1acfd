package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/plab/internal/goal"
	"github.com/f3rmion/plab/internal/lab"
	"github.com/f3rmion/plab/internal/particle"
	"github.com/f3rmion/plab/internal/tui/components"
)

// AddDiscoveredMsg asks the host to place a discovered type on the canvas.
type AddDiscoveredMsg struct {
	Type particle.Type
}

// DiscoveriesModel lists the discovery registries, the goal checklist and
// a periodic table of the atoms found so far.
type DiscoveriesModel struct {
	lab   *lab.Lab
	goals []goal.Goal

	selected int

	width  int
	height int
}

// NewDiscoveriesModel creates the discoveries view.
func NewDiscoveriesModel(l *lab.Lab, goals []goal.Goal) DiscoveriesModel {
	return DiscoveriesModel{lab: l, goals: goals}
}

// SetSize updates the view dimensions.
func (m *DiscoveriesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// discovered lists every registry entry in display order.
func discovered(snap lab.Snapshot) []particle.Type {
	out := make([]particle.Type, 0, len(snap.Secondary)+len(snap.Atoms)+len(snap.Molecules))
	out = append(out, snap.Secondary...)
	out = append(out, snap.Atoms...)
	return append(out, snap.Molecules...)
}

// Update handles messages.
func (m DiscoveriesModel) Update(msg tea.Msg) (DiscoveriesModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	items := discovered(m.lab.Snapshot())
	switch key.String() {
	case "j", "down":
		if m.selected < len(items)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "g":
		m.selected = 0
	case "G":
		m.selected = max(len(items)-1, 0)
	case "enter":
		if m.selected < len(items) {
			t := items[m.selected]
			return m, func() tea.Msg { return AddDiscoveredMsg{Type: t} }
		}
	}
	return m, nil
}

// View renders the discoveries view.
func (m DiscoveriesModel) View() string {
	snap := m.lab.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Discoveries"))
	b.WriteString("\n\n")

	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderRegistry("Particles", snap.Secondary, 0),
		m.renderRegistry("Atoms", snap.Atoms, len(snap.Secondary)),
		m.renderRegistry("Molecules", snap.Molecules, len(snap.Secondary)+len(snap.Atoms)),
		m.renderGoals(),
	)
	b.WriteString(lists)
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Periodic Table"))
	b.WriteString("\n")
	b.WriteString(renderPeriodicTable(snap.Atoms))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("j/k: navigate • enter: add to canvas"))
	return b.String()
}

func (m DiscoveriesModel) renderRegistry(title string, types []particle.Type, offset int) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(types))))
	b.WriteString("\n")
	if len(types) == 0 {
		b.WriteString(mutedStyle.Render("none yet"))
	}
	for i, t := range types {
		line := components.Swatch(t)
		if offset+i == m.selected {
			line = listActiveStyle.Render("> " + particle.Name(t))
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(22).MarginRight(2).Render(b.String())
}

func (m DiscoveriesModel) renderGoals() string {
	cursor, total := m.lab.GoalProgress()

	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Goals %d/%d", cursor, total)))
	b.WriteString("\n")
	for i, g := range m.goals {
		switch {
		case i < cursor:
			b.WriteString(goalDoneStyle.Render("✓ " + g.Name))
		case i == cursor:
			b.WriteString(goalActiveStyle.Render("▶ " + g.Name))
		default:
			b.WriteString(mutedStyle.Render("  " + g.Name))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// periodicPosition returns the period (row) and group column (0-17) of the
// element with atomic number z, for the first three periods.
func periodicPosition(z int) (row, col int, ok bool) {
	switch {
	case z == 1:
		return 0, 0, true
	case z == 2:
		return 0, 17, true
	case z >= 3 && z <= 10:
		return 1, groupColumn(z - 2), true
	case z >= 11 && z <= 18:
		return 2, groupColumn(z - 10), true
	}
	return 0, 0, false
}

// groupColumn places the n-th element of a short period: two s-block
// columns, then six p-block columns at the right edge.
func groupColumn(n int) int {
	if n <= 2 {
		return n - 1
	}
	return n + 9
}

const periodicCell = 3

func renderPeriodicTable(found []particle.Type) string {
	have := make(map[particle.Type]bool, len(found))
	for _, t := range found {
		have[t] = true
	}

	var grid [3][18]string
	for z := 1; z <= 18; z++ {
		t, ok := particle.ByAtomicNumber(z)
		if !ok {
			continue
		}
		row, col, _ := periodicPosition(z)
		sym := fmt.Sprintf("%-*s", periodicCell, particle.Symbol(t))
		if have[t] {
			grid[row][col] = components.Chip(t, periodicCell, false, false) +
				strings.Repeat(" ", periodicCell-len(particle.Symbol(t)))
		} else {
			grid[row][col] = mutedStyle.Render(sym)
		}
	}

	lines := make([]string, len(grid))
	for r, cols := range grid {
		var line strings.Builder
		for _, c := range cols {
			if c == "" {
				c = strings.Repeat(" ", periodicCell)
			}
			line.WriteString(c)
		}
		lines[r] = line.String()
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
