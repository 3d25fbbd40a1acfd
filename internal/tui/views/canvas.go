package views

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/plab/internal/clipboard"
	"github.com/f3rmion/plab/internal/decomp"
	"github.com/f3rmion/plab/internal/infocard"
	"github.com/f3rmion/plab/internal/lab"
	"github.com/f3rmion/plab/internal/particle"
	"github.com/f3rmion/plab/internal/selection"
	"github.com/f3rmion/plab/internal/tui/bigchar"
	"github.com/f3rmion/plab/internal/tui/components"
)

const (
	panelWidth = 34
	labelWidth = 4
	artCols    = 16
	artRows    = 4
)

type cell struct{ col, row int }

// CanvasModel is the lab canvas: a grid of particle labels with a cursor,
// plus a side panel for the goal, actions and the hovered particle.
type CanvasModel struct {
	lab     *lab.Lab
	events  *lab.EventLog
	cards   *infocard.Renderer
	compact *infocard.Renderer
	scale   float64

	cursor   cell
	anchor   *cell
	grabbed  string
	palette  int
	showCard bool
	confirm  bool

	input       textinput.Model
	inputActive bool

	message string
	isError bool

	width  int
	height int
}

// NewCanvasModel creates the canvas over l. events must be the notifier the
// lab was built with; the canvas drains it after every operation.
func NewCanvasModel(l *lab.Lab, events *lab.EventLog, scale float64) CanvasModel {
	if scale <= 0 {
		scale = 8
	}
	ti := textinput.New()
	ti.Placeholder = "proton, H2O, up quark..."
	ti.CharLimit = 40
	ti.Width = 30

	compact := infocard.New(l.Resolver())
	if err := compact.SetTemplate(infocard.CompactTemplate); err != nil {
		panic(err)
	}

	return CanvasModel{
		lab:     l,
		events:  events,
		cards:   infocard.New(l.Resolver()),
		compact: compact,
		scale:   scale,
		input:   ti,
	}
}

// SetSize updates the view dimensions.
func (m *CanvasModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampCursor()
}

// Capturing reports whether the canvas needs every key, so global shortcuts
// must not fire.
func (m CanvasModel) Capturing() bool {
	return m.inputActive || m.confirm || m.anchor != nil || m.grabbed != ""
}

// AddType places t at the cursor.
func (m CanvasModel) AddType(t particle.Type) (CanvasModel, tea.Cmd) {
	return m.add(t)
}

// Refresh picks up events produced outside the view, such as decays.
func (m *CanvasModel) Refresh() tea.Cmd {
	return m.drain()
}

func (m CanvasModel) gridSize() (cols, rows int) {
	cols = max(m.width-panelWidth-4, 10)
	rows = max(m.height-6, 4)
	return cols, rows
}

func (m *CanvasModel) clampCursor() {
	cols, rows := m.gridSize()
	m.cursor.col = min(max(m.cursor.col, 0), cols-1)
	m.cursor.row = min(max(m.cursor.row, 0), rows-1)
}

// point maps a grid cell to canvas coordinates. Rows are twice as tall as
// columns are wide.
func (m CanvasModel) point(c cell) (x, y float64) {
	return float64(c.col) * m.scale, float64(c.row) * 2 * m.scale
}

func (m CanvasModel) cellOf(inst lab.Instance) cell {
	return cell{col: int(inst.X / m.scale), row: int(inst.Y / (2 * m.scale))}
}

// hovered returns the topmost instance whose label covers the cursor.
func (m CanvasModel) hovered(snap lab.Snapshot) (lab.Instance, bool) {
	for i := len(snap.Instances) - 1; i >= 0; i-- {
		inst := snap.Instances[i]
		c := m.cellOf(inst)
		w := runewidth.StringWidth(components.Label(inst.Type, labelWidth))
		if c.row == m.cursor.row && m.cursor.col >= c.col && m.cursor.col < c.col+w {
			return inst, true
		}
	}
	return lab.Instance{}, false
}

// Update handles messages.
func (m CanvasModel) Update(msg tea.Msg) (CanvasModel, tea.Cmd) {
	switch msg := msg.(type) {
	case clearMessageMsg:
		m.message = ""
		m.isError = false
		return m, nil

	case tea.KeyMsg:
		if m.inputActive {
			return m.updateInput(msg)
		}
		if m.confirm {
			m.confirm = false
			if msg.String() == "y" {
				m.lab.Reset()
				m.anchor, m.grabbed = nil, ""
				cmd := m.drain()
				return m, tea.Batch(labChanged, cmd)
			}
			return m.flash("Reset cancelled", false)
		}
		return m.handleKey(msg)
	}
	if m.inputActive {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m CanvasModel) updateInput(msg tea.KeyMsg) (CanvasModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputActive = false
		m.input.Blur()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.input.Value())
		m.inputActive = false
		m.input.Blur()
		m.input.SetValue("")
		if query == "" {
			return m, nil
		}
		t, ok := particle.Parse(query)
		if !ok {
			return m.flash(fmt.Sprintf("Unknown particle %q", query), true)
		}
		return m.add(t)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m CanvasModel) handleKey(msg tea.KeyMsg) (CanvasModel, tea.Cmd) {
	snap := m.lab.Snapshot()

	switch msg.String() {
	case "up", "k":
		return m.moveCursor(0, -1)
	case "down", "j":
		return m.moveCursor(0, 1)
	case "left", "h":
		return m.moveCursor(-1, 0)
	case "right", "l":
		return m.moveCursor(1, 0)

	case "n":
		m.palette = (m.palette + 1) % len(particle.Palette)
		return m, nil
	case "N":
		m.palette = (m.palette - 1 + len(particle.Palette)) % len(particle.Palette)
		return m, nil

	case "enter":
		if m.grabbed != "" {
			return m.drop()
		}
		return m.add(particle.Palette[m.palette])

	case "a":
		m.inputActive = true
		cmd := m.input.Focus()
		return m, cmd

	case " ":
		if inst, ok := m.hovered(snap); ok {
			m.lab.Click(inst.ID, false)
		} else {
			m.lab.ClickEmpty()
		}
		return m, nil
	case "x":
		if inst, ok := m.hovered(snap); ok {
			m.lab.Click(inst.ID, true)
		}
		return m, nil

	case "v":
		if m.anchor == nil {
			c := m.cursor
			m.anchor = &c
			return m, nil
		}
		ids := m.lab.BoxSelect(m.selectionRect())
		m.anchor = nil
		return m.flash(fmt.Sprintf("Selected %d", len(ids)), false)

	case "m":
		if m.grabbed != "" {
			return m.drop()
		}
		inst, ok := m.hovered(snap)
		if !ok {
			return m, nil
		}
		m.grabbed = inst.ID
		m.lab.MoveParticle(inst.ID, inst.X, inst.Y, false)
		return m, nil

	case "A":
		return m.apply(m.lab.Assemble(), "Nothing to assemble")
	case "d":
		return m.apply(m.lab.Disassemble(), "Select a single composite particle")
	case "r":
		return m.apply(m.lab.RevertToElementary(), "Select a single composite particle")
	case "X", "delete", "backspace":
		return m.apply(m.lab.RemoveSelected(), "Nothing selected")
	case "R":
		m.confirm = true
		return m, nil

	case "i":
		m.showCard = !m.showCard
		return m, nil
	case "y":
		return m.copyCard(snap)

	case "esc":
		switch {
		case m.anchor != nil:
			m.anchor = nil
		case m.grabbed != "":
			return m.drop()
		default:
			m.lab.ClickEmpty()
		}
		return m, nil
	}
	return m, nil
}

func (m CanvasModel) moveCursor(dc, dr int) (CanvasModel, tea.Cmd) {
	m.cursor.col += dc
	m.cursor.row += dr
	m.clampCursor()
	if m.grabbed != "" {
		x, y := m.point(m.cursor)
		if !m.lab.MoveParticle(m.grabbed, x, y, false) {
			m.grabbed = ""
		}
	}
	return m, nil
}

func (m CanvasModel) drop() (CanvasModel, tea.Cmd) {
	x, y := m.point(m.cursor)
	moved := m.lab.MoveParticle(m.grabbed, x, y, true)
	m.grabbed = ""
	if !moved {
		return m, nil
	}
	return m, labChanged
}

func (m CanvasModel) add(t particle.Type) (CanvasModel, tea.Cmd) {
	x, y := m.point(m.cursor)
	if _, ok := m.lab.AddParticle(t, x, y); !ok {
		return m.flash("Cannot add "+particle.Name(t), true)
	}
	cmd := m.drain()
	return m, tea.Batch(labChanged, cmd)
}

func (m CanvasModel) apply(ok bool, hint string) (CanvasModel, tea.Cmd) {
	if !ok {
		return m.flash(hint, true)
	}
	cmd := m.drain()
	return m, tea.Batch(labChanged, cmd)
}

func (m CanvasModel) copyCard(snap lab.Snapshot) (CanvasModel, tea.Cmd) {
	t, stored := m.focus(snap)
	text, err := m.cards.Render(t, stored)
	if err != nil {
		return m.flash(err.Error(), true)
	}
	if err := clipboard.Write(text); err != nil {
		return m.flash("Copy failed: "+err.Error(), true)
	}
	return m.flash("Copied "+particle.Name(t)+" card", false)
}

func (m *CanvasModel) drain() tea.Cmd {
	events := m.events.Drain()
	if len(events) == 0 {
		return nil
	}
	m.message = events[len(events)-1].Message
	m.isError = false
	return clearMessageAfter(3 * time.Second)
}

func (m CanvasModel) flash(text string, isError bool) (CanvasModel, tea.Cmd) {
	m.message = text
	m.isError = isError
	return m, clearMessageAfter(2 * time.Second)
}

// selectionRect spans every cell between the anchor and the cursor.
func (m CanvasModel) selectionRect() selection.Rect {
	x1, y1 := m.point(cell{min(m.anchor.col, m.cursor.col), min(m.anchor.row, m.cursor.row)})
	x2, y2 := m.point(cell{max(m.anchor.col, m.cursor.col) + 1, max(m.anchor.row, m.cursor.row) + 1})
	return selection.Normalize(x1, y1, x2, y2)
}

// focus picks the particle the side panel describes: the hovered instance,
// then the first selected one, then the palette type.
func (m CanvasModel) focus(snap lab.Snapshot) (particle.Type, []decomp.Component) {
	if inst, ok := m.hovered(snap); ok {
		return inst.Type, inst.Composition
	}
	if len(snap.Selection) > 0 {
		if inst, ok := snap.Find(snap.Selection[0]); ok {
			return inst.Type, inst.Composition
		}
	}
	return particle.Palette[m.palette], nil
}

// View renders the canvas view.
func (m CanvasModel) View() string {
	snap := m.lab.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Particle Lab"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("Palette: "))
	b.WriteString(components.Swatch(particle.Palette[m.palette]))
	b.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.renderGrid(snap)),
		" ",
		m.renderPanel(snap),
	)
	b.WriteString(body)
	b.WriteString("\n")

	switch {
	case m.inputActive:
		b.WriteString("Add: " + m.input.View())
	case m.confirm:
		b.WriteString(errorStyle.Render("Reset the lab? (y/n)"))
	case m.isError:
		b.WriteString(errorStyle.Render(m.message))
	case m.message != "":
		b.WriteString(messageStyle.Render(m.message))
	default:
		b.WriteString(helpStyle.Render(m.hint()))
	}
	return b.String()
}

func (m CanvasModel) hint() string {
	switch {
	case m.anchor != nil:
		return "v: select box • esc: cancel"
	case m.grabbed != "":
		return "arrows: move • enter/m: drop"
	}
	return "enter: add • a: add by name • space/x: select • v: box • m: move • A/d/r/X: act • ?: help"
}

// renderGrid draws one line per row. Labels are placed left to right and a
// label that would overlap the previous one is clipped.
func (m CanvasModel) renderGrid(snap lab.Snapshot) string {
	cols, rows := m.gridSize()

	byRow := make(map[int][]lab.Instance)
	for _, inst := range snap.Instances {
		c := m.cellOf(inst)
		if c.row < 0 || c.row >= rows || c.col < 0 || c.col >= cols {
			continue
		}
		byRow[c.row] = append(byRow[c.row], inst)
	}

	selected := make(map[string]bool, len(snap.Selection))
	for _, id := range snap.Selection {
		selected[id] = true
	}

	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		insts := byRow[row]
		slices.SortStableFunc(insts, func(a, b lab.Instance) int {
			return m.cellOf(a).col - m.cellOf(b).col
		})

		var line strings.Builder
		col := 0
		for _, inst := range insts {
			start := m.cellOf(inst).col
			if start < col {
				continue
			}
			for ; col < start; col++ {
				line.WriteString(m.blank(cell{col, row}))
			}
			label := components.Label(inst.Type, min(labelWidth, cols-col))
			w := runewidth.StringWidth(label)
			atCursor := row == m.cursor.row && m.cursor.col >= start && m.cursor.col < start+w
			line.WriteString(components.Chip(inst.Type, w, selected[inst.ID] || inst.ID == m.grabbed, atCursor))
			col += w
		}
		for ; col < cols; col++ {
			line.WriteString(m.blank(cell{col, row}))
		}
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

func (m CanvasModel) blank(c cell) string {
	if c == m.cursor {
		return enabledStyle.Render("+")
	}
	if m.anchor != nil && between(c.col, m.anchor.col, m.cursor.col) && between(c.row, m.anchor.row, m.cursor.row) {
		return mutedStyle.Render("·")
	}
	return " "
}

func between(v, a, b int) bool {
	return v >= min(a, b) && v <= max(a, b)
}

func (m CanvasModel) renderPanel(snap lab.Snapshot) string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Goal"))
	b.WriteString("\n")
	cursor, total := m.lab.GoalProgress()
	if g, ok := m.lab.CurrentGoal(); ok {
		b.WriteString(goalActiveStyle.Render(g.Name))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d complete", cursor, total)))
	} else {
		b.WriteString(goalDoneStyle.Render("All goals complete"))
	}
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Actions"))
	b.WriteString("\n")
	acts := m.lab.Actions()
	assemble := "A assemble"
	if acts.Assemble {
		assemble += " → " + particle.Name(acts.Match)
	}
	b.WriteString(actionLine(assemble, acts.Assemble))
	b.WriteString(actionLine("d disassemble", acts.Disassemble))
	b.WriteString(actionLine("r revert to elementary", acts.Revert))
	b.WriteString(actionLine("X remove", acts.Remove))
	b.WriteString("\n")

	b.WriteString(subtitleStyle.Render("Selection"))
	b.WriteString("\n")
	if len(snap.Selection) == 0 {
		b.WriteString(mutedStyle.Render("nothing selected"))
	} else {
		var types []particle.Type
		for _, id := range snap.Selection {
			if inst, ok := snap.Find(id); ok {
				types = append(types, inst.Type)
			}
		}
		b.WriteString(valueStyle.Render(decomp.Summary(types)))
	}
	b.WriteString("\n\n")

	t, stored := m.focus(snap)
	b.WriteString(components.Swatch(t))
	if at, ok := m.pendingDecay(snap); ok {
		b.WriteString(errorStyle.Render(fmt.Sprintf(" decays in %.1fs", time.Until(at).Seconds())))
	}
	b.WriteString("\n")
	if m.showCard {
		card, err := m.cards.Render(t, stored)
		if err != nil {
			card = err.Error()
		}
		b.WriteString(valueStyle.Render(card))
	} else {
		art := lipgloss.NewStyle().
			Foreground(components.FamilyColor(particle.FamilyOf(t))).
			Render(bigchar.Cached(particle.Symbol(t), artCols, artRows))
		b.WriteString(art)
		b.WriteString("\n")
		if line, err := m.compact.Render(t, stored); err == nil {
			b.WriteString(valueStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render("i: card • y: copy"))
	}

	return panelStyle.Width(panelWidth).Render(b.String())
}

func (m CanvasModel) pendingDecay(snap lab.Snapshot) (time.Time, bool) {
	inst, ok := m.hovered(snap)
	if !ok {
		return time.Time{}, false
	}
	return m.lab.PendingDecay(inst.ID)
}

func actionLine(label string, enabled bool) string {
	if enabled {
		return enabledStyle.Render(label) + "\n"
	}
	return mutedStyle.Render(label) + "\n"
}
