package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/infocard"
	"github.com/f3rmion/plab/internal/lab"
	"github.com/f3rmion/plab/internal/particle"
)

var recipeCategories = []catalog.Category{
	"",
	catalog.CategorySecondary,
	catalog.CategoryAtom,
	catalog.CategoryMolecule,
}

// RecipesModel browses the recipe catalog.
type RecipesModel struct {
	lab   *lab.Lab
	cards *infocard.Renderer

	filter      textinput.Model
	filtering   bool
	category    int
	selected    int
	offset      int
	showUnknown bool

	width  int
	height int
}

// NewRecipesModel creates the recipe browser.
func NewRecipesModel(l *lab.Lab) RecipesModel {
	ti := textinput.New()
	ti.Placeholder = "Filter recipes..."
	ti.CharLimit = 30
	ti.Width = 30

	return RecipesModel{
		lab:         l,
		cards:       infocard.New(l.Resolver()),
		filter:      ti,
		showUnknown: true,
	}
}

// SetSize updates the view dimensions.
func (m *RecipesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// InputActive reports whether the filter box has focus.
func (m RecipesModel) InputActive() bool {
	return m.filtering
}

// visible applies the category, filter and discovery toggles.
func (m RecipesModel) visible() []catalog.Recipe {
	cat := m.lab.Catalog()
	var recipes []catalog.Recipe
	if c := recipeCategories[m.category]; c != "" {
		recipes = cat.ByCategory(c)
	} else {
		recipes = cat.Recipes()
	}

	var found map[particle.Type]bool
	if !m.showUnknown {
		found = make(map[particle.Type]bool)
		for _, t := range discovered(m.lab.Snapshot()) {
			found[t] = true
		}
	}

	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	out := recipes[:0:0]
	for _, r := range recipes {
		if found != nil && !found[r.Type] {
			continue
		}
		if query != "" && !matchesRecipe(r, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesRecipe(r catalog.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(particle.Name(r.Type)), query) {
		return true
	}
	if strings.ToLower(particle.Symbol(r.Type)) == query {
		return true
	}
	for t := range r.Ingredients {
		if strings.Contains(strings.ToLower(particle.Name(t)), query) {
			return true
		}
	}
	return false
}

// Update handles messages.
func (m RecipesModel) Update(msg tea.Msg) (RecipesModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if !m.filtering {
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	if m.filtering {
		switch key.String() {
		case "enter", "esc":
			m.filtering = false
			m.filter.Blur()
			m.selected, m.offset = 0, 0
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.selected, m.offset = 0, 0
		return m, cmd
	}

	n := len(m.visible())
	switch key.String() {
	case "/":
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd
	case "c":
		m.category = (m.category + 1) % len(recipeCategories)
		m.selected, m.offset = 0, 0
	case "u":
		m.showUnknown = !m.showUnknown
		m.selected, m.offset = 0, 0
	case "j", "down":
		if m.selected < n-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "g":
		m.selected = 0
	case "G":
		m.selected = max(n-1, 0)
	case "enter":
		recipes := m.visible()
		if m.selected < len(recipes) {
			t := recipes[m.selected].Type
			return m, func() tea.Msg { return AddDiscoveredMsg{Type: t} }
		}
	}

	rows := m.listRows()
	if m.selected < m.offset {
		m.offset = m.selected
	} else if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	return m, nil
}

func (m RecipesModel) listRows() int {
	return max(m.height-8, 5)
}

// View renders the recipe browser.
func (m RecipesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recipes"))
	b.WriteString("  ")
	name := string(recipeCategories[m.category])
	if name == "" {
		name = "all"
	}
	b.WriteString(labelStyle.Render("Category:"))
	b.WriteString(valueStyle.Render(name))
	if !m.showUnknown {
		b.WriteString(mutedStyle.Render("  (discovered only)"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	recipes := m.visible()
	var list strings.Builder
	if len(recipes) == 0 {
		list.WriteString(mutedStyle.Render("No matching recipes"))
	}
	end := min(m.offset+m.listRows(), len(recipes))
	for i := m.offset; i < end; i++ {
		r := recipes[i]
		line := fmt.Sprintf("%-18s = %s", particle.Name(r.Type), r.Ingredients)
		if i == m.selected {
			list.WriteString(listActiveStyle.Render("> " + line))
		} else {
			list.WriteString("  " + valueStyle.Render(line))
		}
		list.WriteString("\n")
	}
	if len(recipes) > m.listRows() {
		list.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(recipes))))
	}

	listWidth := max(m.width-panelWidth-6, 30)
	left := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	right := ""
	if m.selected < len(recipes) {
		card, err := m.cards.Render(recipes[m.selected].Type, nil)
		if err != nil {
			card = errorStyle.Render(err.Error())
		}
		right = panelStyle.Width(panelWidth).Render(card)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("/: filter • c: category • u: discovered only • enter: add to canvas"))
	return b.String()
}
