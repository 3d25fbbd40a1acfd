package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/clipboard"
	"github.com/f3rmion/plab/internal/config"
	"github.com/f3rmion/plab/internal/goal"
	"github.com/f3rmion/plab/internal/particle"
)

// Settings view styles
var (
	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))
)

var settingsTabs = []string{"General", "Recipes", "Goals"}

// SettingsModel shows the active configuration.
type SettingsModel struct {
	settings  config.Settings
	configDir string
	catalog   *catalog.Catalog
	goals     []goal.Goal

	tab     int
	scrollY int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(s config.Settings, configDir string, cat *catalog.Catalog, goals []goal.Goal) SettingsModel {
	return SettingsModel{
		settings:  s,
		configDir: configDir,
		catalog:   cat,
		goals:     goals,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l":
			m.tab = (m.tab + 1) % len(settingsTabs)
			m.scrollY = 0
		case "left", "h":
			m.tab = (m.tab - 1 + len(settingsTabs)) % len(settingsTabs)
			m.scrollY = 0
		case "j", "down":
			m.scrollY++
		case "k", "up":
			if m.scrollY > 0 {
				m.scrollY--
			}
		case "g":
			m.scrollY = 0
		}
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("plab Configuration"))
	b.WriteString("\n")
	b.WriteString(settingsPathStyle.Render("Config: " + m.configDir))
	b.WriteString("\n\n")

	var tabViews []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", min(max(m.width-4, 0), 60))))
	b.WriteString("\n\n")

	var lines []string
	switch m.tab {
	case 0:
		lines = m.generalLines()
	case 1:
		lines = m.recipeLines()
	case 2:
		lines = m.goalLines()
	}
	b.WriteString(m.scroll(lines))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→: switch tabs • j/k: scroll"))
	return b.String()
}

func (m SettingsModel) scroll(lines []string) string {
	visible := max(m.height-12, 5)
	start := min(m.scrollY, max(len(lines)-1, 0))
	end := min(start+visible, len(lines))

	var b strings.Builder
	for _, l := range lines[start:end] {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(lines))))
	}
	return b.String()
}

func (m SettingsModel) generalLines() []string {
	row := func(label, value string) string {
		return labelStyle.Width(16).Render(label) + valueStyle.Render(value)
	}
	clip := "unavailable"
	if clipboard.Available() {
		clip = "available"
	}
	return []string{
		row("Tick interval", m.settings.TickInterval.String()),
		row("State file", m.settings.StatePath),
		row("Canvas scale", fmt.Sprintf("%g units/column", m.settings.CanvasScale)),
		row("Autosave", fmt.Sprintf("%t", m.settings.Autosave)),
		row("Clipboard", clip),
		"",
		mutedStyle.Render("Edit " + config.SettingsFile + " or set PLAB_* variables"),
	}
}

func (m SettingsModel) recipeLines() []string {
	if m.catalog == nil {
		return []string{mutedStyle.Render("No catalog loaded")}
	}
	lines := []string{
		settingsHeaderStyle.Render(fmt.Sprintf("Recipes (%d loaded)", m.catalog.Len())),
		"",
	}
	for _, c := range recipeCategories[1:] {
		lines = append(lines, labelStyle.Width(16).Render(string(c))+
			valueStyle.Render(fmt.Sprintf("%d", len(m.catalog.ByCategory(c)))))
	}
	return append(lines, "", mutedStyle.Render("Run 'plab init' to write "+config.RecipesFile+" for editing"))
}

func (m SettingsModel) goalLines() []string {
	if len(m.goals) == 0 {
		return []string{mutedStyle.Render("No goals configured")}
	}
	lines := []string{
		settingsHeaderStyle.Render(fmt.Sprintf("Goals (%d configured)", len(m.goals))),
		"",
	}
	for i, g := range m.goals {
		lines = append(lines, valueStyle.Render(fmt.Sprintf("%2d. %-28s %s", i+1, g.Name, particle.Name(g.Target))))
	}
	return lines
}
