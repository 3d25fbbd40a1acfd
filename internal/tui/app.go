package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/plab/internal/config"
	"github.com/f3rmion/plab/internal/goal"
	"github.com/f3rmion/plab/internal/lab"
	"github.com/f3rmion/plab/internal/store"
	"github.com/f3rmion/plab/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewCanvas ViewType = iota
	ViewDiscoveries
	ViewRecipes
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

type tickMsg time.Time

type savedMsg struct {
	err error
}

// Options wires the app to an existing lab. Events must be the notifier the
// lab was created with.
type Options struct {
	Lab       *lab.Lab
	Events    *lab.EventLog
	Store     store.Store // nil disables saving
	Settings  config.Settings
	ConfigDir string
	Goals     []goal.Goal
	Logger    lab.Logger
}

// AppModel is the main TUI model
type AppModel struct {
	lab      *lab.Lab
	store    store.Store
	settings config.Settings
	log      lab.Logger

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	canvasView      views.CanvasModel
	discoveriesView views.DiscoveriesModel
	recipesView     views.RecipesModel
	settingsView    views.SettingsModel

	showHelp bool
}

// NewApp creates the TUI application.
func NewApp(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = lab.NopLogger{}
	}
	events := opts.Events
	if events == nil {
		events = lab.NewEventLog(0)
	}
	if opts.Settings.TickInterval <= 0 {
		opts.Settings.TickInterval = config.DefaultSettings(opts.ConfigDir).TickInterval
	}

	menuItems := []MenuItem{
		{Label: "Canvas", View: ViewCanvas, Shortcut: "1"},
		{Label: "Discoveries", View: ViewDiscoveries, Shortcut: "2"},
		{Label: "Recipes", View: ViewRecipes, Shortcut: "3"},
		{Label: "Settings", View: ViewSettings, Shortcut: "4"},
	}

	return AppModel{
		lab:          opts.Lab,
		store:        opts.Store,
		settings:     opts.Settings,
		log:          log,
		sidebarWidth: 18,
		currentView:  ViewCanvas,
		menuItems:    menuItems,

		canvasView:      views.NewCanvasModel(opts.Lab, events, opts.Settings.CanvasScale),
		discoveriesView: views.NewDiscoveriesModel(opts.Lab, opts.Goals),
		recipesView:     views.NewRecipesModel(opts.Lab),
		settingsView:    views.NewSettingsModel(opts.Settings, opts.ConfigDir, opts.Lab.Catalog(), opts.Goals),
	}
}

// Init starts the decay ticker.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m AppModel) tick() tea.Cmd {
	return tea.Tick(m.settings.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// save persists a snapshot taken now, off the update loop.
func (m AppModel) save() tea.Cmd {
	if m.store == nil || !m.settings.Autosave {
		return nil
	}
	snap := m.lab.Snapshot()
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return savedMsg{err: s.Save(ctx, snap)}
	}
}

// capturing reports whether the active view is consuming raw keys.
func (m AppModel) capturing() bool {
	if m.sidebarActive {
		return false
	}
	switch m.currentView {
	case ViewCanvas:
		return m.canvasView.Capturing()
	case ViewRecipes:
		return m.recipesView.InputActive()
	}
	return false
}

func (m AppModel) switchTo(v ViewType) AppModel {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
	return m
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if n := m.lab.Advance(); n > 0 {
			m.log.Debugf("%d particle(s) decayed", n)
			cmds = append(cmds, m.canvasView.Refresh(), m.save())
		}
		cmds = append(cmds, m.tick())
		return m, tea.Batch(cmds...)

	case views.LabChangedMsg:
		return m, m.save()

	case savedMsg:
		if msg.err != nil {
			m.log.Warnf("saving lab state: %v", msg.err)
		}
		return m, nil

	case views.AddDiscoveredMsg:
		m = m.switchTo(ViewCanvas)
		var cmd tea.Cmd
		m.canvasView, cmd = m.canvasView.AddType(msg.Type)
		return m, cmd

	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if !m.capturing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "esc":
				if m.sidebarActive {
					return m, tea.Quit
				}
				m.sidebarActive = true
				return m, nil
			case "1", "2", "3", "4":
				idx := int(msg.String()[0] - '1')
				return m.switchTo(m.menuItems[idx].View), nil
			case "tab":
				m.sidebarActive = !m.sidebarActive
				return m, nil
			}
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m = m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.canvasView.SetSize(contentWidth, contentHeight)
		m.discoveriesView.SetSize(contentWidth, contentHeight)
		m.recipesView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		return m.switchTo(msg.View), nil
	}

	// Timers from the canvas must reach it whichever view is showing.
	if _, ok := msg.(tea.KeyMsg); !ok {
		var canvasCmd, recipesCmd tea.Cmd
		m.canvasView, canvasCmd = m.canvasView.Update(msg)
		m.recipesView, recipesCmd = m.recipesView.Update(msg)
		return m, tea.Batch(canvasCmd, recipesCmd)
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewCanvas:
		m.canvasView, cmd = m.canvasView.Update(msg)
	case ViewDiscoveries:
		m.discoveriesView, cmd = m.discoveriesView.Update(msg)
	case ViewRecipes:
		m.recipesView, cmd = m.recipesView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewCanvas:
		content = m.canvasView.View()
	case ViewDiscoveries:
		content = m.discoveriesView.View()
	case ViewRecipes:
		content = m.recipesView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" PARTICLE LAB "), "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		switch {
		case i == m.selectedMenu && m.sidebarActive:
			style = SidebarItemActiveStyle
		case i == m.selectedMenu:
			// Current view but not focused
			style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
		default:
			style = SidebarItemStyle
		}
		items = append(items, style.Render(label))
	}

	cursor, total := m.lab.GoalProgress()
	items = append(items, "", SidebarGoalStyle.Render(fmt.Sprintf("Goals %d/%d", cursor, total)))

	usedHeight := len(items) + 4 // borders and help
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)
	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render("Particle Lab") + "\n\n"
	line := func(key, desc string) string {
		return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
	}

	helpText += sectionStyle.Render("Global Keys") + "\n"
	helpText += line("1-4", "Switch views")
	helpText += line("tab", "Toggle sidebar focus")
	helpText += line("?", "Show this help")
	helpText += line("q", "Quit")

	helpText += sectionStyle.Render("Canvas") + "\n"
	helpText += line("←↑↓→ hjkl", "Move cursor")
	helpText += line("n/N", "Cycle palette")
	helpText += line("enter", "Add palette particle")
	helpText += line("a", "Add particle by name")
	helpText += line("space", "Select (x: toggle)")
	helpText += line("v", "Box select from here")
	helpText += line("m", "Grab / drop particle")
	helpText += line("A", "Assemble selection")
	helpText += line("d", "Disassemble one level")
	helpText += line("r", "Revert to elementary")
	helpText += line("X", "Remove selection")
	helpText += line("R", "Reset the lab")
	helpText += line("i / y", "Info card / copy it")

	helpText += sectionStyle.Render("Discoveries & Recipes") + "\n"
	helpText += line("j/k", "Navigate")
	helpText += line("enter", "Add to canvas")
	helpText += line("/ c u", "Filter, category, discovered")

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(helpText))
}
