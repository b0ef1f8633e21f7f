package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	topBarStyle    = lipgloss.NewStyle().Padding(1, 2)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	shortcutStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	healthyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unhealthyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type TopBarModel struct {
	width         int
	backendURL    string
	currentView   string
	selectedCount int
	catalogCount  int
	healthy       bool
	healthKnown   bool
	shortcuts     []string
}

func NewTopBar() *TopBarModel {
	return &TopBarModel{}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetBackendURL(url string) {
	m.backendURL = url
}

func (m *TopBarModel) SetView(view string) {
	m.currentView = view
}

func (m *TopBarModel) SetCounts(selected, catalog int) {
	m.selectedCount = selected
	m.catalogCount = catalog
}

func (m *TopBarModel) SetHealth(healthy bool) {
	m.healthy = healthy
	m.healthKnown = true
}

func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

func (m *TopBarModel) View() string {
	title := titleStyle.Render("Availarr Settings")
	if m.currentView != "" {
		title += mutedStyle.Render("  /  " + m.currentView)
	}

	backend := labelStyle.Render("Backend: ") + valueStyle.Render(m.backendURL)
	if m.healthKnown {
		if m.healthy {
			backend += "  " + healthyStyle.Render("● online")
		} else {
			backend += "  " + unhealthyStyle.Render("● unreachable")
		}
	}

	counts := labelStyle.Render("Providers: ") +
		valueStyle.Render(fmt.Sprintf("%d selected", m.selectedCount)) +
		mutedStyle.Render(fmt.Sprintf(" / %d in catalog", m.catalogCount))

	var parts []string
	for _, s := range m.shortcuts {
		key, desc, found := strings.Cut(s, " ")
		if found {
			parts = append(parts, shortcutStyle.Render(key)+" "+mutedStyle.Render(desc))
		} else {
			parts = append(parts, shortcutStyle.Render(s))
		}
	}
	shortcuts := strings.Join(parts, "   ")

	content := title + "\n\n" + backend + "\n" + counts + "\n" + shortcuts
	return topBarStyle.Width(m.width).Render(content)
}
