package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eMattsJ/Availarr/internal/catalog"
	"github.com/eMattsJ/Availarr/internal/domain"
	"github.com/eMattsJ/Availarr/internal/settings"
)

var (
	selectedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	selectedTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	selectedItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	detailStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	movingStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	filterPromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

const selectedPaneWidth = 28

// ProvidersViewModel projects the selection state into a filterable table
// of providers with a side panel listing the selected names. A grabbed row
// can be moved with the arrow keys; dropping it commits the visible order.
type ProvidersViewModel struct {
	table       table.Model
	state       *settings.State
	filterInput textinput.Model
	filtering   bool
	filterText  string

	// Current projection, same order as the table rows.
	visible []domain.Provider

	moving bool

	width  int
	height int
}

func NewProvidersView(state *settings.State) *ProvidersViewModel {
	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Provider", Width: 32},
		{Title: "Popularity", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	filterInput := textinput.New()
	filterInput.Placeholder = "Search providers..."
	filterInput.CharLimit = 64

	v := &ProvidersViewModel{
		table:       t,
		state:       state,
		filterInput: filterInput,
	}
	v.Refresh()
	return v
}

func (m *ProvidersViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 12 {
		m.table.SetHeight(height - 12)
	}
}

// Refresh rebuilds the table rows from the current projection. Called by
// the selection state's render hook after every mutation.
func (m *ProvidersViewModel) Refresh() {
	m.visible = m.visible[:0]
	for p := range m.state.EffectiveList(m.filterText) {
		m.visible = append(m.visible, p)
	}

	rows := make([]table.Row, len(m.visible))
	for i, p := range m.visible {
		mark := " "
		if m.state.IsSelected(p.Name) {
			mark = "✓"
		}
		rows[i] = table.Row{mark, p.Name, fmt.Sprintf("%.0f", p.Popularity)}
	}
	m.table.SetRows(rows)

	if cur := m.table.Cursor(); cur >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *ProvidersViewModel) IsFiltering() bool {
	return m.filtering
}

func (m *ProvidersViewModel) IsMoving() bool {
	return m.moving
}

// SelectedProvider returns the provider under the cursor, if any.
func (m *ProvidersViewModel) SelectedProvider() *domain.Provider {
	cur := m.table.Cursor()
	if cur < 0 || cur >= len(m.visible) {
		return nil
	}
	p := m.visible[cur]
	return &p
}

func (m *ProvidersViewModel) StartFiltering() {
	m.filtering = true
	m.filterInput.Focus()
	m.table.Blur()
}

func (m *ProvidersViewModel) stopFiltering(clear bool) {
	m.filtering = false
	m.filterInput.Blur()
	if clear {
		m.filterInput.SetValue("")
		m.filterText = ""
		m.Refresh()
	}
	m.table.Focus()
}

func (m *ProvidersViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if m.filtering {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "enter":
				m.stopFiltering(false)
				return nil
			case "esc":
				m.stopFiltering(true)
				return nil
			}
		}
		m.filterInput, cmd = m.filterInput.Update(msg)
		if v := m.filterInput.Value(); v != m.filterText {
			m.filterText = v
			m.Refresh()
		}
		return cmd
	}

	if m.moving {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "up", "k":
				m.moveRow(-1)
				return nil
			case "down", "j":
				m.moveRow(1)
				return nil
			case "enter", "m", "esc":
				m.drop()
				return nil
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "/":
			m.StartFiltering()
			return nil
		case " ", "x", "enter":
			// Both the row body and the checkbox toggle; a single key
			// event can only reach one of them.
			if p := m.SelectedProvider(); p != nil {
				m.state.Toggle(p.Name)
			}
			return nil
		case "a":
			m.state.SelectAll()
			return nil
		case "c":
			m.state.ClearAll()
			return nil
		case "m":
			if len(m.visible) > 1 {
				m.moving = true
			}
			return nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return cmd
}

// moveRow shifts the grabbed row by delta within the visible projection.
// Nothing is committed until the row is dropped.
func (m *ProvidersViewModel) moveRow(delta int) {
	cur := m.table.Cursor()
	next := cur + delta
	if cur < 0 || cur >= len(m.visible) || next < 0 || next >= len(m.visible) {
		return
	}

	m.visible[cur], m.visible[next] = m.visible[next], m.visible[cur]

	rows := m.table.Rows()
	rows[cur], rows[next] = rows[next], rows[cur]
	m.table.SetRows(rows)
	m.table.SetCursor(next)
}

// drop commits the currently visible order as the new custom order.
func (m *ProvidersViewModel) drop() {
	m.moving = false

	order := make([]string, len(m.visible))
	for i, p := range m.visible {
		order[i] = p.Name
	}
	m.state.Reorder(order)
}

func (m *ProvidersViewModel) View() string {
	var header string
	if m.filtering {
		header = filterPromptStyle.Render("Filter: ") + m.filterInput.View()
	} else if m.filterText != "" {
		header = filterPromptStyle.Render("Filter: ") + m.filterText + detailStyle.Render("  (/ to edit)")
	} else {
		header = detailStyle.Render("/ search · space toggle · a all · c none · m move row")
	}

	if m.moving {
		header = movingStyle.Render("Moving row: ↑/↓ to reposition, enter to drop")
	}

	detail := ""
	if p := m.SelectedProvider(); p != nil {
		detail = detailStyle.Render("Logo: " + catalog.LogoURL(*p))
	}

	left := header + "\n\n" + m.table.View() + "\n" + detail
	right := m.selectedPane()

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m *ProvidersViewModel) selectedPane() string {
	title := selectedTitleStyle.Render(fmt.Sprintf("%d selected", m.state.SelectedCount()))

	content := title
	for _, name := range m.state.Selected() {
		content += "\n" + selectedItemStyle.Render(name)
	}

	return selectedPaneStyle.Width(selectedPaneWidth).Render(content)
}
