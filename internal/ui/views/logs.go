package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eMattsJ/Availarr/internal/logger"
)

var (
	logsTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	logsTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	logsLineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	logsHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

// LogsViewModel is a scrollback over the logger's ring buffer.
type LogsViewModel struct {
	width  int
	height int
	offset int
	active bool
	logs   []logger.LogEntry
}

func NewLogsView() *LogsViewModel {
	return &LogsViewModel{}
}

func (m *LogsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Activate snapshots the buffer and scrolls to the tail.
func (m *LogsViewModel) Activate() {
	m.active = true
	m.logs = logger.GetLogs()
	m.offset = 0
	if len(m.logs) > m.visibleLines() {
		m.offset = len(m.logs) - m.visibleLines()
	}
}

func (m *LogsViewModel) Deactivate() {
	m.active = false
	m.offset = 0
}

func (m *LogsViewModel) IsActive() bool {
	return m.active
}

func (m *LogsViewModel) visibleLines() int {
	if m.height <= 8 {
		return 1
	}
	return m.height - 8
}

func (m *LogsViewModel) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	maxOffset := len(m.logs) - m.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < maxOffset {
				m.offset++
			}
		case "pgup":
			m.offset -= m.visibleLines()
			if m.offset < 0 {
				m.offset = 0
			}
		case "pgdown":
			m.offset += m.visibleLines()
			if m.offset > maxOffset {
				m.offset = maxOffset
			}
		case "G":
			m.offset = maxOffset
		case "g":
			m.offset = 0
		case "r":
			m.Activate()
		}
	}

	return nil
}

func (m *LogsViewModel) View() string {
	var b strings.Builder

	b.WriteString(logsTitleStyle.Render(fmt.Sprintf("Logs (%d entries)", len(m.logs))))
	b.WriteString("\n\n")

	end := m.offset + m.visibleLines()
	if end > len(m.logs) {
		end = len(m.logs)
	}

	for _, entry := range m.logs[m.offset:end] {
		line := logsTimeStyle.Render(entry.Timestamp.Format("15:04:05")) +
			" " + logsLineStyle.Render(entry.Message)
		if m.width > 0 && lipgloss.Width(line) > m.width {
			line = line[:m.width]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(logsHelpStyle.Render("↑/↓ scroll · g/G top/bottom · r refresh · esc close"))
	return b.String()
}
