package views

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eMattsJ/Availarr/internal/domain"
)

var (
	fieldLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Width(24)
	statusPassStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusFailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusWaitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusIdleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	credsHelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	credsSectionStyle = lipgloss.NewStyle().Padding(0, 1)
)

const credentialFieldCount = 4

// CredentialsViewModel is the form for the integration credentials, with a
// connectivity status indicator per integration. An indicator starts
// unknown and flips between success and failure on every test; it never
// reverts on its own.
type CredentialsViewModel struct {
	tmdbKeyInput      textinput.Model
	overseerrURLInput textinput.Model
	overseerrKeyInput textinput.Model
	discordURLInput   textinput.Model
	inputFocus        int

	statuses map[domain.Integration]domain.TestStatus

	width  int
	height int
}

func NewCredentialsView() *CredentialsViewModel {
	tmdbKey := textinput.New()
	tmdbKey.Placeholder = "TMDB API key"
	tmdbKey.CharLimit = 256
	tmdbKey.EchoMode = textinput.EchoPassword
	tmdbKey.Focus()

	overseerrURL := textinput.New()
	overseerrURL.Placeholder = "https://overseerr.example.com"
	overseerrURL.CharLimit = 256

	overseerrKey := textinput.New()
	overseerrKey.Placeholder = "Overseerr API key"
	overseerrKey.CharLimit = 256
	overseerrKey.EchoMode = textinput.EchoPassword

	discordURL := textinput.New()
	discordURL.Placeholder = "https://discord.com/api/webhooks/..."
	discordURL.CharLimit = 256

	return &CredentialsViewModel{
		tmdbKeyInput:      tmdbKey,
		overseerrURLInput: overseerrURL,
		overseerrKeyInput: overseerrKey,
		discordURLInput:   discordURL,
		statuses: map[domain.Integration]domain.TestStatus{
			domain.IntegrationTMDB:      domain.TestStatusUnknown,
			domain.IntegrationOverseerr: domain.TestStatusUnknown,
			domain.IntegrationDiscord:   domain.TestStatusUnknown,
		},
	}
}

func (m *CredentialsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetConfig fills the form from a loaded configuration.
func (m *CredentialsViewModel) SetConfig(cfg domain.Config) {
	m.tmdbKeyInput.SetValue(cfg.TMDBAPIKey)
	m.overseerrURLInput.SetValue(cfg.OverseerrURL)
	m.overseerrKeyInput.SetValue(cfg.OverseerrAPIKey)
	m.discordURLInput.SetValue(cfg.DiscordWebhookURL)
}

// Config snapshots the form into a configuration document. The provider
// list is supplied by the caller from the selection state.
func (m *CredentialsViewModel) Config(providers []string) domain.Config {
	return domain.Config{
		TMDBAPIKey:        m.tmdbKeyInput.Value(),
		OverseerrURL:      m.overseerrURLInput.Value(),
		OverseerrAPIKey:   m.overseerrKeyInput.Value(),
		DiscordWebhookURL: m.discordURLInput.Value(),
		Providers:         providers,
	}
}

func (m *CredentialsViewModel) SetStatus(integration domain.Integration, status domain.TestStatus) {
	m.statuses[integration] = status
}

func (m *CredentialsViewModel) Status(integration domain.Integration) domain.TestStatus {
	return m.statuses[integration]
}

// FocusedIntegration maps the focused field to the integration a test
// would exercise.
func (m *CredentialsViewModel) FocusedIntegration() domain.Integration {
	switch m.inputFocus {
	case 1, 2:
		return domain.IntegrationOverseerr
	case 3:
		return domain.IntegrationDiscord
	default:
		return domain.IntegrationTMDB
	}
}

func (m *CredentialsViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.nextInput()
			return nil
		case "shift+tab", "up":
			m.prevInput()
			return nil
		}
	}

	switch m.inputFocus {
	case 0:
		m.tmdbKeyInput, cmd = m.tmdbKeyInput.Update(msg)
	case 1:
		m.overseerrURLInput, cmd = m.overseerrURLInput.Update(msg)
	case 2:
		m.overseerrKeyInput, cmd = m.overseerrKeyInput.Update(msg)
	case 3:
		m.discordURLInput, cmd = m.discordURLInput.Update(msg)
	}

	return cmd
}

func (m *CredentialsViewModel) nextInput() {
	m.blurAll()
	m.inputFocus = (m.inputFocus + 1) % credentialFieldCount
	m.focusCurrent()
}

func (m *CredentialsViewModel) prevInput() {
	m.blurAll()
	m.inputFocus = (m.inputFocus - 1 + credentialFieldCount) % credentialFieldCount
	m.focusCurrent()
}

func (m *CredentialsViewModel) blurAll() {
	m.tmdbKeyInput.Blur()
	m.overseerrURLInput.Blur()
	m.overseerrKeyInput.Blur()
	m.discordURLInput.Blur()
}

func (m *CredentialsViewModel) focusCurrent() {
	switch m.inputFocus {
	case 0:
		m.tmdbKeyInput.Focus()
	case 1:
		m.overseerrURLInput.Focus()
	case 2:
		m.overseerrKeyInput.Focus()
	case 3:
		m.discordURLInput.Focus()
	}
}

func statusGlyph(status domain.TestStatus) string {
	switch status {
	case domain.TestStatusSuccess:
		return statusPassStyle.Render("✓")
	case domain.TestStatusFailure:
		return statusFailStyle.Render("✗")
	case domain.TestStatusPending:
		return statusWaitStyle.Render("…")
	default:
		return statusIdleStyle.Render("○")
	}
}

func (m *CredentialsViewModel) View() string {
	rows := []string{
		m.fieldRow("TMDB API Key", m.tmdbKeyInput, domain.IntegrationTMDB),
		m.fieldRow("Overseerr URL", m.overseerrURLInput, domain.IntegrationOverseerr),
		m.fieldRow("Overseerr API Key", m.overseerrKeyInput, domain.IntegrationOverseerr),
		m.fieldRow("Discord Webhook URL", m.discordURLInput, domain.IntegrationDiscord),
	}

	help := credsHelpStyle.Render("tab next field · ctrl+t test integration · ctrl+s save")

	content := ""
	for _, r := range rows {
		content += r + "\n\n"
	}
	content += help

	return credsSectionStyle.Render(content)
}

func (m *CredentialsViewModel) fieldRow(label string, input textinput.Model, integration domain.Integration) string {
	return statusGlyph(m.statuses[integration]) + " " +
		fieldLabelStyle.Render(label) + input.View()
}
