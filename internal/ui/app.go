package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/eMattsJ/Availarr/internal/domain"
	"github.com/eMattsJ/Availarr/internal/logger"
	"github.com/eMattsJ/Availarr/internal/settings"
	"github.com/eMattsJ/Availarr/internal/ui/components"
	"github.com/eMattsJ/Availarr/internal/ui/views"
)

type ViewState int

const (
	ViewProviders ViewState = iota
	ViewCredentials
)

const toastDuration = 3 * time.Second

var integrationLabels = map[domain.Integration]string{
	domain.IntegrationTMDB:      "TMDB",
	domain.IntegrationOverseerr: "Overseerr",
	domain.IntegrationDiscord:   "Discord",
}

type Model struct {
	state  ViewState
	width  int
	height int

	topBar     *components.TopBarModel
	statusBar  *components.StatusBarModel
	commandBar *components.CommandBarModel

	providersView   *views.ProvidersViewModel
	credentialsView *views.CredentialsViewModel
	logsView        *views.LogsViewModel

	selection *settings.State
	backend   domain.Backend
	catalog   domain.CatalogSource

	commandRegistry *CommandRegistry
	ctx             context.Context

	loading spinner.Model

	// First render waits for both startup loads to resolve or fail.
	catalogReady bool
	configReady  bool

	// Newest probe per integration; stale completions are dropped.
	probes map[domain.Integration]string

	toastSeq int
}

func NewModel(selection *settings.State, backend domain.Backend, source domain.CatalogSource, backendURL string) Model {
	loading := spinner.New()
	loading.Spinner = spinner.Dot

	m := Model{
		state:           ViewProviders,
		topBar:          components.NewTopBar(),
		statusBar:       components.NewStatusBar(),
		commandBar:      components.NewCommandBar(),
		providersView:   views.NewProvidersView(selection),
		credentialsView: views.NewCredentialsView(),
		logsView:        views.NewLogsView(),
		selection:       selection,
		backend:         backend,
		catalog:         source,
		commandRegistry: NewCommandRegistry(),
		ctx:             context.Background(),
		loading:         loading,
		probes:          make(map[domain.Integration]string),
	}

	m.topBar.SetBackendURL(backendURL)
	m.topBar.SetView("Providers")
	m.updateShortcuts()

	// Every state mutation re-renders the projection exactly once.
	providersView := m.providersView
	topBar := m.topBar
	selection.OnRender(func() {
		providersView.Refresh()
		topBar.SetCounts(selection.SelectedCount(), len(selection.Catalog()))
	})

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loading.Tick,
		m.loadCatalog(),
		m.loadConfig(),
		m.checkHealth(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.commandBar.SetWidth(msg.Width)
		m.providersView.SetSize(msg.Width, msg.Height)
		m.credentialsView.SetSize(msg.Width, msg.Height)
		m.logsView.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.ready() {
			m.loading, cmd = m.loading.Update(msg)
			return m, cmd
		}
		return m, nil

	case catalogLoadedMsg:
		m.catalogReady = true
		if msg.err != nil {
			// Degraded render with an empty catalog; no toast for this.
			logger.LogError("CATALOG_LOAD", "startup", msg.err)
			m.selection.SetCatalog(nil)
			return m, nil
		}
		m.selection.SetCatalog(msg.providers)
		return m, nil

	case configLoadedMsg:
		m.configReady = true
		if msg.err != nil {
			// Form keeps its defaults; startup degrades silently.
			logger.LogError("CONFIG_LOAD", "startup", msg.err)
			return m, nil
		}
		m.credentialsView.SetConfig(msg.cfg)
		m.selection.SetSelected(msg.cfg.Providers)
		return m, nil

	case healthMsg:
		m.topBar.SetHealth(msg.err == nil)
		return m, nil

	case configSavedMsg:
		if msg.err != nil {
			logger.LogError("CONFIG_SAVE", "save", msg.err)
			return m.showToast("Failed to save configuration.", true)
		}
		message := msg.message
		if message == "" {
			message = "Configuration saved."
		}
		return m.showToast(message, false)

	case testCompletedMsg:
		return m.handleTestCompleted(msg)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.statusBar.ClearMessage()
		}
		return m, nil

	case ErrorMsg:
		return m.showToast(msg.err.Error(), true)

	case SuccessMsg:
		return m.showToast(msg.message, false)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.commandBar.IsActive() {
		switch key {
		case "enter":
			return m.handleCommand()
		case "esc":
			m.commandBar.Deactivate()
			return m, nil
		default:
			return m, m.commandBar.Update(msg)
		}
	}

	if m.logsView.IsActive() {
		switch key {
		case "esc", "q":
			m.logsView.Deactivate()
			return m, nil
		default:
			return m, m.logsView.Update(msg)
		}
	}

	// Save and test work regardless of which field has focus.
	switch key {
	case "ctrl+s":
		return m.saveConfig()
	case "ctrl+t":
		if m.state == ViewCredentials {
			return m.runTest(m.credentialsView.FocusedIntegration())
		}
	}

	switch m.state {
	case ViewProviders:
		if !m.providersView.IsFiltering() && !m.providersView.IsMoving() {
			switch key {
			case "q":
				return m, tea.Quit
			case ":":
				m.commandBar.Activate()
				return m, nil
			case "tab":
				return m.switchView(ViewCredentials)
			}
		}
		return m, m.providersView.Update(msg)

	case ViewCredentials:
		if key == "esc" {
			return m.switchView(ViewProviders)
		}
		return m, m.credentialsView.Update(msg)
	}

	return m, nil
}

func (m Model) switchView(state ViewState) (tea.Model, tea.Cmd) {
	m.state = state
	switch state {
	case ViewProviders:
		m.topBar.SetView("Providers")
	case ViewCredentials:
		m.topBar.SetView("Credentials")
	}
	m.updateShortcuts()
	return m, nil
}

func (m Model) handleCommand() (tea.Model, tea.Cmd) {
	input := m.commandBar.Value()
	m.commandBar.Deactivate()

	cmd := ParseCommand(input)
	logger.Log("UI: Executing command: %q", input)

	switch cmd.Type {
	case CommandQuit:
		return m, tea.Quit
	case CommandProviders:
		return m.switchView(ViewProviders)
	case CommandConfig:
		return m.switchView(ViewCredentials)
	case CommandLogs:
		m.logsView.Activate()
		return m, nil
	case CommandSave:
		return m.saveConfig()
	case CommandReload:
		m.catalogReady = false
		m.configReady = false
		return m, tea.Batch(m.loading.Tick, m.loadCatalog(), m.loadConfig(), m.checkHealth())
	case CommandTest:
		if target, ok := cmd.TestTarget(); ok {
			return m.runTest(target)
		}
		return m.showToast("Usage: :test tmdb|overseerr|discord", true)
	case CommandHelp:
		return m.showToast(":providers :config :logs :save :reload :test <integration> :quit", false)
	default:
		return m.showToast(fmt.Sprintf("Unknown command: %s", input), true)
	}
}

func (m Model) ready() bool {
	return m.catalogReady && m.configReady
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if !m.ready() {
		return m.topBar.View() + "\n\n  " + m.loading.View() + " Contacting backend..."
	}

	var content string
	if m.logsView.IsActive() {
		content = m.logsView.View()
	} else {
		switch m.state {
		case ViewProviders:
			content = m.providersView.View()
		case ViewCredentials:
			content = m.credentialsView.View()
		}
	}

	bottom := m.statusBar.View()
	if m.commandBar.IsActive() {
		bottom = m.commandBar.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.topBar.View(), content, bottom)
}

func (m Model) showToast(message string, isError bool) (tea.Model, tea.Cmd) {
	m.statusBar.SetMessage(message, isError)
	m.toastSeq++
	seq := m.toastSeq
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m Model) updateShortcuts() {
	m.topBar.SetShortcuts(m.commandRegistry.GetContextualShortcuts(m.state))
}

func (m Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		providers, err := m.catalog.Load(m.ctx)
		return catalogLoadedMsg{providers: providers, err: err}
	}
}

func (m Model) loadConfig() tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.backend.LoadConfig(m.ctx)
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

func (m Model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		return healthMsg{err: m.backend.Health(m.ctx)}
	}
}

func (m Model) saveConfig() (tea.Model, tea.Cmd) {
	cfg := m.credentialsView.Config(m.selection.Selected())
	logger.Log("UI: Saving configuration (%d providers)", len(cfg.Providers))

	return m, func() tea.Msg {
		message, err := m.backend.SaveConfig(m.ctx, cfg)
		return configSavedMsg{message: message, err: err}
	}
}

// runTest issues one probe for the integration using the values currently
// in the form. The indicator goes pending until the result lands.
func (m Model) runTest(integration domain.Integration) (tea.Model, tea.Cmd) {
	probeID := uuid.New().String()
	m.probes[integration] = probeID
	m.credentialsView.SetStatus(integration, domain.TestStatusPending)

	cfg := m.credentialsView.Config(nil)
	logger.Log("UI: Testing %s integration", integration)

	return m, func() tea.Msg {
		var result domain.TestResult
		var err error

		switch integration {
		case domain.IntegrationTMDB:
			result, err = m.backend.TestTMDB(m.ctx, cfg.TMDBAPIKey)
		case domain.IntegrationOverseerr:
			result, err = m.backend.TestOverseerr(m.ctx, cfg.OverseerrURL, cfg.OverseerrAPIKey)
		case domain.IntegrationDiscord:
			result, err = m.backend.TestDiscord(m.ctx, cfg.DiscordWebhookURL)
		}

		return testCompletedMsg{
			integration: integration,
			probeID:     probeID,
			result:      result,
			err:         err,
		}
	}
}

func (m Model) handleTestCompleted(msg testCompletedMsg) (tea.Model, tea.Cmd) {
	if m.probes[msg.integration] != msg.probeID {
		// A newer probe for this integration is in flight.
		return m, nil
	}

	label := integrationLabels[msg.integration]

	if msg.err != nil {
		// Transport failure reads the same as an explicit failure.
		logger.LogError("TEST_"+label, string(msg.integration), msg.err)
		m.credentialsView.SetStatus(msg.integration, domain.TestStatusFailure)
		return m.showToast(label+" test error", true)
	}

	status := domain.TestStatusFailure
	if msg.result.Success {
		status = domain.TestStatusSuccess
	}
	m.credentialsView.SetStatus(msg.integration, status)

	message := msg.result.Message
	if message == "" {
		if msg.result.Success {
			message = label + " test passed"
		} else {
			message = label + " test failed"
		}
	}
	return m.showToast(message, !msg.result.Success)
}

type catalogLoadedMsg struct {
	providers []domain.Provider
	err       error
}

type configLoadedMsg struct {
	cfg domain.Config
	err error
}

type configSavedMsg struct {
	message string
	err     error
}

type testCompletedMsg struct {
	integration domain.Integration
	probeID     string
	result      domain.TestResult
	err         error
}

type healthMsg struct {
	err error
}

type toastExpiredMsg struct {
	seq int
}

type ErrorMsg struct {
	err error
}

type SuccessMsg struct {
	message string
}
