package views

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eMattsJ/Availarr/internal/domain"
)

func TestConfigRoundTripsThroughForm(t *testing.T) {
	view := NewCredentialsView()

	in := domain.Config{
		TMDBAPIKey:        "tmdb-key",
		OverseerrURL:      "https://overseerr.local",
		OverseerrAPIKey:   "ov-key",
		DiscordWebhookURL: "https://discord.test/hook",
	}
	view.SetConfig(in)

	out := view.Config([]string{"Netflix"})
	in.Providers = []string{"Netflix"}

	if !reflect.DeepEqual(out, in) {
		t.Errorf("Expected config %+v, got %+v", in, out)
	}
}

func TestFocusCyclesThroughAllFields(t *testing.T) {
	view := NewCredentialsView()

	wantOrder := []domain.Integration{
		domain.IntegrationTMDB,
		domain.IntegrationOverseerr,
		domain.IntegrationOverseerr,
		domain.IntegrationDiscord,
		domain.IntegrationTMDB,
	}

	for i, want := range wantOrder {
		if got := view.FocusedIntegration(); got != want {
			t.Errorf("Step %d: expected focused integration %s, got %s", i, want, got)
		}
		view.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
}

func TestShiftTabCyclesBackwards(t *testing.T) {
	view := NewCredentialsView()

	view.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	if got := view.FocusedIntegration(); got != domain.IntegrationDiscord {
		t.Errorf("Expected focus to wrap to the Discord field, got %s", got)
	}
}

func TestStatusIndicatorsStartUnknownAndFlip(t *testing.T) {
	view := NewCredentialsView()

	for _, integration := range []domain.Integration{
		domain.IntegrationTMDB,
		domain.IntegrationOverseerr,
		domain.IntegrationDiscord,
	} {
		if got := view.Status(integration); got != domain.TestStatusUnknown {
			t.Errorf("Expected %s to start unknown, got %s", integration, got)
		}
	}

	view.SetStatus(domain.IntegrationTMDB, domain.TestStatusFailure)
	if got := view.Status(domain.IntegrationTMDB); got != domain.TestStatusFailure {
		t.Errorf("Expected failure status, got %s", got)
	}

	// The machine is re-enterable: a later test can flip it back.
	view.SetStatus(domain.IntegrationTMDB, domain.TestStatusSuccess)
	if got := view.Status(domain.IntegrationTMDB); got != domain.TestStatusSuccess {
		t.Errorf("Expected success status after retest, got %s", got)
	}

	if got := view.Status(domain.IntegrationOverseerr); got != domain.TestStatusUnknown {
		t.Errorf("Expected other integrations untouched, got %s", got)
	}
}

func TestTypingGoesToFocusedFieldOnly(t *testing.T) {
	view := NewCredentialsView()

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})

	cfg := view.Config(nil)
	if cfg.TMDBAPIKey != "abc" {
		t.Errorf("Expected typed text in the TMDB field, got %q", cfg.TMDBAPIKey)
	}
	if cfg.OverseerrURL != "" {
		t.Errorf("Expected other fields untouched, got %q", cfg.OverseerrURL)
	}
}

func TestSecretsRenderMasked(t *testing.T) {
	view := NewCredentialsView()
	view.SetConfig(domain.Config{TMDBAPIKey: "super-secret-key"})

	if strings.Contains(view.View(), "super-secret-key") {
		t.Error("Expected the API key to render masked")
	}
}
