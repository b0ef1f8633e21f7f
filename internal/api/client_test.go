package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/eMattsJ/Availarr/internal/domain"
)

func TestLoadConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"TMDB_API_KEY": "tmdb-key",
			"OVERSEERR_URL": "https://overseerr.local",
			"OVERSEERR_API_KEY": "ov-key",
			"DISCORD_WEBHOOK_URL": "https://discord.test/hook",
			"PROVIDERS": ["Netflix", "Hulu"]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	cfg, err := client.LoadConfig(context.Background())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TMDBAPIKey != "tmdb-key" {
		t.Errorf("Expected TMDB key 'tmdb-key', got %q", cfg.TMDBAPIKey)
	}

	if !reflect.DeepEqual(cfg.Providers, []string{"Netflix", "Hulu"}) {
		t.Errorf("Unexpected providers: %v", cfg.Providers)
	}
}

func TestLoadConfigDefaultsAbsentFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	cfg, err := client.LoadConfig(context.Background())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TMDBAPIKey != "" || cfg.OverseerrURL != "" || len(cfg.Providers) != 0 {
		t.Errorf("Expected zero-value config for empty document, got %+v", cfg)
	}
}

func TestLoadConfigFailsOnMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{broken`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if _, err := client.LoadConfig(context.Background()); err == nil {
		t.Error("Expected malformed JSON to fail the load")
	}
}

func TestSaveConfigPostsFullDocument(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/config" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"message":"Configuration updated successfully"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	message, err := client.SaveConfig(context.Background(), domain.Config{
		TMDBAPIKey: "tmdb-key",
		Providers:  []string{"Netflix"},
	})
	if err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if message != "Configuration updated successfully" {
		t.Errorf("Unexpected message: %q", message)
	}

	if received["TMDB_API_KEY"] != "tmdb-key" {
		t.Errorf("Expected TMDB_API_KEY in payload, got %v", received)
	}
}

func TestSaveConfigSendsEmptyProviderArray(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if _, err := client.SaveConfig(context.Background(), domain.Config{}); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("Failed to parse payload: %v", err)
	}
	if string(doc["PROVIDERS"]) != "[]" {
		t.Errorf("Expected PROVIDERS to serialize as [], got %s", doc["PROVIDERS"])
	}
}

func TestSaveConfigFailsOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if _, err := client.SaveConfig(context.Background(), domain.Config{}); err == nil {
		t.Error("Expected HTTP 500 to fail the save")
	}
}

func TestTestTMDBPassesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config/test/tmdb" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "secret" {
			t.Errorf("Expected key 'secret', got %q", key)
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	result, err := client.TestTMDB(context.Background(), "secret")
	if err != nil {
		t.Fatalf("Test request failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected a successful result")
	}
}

func TestTestOverseerrPassesURLAndKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("url") != "https://overseerr.local" || q.Get("key") != "ov-key" {
			t.Errorf("Unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":false,"message":"Invalid key"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	result, err := client.TestOverseerr(context.Background(), "https://overseerr.local", "ov-key")
	if err != nil {
		t.Fatalf("Test request failed: %v", err)
	}

	if result.Success {
		t.Error("Expected a failed result")
	}
	if result.Message != "Invalid key" {
		t.Errorf("Expected backend message to pass through, got %q", result.Message)
	}
}

func TestTestDiscordDecodesErrorBody(t *testing.T) {
	// FastAPI-style error bodies have no success field; they decode to a
	// failed result rather than an error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Discord webhook URL missing"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	result, err := client.TestDiscord(context.Background(), "")
	if err != nil {
		t.Fatalf("Test request failed: %v", err)
	}

	if result.Success {
		t.Error("Expected a failed result for an error body")
	}
}

func TestTestFailsWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, nil)
	if _, err := client.TestTMDB(context.Background(), "key"); err == nil {
		t.Error("Expected an unreachable backend to return an error")
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Expected healthy backend, got %v", err)
	}
}

func TestHealthFailsOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if err := client.Health(context.Background()); err == nil {
		t.Error("Expected unhealthy backend to return an error")
	}
}
