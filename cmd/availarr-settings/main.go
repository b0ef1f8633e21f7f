package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eMattsJ/Availarr/internal/api"
	"github.com/eMattsJ/Availarr/internal/catalog"
	"github.com/eMattsJ/Availarr/internal/logger"
	"github.com/eMattsJ/Availarr/internal/settings"
	"github.com/eMattsJ/Availarr/internal/storage"
	"github.com/eMattsJ/Availarr/internal/ui"
)

const defaultBackendURL = "http://localhost:8000"

var backendURL string

func init() {
	// Load .env if present; silently skip otherwise.
	_ = godotenv.Load()

	rootCmd.Flags().StringVarP(&backendURL, "url", "u", "", "Availarr backend base URL")
}

var rootCmd = &cobra.Command{
	Use:   "availarr-settings",
	Short: "Terminal settings panel for Availarr",
	Long: `availarr-settings is a terminal client for the Availarr settings panel.

Pick streaming providers and their display order, edit integration
credentials, save the configuration to the backend, and run live
connectivity tests for TMDB, Overseerr and Discord.

The backend base URL comes from --url or AVAILARR_URL. Debug logging is
enabled with AVAILARR_DEBUG=1 and written to ~/.availarr/settings.log.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	url := backendURL
	if url == "" {
		url = os.Getenv("AVAILARR_URL")
	}
	if url == "" {
		url = defaultBackendURL
	}

	logPath := ""
	if homeDir, err := os.UserHomeDir(); err == nil {
		logPath = filepath.Join(homeDir, ".availarr", "settings.log")
	}
	logger.Init(logPath, logPath != "" && os.Getenv("AVAILARR_DEBUG") == "1")

	store, err := storage.NewLocalStore()
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	httpClient := &http.Client{Transport: api.NewLoggingTransport(nil)}
	backend := api.NewClient(url, httpClient)
	source := catalog.NewClient(url, httpClient)

	selection := settings.New(store)

	model := ui.NewModel(selection, backend, source, url)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
