package domain

type Integration string

const (
	IntegrationTMDB      Integration = "tmdb"
	IntegrationOverseerr Integration = "overseerr"
	IntegrationDiscord   Integration = "discord"
)

type TestStatus string

const (
	TestStatusUnknown TestStatus = "unknown"
	TestStatusPending TestStatus = "pending"
	TestStatusSuccess TestStatus = "success"
	TestStatusFailure TestStatus = "failure"
)

// Provider is one streaming provider from the static catalog. Entries
// without a name or logo survive loading but are skipped at render time.
type Provider struct {
	Name       string  `json:"name"`
	Logo       string  `json:"logo"`
	Popularity float64 `json:"popularity"`
}

// Valid reports whether the provider can be rendered at all.
func (p Provider) Valid() bool {
	return p.Name != "" && p.Logo != ""
}

// Config is the backend configuration document. The client round-trips it
// as-is; only Providers is interpreted locally.
type Config struct {
	TMDBAPIKey        string   `json:"TMDB_API_KEY"`
	OverseerrURL      string   `json:"OVERSEERR_URL"`
	OverseerrAPIKey   string   `json:"OVERSEERR_API_KEY"`
	DiscordWebhookURL string   `json:"DISCORD_WEBHOOK_URL"`
	Providers         []string `json:"PROVIDERS"`
}

// TestResult is the outcome of a single connectivity probe. Never persisted.
type TestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
