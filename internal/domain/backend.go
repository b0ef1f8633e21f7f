package domain

import "context"

// Backend is the Availarr configuration service. Connectivity tests are
// proxied by the backend; the client never talks to the third parties
// directly.
type Backend interface {
	LoadConfig(ctx context.Context) (Config, error)

	// SaveConfig writes the full configuration and returns the backend's
	// confirmation message, which may be empty.
	SaveConfig(ctx context.Context, cfg Config) (string, error)

	TestTMDB(ctx context.Context, key string) (TestResult, error)

	TestOverseerr(ctx context.Context, url, key string) (TestResult, error)

	TestDiscord(ctx context.Context, url string) (TestResult, error)

	Health(ctx context.Context) error
}
