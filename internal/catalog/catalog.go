// Package catalog loads the static streaming-provider list served by the
// Availarr backend.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/eMattsJ/Availarr/internal/domain"
	"github.com/eMattsJ/Availarr/internal/logger"
)

const (
	catalogPath  = "/static/providers.json"
	tmdbImageCDN = "https://image.tmdb.org/t/p/original"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Load fetches the catalog once. Anything other than a 2xx response
// carrying a JSON array of provider objects is a load failure; partial
// results are never returned.
func (c *Client) Load(ctx context.Context) ([]domain.Provider, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+catalogPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog request returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	var providers []domain.Provider
	if err := json.Unmarshal(data, &providers); err != nil {
		return nil, fmt.Errorf("provider data is not an array of providers: %w", err)
	}

	logger.Log("Catalog loaded: %d providers", len(providers))
	return providers, nil
}

// LogoURL resolves a catalog logo reference to an absolute URL. Relative
// paths point at the TMDB image CDN.
func LogoURL(p domain.Provider) string {
	if strings.Contains(p.Logo, "http") {
		return p.Logo
	}
	return tmdbImageCDN + p.Logo
}
