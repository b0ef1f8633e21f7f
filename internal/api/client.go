// Package api is the HTTP client for the Availarr backend: configuration
// load/save plus the proxied connectivity tests for each integration.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/eMattsJ/Availarr/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: NewLoggingTransport(nil)}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// LoadConfig fetches the backend configuration document. Absent fields
// decode to their zero values.
func (c *Client) LoadConfig(ctx context.Context) (domain.Config, error) {
	var cfg domain.Config

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/config", nil)
	if err != nil {
		return cfg, fmt.Errorf("failed to build config request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return cfg, fmt.Errorf("config request returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the full configuration and returns the backend's
// confirmation message, which may be empty.
func (c *Client) SaveConfig(ctx context.Context, cfg domain.Config) (string, error) {
	if cfg.Providers == nil {
		cfg.Providers = []string{}
	}

	body, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/config", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to save config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("save request returned %s", resp.Status)
	}

	var reply struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("failed to decode save response: %w", err)
	}

	return reply.Message, nil
}

func (c *Client) TestTMDB(ctx context.Context, key string) (domain.TestResult, error) {
	q := url.Values{}
	q.Set("key", key)
	return c.runTest(ctx, "tmdb", q)
}

func (c *Client) TestOverseerr(ctx context.Context, serviceURL, key string) (domain.TestResult, error) {
	q := url.Values{}
	q.Set("url", serviceURL)
	q.Set("key", key)
	return c.runTest(ctx, "overseerr", q)
}

func (c *Client) TestDiscord(ctx context.Context, webhookURL string) (domain.TestResult, error) {
	q := url.Values{}
	q.Set("url", webhookURL)
	return c.runTest(ctx, "discord", q)
}

// runTest issues one probe against the backend test endpoint for the named
// integration. The backend performs the actual third-party call.
func (c *Client) runTest(ctx context.Context, integration string, q url.Values) (domain.TestResult, error) {
	var result domain.TestResult

	target := fmt.Sprintf("%s/config/test/%s?%s", c.baseURL, integration, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return result, fmt.Errorf("failed to build %s test request: %w", integration, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("%s test failed: %w", integration, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode %s test response: %w", integration, err)
	}

	return result, nil
}

// Health pings the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %s", resp.Status)
	}

	return nil
}
