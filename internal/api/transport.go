package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eMattsJ/Availarr/internal/logger"
)

// LoggingTransport wraps an http.RoundTripper to log every request and
// response with credential-bearing query parameters redacted.
type LoggingTransport struct {
	Transport http.RoundTripper
}

func NewLoggingTransport(transport http.RoundTripper) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingTransport{Transport: transport}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)

	target := redactURL(req.URL)
	if err != nil {
		logger.LogError("HTTP_REQUEST", req.Method+" "+target, err)
		return nil, err
	}

	logger.Log("HTTP: %s %s - %s (%v)", req.Method, target, resp.Status, duration)
	return resp, nil
}

// redactURL masks query parameter values that carry credentials or webhook
// targets. Test endpoints put the API keys in the query string.
func redactURL(u *url.URL) string {
	if u.RawQuery == "" {
		return u.String()
	}

	q := u.Query()
	for name := range q {
		if isSensitiveParam(name) {
			q.Set(name, "REDACTED")
		}
	}

	masked := *u
	masked.RawQuery = q.Encode()
	return masked.String()
}

func isSensitiveParam(name string) bool {
	switch strings.ToLower(name) {
	case "key", "url", "token":
		return true
	}
	return false
}
