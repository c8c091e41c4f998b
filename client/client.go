package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the production Nebula API endpoint.
const DefaultBaseURL = "https://api.nebulacloud.app"

// DefaultTimeout bounds each individual API call.
const DefaultTimeout = 30 * time.Second

// apiKeyEnvVar is consulted when no key is passed to New.
const apiKeyEnvVar = "NEBULA_API_KEY"

//--------------------------------------------------------------------
// Debug transport wrapper
//--------------------------------------------------------------------

// debugTransport wraps an http.RoundTripper to log requests and responses.
type debugTransport struct {
	base http.RoundTripper
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if debugEnabled() {
		reqDump, err := httputil.DumpRequestOut(req, true)
		if err == nil {
			log.Debug().
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Str("request_dump", string(reqDump)).
				Msg("HTTP request")
		}
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if debugEnabled() {
			log.Error().
				Err(err).
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Msg("HTTP request failed")
		}
		return nil, err
	}

	if debugEnabled() {
		respDump, err := httputil.DumpResponse(resp, true)
		if err == nil {
			log.Debug().
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Int("status_code", resp.StatusCode).
				Str("response_dump", string(respDump)).
				Msg("HTTP response")
		}
	}

	return resp, nil
}

func debugEnabled() bool {
	return os.Getenv("NEBULA_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

//--------------------------------------------------------------------
// Client
//--------------------------------------------------------------------

// Client talks to the Nebula memory API. All methods are synchronous: each
// issues at most one HTTP request and blocks until it completes. Connection
// settings (API key, base URL, timeout) may be swapped at runtime; the new
// values apply to subsequent calls only.
type Client struct {
	mu      sync.RWMutex
	apiKey  string
	baseURL string
	timeout time.Duration

	http *http.Client

	closedOnce uint32
}

// New constructs a Client. An empty apiKey falls back to the NEBULA_API_KEY
// environment variable; if neither is set a ClientError is returned.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnvVar)
	}
	if apiKey == "" {
		return nil, &ClientError{
			Message: "API key is required: pass it to New or set " + apiKeyEnvVar,
		}
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		http:    &http.Client{},
	}

	// Enable debug logging if environment variable is set.
	if debugEnabled() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew constructs a Client and panics on error (for tests and examples).
func MustNew(apiKey string, opts ...Option) *Client {
	c, err := New(apiKey, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// SetAPIKey replaces the credential for subsequent calls. The API-key vs
// bearer-token decision is re-evaluated on every request.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.apiKey = apiKey
	c.mu.Unlock()
}

// SetBaseURL replaces the base URL for subsequent calls. A trailing slash
// is stripped so path joining stays uniform.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.mu.Unlock()
}

// SetTimeout replaces the per-call timeout for subsequent calls. In-flight
// calls keep the timeout they started with.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	c.timeout = d
	c.mu.Unlock()
}

// snapshot returns the connection settings for one call. Calls already in
// flight are unaffected by later setter invocations.
func (c *Client) snapshot() (apiKey, baseURL string, timeout time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey, c.baseURL, c.timeout
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// HealthCheck reports the backend's health status.
func (c *Client) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	raw, err := c.do(ctx, http.MethodGet, "/v1/health", requestOptions{})
	if err != nil {
		return nil, err
	}
	var status map[string]interface{}
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, &ClientError{Message: "malformed health response", Err: err}
	}
	return status, nil
}
