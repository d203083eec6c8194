// Package csvsource loads per-wrestler match records from remote CSV files.
//
// Each wrestler identity maps to one "<identity><suffix>" resource under a
// base URL. Fetches are rate limited via a token bucket and issued
// concurrently; a failed fetch only costs that wrestler's records.
package csvsource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Client is the shared HTTP client for all record sources.
type Client struct {
	httpClient *http.Client
	baseURL    string
	suffix     string
	maxBytes   int64
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// ClientOptions configures a Client. Zero values take the defaults below.
type ClientOptions struct {
	BaseURL           string
	FileSuffix        string
	MaxBytes          int64
	RequestsPerMinute int
	Timeout           time.Duration
	HTTPClient        *http.Client
}

const (
	defaultSuffix   = "_matches.csv"
	defaultMaxBytes = 8 << 20
	defaultRPM      = 600
	defaultTimeout  = 30 * time.Second
)

// NewClient creates a record source client with rate limiting.
func NewClient(opts ClientOptions, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FileSuffix == "" {
		opts.FileSuffix = defaultSuffix
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = defaultRPM
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	rps := float64(opts.RequestsPerMinute) / 60.0
	return &Client{
		httpClient: httpClient,
		baseURL:    opts.BaseURL,
		suffix:     opts.FileSuffix,
		maxBytes:   opts.MaxBytes,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// SourceURL builds the resource locator for a wrestler identity.
func (c *Client) SourceURL(identity string) string {
	return c.baseURL + "/" + url.PathEscape(identity+c.suffix)
}

// Fetch performs a rate-limited GET of one wrestler's CSV resource and
// returns its body. A body over the byte cap is cut back to the last whole
// line that fits.
func (c *Client) Fetch(ctx context.Context, identity string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.SourceURL(identity)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", identity, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source %s returned %d: %s", identity, resp.StatusCode, truncate(body, 200))
	}

	if int64(len(body)) > c.maxBytes {
		c.logger.Warn("Record source exceeds byte cap, truncating",
			"identity", identity, "max_bytes", c.maxBytes)
		body = body[:c.maxBytes]
		// Drop the partial last line.
		body = body[:bytes.LastIndexByte(body, '\n')+1]
	}
	return body, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
