// Package fetch retrieves the page under audit and its robots.txt.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const (
	userAgent = "AEOAuditBot/1.0"

	// Limits guard against huge or endless responses.
	maxResponseBody = 10 << 20
	maxRobotsBody   = 512 << 10

	minCharsetConfidence = 50
)

// Page is a fetched HTML document, decoded to UTF-8.
type Page struct {
	// URL is the final URL after redirects.
	URL        string
	StatusCode int
	HTML       string
}

// Fetcher retrieves pages and robots.txt files.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*Page, error)
	// FetchRobots returns the robots.txt text for the page's origin, or ""
	// when it cannot be retrieved for any reason.
	FetchRobots(ctx context.Context, pageURL string) string
}

// Config tunes the HTTP client.
type Config struct {
	Timeout      time.Duration
	MaxRedirects int
	RetryMax     int
	Logger       *slog.Logger
}

// HTTPClient implements Fetcher on top of a retrying HTTP client.
type HTTPClient struct {
	client *retryablehttp.Client
	logger *slog.Logger
}

// NewHTTPClient returns a Fetcher whose connections refuse private and
// reserved addresses and whose redirects are validated hop by hop.
func NewHTTPClient(cfg Config) *HTTPClient {
	return newHTTPClient(cfg, SafeTransport(10))
}

func newHTTPClient(cfg Config, transport http.RoundTripper) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = 5
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Timeout:       cfg.Timeout,
		Transport:     transport,
		CheckRedirect: RedirectPolicy(cfg.MaxRedirects),
	}
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	// Hand the last response back instead of a "giving up" error so callers
	// can see the upstream status.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = cfg.Logger

	return &HTTPClient{client: rc, logger: cfg.Logger}
}

// Fetch retrieves the page at targetURL. Non-2xx responses are returned
// as a Page with their status; only transport failures are errors.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	final := targetURL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	return &Page{
		URL:        final,
		StatusCode: resp.StatusCode,
		HTML:       decode(data, resp.Header.Get("Content-Type")),
	}, nil
}

// FetchRobots retrieves /robots.txt from the origin of pageURL.
func (c *HTTPClient) FetchRobots(ctx context.Context, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	robotsURL := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}).String()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "robots.txt unavailable", "url", robotsURL, "error", err)
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.DebugContext(ctx, "robots.txt unavailable", "url", robotsURL, "status", resp.StatusCode)
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBody))
	if err != nil {
		return ""
	}
	return string(data)
}

// decode converts body bytes to UTF-8. The declared charset (header, BOM
// or meta tag) wins; otherwise valid UTF-8 is kept as is and anything else
// is sniffed.
func decode(data []byte, contentType string) string {
	_, name, certain := charset.DetermineEncoding(data, contentType)
	if !certain {
		if utf8.Valid(data) {
			return string(data)
		}
		if guess, err := chardet.NewTextDetector().DetectBest(data); err == nil && guess.Confidence >= minCharsetConfidence {
			name = guess.Charset
		}
	}
	if name == "" || strings.EqualFold(name, "utf-8") {
		return string(data)
	}

	r, err := charset.NewReaderLabel(name, bytes.NewReader(data))
	if err != nil {
		return string(data)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
