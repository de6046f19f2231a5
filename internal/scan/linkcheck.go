package scan

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/Bahjat/aeo-audit/internal/fetch"
)

const (
	maxLinks      = 1000
	probeAgent    = "AEOAuditBot/1.0"
	resultOK      = "ok"
	resultBroken  = "broken"
	defaultProbes = 10
)

// LinkCheckerConfig tunes HTTPLinkChecker. Zero values pick defaults.
type LinkCheckerConfig struct {
	Concurrency int
	Timeout     time.Duration
	// RPS caps probes per second across all workers; 0 means unlimited.
	RPS float64
	// Checks, when set, counts probes by result ("ok" or "broken").
	Checks *prometheus.CounterVec
}

// HTTPLinkChecker probes links from a bounded worker pool.
type HTTPLinkChecker struct {
	client      *http.Client
	concurrency int
	limiter     *rate.Limiter
	checks      *prometheus.CounterVec
}

// NewLinkChecker returns a checker that does not follow redirects and
// refuses to connect to private or reserved addresses.
func NewLinkChecker(cfg LinkCheckerConfig) *HTTPLinkChecker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultProbes
	}
	return newLinkChecker(cfg, fetch.SafeTransport(cfg.Concurrency))
}

func newLinkChecker(cfg LinkCheckerConfig, transport http.RoundTripper) *HTTPLinkChecker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultProbes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Concurrency)
	}

	return &HTTPLinkChecker{
		concurrency: cfg.Concurrency,
		limiter:     limiter,
		checks:      cfg.Checks,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// CheckLinks probes up to 1000 links concurrently and returns the broken
// ones in input order.
func (lc *HTTPLinkChecker) CheckLinks(ctx context.Context, links []string) []string {
	links = links[:min(len(links), maxLinks)]
	if len(links) == 0 {
		return nil
	}

	jobs := make(chan int, len(links))
	broken := make([]bool, len(links))

	var wg sync.WaitGroup
	for range min(len(links), lc.concurrency) {
		wg.Go(func() {
			for i := range jobs {
				broken[i] = lc.probe(ctx, links[i])
			}
		})
	}

	for i := range links {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var out []string
	for i, bad := range broken {
		lc.observe(bad)
		if bad {
			out = append(out, links[i])
		}
	}
	return out
}

// probe sends HEAD, retrying once with GET when the server rejects HEAD.
// Errors of any kind, cancellation included, count as broken.
func (lc *HTTPLinkChecker) probe(ctx context.Context, link string) bool {
	if err := lc.limiter.Wait(ctx); err != nil {
		return true
	}

	status, err := lc.status(ctx, http.MethodHead, link)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = lc.status(ctx, http.MethodGet, link)
	}
	return err != nil || status < 200 || status >= 400
}

func (lc *HTTPLinkChecker) status(ctx context.Context, method, link string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, link, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", probeAgent)

	resp, err := lc.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, nil
}

func (lc *HTTPLinkChecker) observe(broken bool) {
	if lc.checks == nil {
		return
	}
	result := resultOK
	if broken {
		result = resultBroken
	}
	lc.checks.WithLabelValues(result).Inc()
}
