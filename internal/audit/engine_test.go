package audit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/aeo-audit/internal/fetch"
	"github.com/Bahjat/aeo-audit/internal/model"
	"github.com/Bahjat/aeo-audit/internal/platform/errs"
)

var (
	errConnectionRefused = errors.New("connection refused")
	fixedNow             = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
)

type mockFetcher struct {
	page   *fetch.Page
	err    error
	robots string

	mu          sync.Mutex
	robotsCalls []string
}

func (m *mockFetcher) Fetch(_ context.Context, targetURL string) (*fetch.Page, error) {
	if m.err != nil {
		return nil, m.err
	}
	page := *m.page
	if page.URL == "" {
		page.URL = targetURL
	}
	return &page, nil
}

func (m *mockFetcher) FetchRobots(_ context.Context, pageURL string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.robotsCalls = append(m.robotsCalls, pageURL)
	return m.robots
}

type mockChecker struct{ broken []string }

func (m *mockChecker) CheckLinks(_ context.Context, _ []string) []string { return m.broken }

type mockAdvisor struct {
	advice *Advice
	err    error
}

func (m *mockAdvisor) Advise(_ context.Context, _ *model.ExtractionBundle) (*Advice, error) {
	return m.advice, m.err
}

func newTestEngine(f *mockFetcher, opts Options) *Engine {
	opts.Now = func() time.Time { return fixedNow }
	return NewEngine(f, &mockChecker{}, opts)
}

func TestEngine_Audit_MissingH1ThinBodyEmptyRobots(t *testing.T) {
	html := `<!DOCTYPE html><html><head><title>Notes</title></head><body><p>` +
		strings.TrimSpace(strings.Repeat("word ", 150)) + `</p></body></html>`
	f := &mockFetcher{page: &fetch.Page{StatusCode: 200, HTML: html}}

	r, err := newTestEngine(f, Options{}).Audit(context.Background(), "https://example.com/notes")
	require.NoError(t, err)

	assert.Contains(t, r.Scores[model.ScanStructure].Failed, "Missing H1 heading")
	assert.Contains(t, r.Scores[model.ScanContent].Failed, "Insufficient content")
	for _, agent := range model.TrackedAgents {
		assert.Equal(t, model.AccessAllow, r.CrawlerAccess[agent], agent)
	}
	assert.Equal(t, []string{"https://example.com/notes"}, f.robotsCalls)
}

func TestEngine_Audit_MultipleH1FAQAndBlockedWildcard(t *testing.T) {
	html := `<!DOCTYPE html><html><head><title>FAQ</title>
	<script type="application/ld+json">{"@context":"https://schema.org","@type":"FAQPage","mainEntity":[]}</script>
	</head><body><h1>One</h1><h1>Two</h1></body></html>`
	f := &mockFetcher{page: &fetch.Page{StatusCode: 200, HTML: html}, robots: "User-agent: *\nDisallow: /\n"}

	r, err := newTestEngine(f, Options{}).Audit(context.Background(), "https://example.com/faq")
	require.NoError(t, err)

	assert.Contains(t, r.Scores[model.ScanStructure].Failed, "Multiple H1 headings")
	assert.Contains(t, r.Scores[model.ScanSchema].Passed, "Valid FAQPage schema found")
	assert.Equal(t, model.AccessBlock, r.CrawlerAccess["*"])
	assert.Equal(t, model.AccessAllow, r.CrawlerAccess["GPTBot"])
}

func TestEngine_Audit_Report(t *testing.T) {
	html := `<html><head><meta property="article:modified_time" content="2026-10-10"></head>
	<body><main><h1>Title</h1><p>Body text.</p></main></body></html>`
	f := &mockFetcher{page: &fetch.Page{URL: "https://example.com/final", StatusCode: 200, HTML: html}}

	r, err := newTestEngine(f, Options{}).Audit(context.Background(), "https://example.com/start")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/start", r.URL)
	assert.Equal(t, fixedNow, r.GeneratedAt)
	assert.Len(t, r.Scores, len(model.ScanCategories))
	assert.LessOrEqual(t, len(r.Fixes), 10)
	assert.LessOrEqual(t, len(r.QuickWins), 5)
	require.NotNil(t, r.Metrics.FreshnessMeta.DaysSinceModified)
	assert.Equal(t, 7, *r.Metrics.FreshnessMeta.DaysSinceModified)
	assert.Equal(t, []string{"https://example.com/final"}, f.robotsCalls)
}

func TestEngine_Audit_Advisor(t *testing.T) {
	html := `<html><body><h1>T</h1></body></html>`
	external := model.Fix{Category: "custom", Problem: "Custom problem", Fix: "custom fix", Impact: model.ImpactHigh, Effort: model.EffortLow}

	t.Run("merged", func(t *testing.T) {
		f := &mockFetcher{page: &fetch.Page{StatusCode: 200, HTML: html}}
		advisor := &mockAdvisor{advice: &Advice{
			Scores: map[string]int{"crawler_access": 10},
			Fixes:  []model.Fix{external},
		}}

		r, err := newTestEngine(f, Options{Advisor: advisor}).Audit(context.Background(), "https://example.com/")
		require.NoError(t, err)

		var categories []string
		for _, fix := range r.Fixes {
			categories = append(categories, fix.Category)
		}
		assert.Contains(t, categories, "crawler_access")
		assert.Contains(t, categories, "custom")
	})

	t.Run("failure is absorbed", func(t *testing.T) {
		f := &mockFetcher{page: &fetch.Page{StatusCode: 200, HTML: html}}
		advisor := &mockAdvisor{err: errors.New("quota exceeded")}

		r, err := newTestEngine(f, Options{Advisor: advisor}).Audit(context.Background(), "https://example.com/")
		require.NoError(t, err)
		assert.NotEmpty(t, r.Fixes)
	})
}

func TestEngine_Audit_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		fetcher    *mockFetcher
		wantKind   errs.Kind
		wantStatus int
	}{
		{"malformed url", "://bad", &mockFetcher{}, errs.InvalidInput, 0},
		{"missing host", "https://", &mockFetcher{}, errs.InvalidInput, 0},
		{"relative url", "/path", &mockFetcher{}, errs.InvalidInput, 0},
		{"ftp scheme", "ftp://example.com", &mockFetcher{}, errs.InvalidInput, 0},
		{"fetch failure", "https://down.example.com", &mockFetcher{err: errConnectionRefused}, errs.Unreachable, 0},
		{"upstream 404", "https://example.com/missing", &mockFetcher{page: &fetch.Page{StatusCode: 404}}, errs.Unreachable, 404},
		{"upstream 503", "https://example.com/", &mockFetcher{page: &fetch.Page{StatusCode: 503}}, errs.Unreachable, 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEngine(tt.fetcher, Options{}).Audit(context.Background(), tt.url)

			var appErr *errs.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantKind, appErr.Kind)
			assert.Equal(t, tt.wantStatus, appErr.UpstreamStatus)
			assert.Empty(t, tt.fetcher.robotsCalls, "robots.txt must not be fetched after a failed page fetch")
		})
	}

	t.Run("fetch failure keeps cause", func(t *testing.T) {
		_, err := newTestEngine(&mockFetcher{err: errConnectionRefused}, Options{}).Audit(context.Background(), "https://example.com")
		require.ErrorIs(t, err, errConnectionRefused)
	})
}

func TestEngine_Run_Idempotent(t *testing.T) {
	in := model.AuditInput{
		URL:        "https://example.com/post",
		HTML:       `<html><body><article><h1>T</h1><p>Body <a href="https://en.wikipedia.org/wiki/Go">Go</a>.</p></article></body></html>`,
		RobotsText: "User-agent: GPTBot\nDisallow: /private\n",
	}
	e := newTestEngine(&mockFetcher{}, Options{})

	first, err := e.Run(context.Background(), in)
	require.NoError(t, err)
	second, err := e.Run(context.Background(), in)
	require.NoError(t, err)

	second.ID = first.ID
	assert.Equal(t, first, second)
	assert.Equal(t, model.AccessPartial, first.CrawlerAccess["GPTBot"])
}
