// Package audit runs the full pipeline for one page: fetch, extract, scan,
// prioritize fixes and assemble the report.
package audit

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/Bahjat/aeo-audit/internal/extract"
	"github.com/Bahjat/aeo-audit/internal/fetch"
	"github.com/Bahjat/aeo-audit/internal/model"
	"github.com/Bahjat/aeo-audit/internal/platform/errs"
	"github.com/Bahjat/aeo-audit/internal/report"
	"github.com/Bahjat/aeo-audit/internal/scan"
)

const invalidURLMessage = "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com)."

// Advice is what an external scorer contributes to a report: rubric scores
// keyed by metrics category and its own fixes.
type Advice struct {
	Scores map[string]int
	Fixes  []model.Fix
}

// Advisor is an optional external scoring source. Its failures never fail
// an audit.
type Advisor interface {
	Advise(ctx context.Context, bundle *model.ExtractionBundle) (*Advice, error)
}

// Options tunes an Engine. Zero values pick defaults.
type Options struct {
	MaxWords  int
	SchemaCap int
	Advisor   Advisor
	Logger    *slog.Logger
	// Now is the clock used for freshness and report timestamps.
	Now func() time.Time
}

// Engine orchestrates one audit per call and holds no per-audit state.
type Engine struct {
	fetcher fetch.Fetcher
	checker scan.LinkChecker
	opts    Options
}

// NewEngine returns an Engine. checker may be nil to skip link probing.
func NewEngine(fetcher fetch.Fetcher, checker scan.LinkChecker, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{fetcher: fetcher, checker: checker, opts: opts}
}

// Audit fetches targetURL and its robots.txt and audits the page. Only
// invalid input and fetch failures are returned as errors.
func (e *Engine) Audit(ctx context.Context, targetURL string) (*model.AuditReport, error) {
	if err := validateURL(targetURL); err != nil {
		return nil, err
	}

	page, err := e.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.Unreachable,
			Message: "The provided URL could not be reached. Check the address.",
			Cause:   err,
		}
	}
	if page.StatusCode >= 400 {
		return nil, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: page.StatusCode,
			Message:        "The provided URL returned an error status.",
		}
	}

	pageURL := page.URL
	if pageURL == "" {
		pageURL = targetURL
	}

	rpt, err := e.Run(ctx, model.AuditInput{
		URL:        pageURL,
		HTML:       page.HTML,
		RobotsText: e.fetcher.FetchRobots(ctx, pageURL),
	})
	if err != nil {
		return nil, err
	}
	rpt.URL = targetURL
	return rpt, nil
}

// Run audits an already fetched page.
func (e *Engine) Run(ctx context.Context, in model.AuditInput) (*model.AuditReport, error) {
	now := e.opts.Now()

	bundle, err := extract.Run(extract.Input{
		HTML:       in.HTML,
		URL:        in.URL,
		RobotsText: in.RobotsText,
		MaxWords:   e.opts.MaxWords,
		SchemaCap:  e.opts.SchemaCap,
		Now:        now,
	})
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "Failed to parse the HTML content.",
			Cause:   err,
		}
	}

	clarity, err := scan.RunClarityScan(ctx, in.HTML, in.URL, e.checker)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "Failed to parse the HTML content.",
			Cause:   err,
		}
	}

	advice := e.advise(ctx, bundle)

	return report.Transform(report.ScoreInput{
		URL:            in.URL,
		GlobalScore:    clarity.GlobalScore,
		GlobalSummary:  clarity.GlobalSummary,
		Scores:         clarity.SummaryByCategory,
		CategoryScores: advice.Scores,
		Metrics:        bundle.Metrics,
		CrawlerAccess:  bundle.CrawlerAccess,
		ExternalFixes:  advice.Fixes,
		Now:            now,
	}), nil
}

func (e *Engine) advise(ctx context.Context, bundle *model.ExtractionBundle) Advice {
	if e.opts.Advisor == nil {
		return Advice{}
	}
	advice, err := e.opts.Advisor.Advise(ctx, bundle)
	if err != nil || advice == nil {
		e.opts.Logger.WarnContext(ctx, "advisor unavailable, using generated fixes only", "error", err)
		return Advice{}
	}
	return *advice
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return &errs.AppError{Kind: errs.InvalidInput, Message: invalidURLMessage, Cause: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return &errs.AppError{Kind: errs.InvalidInput, Message: invalidURLMessage}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &errs.AppError{Kind: errs.InvalidInput, Message: "Only http and https URLs are supported."}
	}
	return nil
}
