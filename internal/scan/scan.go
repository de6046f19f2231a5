// Package scan runs the rule-based category scanners over a page and
// aggregates their scores.
package scan

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/Bahjat/aeo-audit/internal/extract"
	"github.com/Bahjat/aeo-audit/internal/model"
)

// RunClarityScan parses html and runs all six scanners concurrently over the
// same read-only document. checker may be nil to skip the broken-link probe.
func RunClarityScan(ctx context.Context, html, pageURL string, checker LinkChecker) (*model.ClarityScan, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("scan: parse url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("scan: parse html: %w", err)
	}
	content := extract.MainContent(html, page)

	scanners := map[model.ScanCategory]func() model.ScoreBlock{
		model.ScanStructure:  func() model.ScoreBlock { return scanStructure(doc) },
		model.ScanMeta:       func() model.ScoreBlock { return scanMeta(doc) },
		model.ScanSchema:     func() model.ScoreBlock { return scanSchema(doc) },
		model.ScanNavigation: func() model.ScoreBlock { return scanNavigation(doc) },
		model.ScanContent:    func() model.ScoreBlock { return scanContent(doc, content) },
		model.ScanLinks:      func() model.ScoreBlock { return scanLinks(ctx, doc, page, checker) },
	}

	results := make([]model.ScoreBlock, len(model.ScanCategories))
	var g errgroup.Group
	for i, category := range model.ScanCategories {
		run := scanners[category]
		g.Go(func() error {
			results[i] = run()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCategory := make(map[model.ScanCategory]model.ScoreBlock, len(results))
	issues := []model.IssueReport{}
	for i, category := range model.ScanCategories {
		byCategory[category] = results[i]
		issues = append(issues, results[i].Issues...)
	}

	global := GlobalScore(byCategory)
	return &model.ClarityScan{
		GlobalScore:       global,
		GlobalSummary:     Summarize(global, issues),
		Issues:            issues,
		SummaryByCategory: byCategory,
	}, nil
}
