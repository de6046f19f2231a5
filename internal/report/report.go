// Package report assembles the final audit report from scan results.
package report

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/Bahjat/aeo-audit/internal/fixes"
	"github.com/Bahjat/aeo-audit/internal/model"
)

// Highlights is a fixed editorial list and does not follow the scores.
var Highlights = []string{
	string(model.CategoryStructuredData),
	string(model.CategoryAnswerUpfront),
	string(model.CategoryFreshnessMeta),
}

// ScoreInput is everything Transform needs.
type ScoreInput struct {
	URL           string
	GlobalScore   int
	GlobalSummary string
	// Scores are the scanner category blocks.
	Scores map[model.ScanCategory]model.ScoreBlock
	// CategoryScores are optional rubric scores keyed by metrics category.
	CategoryScores map[string]int
	Metrics        model.Metrics
	CrawlerAccess  model.CrawlerAccess
	// ExternalFixes are merged after the generated ones.
	ExternalFixes []model.Fix
	// Table overrides the built-in fix lookup table.
	Table fixes.Table
	Now   time.Time
}

// Transform generates and ranks fixes for every scored category and packages
// them with the scores and metrics.
func Transform(in ScoreInput) *model.AuditReport {
	table := in.Table
	if table == nil {
		table = fixes.DefaultTable()
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	scores := make(map[string]int, len(in.Scores)+len(in.CategoryScores))
	for category, block := range in.Scores {
		scores[string(category)] = block.Score
	}
	maps.Copy(scores, in.CategoryScores)

	candidates := append(table.Generate(scores), in.ExternalFixes...)
	prioritized := fixes.Prioritize(candidates)

	access := in.CrawlerAccess
	if access == nil {
		access = model.NewCrawlerAccess()
	}

	return &model.AuditReport{
		ID:            uuid.NewString(),
		URL:           in.URL,
		GeneratedAt:   now.UTC(),
		GlobalScore:   in.GlobalScore,
		GlobalSummary: in.GlobalSummary,
		Scores:        maps.Clone(in.Scores),
		Metrics:       in.Metrics,
		CrawlerAccess: access,
		Fixes:         prioritized,
		QuickWins:     fixes.QuickWins(prioritized),
		Highlights:    append([]string(nil), Highlights...),
		CodeSnippets:  codeSnippets(in.URL),
		CoreWebVitals: model.NotTested,
	}
}
