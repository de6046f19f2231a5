package scan

import (
	"fmt"
	"math"

	"github.com/Bahjat/aeo-audit/internal/model"
)

// Score weights passes at 2, warnings at 1 and failures at 0 over twice the
// number of checks. A category with no checks scores 100.
func Score(passed, recommendations, failed int) int {
	total := passed + recommendations + failed
	if total == 0 {
		return 100
	}
	score := int(math.Round(float64(2*passed+recommendations) / float64(2*total) * 100))
	return max(0, min(100, score))
}

// GlobalScore is the rounded mean of the category scores.
func GlobalScore(blocks map[model.ScanCategory]model.ScoreBlock) int {
	if len(blocks) == 0 {
		return 100
	}
	sum := 0
	for _, b := range blocks {
		sum += b.Score
	}
	return int(math.Round(float64(sum) / float64(len(blocks))))
}

// Summarize describes a global score and the issue counts behind it.
func Summarize(score int, issues []model.IssueReport) string {
	var fails, warnings, passes int
	for _, issue := range issues {
		switch issue.Status {
		case model.StatusFail:
			fails++
		case model.StatusWarning:
			warnings++
		case model.StatusPass:
			passes++
		}
	}

	summary := fmt.Sprintf("%s Found %d failed checks, %d warnings and %d passed checks.",
		band(score), fails, warnings, passes)
	if score < 80 {
		summary += " Fix the failed checks first, then work through the warnings."
	}
	return summary
}

func band(score int) string {
	switch {
	case score >= 90:
		return "Excellent: this page is very well prepared for answer engines."
	case score >= 80:
		return "Good: this page is in good shape for answer engines, with a few gaps."
	case score >= 70:
		return "Fair: answer engines can use this page, but several signals are weak."
	case score >= 60:
		return "Below average: important signals are missing or incomplete."
	default:
		return "Poor: answer engines will struggle to extract and cite this page."
	}
}

// checks accumulates the results of one scanner into a ScoreBlock.
type checks struct {
	group model.ScanCategory
	block model.ScoreBlock
}

func newChecks(group model.ScanCategory) *checks {
	return &checks{
		group: group,
		block: model.ScoreBlock{
			Passed:          []string{},
			Failed:          []string{},
			Recommendations: []string{},
			Issues:          []model.IssueReport{},
		},
	}
}

func (c *checks) pass(title, details string) {
	c.block.Passed = append(c.block.Passed, title)
	c.add(title, model.StatusPass, details, "", "")
}

func (c *checks) fail(title, details, recommendation, selector string) {
	c.block.Failed = append(c.block.Failed, title)
	c.add(title, model.StatusFail, details, recommendation, selector)
}

func (c *checks) warn(title, details, recommendation, selector string) {
	c.block.Recommendations = append(c.block.Recommendations, recommendation)
	c.add(title, model.StatusWarning, details, recommendation, selector)
}

func (c *checks) add(title string, status model.IssueStatus, details, recommendation, selector string) {
	c.block.Issues = append(c.block.Issues, model.IssueReport{
		Group:           c.group,
		Title:           title,
		Status:          status,
		Details:         details,
		Recommendation:  recommendation,
		SelectorExample: selector,
	})
}

func (c *checks) result() model.ScoreBlock {
	c.block.Score = Score(len(c.block.Passed), len(c.block.Recommendations), len(c.block.Failed))
	return c.block
}
