package scan

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/aeo-audit/internal/model"
)

func TestRunClarityScan_MissingH1AndThinBody(t *testing.T) {
	html := `<html><head><title>Short</title></head><body><p>` + words(150) + `</p></body></html>`

	result, err := RunClarityScan(context.Background(), html, "https://example.com/", nil)
	require.NoError(t, err)

	assert.Contains(t, result.SummaryByCategory[model.ScanStructure].Failed, "Missing H1 heading")
	assert.Contains(t, result.SummaryByCategory[model.ScanContent].Failed, "Insufficient content")
}

func TestRunClarityScan_MultipleH1WithFAQ(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">{"@context":"https://schema.org","@type":"FAQPage","mainEntity":[{"@type":"Question","name":"Why?","acceptedAnswer":{"@type":"Answer","text":"Because."}}]}</script>
	</head><body><h1>One</h1><h1>Two</h1></body></html>`

	result, err := RunClarityScan(context.Background(), html, "https://example.com/", nil)
	require.NoError(t, err)

	assert.Contains(t, result.SummaryByCategory[model.ScanStructure].Failed, "Multiple H1 headings")
	assert.Contains(t, result.SummaryByCategory[model.ScanSchema].Passed, "Valid FAQPage schema found")
}

func TestRunClarityScan_Aggregates(t *testing.T) {
	html := `<html><head><title>A page</title></head><body><main><h1>T</h1><p>Read <a href="https://other.org/">this</a>.</p></main></body></html>`
	checker := &fakeChecker{}

	result, err := RunClarityScan(context.Background(), html, "https://example.com/", checker)
	require.NoError(t, err)

	require.Len(t, result.SummaryByCategory, len(model.ScanCategories))
	sum := 0
	for _, b := range result.SummaryByCategory {
		assert.GreaterOrEqual(t, b.Score, 0)
		assert.LessOrEqual(t, b.Score, 100)
		sum += b.Score
	}
	assert.Equal(t, int(math.Round(float64(sum)/6)), result.GlobalScore)

	// Issues are grouped in category order.
	var groups []model.ScanCategory
	for _, i := range result.Issues {
		if len(groups) == 0 || groups[len(groups)-1] != i.Group {
			groups = append(groups, i.Group)
		}
	}
	assert.Equal(t, model.ScanCategories, groups)

	assert.Equal(t, Summarize(result.GlobalScore, result.Issues), result.GlobalSummary)
	assert.Len(t, checker.calls, 1)
}

func TestRunClarityScan_InvalidURL(t *testing.T) {
	_, err := RunClarityScan(context.Background(), "<p>x</p>", "://bad", nil)
	require.Error(t, err)
}
