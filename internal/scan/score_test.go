package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bahjat/aeo-audit/internal/model"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name                       string
		passed, recs, failed, want int
	}{
		{"no checks", 0, 0, 0, 100},
		{"all passed", 3, 0, 0, 100},
		{"all failed", 0, 0, 2, 0},
		{"all warnings", 0, 4, 0, 50},
		{"pass and warning", 1, 1, 0, 75},
		{"pass and fail", 1, 0, 1, 50},
		{"one of each", 1, 1, 1, 50},
		{"rounds half up", 2, 1, 1, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.passed, tt.recs, tt.failed))
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	for p := 0; p < 6; p++ {
		for r := 0; r < 6; r++ {
			for f := 0; f < 6; f++ {
				s := Score(p, r, f)
				assert.GreaterOrEqual(t, s, 0)
				assert.LessOrEqual(t, s, 100)
			}
		}
	}
}

func TestGlobalScore(t *testing.T) {
	blocks := func(scores ...int) map[model.ScanCategory]model.ScoreBlock {
		m := make(map[model.ScanCategory]model.ScoreBlock)
		for i, s := range scores {
			m[model.ScanCategories[i]] = model.ScoreBlock{Score: s}
		}
		return m
	}

	assert.Equal(t, 61, GlobalScore(blocks(100, 50, 75, 0, 80, 61)))
	assert.Equal(t, 51, GlobalScore(blocks(50, 51)))
	assert.Equal(t, 100, GlobalScore(nil))
}

func TestSummarize(t *testing.T) {
	issues := []model.IssueReport{
		{Status: model.StatusFail},
		{Status: model.StatusWarning},
		{Status: model.StatusPass},
		{Status: model.StatusPass},
	}

	tests := []struct {
		score       int
		prefix      string
		wantClosing bool
	}{
		{95, "Excellent", false},
		{90, "Excellent", false},
		{85, "Good", false},
		{80, "Good", false},
		{79, "Fair", true},
		{65, "Below average", true},
		{12, "Poor", true},
	}

	for _, tt := range tests {
		got := Summarize(tt.score, issues)
		assert.True(t, strings.HasPrefix(got, tt.prefix), got)
		assert.Contains(t, got, "Found 1 failed checks, 1 warnings and 2 passed checks.")
		assert.Equal(t, tt.wantClosing, strings.Contains(got, "Fix the failed checks first"), got)
	}
}
