// Package fixes turns category scores into remediation items and ranks them.
package fixes

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/Bahjat/aeo-audit/internal/model"
)

const (
	maxFixes     = 10
	maxQuickWins = 5
	dedupPrefix  = 50
)

// Tier is the severity band a category score falls into.
type Tier string

const (
	TierCritical Tier = "critical"
	TierModerate Tier = "moderate"
	TierAdvanced Tier = "advanced"
)

// TierFor maps a 0-100 score to its tier.
func TierFor(score int) Tier {
	switch {
	case score < 50:
		return TierCritical
	case score < 80:
		return TierModerate
	default:
		return TierAdvanced
	}
}

// ImpactFor maps a category importance weight to an impact level.
func ImpactFor(weight float64) model.Impact {
	switch {
	case weight >= 0.8:
		return model.ImpactHigh
	case weight >= 0.6:
		return model.ImpactMed
	default:
		return model.ImpactLow
	}
}

// Text is the canned wording for one tier of a category.
type Text struct {
	Problem string `yaml:"problem"`
	Fix     string `yaml:"fix"`
	Example string `yaml:"example"`
}

// Entry is the lookup-table row for one category.
type Entry struct {
	Category   string       `yaml:"category"`
	Weight     float64      `yaml:"weight"`
	Effort     model.Effort `yaml:"effort"`
	Critical   Text         `yaml:"critical"`
	Moderate   Text         `yaml:"moderate"`
	Advanced   Text         `yaml:"advanced"`
	Validation []string     `yaml:"validation"`
}

func (e Entry) text(t Tier) Text {
	switch t {
	case TierCritical:
		return e.Critical
	case TierModerate:
		return e.Moderate
	default:
		return e.Advanced
	}
}

// Table is the ordered per-category lookup table.
type Table []Entry

//go:embed table.yaml
var defaultTableYAML []byte

var defaultTable = func() Table {
	t, err := ParseTable(defaultTableYAML)
	if err != nil {
		panic(fmt.Sprintf("fixes: embedded table: %v", err))
	}
	return t
}()

// DefaultTable returns the built-in lookup table.
func DefaultTable() Table {
	return defaultTable
}

var errInvalidTable = errors.New("invalid fix table")

// ParseTable decodes and validates a YAML lookup table.
func ParseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidTable, err)
	}
	seen := make(map[string]bool, len(t))
	for i, e := range t {
		switch {
		case e.Category == "":
			return nil, fmt.Errorf("%w: entry %d has no category", errInvalidTable, i)
		case seen[e.Category]:
			return nil, fmt.Errorf("%w: duplicate category %q", errInvalidTable, e.Category)
		case e.Weight < 0 || e.Weight > 1:
			return nil, fmt.Errorf("%w: %s weight %v outside [0,1]", errInvalidTable, e.Category, e.Weight)
		case e.Effort != model.EffortLow && e.Effort != model.EffortMedium && e.Effort != model.EffortHigh:
			return nil, fmt.Errorf("%w: %s effort %q", errInvalidTable, e.Category, e.Effort)
		}
		for _, tier := range []Tier{TierCritical, TierModerate, TierAdvanced} {
			if e.text(tier).Problem == "" || e.text(tier).Fix == "" {
				return nil, fmt.Errorf("%w: %s %s tier is incomplete", errInvalidTable, e.Category, tier)
			}
		}
		seen[e.Category] = true
	}
	return t, nil
}

// Generate builds one fix for every scored category the table knows, in
// table order. Categories missing from the table are skipped.
func (t Table) Generate(scores map[string]int) []model.Fix {
	fixes := []model.Fix{}
	for _, e := range t {
		score, ok := scores[e.Category]
		if !ok {
			continue
		}
		text := e.text(TierFor(score))
		fixes = append(fixes, model.Fix{
			Problem:    text.Problem,
			Example:    strings.TrimRight(text.Example, "\n"),
			Fix:        text.Fix,
			Impact:     ImpactFor(e.Weight),
			Category:   e.Category,
			Effort:     e.Effort,
			Validation: slices.Clone(e.Validation),
		})
	}
	return fixes
}

// Prioritize drops fixes that share a category and problem prefix (first
// one wins), orders the rest by impact then effort, and keeps the top 10.
func Prioritize(fixes []model.Fix) []model.Fix {
	seen := make(map[string]bool, len(fixes))
	unique := make([]model.Fix, 0, len(fixes))
	for _, f := range fixes {
		key := dedupKey(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, f)
	}

	slices.SortStableFunc(unique, func(a, b model.Fix) int {
		if d := impactRank(b.Impact) - impactRank(a.Impact); d != 0 {
			return d
		}
		return effortRank(a.Effort) - effortRank(b.Effort)
	})

	return unique[:min(len(unique), maxFixes)]
}

// QuickWins returns the fix text of the first five low-effort fixes.
func QuickWins(prioritized []model.Fix) []string {
	wins := []string{}
	for _, f := range prioritized {
		if len(wins) == maxQuickWins {
			break
		}
		if f.Effort == model.EffortLow {
			wins = append(wins, f.Fix)
		}
	}
	return wins
}

func dedupKey(f model.Fix) string {
	problem := []rune(strings.ToLower(f.Problem))
	return f.Category + "\x00" + string(problem[:min(len(problem), dedupPrefix)])
}

func impactRank(i model.Impact) int {
	switch i {
	case model.ImpactHigh:
		return 3
	case model.ImpactMed:
		return 2
	case model.ImpactLow:
		return 1
	}
	return 0
}

// effortRank orders unknown effort after high.
func effortRank(e model.Effort) int {
	switch e {
	case model.EffortLow:
		return 1
	case model.EffortMedium:
		return 2
	case model.EffortHigh:
		return 3
	}
	return 4
}
