package extract

import (
	"math"
	"strings"
	"time"

	"github.com/Bahjat/aeo-audit/internal/model"
)

const msPerDay = 86_400_000

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func freshness(head model.Head, now time.Time) model.FreshnessMetrics {
	m := model.FreshnessMetrics{
		PublishedTime: head.PublishedTime,
		ModifiedTime:  head.ModifiedTime,
	}
	if modified, ok := parseDate(head.ModifiedTime); ok {
		days := int(math.Round(float64(now.Sub(modified).Milliseconds()) / msPerDay))
		m.DaysSinceModified = &days
	}
	return m
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
