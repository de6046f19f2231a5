// Package robots classifies how a robots.txt treats the AI crawlers we track.
package robots

import (
	"bufio"
	"strings"

	"github.com/temoto/robotstxt"

	"github.com/Bahjat/aeo-audit/internal/model"
)

// Analyze reads robots.txt text and returns the access level of every
// tracked agent. Agents the file never names stay allowed.
//
// A "Disallow: /" in a group that names an agent blocks it for good; later
// Allow lines do not lift the block. Any other Disallow path demotes an
// allowed agent to partial.
func Analyze(text string) model.CrawlerAccess {
	access := model.NewCrawlerAccess()

	var active []string
	inRules := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			if inRules {
				active = nil
				inRules = false
			}
			active = append(active, splitAgents(value)...)

		case "allow":
			inRules = true

		case "disallow":
			inRules = true
			if value == "" {
				continue
			}
			for _, group := range active {
				agent, tracked := trackedAgent(group)
				if !tracked {
					continue
				}
				access[agent] = demote(access[agent], value)
			}
		}
	}

	return access
}

// Sitemaps returns the Sitemap URLs declared in robots.txt, never nil. Text
// the parser rejects yields no sitemaps.
func Sitemaps(text string) []string {
	sitemaps := []string{}
	if strings.TrimSpace(text) == "" {
		return sitemaps
	}
	data, err := robotstxt.FromString(text)
	if err != nil || data == nil {
		return sitemaps
	}
	return append(sitemaps, data.Sitemaps...)
}

func demote(current model.Access, path string) model.Access {
	if path == "/" {
		return model.AccessBlock
	}
	if current == model.AccessAllow {
		return model.AccessPartial
	}
	return current
}

func splitAgents(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func trackedAgent(group string) (string, bool) {
	if group == "*" {
		return "*", true
	}
	for _, agent := range model.TrackedAgents {
		if strings.EqualFold(agent, group) {
			return agent, true
		}
	}
	return "", false
}
