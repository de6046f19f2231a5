package model

// Access is the crawl permission a robots.txt grants one agent.
type Access string

const (
	AccessAllow   Access = "allow"
	AccessBlock   Access = "block"
	AccessPartial Access = "partial"
)

// TrackedAgents is the fixed set of crawlers reported on, in display order.
var TrackedAgents = []string{"GPTBot", "Google-Extended", "PerplexityBot", "ClaudeBot", "*"}

// CrawlerAccess maps every tracked agent to its access level.
type CrawlerAccess map[string]Access

// NewCrawlerAccess returns a CrawlerAccess with every tracked agent allowed.
func NewCrawlerAccess() CrawlerAccess {
	access := make(CrawlerAccess, len(TrackedAgents))
	for _, agent := range TrackedAgents {
		access[agent] = AccessAllow
	}
	return access
}
