package robots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bahjat/aeo-audit/internal/model"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]model.Access
	}{
		{
			name: "empty file allows everyone",
			text: "",
			want: map[string]model.Access{},
		},
		{
			name: "root disallow blocks agent",
			text: "User-agent: GPTBot\nDisallow: /",
			want: map[string]model.Access{"GPTBot": model.AccessBlock},
		},
		{
			name: "path disallow on wildcard is partial",
			text: "User-agent: *\nDisallow: /private",
			want: map[string]model.Access{"*": model.AccessPartial},
		},
		{
			name: "block is sticky",
			text: "User-agent: ClaudeBot\nDisallow: /\nAllow: /\nDisallow: /tmp",
			want: map[string]model.Access{"ClaudeBot": model.AccessBlock},
		},
		{
			name: "partial escalates to block",
			text: "User-agent: ClaudeBot\nDisallow: /tmp\nDisallow: /",
			want: map[string]model.Access{"ClaudeBot": model.AccessBlock},
		},
		{
			name: "stacked user-agent lines share rules",
			text: "User-agent: GPTBot\nUser-agent: PerplexityBot\nDisallow: /",
			want: map[string]model.Access{"GPTBot": model.AccessBlock, "PerplexityBot": model.AccessBlock},
		},
		{
			name: "comma separated agents",
			text: "User-agent: GPTBot, Google-Extended\nDisallow: /drafts",
			want: map[string]model.Access{"GPTBot": model.AccessPartial, "Google-Extended": model.AccessPartial},
		},
		{
			name: "new group after rules resets active agents",
			text: "User-agent: GPTBot\nDisallow: /\n\nUser-agent: ClaudeBot\nDisallow: /x",
			want: map[string]model.Access{"GPTBot": model.AccessBlock, "ClaudeBot": model.AccessPartial},
		},
		{
			name: "unknown agents and empty disallow are ignored",
			text: "User-agent: Bingbot\nDisallow: /\nUser-agent: GPTBot\nDisallow:",
			want: map[string]model.Access{},
		},
		{
			name: "comments and case-insensitive keys",
			text: "# hello\nUSER-AGENT: gptbot # inline\nDISALLOW: / # all",
			want: map[string]model.Access{"GPTBot": model.AccessBlock},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)
			assert.Len(t, got, len(model.TrackedAgents))
			for _, agent := range model.TrackedAgents {
				want, ok := tt.want[agent]
				if !ok {
					want = model.AccessAllow
				}
				assert.Equal(t, want, got[agent], "agent %s", agent)
			}
		})
	}
}

func TestSitemaps(t *testing.T) {
	text := "User-agent: *\nDisallow: /private\nSitemap: https://example.com/sitemap.xml\n"
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, Sitemaps(text))
	assert.Equal(t, []string{}, Sitemaps(""))
	assert.Equal(t, []string{}, Sitemaps("User-agent: *\nDisallow:\n"))
}
