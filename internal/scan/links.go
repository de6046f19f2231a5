package scan

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/model"
)

const (
	maxSampledLinks    = 10
	maxGenericLinkRate = 0.3
)

var genericAnchors = []string{
	"click here", "here", "read more", "learn more", "more", "this", "this link", "link", "continue", "go",
}

// LinkChecker probes links and returns those that are broken.
type LinkChecker interface {
	CheckLinks(ctx context.Context, links []string) []string
}

type pageLink struct {
	URL      string
	Text     string
	Internal bool
}

// collectLinks resolves every http(s) anchor against the page URL.
func collectLinks(doc *goquery.Document, page *url.URL) []pageLink {
	var links []pageLink
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := page.ResolveReference(parsed)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		links = append(links, pageLink{
			URL:      resolved.String(),
			Text:     normalize(a.Text()),
			Internal: strings.EqualFold(resolved.Hostname(), page.Hostname()),
		})
	})
	return links
}

func scanLinks(ctx context.Context, doc *goquery.Document, page *url.URL, checker LinkChecker) model.ScoreBlock {
	c := newChecks(model.ScanLinks)

	links := collectLinks(doc, page)
	var internal, generic int
	var external []string
	for _, l := range links {
		if l.Internal {
			internal++
		} else if !slices.Contains(external, l.URL) {
			external = append(external, l.URL)
		}
		if slices.Contains(genericAnchors, strings.ToLower(l.Text)) {
			generic++
		}
	}

	if internal == 0 {
		c.warn("No internal links", "The page links to no other page on the site.",
			"Link to related pages on your site so answer engines can follow the topic.", `<a href="/guide">...</a>`)
	} else {
		c.pass("Internal links present", fmt.Sprintf("%d internal link(s)", internal))
	}

	if len(external) == 0 {
		c.warn("No external links", "The page cites no external sources.",
			"Cite authoritative external sources for facts and figures.", `<a href="https://...">source</a>`)
	} else {
		c.pass("External links present", fmt.Sprintf("%d unique external link(s)", len(external)))
	}

	if len(links) > 0 {
		rate := float64(generic) / float64(len(links))
		details := fmt.Sprintf("%d of %d links use generic anchor text", generic, len(links))
		if rate > maxGenericLinkRate {
			c.warn("Generic anchor text", details,
				`Replace anchors like "click here" with text that describes the target.`, "a")
		} else {
			c.pass("Descriptive anchor text", details)
		}
	}

	if checker != nil && len(external) > 0 {
		sample := external[:min(len(external), maxSampledLinks)]
		if broken := checker.CheckLinks(ctx, sample); len(broken) > 0 {
			c.fail("Broken external links",
				fmt.Sprintf("%d of %d sampled links failed: %s", len(broken), len(sample), strings.Join(broken, ", ")),
				"Update or remove links that no longer resolve.", "a[href]")
		} else {
			c.pass("Sampled external links resolve", fmt.Sprintf("%d link(s) checked", len(sample)))
		}
	}

	return c.result()
}
