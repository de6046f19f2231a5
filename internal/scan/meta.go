package scan

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/extract"
	"github.com/Bahjat/aeo-audit/internal/model"
)

// Recommended lengths, in characters.
const (
	minTitleLen       = 30
	maxTitleLen       = 65
	minDescriptionLen = 100
	maxDescriptionLen = 160
)

func scanMeta(doc *goquery.Document) model.ScoreBlock {
	c := newChecks(model.ScanMeta)

	title := normalize(doc.Find("title").First().Text())
	lengthCheck(c, "Title", title, minTitleLen, maxTitleLen,
		"Add a <title> that names the page topic.", "<title>Topic | Site</title>")

	description := extract.MetaContent(doc, "name", "description")
	lengthCheck(c, "Meta description", description, minDescriptionLen, maxDescriptionLen,
		"Add a meta description that answers the page's main question in one or two sentences.",
		`<meta name="description" content="...">`)

	robots := extract.MetaContent(doc, "name", "robots")
	if extract.HasRobotsDirective(robots, "noindex") || extract.HasRobotsDirective(robots, "nofollow") {
		c.fail("Robots meta blocks indexing",
			fmt.Sprintf("robots meta is %q", robots),
			"Remove noindex and nofollow from the robots meta tag if the page should be cited.",
			`<meta name="robots" content="index, follow">`)
	} else {
		c.pass("Page is indexable", "No noindex or nofollow directive.")
	}

	ogTitle := extract.MetaContent(doc, "property", "og:title")
	ogDescription := extract.MetaContent(doc, "property", "og:description")
	if ogTitle != "" && ogDescription != "" {
		c.pass("Open Graph tags present", fmt.Sprintf("og:title %q", ogTitle))
	} else {
		c.warn("Missing Open Graph tags",
			"og:title and og:description are not both set.",
			"Add og:title and og:description so shared and previewed links carry a summary.",
			`<meta property="og:title" content="...">`)
	}

	return c.result()
}

// lengthCheck fails an absent value and warns when it is outside [lo, hi].
func lengthCheck(c *checks, name, value string, lo, hi int, missingFix, selector string) {
	n := utf8.RuneCountInString(value)
	details := fmt.Sprintf("%d characters", n)
	switch {
	case n == 0:
		c.fail("Missing "+strings.ToLower(name), name+" is empty or absent.", missingFix, selector)
	case n < lo:
		c.warn(name+" too short", details,
			fmt.Sprintf("Expand the %s to %d-%d characters.", strings.ToLower(name), lo, hi), selector)
	case n > hi:
		c.warn(name+" too long", details,
			fmt.Sprintf("Shorten the %s to %d-%d characters.", strings.ToLower(name), lo, hi), selector)
	default:
		c.pass(name+" length is good", details)
	}
}
