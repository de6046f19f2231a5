package scan

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/extract"
	"github.com/Bahjat/aeo-audit/internal/model"
)

const maxDivRatio = 0.8

var landmarkTags = []string{"main", "article", "section", "nav", "header", "footer", "aside"}

func scanStructure(doc *goquery.Document) model.ScoreBlock {
	c := newChecks(model.ScanStructure)

	h1s := doc.Find("h1")
	switch h1s.Length() {
	case 0:
		c.fail("Missing H1 heading",
			"The page has no <h1> element.",
			"Add one <h1> that states the page topic in plain words.",
			"<h1>How to repot a fiddle leaf fig</h1>")
	case 1:
		c.pass("Single H1 heading", fmt.Sprintf("H1: %q", normalize(h1s.Text())))
	default:
		c.fail("Multiple H1 headings",
			fmt.Sprintf("Found %d <h1> elements; first duplicate: %q", h1s.Length(), normalize(h1s.Eq(1).Text())),
			"Keep a single <h1> and demote the others to <h2>.",
			"h1 ~ h1")
	}

	var levels []int
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		levels = append(levels, extract.HeadingLevel(goquery.NodeName(s)))
	})
	if len(levels) > 0 {
		if skips := headingSkips(levels); len(skips) > 0 {
			c.fail("Heading levels skip",
				fmt.Sprintf("%d skipped level(s), first: %s", len(skips), skips[0]),
				"Nest headings one level at a time (h2, then h3) so the outline is unambiguous.",
				"h2 + h4")
		} else {
			c.pass("Heading hierarchy is sequential", fmt.Sprintf("%d headings in order", len(levels)))
		}
	}

	var found []string
	for _, tag := range landmarkTags {
		if doc.Find(tag).Length() > 0 {
			found = append(found, tag)
		}
	}
	if len(found) > 0 {
		c.pass("Semantic landmarks present", "Found: "+strings.Join(found, ", "))
	} else {
		c.warn("No semantic landmarks",
			"The page uses no landmark elements.",
			"Wrap the primary content in <main> and <article>, and navigation in <nav>.",
			"<main><article>...</article></main>")
	}

	if total := doc.Find("body *").Length(); total > 0 {
		ratio := float64(doc.Find("body div").Length()) / float64(total)
		details := fmt.Sprintf("%.0f%% of elements are <div>", ratio*100)
		if ratio < maxDivRatio {
			c.pass("Balanced element usage", details)
		} else {
			c.warn("Div-heavy markup", details,
				"Replace generic <div> wrappers with semantic elements such as <section>, <p> and <ul>.",
				"<section>...</section>")
		}
	}

	return c.result()
}

// headingSkips compares each heading with the previous one in document
// order and reports every jump of more than one level.
func headingSkips(levels []int) []string {
	var skips []string
	for i := 1; i < len(levels); i++ {
		if levels[i] > levels[i-1]+1 {
			skips = append(skips, fmt.Sprintf("h%d followed by h%d", levels[i-1], levels[i]))
		}
	}
	return skips
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
