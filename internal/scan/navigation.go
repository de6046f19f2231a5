package scan

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/model"
)

const (
	minAnchorLinks     = 3
	breadcrumbSelector = `[class*="breadcrumb"], [id*="breadcrumb"], [aria-label*="readcrumb"], [itemtype*="BreadcrumbList"]`
)

func scanNavigation(doc *goquery.Document) model.ScoreBlock {
	c := newChecks(model.ScanNavigation)

	fragments := doc.Find(`a[href^="#"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return len(s.AttrOr("href", "")) > 1
	})

	if n := fragments.Length(); n < minAnchorLinks {
		c.warn("Few in-page anchor links",
			fmt.Sprintf("%d in-page anchor link(s)", n),
			"Add a table of contents linking to section ids so readers and answer engines can jump to answers.",
			`<a href="#pricing">Pricing</a>`)
	} else {
		c.pass("In-page anchor links present", fmt.Sprintf("%d in-page anchor links", n))
	}

	_, types, _ := jsonLDTypes(doc)
	if doc.Find(breadcrumbSelector).Length() > 0 || slices.Contains(types, "BreadcrumbList") {
		c.pass("Breadcrumbs present", "Breadcrumb markup or BreadcrumbList schema found.")
	} else {
		c.warn("No breadcrumb navigation",
			"No breadcrumb markup or BreadcrumbList schema.",
			"Add a breadcrumb trail and matching BreadcrumbList JSON-LD.",
			`<nav aria-label="breadcrumb">...</nav>`)
	}

	skip := fragments.FilterFunction(func(_ int, s *goquery.Selection) bool {
		class := strings.ToLower(s.AttrOr("class", ""))
		text := strings.ToLower(normalize(s.Text()))
		return strings.Contains(class, "skip") || strings.HasPrefix(text, "skip to")
	})
	if skip.Length() > 0 {
		c.pass("Skip navigation link present", fmt.Sprintf("Skip link targets %s", skip.First().AttrOr("href", "")))
	} else {
		c.warn("No skip navigation link",
			"No link lets keyboard users jump past navigation.",
			"Add a skip link as the first focusable element.",
			`<a class="skip-link" href="#main">Skip to content</a>`)
	}

	return c.result()
}
