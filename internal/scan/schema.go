package scan

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/extract"
	"github.com/Bahjat/aeo-audit/internal/model"
)

// jsonLDTypes parses every JSON-LD block and returns the distinct types of
// those that parsed, along with the parse error of each block that did not.
func jsonLDTypes(doc *goquery.Document) (blocks int, types []string, parseErrs []error) {
	doc.Find(extract.JSONLDSelector).Each(func(_ int, s *goquery.Selection) {
		blocks++
		v, err := extract.ParseJSONLD(s.Text())
		if err != nil {
			parseErrs = append(parseErrs, err)
			return
		}
		for _, t := range extract.SchemaTypes(v) {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	})
	return blocks, types, parseErrs
}

func scanSchema(doc *goquery.Document) model.ScoreBlock {
	c := newChecks(model.ScanSchema)

	blocks, types, parseErrs := jsonLDTypes(doc)
	for i, err := range parseErrs {
		c.fail("Malformed JSON-LD block",
			fmt.Sprintf("Malformed block %d of %d: %v", i+1, len(parseErrs), err),
			"Fix the JSON syntax so the block can be read; validate it with a structured data testing tool.",
			`script[type="application/ld+json"]`)
	}

	valid := blocks - len(parseErrs)
	switch {
	case blocks == 0:
		c.fail("No structured data",
			"The page has no JSON-LD blocks.",
			"Describe the page with schema.org JSON-LD (Article, FAQPage, HowTo or Product).",
			`<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article"}</script>`)
	case valid == 0:
		c.fail("No valid structured data",
			fmt.Sprintf("All %d JSON-LD blocks are malformed.", blocks),
			"Repair the JSON-LD blocks so at least one parses.",
			`script[type="application/ld+json"]`)
	default:
		c.pass("Structured data present",
			fmt.Sprintf("%d valid JSON-LD block(s); types: %s", valid, strings.Join(types, ", ")))
	}

	if slices.Contains(types, "FAQPage") {
		c.pass("Valid FAQPage schema found", "FAQPage markup lets answer engines lift questions and answers directly.")
	} else {
		c.warn("No FAQPage schema",
			"No FAQPage type in the page's structured data.",
			"Add FAQPage JSON-LD for the questions this page answers.",
			`{"@type":"FAQPage","mainEntity":[{"@type":"Question","name":"...","acceptedAnswer":{"@type":"Answer","text":"..."}}]}`)
	}

	return c.result()
}
