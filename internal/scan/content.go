package scan

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/model"
)

const (
	minWordsFail        = 300
	minWordsWarn        = 500
	maxParagraphWords   = 100
	maxInteractiveRatio = 0.5
)

// scanContent checks the main content region for depth and readability. The
// prose-to-control ratio is measured over the whole document.
func scanContent(doc *goquery.Document, content *goquery.Selection) model.ScoreBlock {
	c := newChecks(model.ScanContent)

	region := content.Clone()
	region.Find("script, style, noscript, template").Remove()

	words := len(strings.Fields(region.Text()))
	details := fmt.Sprintf("%d words in the main content", words)
	switch {
	case words < minWordsFail:
		c.fail("Insufficient content", details,
			fmt.Sprintf("Expand the page to at least %d words that fully answer the topic.", minWordsFail), "main")
	case words < minWordsWarn:
		c.warn("Content could be more comprehensive", details,
			fmt.Sprintf("Aim for %d or more words covering related questions.", minWordsWarn), "main")
	default:
		c.pass("Sufficient content length", details)
	}

	var paragraphs, paragraphWords int
	region.Find("p").Each(func(_ int, p *goquery.Selection) {
		if n := len(strings.Fields(p.Text())); n > 0 {
			paragraphs++
			paragraphWords += n
		}
	})
	if paragraphs > 0 {
		avg := float64(paragraphWords) / float64(paragraphs)
		details := fmt.Sprintf("%.0f words per paragraph on average", avg)
		if avg > maxParagraphWords {
			c.warn("Long paragraphs", details,
				"Break paragraphs into two to four sentences each.", "p")
		} else {
			c.pass("Readable paragraph length", details)
		}
	}

	if n := region.Find("strong, b, em, i, mark, code").Length(); n == 0 {
		c.warn("No emphasis markup",
			"No bold, italic or code elements in the main content.",
			"Highlight key terms and direct answers with <strong> or <em>.",
			"<strong>...</strong>")
	} else {
		c.pass("Emphasis markup used", fmt.Sprintf("%d emphasis element(s)", n))
	}

	if total := doc.Find("body *").Length(); total > 0 {
		interactive := doc.Find("body a, body button").Length()
		ratio := float64(interactive) / float64(total)
		details := fmt.Sprintf("%.0f%% of elements are links or buttons", ratio*100)
		if ratio > maxInteractiveRatio {
			c.warn("Thin content", details,
				"Add explanatory prose; most of this page is links and controls.", "")
		} else {
			c.pass("Healthy prose-to-control ratio", details)
		}
	}

	return c.result()
}
