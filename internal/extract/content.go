package extract

import (
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"

	"github.com/Bahjat/aeo-audit/internal/model"
)

const boilerplateSelector = "script, style, noscript, template, iframe, nav, header, footer, aside, " +
	".ad, .ads, .advertisement, .sidebar, .cookie, .newsletter, [role='navigation'], [role='banner'], [role='contentinfo']"

// entityDomains are knowledge bases whose links count as entity references.
var entityDomains = []string{"wikipedia.org", "wikidata.org", "dbpedia.org"}

var textPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// firstBlockWords is the word count of the first non-empty paragraph or list
// item, used as a proxy for an up-front answer.
func firstBlockWords(content *goquery.Selection) int {
	words := 0
	content.Find("p, li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		words = wordCount(s.Text())
		return words == 0
	})
	return words
}

// rewriteAnchors replaces every anchor in content with "text (absolute-url)"
// and counts entity links and outbound citations on the way.
func rewriteAnchors(content *goquery.Selection, pageURL *url.URL) model.EntityCitationMetrics {
	var m model.EntityCitationMetrics

	content.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := normalizeSpace(a.Text())
		href := strings.TrimSpace(a.AttrOr("href", ""))

		target, ok := absoluteHTTP(pageURL, href)
		if !ok {
			a.ReplaceWithNodes(textNode(text))
			return
		}

		host := strings.ToLower(target.Hostname())
		if isEntityHost(host) {
			m.EntityLinks++
		}
		if !strings.EqualFold(host, pageURL.Hostname()) {
			m.OutboundCitations++
		}

		inline := target.String()
		if text != "" {
			inline = text + " (" + inline + ")"
		}
		a.ReplaceWithNodes(textNode(inline))
	})

	return m
}

func contentText(content *goquery.Selection) string {
	markup, err := content.Html()
	if err != nil {
		return normalizeSpace(content.Text())
	}
	return normalizeSpace(html.UnescapeString(textPolicy.Sanitize(markup)))
}

func absoluteHTTP(base *url.URL, href string) (*url.URL, bool) {
	if href == "" || strings.HasPrefix(href, "#") {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	target := base.ResolveReference(ref)
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, false
	}
	return target, true
}

func isEntityHost(host string) bool {
	for _, domain := range entityDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func textNode(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: s}
}

// collectHeadings returns h1-h6 elements under root in document order.
func collectHeadings(root *goquery.Selection) []model.Heading {
	headings := []model.Heading{}
	root.Find("*").Each(func(_ int, s *goquery.Selection) {
		if level := HeadingLevel(goquery.NodeName(s)); level > 0 {
			headings = append(headings, model.Heading{Level: level, Text: normalizeSpace(s.Text())})
		}
	})
	return headings
}

// HeadingLevel returns 1-6 for h1-h6 tag names and 0 otherwise.
func HeadingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func countLongHeadings(headings []model.Heading) int {
	n := 0
	for _, h := range headings {
		if h.Level <= 3 && wordCount(h.Text) > 12 {
			n++
		}
	}
	return n
}
