package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/model"
)

const bylineSelector = `[class*="byline"], [class*="author"], [rel="author"], [itemprop="author"]`

var bylinePattern = regexp.MustCompile(`^(?i:by)\s+\p{Lu}`)

// detectAuthor ORs three independent signals: an author meta tag, a byline
// in the markup, and a JSON-LD author.
func detectAuthor(doc *goquery.Document, head model.Head, parsed []any) model.AuthorMetrics {
	m := model.AuthorMetrics{
		MetaAuthor:   head.Author != "",
		Byline:       hasByline(doc),
		SchemaAuthor: hasSchemaAuthor(parsed),
	}
	m.AuthorPresent = m.MetaAuthor || m.Byline || m.SchemaAuthor
	return m
}

func hasByline(doc *goquery.Document) bool {
	found := false
	doc.Find(bylineSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = normalizeSpace(s.Text()) != ""
		return !found
	})
	if found {
		return true
	}

	doc.Find("p, span, div, address, small").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := normalizeSpace(s.Text())
		found = len(text) <= 80 && bylinePattern.MatchString(text)
		return !found
	})
	return found
}

func hasSchemaAuthor(parsed []any) bool {
	found := false
	for _, v := range parsed {
		walkJSON(v, func(obj map[string]any) {
			if _, ok := obj["author"]; ok {
				found = true
				return
			}
			for _, t := range typeNames(obj["@type"]) {
				if t != "Person" {
					continue
				}
				if name, ok := obj["name"].(string); ok && strings.TrimSpace(name) != "" {
					found = true
				}
			}
		})
	}
	return found
}
