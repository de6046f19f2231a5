package extract

import (
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
)

// minReadableWords is the least prose a readability result must hold before
// it is trusted over the whole body.
const minReadableWords = 50

// MainContent isolates the article body of rawHTML. Readability picks the
// region; when it finds fewer than minReadableWords words the body with
// boilerplate stripped is used instead. The selection belongs to a tree of
// its own, so callers may modify it.
func MainContent(rawHTML string, pageURL *url.URL) *goquery.Selection {
	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err == nil && article.Node != nil {
		content := goquery.NewDocumentFromNode(article.Node).Selection
		if wordCount(content.Text()) >= minReadableWords {
			return content
		}
	}
	return strippedBody(rawHTML)
}

func strippedBody(rawHTML string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return new(goquery.Selection)
	}
	doc.Find(boilerplateSelector).Remove()
	return doc.Find("body")
}
