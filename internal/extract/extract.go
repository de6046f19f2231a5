// Package extract turns a fetched page into the flat bundle of head fields,
// structured data, bounded text and per-category metrics that the rest of
// the audit reads.
package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/model"
	"github.com/Bahjat/aeo-audit/internal/robots"
)

const (
	// DefaultMaxWords bounds the extracted body text.
	DefaultMaxWords = 1200
	// DefaultSchemaCap bounds each retained JSON-LD snippet, in characters.
	DefaultSchemaCap = 1024
)

// Input is everything one extraction needs. Now anchors the freshness
// computation so repeated runs over the same input agree.
type Input struct {
	HTML       string
	URL        string
	RobotsText string
	MaxWords   int
	SchemaCap  int
	Now        time.Time
}

// Run parses the page and builds the extraction bundle.
func Run(in Input) (*model.ExtractionBundle, error) {
	if in.MaxWords <= 0 {
		in.MaxWords = DefaultMaxWords
	}
	if in.SchemaCap <= 0 {
		in.SchemaCap = DefaultSchemaCap
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	pageURL, err := url.Parse(in.URL)
	if err != nil {
		return nil, fmt.Errorf("extract: parse url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(in.HTML))
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}

	head := readHead(doc, pageURL)
	blocks, parsed := readSchema(doc, in.SchemaCap)
	headings := collectHeadings(doc.Selection)
	media := readMedia(doc)
	author := detectAuthor(doc, head, parsed)
	fullText := documentText(doc)

	content := MainContent(in.HTML, pageURL)
	tldr := firstBlockWords(content)
	links := rewriteAnchors(content, pageURL)

	text := contentText(content)
	if text == "" {
		text = fullText
	}
	bodyWords := wordCount(text)
	text = truncateToWords(text, in.MaxWords)

	access := robots.Analyze(in.RobotsText)

	metrics := model.Metrics{
		StructuredData:  structuredDataMetrics(blocks),
		MediaAltCaption: media,
		AnswerUpfront: model.AnswerUpfrontMetrics{
			TLDRWords:         tldr,
			AvgSentenceLength: avgSentenceLength(text),
			LongHeadings:      countLongHeadings(headings),
			WordCount:         bodyWords,
		},
		FreshnessMeta:   freshness(head, in.Now),
		EntityCitations: links,
		AuthorEEAT:      author,
		HeadMeta:        headMetrics(head),
		CrawlerAccess: model.CrawlerAccessMetrics{
			RobotsPresent: strings.TrimSpace(in.RobotsText) != "",
			Access:        access,
			Sitemaps:      robots.Sitemaps(in.RobotsText),
		},
	}

	return &model.ExtractionBundle{
		Head:          head,
		Schema:        blocks,
		Headings:      headings,
		Text:          text,
		Metrics:       metrics,
		CrawlerAccess: access,
	}, nil
}
