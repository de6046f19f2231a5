package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/model"
)

func readHead(doc *goquery.Document, pageURL *url.URL) model.Head {
	head := model.Head{
		Title:         normalizeSpace(doc.Find("title").First().Text()),
		Description:   MetaContent(doc, "name", "description"),
		Robots:        MetaContent(doc, "name", "robots"),
		Author:        MetaContent(doc, "name", "author"),
		OGTitle:       MetaContent(doc, "property", "og:title"),
		OGDescription: MetaContent(doc, "property", "og:description"),
		OGType:        MetaContent(doc, "property", "og:type"),
		OGImage:       MetaContent(doc, "property", "og:image"),
		PublishedTime: MetaContent(doc, "property", "article:published_time"),
		ModifiedTime:  MetaContent(doc, "property", "article:modified_time"),
		Hreflangs:     []model.Hreflang{},
	}

	doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(s.AttrOr("rel", ""), "canonical") {
			head.Canonical = resolve(pageURL, s.AttrOr("href", ""))
			return false
		}
		return true
	})

	doc.Find("link[hreflang]").Each(func(_ int, s *goquery.Selection) {
		if !strings.EqualFold(s.AttrOr("rel", ""), "alternate") {
			return
		}
		head.Hreflangs = append(head.Hreflangs, model.Hreflang{
			Lang: strings.TrimSpace(s.AttrOr("hreflang", "")),
			URL:  resolve(pageURL, s.AttrOr("href", "")),
		})
	})

	return head
}

// MetaContent returns the content of the first meta tag whose attr equals
// value, ignoring case.
func MetaContent(doc *goquery.Document, attr, value string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(s.AttrOr(attr, "")), value) {
			content = strings.TrimSpace(s.AttrOr("content", ""))
			return false
		}
		return true
	})
	return content
}

func headMetrics(head model.Head) model.HeadMetaMetrics {
	return model.HeadMetaMetrics{
		HasTitle:       head.Title != "",
		HasDescription: head.Description != "",
		HasCanonical:   head.Canonical != "",
		HasOpenGraph:   head.OGTitle != "" && head.OGDescription != "",
		HreflangCount:  len(head.Hreflangs),
		Noindex:        HasRobotsDirective(head.Robots, "noindex"),
	}
}

func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// HasRobotsDirective reports whether a robots meta value carries directive.
// "none" implies both noindex and nofollow.
func HasRobotsDirective(content, directive string) bool {
	for _, d := range strings.Split(strings.ToLower(content), ",") {
		d = strings.TrimSpace(d)
		if d == directive || (d == "none" && (directive == "noindex" || directive == "nofollow")) {
			return true
		}
	}
	return false
}
