package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/model"
)

const (
	minAltWords      = 4
	maxBadAltSamples = 5
)

// imageSourceAttrs covers plain and lazy-loaded image sources.
var imageSourceAttrs = []string{"src", "data-src", "data-lazy-src", "data-original", "srcset", "data-srcset"}

func readMedia(doc *goquery.Document) model.MediaAltCaptionMetrics {
	m := model.MediaAltCaptionMetrics{SampleBadAlts: []model.BadAlt{}}

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		m.ImagesTotal++
		alt := normalizeSpace(img.AttrOr("alt", ""))
		if wordCount(alt) >= minAltWords {
			return
		}
		m.ImagesMissingGoodAlt++
		if len(m.SampleBadAlts) < maxBadAltSamples {
			m.SampleBadAlts = append(m.SampleBadAlts, model.BadAlt{Src: imageSource(img), Alt: alt})
		}
	})

	doc.Find("video").Each(func(_ int, video *goquery.Selection) {
		m.VideosTotal++
		if video.Find(`track[kind="captions"]`).Length() == 0 {
			m.VideosMissingCaptions++
		}
	})

	return m
}

func imageSource(img *goquery.Selection) string {
	for _, attr := range imageSourceAttrs {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
			if attr == "srcset" || attr == "data-srcset" {
				v, _, _ = strings.Cut(v, " ")
			}
			return v
		}
	}
	return ""
}
