package report

import "strings"

const (
	faqSnippet = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "FAQPage",
  "mainEntity": [{
    "@type": "Question",
    "name": "QUESTION",
    "acceptedAnswer": {"@type": "Answer", "text": "ANSWER"}
  }]
}
</script>`

	metaSnippet = `<title>TITLE (30-65 characters)</title>
<meta name="description" content="DESCRIPTION (100-160 characters)">
<link rel="canonical" href="{{url}}">
<meta property="og:title" content="TITLE">
<meta property="og:description" content="DESCRIPTION">`

	speakableSnippet = `"speakable": {
  "@type": "SpeakableSpecification",
  "cssSelector": [".summary"]
}`

	datesSnippet = `<meta property="article:published_time" content="YYYY-MM-DDTHH:MM:SSZ">
<meta property="article:modified_time" content="YYYY-MM-DDTHH:MM:SSZ">`

	robotsSnippet = `User-agent: GPTBot
Allow: /

User-agent: Google-Extended
Allow: /

User-agent: PerplexityBot
Allow: /

User-agent: ClaudeBot
Allow: /`
)

// codeSnippets returns illustrative markup for the most common fixes.
func codeSnippets(pageURL string) map[string]string {
	return map[string]string{
		"faq_schema":    faqSnippet,
		"meta_tags":     strings.ReplaceAll(metaSnippet, "{{url}}", pageURL),
		"speakable":     speakableSnippet,
		"article_dates": datesSnippet,
		"robots_txt":    robotsSnippet,
	}
}
