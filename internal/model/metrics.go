package model

// MetricsCategory names one metrics record in the extraction bundle.
type MetricsCategory string

const (
	CategoryStructuredData  MetricsCategory = "structured_data"
	CategoryMediaAltCaption MetricsCategory = "media_alt_caption"
	CategoryAnswerUpfront   MetricsCategory = "answer_upfront"
	CategoryFreshnessMeta   MetricsCategory = "freshness_meta"
	CategoryEntityCitations MetricsCategory = "entity_citations"
	CategoryAuthorEEAT      MetricsCategory = "author_eeat"
	CategoryHeadMeta        MetricsCategory = "head_meta"
	CategoryCrawlerAccess   MetricsCategory = "crawler_access"
)

// MetricsCategories lists every metrics category in canonical order.
var MetricsCategories = []MetricsCategory{
	CategoryStructuredData,
	CategoryMediaAltCaption,
	CategoryAnswerUpfront,
	CategoryFreshnessMeta,
	CategoryEntityCitations,
	CategoryAuthorEEAT,
	CategoryHeadMeta,
	CategoryCrawlerAccess,
}

// Metrics holds one typed record per metrics category. Every category is a
// named field so consumers get compile-time checking instead of map lookups.
type Metrics struct {
	StructuredData  StructuredDataMetrics  `json:"structured_data"`
	MediaAltCaption MediaAltCaptionMetrics `json:"media_alt_caption"`
	AnswerUpfront   AnswerUpfrontMetrics   `json:"answer_upfront"`
	FreshnessMeta   FreshnessMetrics       `json:"freshness_meta"`
	EntityCitations EntityCitationMetrics  `json:"entity_citations"`
	AuthorEEAT      AuthorMetrics          `json:"author_eeat"`
	HeadMeta        HeadMetaMetrics        `json:"head_meta"`
	CrawlerAccess   CrawlerAccessMetrics   `json:"crawler_access"`
}

// StructuredDataMetrics summarizes the JSON-LD blocks on a page.
type StructuredDataMetrics struct {
	JSONLDBlocks int      `json:"jsonld_blocks"`
	ParseErrors  int      `json:"parse_errors"`
	Types        []string `json:"types"`
	HasSpeakable bool     `json:"has_speakable"`
}

// BadAlt is an image whose alt text is too short to describe it.
type BadAlt struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// MediaAltCaptionMetrics covers image alt text and video captions.
type MediaAltCaptionMetrics struct {
	ImagesTotal           int      `json:"images_total"`
	ImagesMissingGoodAlt  int      `json:"images_missing_good_alt"`
	SampleBadAlts         []BadAlt `json:"sample_bad_alts"`
	VideosTotal           int      `json:"videos_total"`
	VideosMissingCaptions int      `json:"videos_missing_captions"`
}

// AnswerUpfrontMetrics measures how concise the leading content is.
type AnswerUpfrontMetrics struct {
	TLDRWords         int     `json:"tldr_words"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	LongHeadings      int     `json:"long_headings"`
	WordCount         int     `json:"word_count"`
}

// FreshnessMetrics reports the article dates declared in the head.
type FreshnessMetrics struct {
	PublishedTime     string `json:"published_time,omitempty"`
	ModifiedTime      string `json:"modified_time,omitempty"`
	DaysSinceModified *int   `json:"days_since_modified"`
}

// EntityCitationMetrics counts links to knowledge bases and other sites.
type EntityCitationMetrics struct {
	EntityLinks       int `json:"entity_links"`
	OutboundCitations int `json:"outbound_citations"`
}

// AuthorMetrics records which authorship signals were found.
type AuthorMetrics struct {
	AuthorPresent bool `json:"author_present"`
	MetaAuthor    bool `json:"meta_author"`
	Byline        bool `json:"byline"`
	SchemaAuthor  bool `json:"schema_author"`
}

// HeadMetaMetrics covers indexing-related head fields.
type HeadMetaMetrics struct {
	HasTitle       bool `json:"has_title"`
	HasDescription bool `json:"has_description"`
	HasCanonical   bool `json:"has_canonical"`
	HasOpenGraph   bool `json:"has_open_graph"`
	HreflangCount  int  `json:"hreflang_count"`
	Noindex        bool `json:"noindex"`
}

// CrawlerAccessMetrics wraps the robots.txt verdicts.
type CrawlerAccessMetrics struct {
	RobotsPresent bool          `json:"robots_present"`
	Access        CrawlerAccess `json:"access"`
	Sitemaps      []string      `json:"sitemaps"`
}
