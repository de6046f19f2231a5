package model

// AuditInput is the raw material of one audit.
type AuditInput struct {
	URL        string `json:"url"`
	HTML       string `json:"html"`
	RobotsText string `json:"robots_text"`
}

// Hreflang is one alternate-language link declared in the head.
type Hreflang struct {
	Lang string `json:"lang"`
	URL  string `json:"url"`
}

// Head holds the head fields read from the document, first match wins.
type Head struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Robots        string     `json:"robots"`
	Canonical     string     `json:"canonical"`
	Author        string     `json:"author"`
	OGTitle       string     `json:"og_title"`
	OGDescription string     `json:"og_description"`
	OGType        string     `json:"og_type"`
	OGImage       string     `json:"og_image"`
	PublishedTime string     `json:"published_time"`
	ModifiedTime  string     `json:"modified_time"`
	Hreflangs     []Hreflang `json:"hreflangs"`
}

// SchemaBlock is the outcome of reading one JSON-LD script. An empty
// ParseError means the block parsed.
type SchemaBlock struct {
	Snippet    string   `json:"snippet"`
	Truncated  bool     `json:"truncated"`
	Types      []string `json:"types"`
	Speakable  bool     `json:"speakable"`
	ParseError string   `json:"parse_error,omitempty"`
}

// OK reports whether the block parsed.
func (b SchemaBlock) OK() bool { return b.ParseError == "" }

// Heading is an h1-h6 element in document order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// ExtractionBundle is the output of the extraction engine.
type ExtractionBundle struct {
	Head          Head          `json:"head"`
	Schema        []SchemaBlock `json:"schema"`
	Headings      []Heading     `json:"headings"`
	Text          string        `json:"text"`
	Metrics       Metrics       `json:"metrics"`
	CrawlerAccess CrawlerAccess `json:"crawler_access"`
}
