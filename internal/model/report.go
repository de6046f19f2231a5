package model

import "time"

// IssueStatus is the outcome of a single scanner check.
type IssueStatus string

const (
	StatusPass    IssueStatus = "pass"
	StatusFail    IssueStatus = "fail"
	StatusWarning IssueStatus = "warning"
)

// ScanCategory names one of the rule-based scanners.
type ScanCategory string

const (
	ScanStructure  ScanCategory = "structure"
	ScanMeta       ScanCategory = "meta"
	ScanSchema     ScanCategory = "schema"
	ScanNavigation ScanCategory = "navigation"
	ScanContent    ScanCategory = "content"
	ScanLinks      ScanCategory = "links"
)

// ScanCategories lists the scanner categories in report order.
var ScanCategories = []ScanCategory{
	ScanStructure, ScanMeta, ScanSchema, ScanNavigation, ScanContent, ScanLinks,
}

// IssueReport is one check result produced by a scanner.
type IssueReport struct {
	Group           ScanCategory `json:"group"`
	Title           string       `json:"title"`
	Status          IssueStatus  `json:"status"`
	Details         string       `json:"details"`
	Recommendation  string       `json:"recommendation"`
	SelectorExample string       `json:"selector_example,omitempty"`
}

// ScoreBlock is the scored result of one scanner category.
type ScoreBlock struct {
	Score           int           `json:"score"`
	Passed          []string      `json:"passed"`
	Failed          []string      `json:"failed"`
	Recommendations []string      `json:"recommendations"`
	Issues          []IssueReport `json:"issues"`
}

// ClarityScan is the combined output of all scanners.
type ClarityScan struct {
	GlobalScore       int                         `json:"global_score"`
	GlobalSummary     string                      `json:"global_summary"`
	Issues            []IssueReport               `json:"issues"`
	SummaryByCategory map[ScanCategory]ScoreBlock `json:"summary_by_category"`
}

// Impact ranks how much a fix is expected to move the score.
type Impact string

const (
	ImpactHigh Impact = "high"
	ImpactMed  Impact = "med"
	ImpactLow  Impact = "low"
)

// Effort ranks how much work a fix takes.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Fix is one remediation item.
type Fix struct {
	Problem    string   `json:"problem"`
	Example    string   `json:"example"`
	Fix        string   `json:"fix"`
	Impact     Impact   `json:"impact"`
	Category   string   `json:"category"`
	Effort     Effort   `json:"effort"`
	Validation []string `json:"validation"`
}

// AuditReport is the terminal result of one audit.
type AuditReport struct {
	ID            string                      `json:"id"`
	URL           string                      `json:"url"`
	GeneratedAt   time.Time                   `json:"generated_at"`
	GlobalScore   int                         `json:"global_score"`
	GlobalSummary string                      `json:"global_summary"`
	Scores        map[ScanCategory]ScoreBlock `json:"scores"`
	Metrics       Metrics                     `json:"metrics"`
	CrawlerAccess CrawlerAccess               `json:"crawler_access"`
	Fixes         []Fix                       `json:"fixes"`
	QuickWins     []string                    `json:"quick_wins"`
	Highlights    []string                    `json:"highlights"`
	CodeSnippets  map[string]string           `json:"code_snippets"`
	// CoreWebVitals is always NotTested; no performance measurement is made.
	CoreWebVitals string `json:"core_web_vitals"`
}

// NotTested marks a category the audit does not measure.
const NotTested = "not_tested"
