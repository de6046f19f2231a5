package extract

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/aeo-audit/internal/model"
)

// TruncationMarker is appended to JSON-LD snippets cut at the schema cap.
const TruncationMarker = "...[truncated]"

// JSONLDSelector matches structured-data script blocks.
const JSONLDSelector = `script[type*="ld+json"]`

// ParseJSONLD decodes the raw text of one JSON-LD script block. Extraction
// and the schema scanner both hand it the unmodified script text so they
// agree on what counts as malformed.
func ParseJSONLD(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// SchemaTypes returns every @type found anywhere in v, in first-seen order.
func SchemaTypes(v any) []string {
	seen := make(map[string]bool)
	var types []string
	walkJSON(v, func(obj map[string]any) {
		for _, t := range typeNames(obj["@type"]) {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	})
	return types
}

// readSchema reads every JSON-LD block. Blocks that fail to parse keep
// their snippet and carry the parse error; parsed values are returned
// alongside for the author pass.
func readSchema(doc *goquery.Document, schemaCap int) ([]model.SchemaBlock, []any) {
	blocks := []model.SchemaBlock{}
	var parsed []any

	doc.Find(JSONLDSelector).Each(func(_ int, s *goquery.Selection) {
		raw := s.Text()
		minified := normalizeSpace(raw)

		block := model.SchemaBlock{Snippet: minified, Types: []string{}}
		if runes := []rune(minified); len(runes) > schemaCap {
			block.Snippet = string(runes[:schemaCap]) + TruncationMarker
			block.Truncated = true
		}

		v, err := ParseJSONLD(raw)
		if err != nil {
			block.ParseError = err.Error()
			blocks = append(blocks, block)
			return
		}

		parsed = append(parsed, v)
		if types := SchemaTypes(v); len(types) > 0 {
			block.Types = types
		}
		for _, t := range block.Types {
			if t == "SpeakableSpecification" {
				block.Speakable = true
			}
		}
		blocks = append(blocks, block)
	})

	return blocks, parsed
}

func structuredDataMetrics(blocks []model.SchemaBlock) model.StructuredDataMetrics {
	m := model.StructuredDataMetrics{JSONLDBlocks: len(blocks), Types: []string{}}
	seen := make(map[string]bool)
	for _, b := range blocks {
		if !b.OK() {
			m.ParseErrors++
			continue
		}
		if b.Speakable {
			m.HasSpeakable = true
		}
		for _, t := range b.Types {
			if !seen[t] {
				seen[t] = true
				m.Types = append(m.Types, t)
			}
		}
	}
	return m
}

// walkJSON calls visit for every object nested anywhere in v, visiting
// object keys in sorted order so results are stable.
func walkJSON(v any, visit func(map[string]any)) {
	switch t := v.(type) {
	case map[string]any:
		visit(t)
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkJSON(t[k], visit)
		}
	case []any:
		for _, child := range t {
			walkJSON(child, visit)
		}
	}
}

func typeNames(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var names []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}
