package extract

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// splitSentences cuts after runs of terminal punctuation that are followed
// by whitespace or the end of text, so URLs and decimals stay whole.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		if !isTerminal(text[i]) {
			continue
		}
		j := i
		for j+1 < len(text) && isTerminal(text[j+1]) {
			j++
		}
		if j+1 == len(text) || isSpace(text[j+1]) {
			if s := strings.TrimSpace(text[start : j+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = j + 1
		}
		i = j
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminal(b byte) bool { return b == '.' || b == '!' || b == '?' }

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// truncateToWords keeps whole sentences, in order, until the next one would
// push the total past maxWords.
func truncateToWords(text string, maxWords int) string {
	var kept []string
	total := 0
	for _, sentence := range splitSentences(text) {
		n := wordCount(sentence)
		if total+n > maxWords {
			break
		}
		kept = append(kept, sentence)
		total += n
	}
	return strings.Join(kept, " ")
}

func avgSentenceLength(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 0
	}
	avg := float64(wordCount(text)) / float64(len(sentences))
	return math.Round(avg*10) / 10
}

// documentText returns the visible body text of the whole document.
func documentText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript, template").Remove()
	return normalizeSpace(body.Text())
}
