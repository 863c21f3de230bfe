// Package scoring implements the deterministic relevance scorer that compares
// resume content against extracted job requirements. It is pure computation:
// no I/O, no randomness, safe for concurrent use.
package scoring

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFolder strips combining marks so "Genève" compares equal to "geneve".
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents removes diacritics from text. On transform failure the input is
// returned unchanged; matching degrades to accent-sensitive rather than
// failing the scoring pass.
func foldAccents(text string) string {
	folded, _, err := transform.String(accentFolder, text)
	if err != nil {
		return text
	}
	return folded
}

// NormalizeText prepares text for comparison: accent folding, lowercasing,
// punctuation replaced by spaces (hyphens kept), whitespace collapsed.
func NormalizeText(text string) string {
	text = strings.ToLower(foldAccents(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// extractWords splits normalized text into meaningful words, dropping
// single-character tokens and stop words.
func extractWords(text string, stopWords map[string]bool) []string {
	normalized := NormalizeText(text)
	if normalized == "" {
		return nil
	}

	words := make([]string, 0, 8)
	for _, word := range strings.Split(normalized, " ") {
		if len(word) > 1 && !stopWords[word] {
			words = append(words, word)
		}
	}
	return words
}

// wordSet returns the unique meaningful words of a text.
func wordSet(text string, stopWords map[string]bool) map[string]bool {
	set := make(map[string]bool)
	for _, word := range extractWords(text, stopWords) {
		set[word] = true
	}
	return set
}

// StripHTML extracts the plain text of a rich-text field. Legacy resume rows
// store some sections as HTML fragments.
func StripHTML(html string) string {
	if !strings.ContainsRune(html, '<') {
		return html
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(textFragments(doc.Selection), " ")
}

// textFragments collects the text nodes of a parsed fragment in document
// order. Selection.Text concatenates adjacent elements without a separator,
// which would fuse list items like <li>Go</li><li>Rust</li> into one word.
func textFragments(sel *goquery.Selection) []string {
	var parts []string
	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				parts = append(parts, strings.Fields(c.Text())...)
				return
			}
			walk(c)
		})
	}
	walk(sel)
	return parts
}

// wordOverlap calculates a Jaccard-like similarity: the fraction of shared
// words relative to the smaller word set.
func wordOverlap(text1, text2 string, stopWords map[string]bool) float64 {
	words1 := wordSet(text1, stopWords)
	words2 := wordSet(text2, stopWords)

	if len(words1) == 0 || len(words2) == 0 {
		return 0
	}

	matchCount := 0
	for word := range words1 {
		if words2[word] {
			matchCount++
		}
	}

	minSize := len(words1)
	if len(words2) < minSize {
		minSize = len(words2)
	}
	return float64(matchCount) / float64(minSize)
}
