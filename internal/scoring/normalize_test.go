package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases",
			input:    "Kubernetes",
			expected: "kubernetes",
		},
		{
			name:     "strips accents",
			input:    "Genève Zürich",
			expected: "geneve zurich",
		},
		{
			name:     "punctuation becomes spaces",
			input:    "CI/CD, Node.js!",
			expected: "ci cd node js",
		},
		{
			name:     "hyphens kept",
			input:    "detail-oriented",
			expected: "detail-oriented",
		},
		{
			name:     "whitespace collapsed",
			input:    "  too   many\tspaces  ",
			expected: "too many spaces",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestExtractWords_DropsStopWordsAndShortTokens(t *testing.T) {
	stopWords := defaultStopWords()

	words := extractWords("the quick brown fox is in a box", stopWords)
	assert.Equal(t, []string{"quick", "brown", "fox", "box"}, words)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tags removed",
			input:    "<p>Led a <b>platform</b> team</p>",
			expected: "Led a platform team",
		},
		{
			name:     "plain text untouched",
			input:    "no markup here",
			expected: "no markup here",
		},
		{
			name:     "nested lists",
			input:    "<ul><li>Go</li><li>Rust</li></ul>",
			expected: "Go Rust",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripHTML(tt.input))
		})
	}
}

func TestWordOverlap(t *testing.T) {
	stopWords := defaultStopWords()

	// Identical word sets overlap fully.
	assert.InDelta(t, 1.0, wordOverlap("scalable web services", "scalable web services", stopWords), 0.001)

	// Disjoint sets do not overlap.
	assert.InDelta(t, 0.0, wordOverlap("mainframe batch", "mobile frontend", stopWords), 0.001)

	// Ratio is taken against the smaller set.
	overlap := wordOverlap("python", "python django flask", stopWords)
	assert.InDelta(t, 1.0, overlap, 0.001)
}

func TestIsGeneric(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.isGeneric("team player"))
	assert.True(t, opts.isGeneric("Excellent communication skills"))
	assert.False(t, opts.isGeneric("Kubernetes"))
	assert.False(t, opts.isGeneric("PostgreSQL administration"))
}
