package scoring

import "strings"

// Weights defines how the three scoring components combine into the 0-100
// score. The components must sum to 100.
type Weights struct {
	Skills           int
	Responsibilities int
	Keywords         int
}

// Options configures a Scorer. The stoplist and match threshold are
// injectable so the stoplist can be tuned per deployment without touching the
// matching logic.
type Options struct {
	// GenericTerms flag requirement phrases too common to be
	// discriminative. Generic items are reported but excluded from the
	// matched/missing classification.
	GenericTerms map[string]bool
	// StopWords are excluded from word-level matching.
	StopWords map[string]bool
	// FuzzyThreshold is the minimum word-overlap ratio (0-1) for a fuzzy
	// match.
	FuzzyThreshold float64
	// ComponentWeights splits the score across skills, responsibilities,
	// and keyword presence.
	ComponentWeights Weights
}

// DefaultOptions returns the production scoring configuration.
func DefaultOptions() Options {
	return Options{
		GenericTerms:   defaultGenericTerms(),
		StopWords:      defaultStopWords(),
		FuzzyThreshold: 0.6,
		ComponentWeights: Weights{
			Skills:           40,
			Responsibilities: 40,
			Keywords:         20,
		},
	}
}

// defaultGenericTerms is the stoplist of low-value requirement phrases.
func defaultGenericTerms() map[string]bool {
	terms := []string{
		"communication", "teamwork", "team player", "hard worker", "motivated",
		"detail oriented", "detail-oriented", "self-starter", "proactive",
		"problem solving", "problem-solving", "time management", "organized",
		"flexible", "adaptable", "quick learner", "passionate", "dedicated",
		"responsible", "reliable", "professional", "excellent",
	}
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		set[term] = true
	}
	return set
}

// defaultStopWords are common words excluded from keyword matching to avoid
// false positives.
func defaultStopWords() map[string]bool {
	words := []string{
		"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
		"be", "have", "has", "had", "do", "does", "did", "will", "would",
		"could", "should", "may", "might", "must", "can", "this", "that",
		"these", "those", "it", "its", "i", "you", "we", "they", "he", "she",
		"who", "which", "what", "when", "where", "why", "how", "all", "each",
		"every", "both", "few", "more", "most", "other", "some", "such", "no",
		"nor", "not", "only", "own", "same", "so", "than", "too", "very",
		"just", "also", "now", "our", "your", "their", "any", "etc",
	}
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}

// isGeneric reports whether a requirement phrase hits the stoplist, either
// exactly or by containing a stoplisted term.
func (o *Options) isGeneric(item string) bool {
	normalized := NormalizeText(item)
	if o.GenericTerms[normalized] {
		return true
	}
	for term := range o.GenericTerms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}
