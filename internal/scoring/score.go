package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/mwehrli/swisscv/internal/types"
)

// minKeywordLength filters keyword candidates; shorter words carry too little
// signal.
const minKeywordLength = 3

// MatchStrength buckets for a relevance score.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthWeak     = "weak"
)

// Scorer compares resume content against job requirements. A Scorer is
// immutable after construction and safe for concurrent use.
type Scorer struct {
	opts Options
}

// NewScorer creates a Scorer with the given options.
func NewScorer(opts Options) *Scorer {
	if opts.FuzzyThreshold <= 0 {
		opts.FuzzyThreshold = DefaultOptions().FuzzyThreshold
	}
	if opts.StopWords == nil {
		opts.StopWords = defaultStopWords()
	}
	if opts.GenericTerms == nil {
		opts.GenericTerms = defaultGenericTerms()
	}
	zero := Weights{}
	if opts.ComponentWeights == zero {
		opts.ComponentWeights = DefaultOptions().ComponentWeights
	}
	return &Scorer{opts: opts}
}

// Score compares resume content against the extracted requirements and
// returns the 0-100 relevance score with matched/missing/generic breakdowns.
// The three item lists partition the requirement items exactly: every input
// item lands in exactly one list.
//
// Scoring is deterministic: identical inputs produce identical results. An
// empty requirement set yields score 0 with empty item lists.
func (s *Scorer) Score(resume *types.ResumeContent, reqs *types.JobRequirements) (*types.RelevanceScore, error) {
	if resume == nil || resume.IsEmpty() {
		return nil, &InvalidInputError{Field: "resume", Message: "resume content has no fields to score"}
	}

	result := &types.RelevanceScore{
		MatchedItems: []types.ScoringItem{},
		MissingItems: []types.ScoringItem{},
		GenericItems: []types.ScoringItem{},
	}
	if reqs == nil || reqs.IsEmpty() {
		return result, nil
	}

	sections := extractSections(resume)

	// Bucket the deduplicated requirement items by category so component
	// totals line up with the reported item lists.
	var skills, responsibilities, qualifications []types.RequirementItem
	for _, item := range reqs.Items() {
		switch item.Category {
		case types.CategorySkill:
			skills = append(skills, item)
		case types.CategoryResponsibility:
			responsibilities = append(responsibilities, item)
		default:
			qualifications = append(qualifications, item)
		}
	}

	skillsCovered := s.classify(skills, sections, result)
	responsibilitiesCovered := s.classify(responsibilities, sections, result)
	// Qualifications are classified for visibility but weighted only through
	// the keyword component, mirroring how recruiters read them.
	s.classify(qualifications, sections, result)

	weights := s.opts.ComponentWeights
	result.Breakdown.SkillsScore = componentScore(skillsCovered, len(skills), weights.Skills)
	result.Breakdown.ResponsibilitiesScore = componentScore(responsibilitiesCovered, len(responsibilities), weights.Responsibilities)
	result.Breakdown.KeywordScore = s.keywordScore(reqs, sections, weights.Keywords)

	score := result.Breakdown.SkillsScore +
		result.Breakdown.ResponsibilitiesScore +
		result.Breakdown.KeywordScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	result.Score = score

	return result, nil
}

// QuickScore returns only the 0-100 score, for callers that do not need the
// item breakdown.
func (s *Scorer) QuickScore(resume *types.ResumeContent, reqs *types.JobRequirements) (int, error) {
	result, err := s.Score(resume, reqs)
	if err != nil {
		return 0, err
	}
	return result.Score, nil
}

// classify sorts requirement items into the matched/missing/generic lists and
// returns the number of covered items. Generic items count as covered so a
// stoplisted phrase never drags the score down, but they are reported
// separately for visibility.
func (s *Scorer) classify(items []types.RequirementItem, sections []section, result *types.RelevanceScore) int {
	covered := 0
	for _, item := range items {
		if s.opts.isGeneric(item.Text) {
			result.GenericItems = append(result.GenericItems, types.ScoringItem{
				Item:     item.Text,
				Category: item.Category,
			})
			covered++
			continue
		}

		if source, ok := s.findMatch(item.Text, sections); ok {
			result.MatchedItems = append(result.MatchedItems, types.ScoringItem{
				Item:      item.Text,
				Category:  item.Category,
				MatchedIn: source,
			})
			covered++
		} else {
			result.MissingItems = append(result.MissingItems, types.ScoringItem{
				Item:     item.Text,
				Category: item.Category,
			})
		}
	}
	return covered
}

// findMatch searches the resume sections for a requirement phrase. The first
// section that matches wins. Matching is tried in order of strictness:
// normalized substring, word-overlap similarity, then requirement-word
// coverage.
func (s *Scorer) findMatch(requirement string, sections []section) (string, bool) {
	normalizedReq := NormalizeText(requirement)
	if normalizedReq == "" {
		return "", false
	}
	reqWords := extractWords(requirement, s.opts.StopWords)

	for _, sec := range sections {
		normalizedSec := NormalizeText(sec.text)
		if normalizedSec == "" {
			continue
		}

		if strings.Contains(normalizedSec, normalizedReq) {
			return sec.source, true
		}

		if wordOverlap(requirement, sec.text, s.opts.StopWords) >= s.opts.FuzzyThreshold {
			return sec.source, true
		}

		if len(reqWords) > 0 {
			secWords := wordSet(sec.text, s.opts.StopWords)
			matched := 0
			for _, word := range reqWords {
				if secWords[word] {
					matched++
				}
			}
			if float64(matched)/float64(len(reqWords)) >= s.opts.FuzzyThreshold {
				return sec.source, true
			}
		}
	}

	return "", false
}

// keywordScore measures general keyword coverage: the unique meaningful words
// of all requirement text, checked against the word set of the whole resume.
func (s *Scorer) keywordScore(reqs *types.JobRequirements, sections []section, weight int) int {
	keywords := s.extractKeywords(reqs)
	if len(keywords) == 0 {
		return weight
	}

	var allText strings.Builder
	for _, sec := range sections {
		allText.WriteString(sec.text)
		allText.WriteString(" ")
	}
	cvWords := wordSet(allText.String(), s.opts.StopWords)

	matched := 0
	for _, keyword := range keywords {
		if cvWords[keyword] {
			matched++
		}
	}

	return componentScore(matched, len(keywords), weight)
}

// extractKeywords derives the sorted, unique keyword candidates from all
// requirement categories.
func (s *Scorer) extractKeywords(reqs *types.JobRequirements) []string {
	var allText strings.Builder
	for _, group := range [][]string{reqs.Skills, reqs.Responsibilities, reqs.Qualifications, reqs.NiceToHaves} {
		for _, item := range group {
			allText.WriteString(item)
			allText.WriteString(" ")
		}
	}

	unique := wordSet(allText.String(), s.opts.StopWords)
	keywords := make([]string, 0, len(unique))
	for word := range unique {
		if len(word) >= minKeywordLength {
			keywords = append(keywords, word)
		}
	}
	sort.Strings(keywords)
	return keywords
}

// componentScore scales covered/total into the component's weight. An empty
// category takes its full weight: nothing was asked for, so nothing is
// missing.
func componentScore(covered, total, weight int) int {
	if total <= 0 {
		return weight
	}
	return int(math.Round(float64(covered) / float64(total) * float64(weight)))
}

// MatchStrength buckets a relevance score: strong (>=70), moderate (>=40),
// weak otherwise.
func MatchStrength(score int) string {
	switch {
	case score >= 70:
		return StrengthStrong
	case score >= 40:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}
