package types

// ScoringItem is a single requirement reported back from a scoring pass.
// MatchedIn names the resume section that supplied the match and is empty for
// missing or generic items.
type ScoringItem struct {
	Item      string              `json:"item"`
	Category  RequirementCategory `json:"category"`
	MatchedIn string              `json:"matchedIn,omitempty"`
}

// ScoreBreakdown holds the individual scoring components.
type ScoreBreakdown struct {
	SkillsScore           int `json:"skillsScore"`           // 0-40
	ResponsibilitiesScore int `json:"responsibilitiesScore"` // 0-40
	KeywordScore          int `json:"keywordScore"`          // 0-20
}

// RelevanceScore is the result of comparing resume content against job
// requirements. Matched, missing, and generic items partition the input
// requirement list.
type RelevanceScore struct {
	Score        int            `json:"score"` // 0-100
	Breakdown    ScoreBreakdown `json:"breakdown"`
	MatchedItems []ScoringItem  `json:"matchedItems"`
	MissingItems []ScoringItem  `json:"missingItems"`
	GenericItems []ScoringItem  `json:"genericItems"`
}

// QualityAnalysis is the per-attempt quality result owned by the generation
// workflow. IsInsufficient is derived from the configured quality threshold.
type QualityAnalysis struct {
	Score          int           `json:"score"`
	MatchedItems   []ScoringItem `json:"matchedItems"`
	MissingItems   []ScoringItem `json:"missingItems"`
	GenericItems   []ScoringItem `json:"genericItems"`
	IsInsufficient bool          `json:"isInsufficient"`
	Iteration      int           `json:"iteration"`
}

// GapType classifies a generation gap for audit logging.
type GapType string

// Gap types recorded in generation logs.
const (
	GapSkill         GapType = "skill"
	GapKeyword       GapType = "keyword"
	GapExperience    GapType = "experience"
	GapEducation     GapType = "education"
	GapCertification GapType = "certification"
	GapOther         GapType = "other"
)

// GenerationGap describes one missing item identified during quality analysis.
type GenerationGap struct {
	Type        GapType `json:"type"`
	Description string  `json:"description"`
}

// GapFromCategory maps a requirement category to the gap type recorded in the
// audit log. Responsibilities map to experience gaps since that is where the
// evidence would live.
func GapFromCategory(category RequirementCategory) GapType {
	switch category {
	case CategorySkill:
		return GapSkill
	case CategoryResponsibility:
		return GapExperience
	case CategoryKeyword:
		return GapKeyword
	case CategoryQualification:
		return GapEducation
	default:
		return GapOther
	}
}
