// Package types defines the shared data structures exchanged between the
// extraction, scoring, generation, and server layers.
package types

import "strings"

// RequirementCategory classifies a single extracted requirement item.
type RequirementCategory string

// Requirement categories form a closed set.
const (
	CategorySkill          RequirementCategory = "skill"
	CategoryResponsibility RequirementCategory = "responsibility"
	CategoryKeyword        RequirementCategory = "keyword"
	CategoryQualification  RequirementCategory = "qualification"
)

// Valid reports whether the category is one of the known values.
func (c RequirementCategory) Valid() bool {
	switch c {
	case CategorySkill, CategoryResponsibility, CategoryKeyword, CategoryQualification:
		return true
	}
	return false
}

// RequirementItem is a single requirement phrase extracted from a job
// description. Items are immutable values held for one scoring pass.
type RequirementItem struct {
	Category RequirementCategory `json:"category"`
	Text     string              `json:"text"`
}

// JobRequirements holds the structured requirements extracted from a job
// description, grouped the way job postings present them.
type JobRequirements struct {
	// Technical and soft skills required for the role
	Skills []string `json:"skills"`
	// Key job duties and tasks
	Responsibilities []string `json:"responsibilities"`
	// Required education, experience, certifications
	Qualifications []string `json:"qualifications"`
	// Preferred or optional items
	NiceToHaves []string `json:"niceToHaves"`
}

// Total returns the number of items across all categories.
func (r *JobRequirements) Total() int {
	return len(r.Skills) + len(r.Responsibilities) + len(r.Qualifications) + len(r.NiceToHaves)
}

// IsEmpty reports whether no requirements were extracted in any category.
func (r *JobRequirements) IsEmpty() bool {
	return r.Total() == 0
}

// Items flattens the grouped requirements into an ordered, deduplicated list
// of typed requirement items. Nice-to-haves share the qualification category
// since they describe the same kind of credential, just optional.
func (r *JobRequirements) Items() []RequirementItem {
	items := make([]RequirementItem, 0, r.Total())
	seen := make(map[string]bool)

	appendCategory := func(category RequirementCategory, texts []string) {
		for _, text := range texts {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			key := string(category) + "|" + strings.ToLower(text)
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, RequirementItem{Category: category, Text: text})
		}
	}

	appendCategory(CategorySkill, r.Skills)
	appendCategory(CategoryResponsibility, r.Responsibilities)
	appendCategory(CategoryQualification, r.Qualifications)
	appendCategory(CategoryQualification, r.NiceToHaves)

	return items
}
