package generation

import (
	"fmt"
	"strings"

	"github.com/mwehrli/swisscv/internal/types"
)

// buildEnhancedPrompt turns the missing items of an attempt into the feedback
// section injected into the next generation prompt.
func buildEnhancedPrompt(missing []types.ScoringItem) string {
	if len(missing) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("CRITICAL: The previous version did not cover these requirements. ")
	b.WriteString("Explicitly address every one of them in the resume content:\n")
	for _, item := range missing {
		fmt.Fprintf(&b, "- [%s] %s\n", item.Category, item.Item)
	}
	b.WriteString("Integrate them naturally into the summary, experience, and skills sections.")
	return b.String()
}

// toGenerationGaps converts missing scoring items into audit-log gaps.
func toGenerationGaps(missing []types.ScoringItem) []types.GenerationGap {
	gaps := make([]types.GenerationGap, 0, len(missing))
	for _, item := range missing {
		gaps = append(gaps, types.GenerationGap{
			Type:        types.GapFromCategory(item.Category),
			Description: item.Item,
		})
	}
	return gaps
}
