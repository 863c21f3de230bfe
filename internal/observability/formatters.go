// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwehrli/swisscv/internal/scoring"
	"github.com/mwehrli/swisscv/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobRequirements outputs a human-readable summary of extracted
// requirements.
func (p *Printer) PrintJobRequirements(reqs *types.JobRequirements) {
	if reqs == nil {
		return
	}

	var sb strings.Builder
	writeGroup := func(label string, items []string, limit int) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		count := min(len(items), limit)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > limit {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
		}
		sb.WriteString("\n")
	}

	writeGroup("Skills", reqs.Skills, maxItemsToShow)
	writeGroup("Responsibilities", reqs.Responsibilities, maxItemsToShow)
	writeGroup("Qualifications", reqs.Qualifications, 3)
	writeGroup("Nice-to-haves", reqs.NiceToHaves, 3)

	p.printBox("EXTRACTED JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQualityAnalysis outputs the result of a scoring pass: the score, its
// strength bucket, and the matched/missing/generic items.
func (p *Printer) PrintQualityAnalysis(analysis *types.QualityAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:     %d/100 (%s)\n", analysis.Score, scoring.MatchStrength(analysis.Score)))
	if analysis.Iteration > 0 {
		sb.WriteString(fmt.Sprintf("Iteration: %d\n", analysis.Iteration))
	}
	if analysis.IsInsufficient {
		sb.WriteString("Status:    below quality threshold\n")
	}
	sb.WriteString("\n")

	writeItems := func(label string, items []types.ScoringItem) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := items[i]
			sb.WriteString(fmt.Sprintf("  • %s", item.Item))
			if item.MatchedIn != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", item.MatchedIn))
			}
			sb.WriteString("\n")
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	writeItems("Matched", analysis.MatchedItems)
	writeItems("Missing", analysis.MissingItems)
	writeItems("Generic", analysis.GenericItems)

	p.printBox("QUALITY ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreBreakdown outputs the per-component scores of a relevance score.
func (p *Printer) PrintScoreBreakdown(score *types.RelevanceScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:            %d/100\n", score.Score))
	sb.WriteString(fmt.Sprintf("Skills:           %d/40\n", score.Breakdown.SkillsScore))
	sb.WriteString(fmt.Sprintf("Responsibilities: %d/40\n", score.Breakdown.ResponsibilitiesScore))
	sb.WriteString(fmt.Sprintf("Keywords:         %d/20", score.Breakdown.KeywordScore))

	p.printBox("SCORE BREAKDOWN", sb.String())
}
