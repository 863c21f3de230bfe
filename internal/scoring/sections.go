package scoring

import "github.com/mwehrli/swisscv/internal/types"

// Section names reported in ScoringItem.MatchedIn.
const (
	SectionSummary        = "summary"
	SectionContact        = "contact"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

// section is one labeled searchable text fragment of a resume.
type section struct {
	text   string
	source string
}

// extractSections flattens resume content into labeled text fragments in a
// fixed order, so scoring output is stable across calls. Rich-text fields are
// stripped of HTML first.
func extractSections(resume *types.ResumeContent) []section {
	sections := make([]section, 0, 16)

	add := func(text, source string) {
		if text != "" {
			sections = append(sections, section{text: text, source: source})
		}
	}

	add(resume.Summary, SectionSummary)
	add(resume.Contact.Role, SectionContact)

	for _, exp := range resume.Experience {
		add(exp.Position, SectionExperience)
		add(exp.Company, SectionExperience)
		add(StripHTML(exp.Description), SectionExperience)
		for _, achievement := range exp.Achievements {
			add(achievement, SectionExperience)
		}
	}

	for _, edu := range resume.Education {
		add(edu.Degree, SectionEducation)
		add(edu.Field, SectionEducation)
		add(StripHTML(edu.Description), SectionEducation)
	}

	for _, category := range resume.Skills {
		add(category.Category, SectionSkills)
		add(StripHTML(category.SkillsHTML), SectionSkills)
		for _, item := range category.Items {
			add(item, SectionSkills)
		}
	}

	for _, project := range resume.Projects {
		add(project.Name, SectionProjects)
		add(StripHTML(project.Description), SectionProjects)
		for _, tech := range project.Technologies {
			add(tech, SectionProjects)
		}
	}

	for _, cert := range resume.Certifications {
		add(cert.Name, SectionCertifications)
		add(cert.Issuer, SectionCertifications)
	}

	return sections
}

// ExtractTextContent returns the normalized text fragments of a resume, in
// section order. Useful for callers that need the raw searchable content.
func ExtractTextContent(resume *types.ResumeContent) []string {
	sections := extractSections(resume)
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		if normalized := NormalizeText(s.text); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}
