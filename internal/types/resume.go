package types

// ResumeContact holds the contact block of a resume. Only the fields used for
// scoring are modeled; the hosted backend owns the full record.
type ResumeContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ResumeExperience is a single work experience entry.
type ResumeExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current,omitempty"`
	Location     string   `json:"location,omitempty"`
	Description  string   `json:"description,omitempty"` // may contain HTML
	Achievements []string `json:"achievements,omitempty"`
}

// ResumeEducation is a single education entry.
type ResumeEducation struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"` // may contain HTML
}

// ResumeSkillCategory groups skills under a named category.
type ResumeSkillCategory struct {
	Category   string   `json:"category"`
	Items      []string `json:"items,omitempty"`
	SkillsHTML string   `json:"skillsHtml,omitempty"` // legacy rich-text form
}

// ResumeProject is a single project entry.
type ResumeProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"` // may contain HTML
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// ResumeCertification is a single certification entry.
type ResumeCertification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// ResumeContent is the read-only view over a candidate resume consumed by the
// relevance scorer. The scorer never mutates it.
type ResumeContent struct {
	Summary        string                `json:"summary,omitempty"`
	Contact        ResumeContact         `json:"contact,omitempty"`
	Experience     []ResumeExperience    `json:"experience,omitempty"`
	Education      []ResumeEducation     `json:"education,omitempty"`
	Skills         []ResumeSkillCategory `json:"skills,omitempty"`
	Projects       []ResumeProject       `json:"projects,omitempty"`
	Certifications []ResumeCertification `json:"certifications,omitempty"`
}

// IsEmpty reports whether the resume carries no scorable content at all.
func (c *ResumeContent) IsEmpty() bool {
	return c.Summary == "" &&
		len(c.Experience) == 0 &&
		len(c.Education) == 0 &&
		len(c.Skills) == 0 &&
		len(c.Projects) == 0 &&
		len(c.Certifications) == 0
}

// GeneratedContent is the resume content produced by one generation attempt.
type GeneratedContent struct {
	Summary    string                `json:"summary"`
	Experience []ResumeExperience    `json:"experience"`
	Skills     []ResumeSkillCategory `json:"skills"`
	Projects   []ResumeProject       `json:"projects"`
}

// ToResumeContent adapts generated content to the scorer's input shape.
func (g *GeneratedContent) ToResumeContent() *ResumeContent {
	return &ResumeContent{
		Summary:    g.Summary,
		Experience: g.Experience,
		Skills:     g.Skills,
		Projects:   g.Projects,
	}
}
