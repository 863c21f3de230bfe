package jobs

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxDescriptionLength = 2000

// mapContractType maps Adzuna contract fields to an EmploymentType.
// contract_time is checked first since it is filled more reliably.
func mapContractType(job adzunaJob) EmploymentType {
	contractType := strings.ToLower(job.ContractType)
	contractTime := strings.ToLower(job.ContractTime)

	if contractTime == "full_time" {
		return FullTime
	}
	if contractTime == "part_time" {
		return PartTime
	}

	switch {
	case strings.Contains(contractType, "full"):
		return FullTime
	case strings.Contains(contractType, "part"):
		return PartTime
	case strings.Contains(contractType, "contract"), strings.Contains(contractType, "temporary"):
		return Contract
	case strings.Contains(contractType, "intern"):
		return Internship
	}
	return FullTime
}

// extractCity picks the city from an Adzuna location. The area array looks
// like ["Zürich", "Zürich", "Switzerland"]; display_name like "Zürich, Zürich".
func extractCity(location adzunaLocation) string {
	if len(location.Area) > 0 {
		return location.Area[0]
	}
	if location.DisplayName != "" {
		city, _, _ := strings.Cut(location.DisplayName, ",")
		return strings.TrimSpace(city)
	}
	return "Zürich"
}

// formatSalaryRange builds a CHF salary string, or "" when no salary data.
func formatSalaryRange(job adzunaJob) string {
	min := int(job.SalaryMin)
	max := int(job.SalaryMax)

	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("CHF %s - %s", formatThousands(min), formatThousands(max))
	case min > 0:
		return fmt.Sprintf("CHF %s+", formatThousands(min))
	case max > 0:
		return fmt.Sprintf("Up to CHF %s", formatThousands(max))
	}
	return ""
}

// formatThousands renders an integer with comma thousand separators.
func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// cleanDescription strips HTML, collapses whitespace, and truncates overly
// long descriptions.
func cleanDescription(html string) string {
	text := html
	if strings.Contains(html, "<") || strings.Contains(html, "&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
			text = strings.Join(textNodes(doc.Selection), " ")
		}
	}
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > maxDescriptionLength {
		text = string(runes[:maxDescriptionLength]) + "..."
	}
	return text
}

// textNodes collects the text nodes of a parsed fragment in document order.
// Selection.Text joins adjacent elements without a separator, which would fuse
// list items into a single word.
func textNodes(sel *goquery.Selection) []string {
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

// transformJob maps a raw Adzuna result to a JobListing.
func transformJob(job adzunaJob) JobListing {
	posted, _, _ := strings.Cut(job.Created, "T")
	return JobListing{
		ID:              job.ID,
		Title:           job.Title,
		Company:         job.Company.DisplayName,
		LocationCity:    extractCity(job.Location),
		LocationCountry: "CH",
		EmploymentType:  mapContractType(job),
		Description:     cleanDescription(job.Description),
		SalaryRange:     formatSalaryRange(job),
		PostedDate:      posted,
		ApplicationURL:  job.RedirectURL,
	}
}

// SwissCities lists the major Swiss cities offered as location filters.
func SwissCities() []string {
	return []string{
		"Zürich",
		"Genève",
		"Basel",
		"Lausanne",
		"Bern",
		"Winterthur",
		"Luzern",
		"St. Gallen",
		"Lugano",
		"Biel/Bienne",
		"Thun",
		"Neuchâtel",
	}
}
