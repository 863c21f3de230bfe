// Package jobs provides a client for the Adzuna job search API, scoped to the
// Swiss market. Raw API results are mapped to JobListing values with cleaned
// descriptions and formatted CHF salary ranges.
package jobs

// EmploymentType classifies a job listing's contract.
type EmploymentType string

// Supported employment types.
const (
	FullTime   EmploymentType = "full-time"
	PartTime   EmploymentType = "part-time"
	Contract   EmploymentType = "contract"
	Temporary  EmploymentType = "temporary"
	Internship EmploymentType = "internship"
)

// JobListing is a normalized job posting.
type JobListing struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Company         string         `json:"company"`
	LocationCity    string         `json:"locationCity"`
	LocationCountry string         `json:"locationCountry"`
	EmploymentType  EmploymentType `json:"employmentType"`
	Description     string         `json:"description"`
	SalaryRange     string         `json:"salaryRange,omitempty"`
	PostedDate      string         `json:"postedDate"` // YYYY-MM-DD
	ApplicationURL  string         `json:"applicationUrl"`
}

// SearchParams are the supported search filters.
type SearchParams struct {
	Query          string
	Location       string
	EmploymentType EmploymentType
	Page           int
	ResultsPerPage int
}

// SearchResult is one page of search results plus the API's total count.
type SearchResult struct {
	Jobs  []JobListing `json:"jobs"`
	Total int          `json:"total"`
}

// adzunaSearchResponse mirrors the Adzuna search endpoint payload.
type adzunaSearchResponse struct {
	Count   int         `json:"count"`
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Created      string         `json:"created"`
	RedirectURL  string         `json:"redirect_url"`
	ContractType string         `json:"contract_type"`
	ContractTime string         `json:"contract_time"`
	SalaryMin    float64        `json:"salary_min"`
	SalaryMax    float64        `json:"salary_max"`
	Company      adzunaCompany  `json:"company"`
	Location     adzunaLocation `json:"location"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	Area        []string `json:"area"`
	DisplayName string   `json:"display_name"`
}
