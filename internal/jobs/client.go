package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the Adzuna jobs API root.
const DefaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

// countryCode scopes every search to Switzerland.
const countryCode = "ch"

const defaultResultsPerPage = 20

// APIError represents a failed Adzuna API call.
type APIError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("adzuna api error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("adzuna api error: %s", e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// CredentialsError indicates missing API credentials.
type CredentialsError struct{}

func (e *CredentialsError) Error() string {
	return "adzuna credentials not configured: set ADZUNA_APP_ID and ADZUNA_APP_KEY"
}

// Client calls the Adzuna API.
type Client struct {
	appID      string
	appKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an Adzuna client with the given credentials.
func NewClient(appID, appKey string) *Client {
	return &Client{
		appID:   appID,
		appKey:  appKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL overrides the API root, mainly for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Search fetches one page of Swiss job listings.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if c.appID == "" || c.appKey == "" {
		return nil, &CredentialsError{}
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.ResultsPerPage
	if perPage <= 0 {
		perPage = defaultResultsPerPage
	}

	query := url.Values{}
	query.Set("app_id", c.appID)
	query.Set("app_key", c.appKey)
	query.Set("results_per_page", strconv.Itoa(perPage))
	query.Set("sort_by", "date")
	if params.Query != "" {
		query.Set("what", params.Query)
	}
	if params.Location != "" {
		query.Set("where", params.Location)
	}
	switch params.EmploymentType {
	case FullTime:
		query.Set("full_time", "1")
	case PartTime:
		query.Set("part_time", "1")
	case Contract:
		query.Set("contract", "1")
	}
	// Internship and temporary have no API filter; they are filtered from
	// results below.

	endpoint := fmt.Sprintf("%s/%s/search/%d?%s", c.baseURL, countryCode, page, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var decoded adzunaSearchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &APIError{Message: "failed to decode response", Cause: err}
	}

	listings := make([]JobListing, 0, len(decoded.Results))
	for _, raw := range decoded.Results {
		listings = append(listings, transformJob(raw))
	}
	listings = filterByEmploymentType(listings, params.EmploymentType)

	return &SearchResult{Jobs: listings, Total: decoded.Count}, nil
}

// SearchPages fetches up to maxPages pages concurrently and merges them in
// page order.
func (c *Client) SearchPages(ctx context.Context, params SearchParams, maxPages int) (*SearchResult, error) {
	if maxPages < 1 {
		maxPages = 1
	}

	var mu sync.Mutex
	pages := make(map[int][]JobListing, maxPages)
	total := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for p := 1; p <= maxPages; p++ {
		g.Go(func() error {
			pageParams := params
			pageParams.Page = p
			result, err := c.Search(ctx, pageParams)
			if err != nil {
				return err
			}
			mu.Lock()
			pages[p] = result.Jobs
			if result.Total > total {
				total = result.Total
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pageNums := make([]int, 0, len(pages))
	for p := range pages {
		pageNums = append(pageNums, p)
	}
	sort.Ints(pageNums)

	var jobs []JobListing
	for _, p := range pageNums {
		jobs = append(jobs, pages[p]...)
	}
	return &SearchResult{Jobs: jobs, Total: total}, nil
}

// filterByEmploymentType applies the client-side filters for types the API
// cannot filter on.
func filterByEmploymentType(jobs []JobListing, et EmploymentType) []JobListing {
	switch et {
	case Internship:
		return filterListings(jobs, func(j JobListing) bool {
			return strings.Contains(strings.ToLower(j.Title), "intern") ||
				strings.Contains(strings.ToLower(j.Description), "internship")
		})
	case Temporary:
		return filterListings(jobs, func(j JobListing) bool {
			title := strings.ToLower(j.Title)
			return strings.Contains(title, "temporary") ||
				strings.Contains(title, "temp ") ||
				strings.Contains(strings.ToLower(j.Description), "temporary position")
		})
	}
	return jobs
}

func filterListings(jobs []JobListing, keep func(JobListing) bool) []JobListing {
	filtered := make([]JobListing, 0, len(jobs))
	for _, j := range jobs {
		if keep(j) {
			filtered = append(filtered, j)
		}
	}
	return filtered
}
