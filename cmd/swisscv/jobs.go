package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwehrli/swisscv/internal/jobs"
)

var (
	jobsQuery    string
	jobsLocation string
	jobsType     string
	jobsPage     int
	jobsPerPage  int
	jobsPages    int
	jobsJSON     bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Search Swiss job listings via Adzuna",
	Long: `Searches the Adzuna API for Swiss job listings. Requires ADZUNA_APP_ID
and ADZUNA_APP_KEY environment variables.`,
	RunE: runJobs,
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsQuery, "query", "q", "", "Search query")
	jobsCmd.Flags().StringVarP(&jobsLocation, "location", "l", "", "City filter (e.g. Zürich)")
	jobsCmd.Flags().StringVarP(&jobsType, "type", "t", "", "Employment type: full-time, part-time, contract, temporary, internship")
	jobsCmd.Flags().IntVar(&jobsPage, "page", 1, "Result page")
	jobsCmd.Flags().IntVar(&jobsPerPage, "per-page", 20, "Results per page")
	jobsCmd.Flags().IntVar(&jobsPages, "pages", 0, "Fetch this many pages concurrently (overrides --page)")
	jobsCmd.Flags().BoolVar(&jobsJSON, "json", false, "Print raw JSON instead of a listing summary")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	client := jobs.NewClient(os.Getenv("ADZUNA_APP_ID"), os.Getenv("ADZUNA_APP_KEY"))
	params := jobs.SearchParams{
		Query:          jobsQuery,
		Location:       jobsLocation,
		EmploymentType: jobs.EmploymentType(jobsType),
		Page:           jobsPage,
		ResultsPerPage: jobsPerPage,
	}

	var result *jobs.SearchResult
	var err error
	if jobsPages > 0 {
		result, err = client.SearchPages(ctx, params, jobsPages)
	} else {
		result, err = client.Search(ctx, params)
	}
	if err != nil {
		return err
	}

	if jobsJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Printf("Found %d listings (%d shown)\n\n", result.Total, len(result.Jobs))
	for _, job := range result.Jobs {
		fmt.Printf("%s — %s (%s)\n", job.Title, job.Company, job.LocationCity)
		if job.SalaryRange != "" {
			fmt.Printf("  %s\n", job.SalaryRange)
		}
		fmt.Printf("  posted %s  %s\n", job.PostedDate, job.ApplicationURL)
		fmt.Println()
	}
	return nil
}
