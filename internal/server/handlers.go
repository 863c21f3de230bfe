package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mwehrli/swisscv/internal/generation"
	"github.com/mwehrli/swisscv/internal/jobs"
	"github.com/mwehrli/swisscv/internal/requirements"
	"github.com/mwehrli/swisscv/internal/transform"
	"github.com/mwehrli/swisscv/internal/types"
)

// extractRequirementsRequest is the payload for POST /requirements.
type extractRequirementsRequest struct {
	JobDescription string `json:"jobDescription" validate:"required"`
	Locale         string `json:"locale,omitempty" validate:"omitempty,oneof=en fr de it"`
}

type extractRequirementsResponse struct {
	Requirements   *types.JobRequirements `json:"requirements"`
	IsInsufficient bool                   `json:"isInsufficient"`
	TokensUsed     int32                  `json:"tokensUsed"`
}

func (s *Server) handleExtractRequirements(w http.ResponseWriter, r *http.Request) {
	var req extractRequirementsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	reqs, usage, err := requirements.Extract(r.Context(), s.llmClient, req.JobDescription, req.Locale)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := extractRequirementsResponse{
		Requirements:   reqs,
		IsInsufficient: requirements.IsDescriptionInsufficient(req.JobDescription, reqs),
	}
	if usage != nil {
		resp.TokensUsed = usage.TotalTokens
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// analyzeRequest is the payload for POST /analyze. Requirements may be
// supplied directly to skip extraction; otherwise they are extracted from the
// job description.
type analyzeRequest struct {
	Resume         *types.ResumeContent   `json:"resume" validate:"required"`
	JobDescription string                 `json:"jobDescription,omitempty"`
	Requirements   *types.JobRequirements `json:"requirements,omitempty"`
	Locale         string                 `json:"locale,omitempty" validate:"omitempty,oneof=en fr de it"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if req.Requirements == nil && req.JobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "either requirements or jobDescription is required")
		return
	}

	reqs := req.Requirements
	var tokensUsed int32
	if reqs == nil {
		extracted, usage, err := requirements.Extract(r.Context(), s.llmClient, req.JobDescription, req.Locale)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		reqs = extracted
		if usage != nil {
			tokensUsed = usage.TotalTokens
		}
	}

	analysis, err := s.workflow.Analyze(req.Resume, reqs, 1)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analysis":     analysis,
		"requirements": reqs,
		"tokensUsed":   tokensUsed,
	})
}

// generateRequest is the payload for POST /generate.
type generateRequest struct {
	JobDescription string `json:"jobDescription" validate:"required"`
	Locale         string `json:"locale,omitempty" validate:"omitempty,oneof=en fr de it"`
	UserID         string `json:"userId,omitempty" validate:"omitempty,uuid"`
	ResumeID       string `json:"resumeId,omitempty" validate:"omitempty,uuid"`
	JobID          string `json:"jobId,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.workflow.GenerateWithRetry(r.Context(), generation.Params{
		JobDescription: req.JobDescription,
		Locale:         req.Locale,
		UserID:         req.UserID,
		ResumeID:       req.ResumeID,
		JobID:          req.JobID,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleTransform dispatches POST /transform/{op}.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	switch op := r.PathValue("op"); op {
	case "summary":
		var input transform.SummaryInput
		if !s.decodeAndValidate(w, r, &input) {
			return
		}
		s.respondTransform(w, r, func() (any, error) {
			return transform.Summary(r.Context(), s.llmClient, input)
		})
	case "experience":
		var input transform.ExperienceInput
		if !s.decodeAndValidate(w, r, &input) {
			return
		}
		s.respondTransform(w, r, func() (any, error) {
			return transform.Experience(r.Context(), s.llmClient, input)
		})
	case "translate":
		var input transform.TranslateInput
		if !s.decodeAndValidate(w, r, &input) {
			return
		}
		s.respondTransform(w, r, func() (any, error) {
			return transform.TranslateSummary(r.Context(), s.llmClient, input)
		})
	case "optimize":
		var input transform.OptimizeInput
		if !s.decodeAndValidate(w, r, &input) {
			return
		}
		s.respondTransform(w, r, func() (any, error) {
			return transform.OptimizeDescription(r.Context(), s.llmClient, input)
		})
	default:
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown transform operation: %s", op))
	}
}

func (s *Server) respondTransform(w http.ResponseWriter, _ *http.Request, run func() (any, error)) {
	result, err := run()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleAdapt(w http.ResponseWriter, r *http.Request) {
	var input transform.AdaptInput
	if !s.decodeAndValidate(w, r, &input) {
		return
	}

	result, err := transform.AdaptResume(r.Context(), s.llmClient, input)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleJobsSearch proxies GET /jobs/search to the Adzuna API.
func (s *Server) handleJobsSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := jobs.SearchParams{
		Query:          q.Get("q"),
		Location:       q.Get("location"),
		EmploymentType: jobs.EmploymentType(q.Get("employmentType")),
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Page = n
		}
	}
	if v := q.Get("perPage"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.ResultsPerPage = n
		}
	}

	var result *jobs.SearchResult
	var err error
	if v := q.Get("pages"); v != "" {
		pages, convErr := strconv.Atoi(v)
		if convErr != nil || pages < 1 {
			s.errorResponse(w, http.StatusBadRequest, "pages must be a positive integer")
			return
		}
		result, err = s.jobsClient.SearchPages(r.Context(), params, pages)
	} else {
		result, err = s.jobsClient.Search(r.Context(), params)
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleJobsCities(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"cities": jobs.SwissCities()})
}

// handleGenerationLogs serves GET /users/{id}/generation-logs.
func (s *Server) handleGenerationLogs(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "generation logs require a database")
		return
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			limit = n
		}
	}

	logs, err := s.db.ListGenerationLogs(r.Context(), userID, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"logs": logs})
}

// decodeAndValidate decodes the request body into dst and validates it.
// On failure it writes the error response and returns false.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
