package server

import (
	"errors"
	"net/http"

	"github.com/mwehrli/swisscv/internal/jobs"
	"github.com/mwehrli/swisscv/internal/requirements"
	"github.com/mwehrli/swisscv/internal/scoring"
	"github.com/mwehrli/swisscv/internal/transform"
)

// HTTPStatus returns the appropriate HTTP status code for an error raised by
// one of the core packages.
func HTTPStatus(err error) int {
	var reqInvalid *requirements.InvalidInputError
	var scoreInvalid *scoring.InvalidInputError
	var transformInvalid *transform.InvalidInputError
	if errors.As(err, &reqInvalid) || errors.As(err, &scoreInvalid) || errors.As(err, &transformInvalid) {
		return http.StatusBadRequest
	}

	var credErr *jobs.CredentialsError
	if errors.As(err, &credErr) {
		return http.StatusServiceUnavailable
	}

	// Model produced unusable output; the request itself was fine.
	var reqParse *requirements.ParseError
	var transformParse *transform.ParseError
	if errors.As(err, &reqParse) || errors.As(err, &transformParse) {
		return http.StatusBadGateway
	}

	var extractErr *requirements.ExtractionError
	var apiErr *transform.APICallError
	if errors.As(err, &extractErr) || errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}

	var jobsErr *jobs.APIError
	if errors.As(err, &jobsErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
