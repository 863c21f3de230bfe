package requirements

import "fmt"

// ExtractionError represents a failed extraction: the generation call itself
// failed (network, timeout) or its output could not be decoded into the
// expected structure. Always recoverable; callers treat quality analysis as
// best-effort and may proceed without it.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("requirement extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("requirement extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ParseError represents model output that could not be decoded into the
// requirements structure. It is always wrapped in an ExtractionError.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// InvalidInputError indicates the caller supplied input the extractor cannot
// work with, such as an empty job description.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}
