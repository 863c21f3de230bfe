package scoring

import "fmt"

// InvalidInputError indicates the caller passed resume content the scorer
// cannot meaningfully evaluate, such as a resume with no fields at all.
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
