package requirements

import (
	"github.com/xeipuuv/gojsonschema"
)

// requirementsSchema is the JSON Schema the model output must satisfy before
// it is accepted. Anything else is an extraction failure, never a partially
// populated result.
const requirementsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["skills", "responsibilities", "qualifications", "niceToHaves"],
  "properties": {
    "skills": { "type": "array", "items": { "type": "string" } },
    "responsibilities": { "type": "array", "items": { "type": "string" } },
    "qualifications": { "type": "array", "items": { "type": "string" } },
    "niceToHaves": { "type": "array", "items": { "type": "string" } }
  },
  "additionalProperties": true
}`

// validateSchema checks raw JSON bytes against the requirements schema.
// Returns a ParseError listing the first violations on failure.
func validateSchema(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(requirementsSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ParseError{Message: "schema validation could not run", Cause: err}
	}

	if !result.Valid() {
		msg := "output does not match requirements schema"
		if errs := result.Errors(); len(errs) > 0 {
			msg = msg + ": " + errs[0].String()
		}
		return &ParseError{Message: msg}
	}

	return nil
}
