package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFieldNotFound = errors.New("required field not found")
	ErrOddSpecs      = errors.New("specs do not form label/value pairs")
	ErrInvalidImages = errors.New("image data could not be decoded")
)

// ExtractionError reports a required field whose markup was not found or
// could not be interpreted. No partial record accompanies it.
type ExtractionError struct {
	Field      string
	Candidates []string
	Err        error
}

func (e *ExtractionError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("extract %s: %v (tried %s)", e.Field, e.Err, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("extract %s: %v", e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func missingField(field string, candidates ...string) *ExtractionError {
	return &ExtractionError{Field: field, Candidates: candidates, Err: ErrFieldNotFound}
}
