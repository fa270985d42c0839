package inference

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable     = errors.New("model server unavailable")
	ErrMalformedOutput = errors.New("model returned malformed output")
)

// ModelError reports a failure to load or run the span model.
type ModelError struct {
	Op  string
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s failed: %v", e.Op, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
