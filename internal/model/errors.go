package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no document matches the given id.
var ErrNotFound = errors.New("not found")

// HTTPError wraps an upstream non-success response. Body carries an excerpt
// of the response so the aggregator can log it for diagnosis.
type HTTPError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
