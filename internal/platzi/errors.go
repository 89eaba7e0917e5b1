package platzi

import (
	"errors"
	"fmt"
)

// NetworkError is returned for every failed catalog API call.
//
// StatusCode is set when the server answered with a non-success status.
// It is zero for transport failures, timeouts and undecodable bodies.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s products: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether the server responded with a non-success status.
func (e *NetworkError) IsStatus() bool {
	return e != nil && e.StatusCode > 0
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var nerr *NetworkError
	if errors.As(err, &nerr) {
		return nerr.StatusCode
	}
	return 0
}
