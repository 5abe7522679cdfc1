package client

import "fmt"

// ValidationError is a client-side failure raised before any request is
// made: a required field of the user's intent is missing. It never reaches
// the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// RequestError is a network or backend failure on an issued request:
// transport error, non-2xx status, or an envelope with success=false.
// Requests are never retried; local state is left untouched on failure.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
