package kat

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryRequired is returned when a search has no free-text query.
	ErrQueryRequired = errors.New("field 'query' is required")

	// ErrInvalidQuery is returned when the search spec is nil.
	ErrInvalidQuery = errors.New("no valid query")

	// ErrFetch matches every error produced while loading a results page.
	ErrFetch = errors.New("fetch failed")

	// ErrMissingTotal is returned when the results page has no total-results header.
	ErrMissingTotal = errors.New("results page has no total-results header")
)

// InputError wraps a rejected search spec.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return "invalid search: " + e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// TransportError is a network or timeout failure while fetching an endpoint.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v with link: '%s'", e.Err, e.Endpoint)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// DataError means the index answered, but with an empty body or an error status.
type DataError struct {
	Endpoint   string
	StatusCode int
}

func (e *DataError) Error() string {
	return fmt.Sprintf("KAT: Could not load data from: '%s'", e.Endpoint)
}

func (e *DataError) Unwrap() error {
	return ErrFetch
}
