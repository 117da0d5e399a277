package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found, or when
	// a write references a route/bin/household that does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateSequence is returned when a bin is attached to a route at a
	// sequence position that is already taken within that route.
	ErrDuplicateSequence = errors.New("sequence order already used in this route")

	// ErrInvalidInput is returned when a request payload fails a contract
	// check that validation tags cannot express.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
