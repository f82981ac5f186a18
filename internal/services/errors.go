// Package services defines the business logic for image records: creation
// with input validation, retrieval, server-side composition, and the
// age-based cleanup sweep. This file centralizes service-level error values
// and the ValidationError type so they can be consistently returned by
// service methods and checked by callers.
//
// Translation into HTTP status codes is performed at the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrImageNotFound indicates that the requested image record does not
	// exist (or has already been swept).
	ErrImageNotFound = errors.New("image not found")

	// ErrBadImageData is returned when a composition request carries a
	// payload that is not a decodable image data URI.
	ErrBadImageData = errors.New("imageData must be a base64 image data URI")
)

// ValidationError reports a malformed or missing required input field. It
// always carries the JSON name of the first offending field so the API layer
// can surface it in the 400 response body.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}
