package shortdoi

import (
	"errors"
	"fmt"
)

// Common errors returned by the shortDOI client.
var (
	// ErrNotFound indicates the service does not know the DOI.
	ErrNotFound = errors.New("DOI not found by shortDOI service")

	// ErrInvalidResponse indicates an unexpected response body.
	ErrInvalidResponse = errors.New("invalid response from shortDOI service")

	// ErrNetworkError indicates the service could not be reached.
	ErrNetworkError = errors.New("network error communicating with shortDOI service")
)

// APIError represents a non-success HTTP status from the service.
type APIError struct {
	StatusCode int
	DOI        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shortDOI API error (status %d) for %s", e.StatusCode, e.DOI)
}

// IsNotFound returns true if the error indicates an unknown DOI.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
