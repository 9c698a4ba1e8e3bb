package apiclient

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the Sentinel API. Message carries
// the server-provided text from the {"message": ...} body when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("sentinel api returned status %d", e.Status)
}

// UserMessage extracts a display string from any store error: the server's
// message when the error is an APIError with one, the fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
