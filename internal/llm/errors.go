package llm

import (
	"errors"
	"fmt"
)

// The four failure kinds the classification pipeline surfaces. Callers
// distinguish them with errors.Is / errors.As and decide retry or fallback
// policy themselves; nothing in this package retries.
var (
	// ErrRequest indicates the request could not be constructed, for
	// example an oversized or unencodable image.
	ErrRequest = errors.New("failed to build classification request")
	// ErrNetwork indicates the service could not be reached.
	ErrNetwork = errors.New("classification service unreachable")
	// ErrInvalidResponse indicates the service answered but the body could
	// not be turned into a valid classification.
	ErrInvalidResponse = errors.New("invalid response from classification service")
)

// StatusError reports a non-success HTTP status from the service.
type StatusError struct {
	Body string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("classification service returned status %d: %s", e.Code, e.Body)
}
