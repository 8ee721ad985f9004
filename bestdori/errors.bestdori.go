package bestdori

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrUnknownBand  = errors.New("unknown band")

	// ErrMalformedChart marks a fetched chart that does not decode.
	ErrMalformedChart = errors.New("malformed chart")
)

// StatusError is a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}
