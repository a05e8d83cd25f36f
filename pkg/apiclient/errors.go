package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for API calls.
var (
	// ErrEncodeFailed is returned when the request body cannot be encoded as JSON.
	ErrEncodeFailed = errors.New("apiclient: failed to encode request body")

	// ErrBuildRequest is returned when the request cannot be constructed.
	ErrBuildRequest = errors.New("apiclient: failed to build request")

	// ErrTransport is returned when the request never produced an HTTP response
	// (connection refused, DNS failure, timeout, canceled context).
	ErrTransport = errors.New("apiclient: transport failure")

	// ErrUnexpectedStatus is matched by every StatusError.
	ErrUnexpectedStatus = errors.New("apiclient: unexpected response status")

	// ErrDecodeFailed is returned when a 2xx response body is not valid JSON
	// for the requested type.
	ErrDecodeFailed = errors.New("apiclient: failed to decode response body")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	Body       []byte // truncated response body, for logs
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes StatusError match ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// StatusCode extracts the upstream HTTP status from err.
// Returns false if err does not carry a response status.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
