package forms

import (
	"fmt"
	"net/http"
)

// Messages carried by LoadError.
const (
	MessageLoadFailed = "Failed to load form"
	MessageInternal   = "Internal Server Error"
)

// LoadError is the page-level error returned by Loader.Load.
// The rendering layer turns it into an error page with Code as the status.
type LoadError struct {
	Err     error // underlying cause, for logs
	Message string
	Code    int
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forms: %s (%d): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("forms: %s (%d)", e.Message, e.Code)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error page.
func (e *LoadError) StatusCode() int {
	return e.Code
}

// PublicMessage is the text shown on the error page.
func (e *LoadError) PublicMessage() string {
	return e.Message
}

// StatusText returns the standard text for Code.
func (e *LoadError) StatusText() string {
	return http.StatusText(e.Code)
}
