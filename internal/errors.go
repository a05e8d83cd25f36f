package internal

import (
	"errors"
	"net/http"
)

// ErrStartupHook wraps a failing startup hook.
var ErrStartupHook = errors.New("server: startup hook failed")

// HTTPError is an error carrying the status and message shown to the client.
type HTTPError struct {
	// Err is the underlying cause, logged but never rendered.
	Err     error
	Message string
	Code    int
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

func (e *HTTPError) StatusCode() int { return e.Code }

func (e *HTTPError) StatusText() string { return http.StatusText(e.Code) }

// WithCause attaches the underlying error.
func (e *HTTPError) WithCause(err error) *HTTPError {
	e.Err = err
	return e
}

func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func ErrBadGateway(message string) *HTTPError {
	return NewHTTPError(http.StatusBadGateway, message)
}

func ErrInternal(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// StatusCoder is implemented by errors that know their HTTP status,
// such as *HTTPError and the form loader's errors.
type StatusCoder interface {
	error
	StatusCode() int
}

// publicMessager is implemented by errors whose message is safe to show.
type publicMessager interface {
	PublicMessage() string
}

// AsHTTPError converts err into an HTTPError.
// The first StatusCoder in the chain decides the status. Its message is only
// shown if it implements PublicMessage; otherwise the status text is used.
// Anything else becomes a 500.
func AsHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		if he, ok := sc.(*HTTPError); ok {
			return he
		}
		he := &HTTPError{Code: sc.StatusCode(), Message: http.StatusText(sc.StatusCode()), Err: err}
		if pm, ok := sc.(publicMessager); ok {
			he.Message = pm.PublicMessage()
		}
		return he
	}
	return &HTTPError{
		Code:    http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
		Err:     err,
	}
}

// DefaultErrorHandler writes JSON for API clients and plain text otherwise.
func DefaultErrorHandler(c Context, err error) error {
	he := AsHTTPError(err)
	if he.Code >= http.StatusInternalServerError {
		c.LogError("request failed", "status", he.Code, "error", err)
	}
	if WantsJSON(c.Request()) {
		return c.JSON(he.Code, map[string]any{"status": he.Code, "message": he.Message})
	}
	return c.String(he.Code, he.Message)
}
