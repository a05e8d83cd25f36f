package handlers

import (
	"net/http"

	"github.com/formdesk/console"
	"github.com/formdesk/console/views"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorHandler renders handler errors as an HTML error page, or as JSON for
// API clients.
func ErrorHandler(c console.Context, err error) error {
	he := console.AsHTTPError(err)
	if he.Code >= http.StatusInternalServerError {
		c.LogError("request failed", "status", he.Code, "error", err)
	}
	if console.WantsJSON(c.Request()) {
		return c.JSON(he.Code, errorBody{Status: he.Code, Message: he.Message})
	}
	return c.Render(he.Code, views.ErrorPage(he.Code, he.Message))
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c console.Context) error {
	return ErrorHandler(c, console.ErrNotFound(http.StatusText(http.StatusNotFound)))
}

// MethodNotAllowed renders the 405 page.
func MethodNotAllowed(c console.Context) error {
	return ErrorHandler(c, console.NewHTTPError(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)))
}
