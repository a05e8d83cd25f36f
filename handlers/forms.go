package handlers

import (
	"net/http"

	"github.com/formdesk/console"
	"github.com/formdesk/console/pkg/forms"
	"github.com/formdesk/console/pkg/markdown"
	"github.com/formdesk/console/views"
)

// FormHandler serves the form edit page.
type FormHandler struct {
	loader *forms.Loader
}

// NewFormHandler creates a FormHandler.
func NewFormHandler(loader *forms.Loader) *FormHandler {
	return &FormHandler{loader: loader}
}

// Routes implements console.Handler.
func (h *FormHandler) Routes(r console.Router) {
	r.GET("/form-edit/{id}", h.page)
	r.GET("/form-edit/{id}/data.json", h.data)
}

// page renders the form, or returns the *forms.LoadError for the error page.
func (h *FormHandler) page(c console.Context) error {
	data, err := h.loader.Load(c.Context(), c.Param("id"))
	if err != nil {
		return err
	}

	desc, err := markdown.Render(data.Form.Description())
	if err != nil {
		c.LogWarn("failed to render form description", "form_id", data.Form.ID(), "error", err)
		desc = ""
	}
	return c.Render(http.StatusOK, views.FormEditPage(data, desc))
}

// data returns the page data as JSON, errors included.
func (h *FormHandler) data(c console.Context) error {
	data, err := h.loader.Load(c.Context(), c.Param("id"))
	if err != nil {
		he := console.AsHTTPError(err)
		return c.JSON(he.Code, errorBody{Status: he.Code, Message: he.Message})
	}
	return c.JSON(http.StatusOK, data)
}
