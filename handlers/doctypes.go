package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/formdesk/console"
	"github.com/formdesk/console/pkg/apiclient"
	"github.com/formdesk/console/pkg/doctype"
	"github.com/formdesk/console/views"
)

const docTypesPath = "/doctypes"

// DocTypeHandler is the document type management screen.
// Browser forms post and get redirected back to the list; JSON clients get
// the upstream result.
type DocTypeHandler struct {
	svc *doctype.Service
}

// NewDocTypeHandler creates a DocTypeHandler.
func NewDocTypeHandler(svc *doctype.Service) *DocTypeHandler {
	return &DocTypeHandler{svc: svc}
}

// Routes implements console.Handler.
func (h *DocTypeHandler) Routes(r console.Router) {
	r.Route(docTypesPath, func(r console.Router) {
		r.GET("/", h.list)
		r.POST("/", h.create)
		r.POST("/{id}", h.update)
		r.PUT("/{id}", h.update)
		r.POST("/{id}/delete", h.delete)
		r.DELETE("/{id}", h.delete)
	})
}

func (h *DocTypeHandler) list(c console.Context) error {
	items, err := h.svc.GetAll(c.Context())
	if err != nil {
		return upstreamError(err)
	}
	if console.WantsJSON(c.Request()) {
		return c.JSON(http.StatusOK, items)
	}
	return c.Render(http.StatusOK, views.DocTypesPage(items))
}

func (h *DocTypeHandler) create(c console.Context) error {
	d, err := bindDocType(c)
	if err != nil {
		return err
	}

	created, err := h.svc.Create(c.Context(), d)
	if err != nil {
		return upstreamError(err)
	}
	c.LogInfo("doctype created", "doctype_id", created.ID())

	if isJSONRequest(c) {
		return c.JSON(http.StatusCreated, created)
	}
	return c.Redirect(http.StatusSeeOther, docTypesPath)
}

func (h *DocTypeHandler) update(c console.Context) error {
	d, err := bindDocType(c)
	if err != nil {
		return err
	}

	updated, err := h.svc.Update(c.Context(), docTypeID(c), d)
	if err != nil {
		return upstreamError(err)
	}

	if isJSONRequest(c) {
		return c.JSON(http.StatusOK, updated)
	}
	return c.Redirect(http.StatusSeeOther, docTypesPath)
}

func (h *DocTypeHandler) delete(c console.Context) error {
	id := docTypeID(c)
	result, err := h.svc.Delete(c.Context(), id)
	if err != nil {
		return upstreamError(err)
	}
	c.LogInfo("doctype deleted", "doctype_id", id)

	if isJSONRequest(c) {
		if len(result) == 0 {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, result)
	}
	return c.Redirect(http.StatusSeeOther, docTypesPath)
}

// docTypeID returns the decoded {id}. chi matches against the escaped path
// when it contains encoded slashes, which leaves the parameter encoded.
func docTypeID(c console.Context) string {
	id := c.Param("id")
	if c.Request().URL.RawPath == "" {
		return id
	}
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

func isJSONRequest(c console.Context) bool {
	return console.WantsJSON(c.Request())
}

// bindDocType reads a DocType from a JSON body, or from form fields where a
// "json" field holds the whole record and "name" overrides its name.
func bindDocType(c console.Context) (doctype.DocType, error) {
	var d doctype.DocType

	if strings.HasPrefix(c.Header("Content-Type"), "application/json") {
		if err := c.BindJSON(&d); err != nil {
			return d, console.ErrBadRequest("Invalid document type").WithCause(err)
		}
		return d, nil
	}

	if raw := strings.TrimSpace(c.Form("json")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return d, console.ErrBadRequest("Invalid document type").WithCause(err)
		}
	}
	if name := strings.TrimSpace(c.Form("name")); name != "" {
		withName, err := d.With("name", name)
		if err != nil {
			return d, console.ErrBadRequest("Invalid document type").WithCause(err)
		}
		d.Record = withName
	}
	return d, nil
}

// upstreamError keeps the API's status when it sent one and reports
// everything else as a bad gateway.
func upstreamError(err error) error {
	if errors.Is(err, doctype.ErrEmptyID) {
		return console.ErrBadRequest("Missing document type id").WithCause(err)
	}
	if code, ok := apiclient.StatusCode(err); ok {
		return console.NewHTTPError(code, "Upstream request failed").WithCause(err)
	}
	return console.ErrBadGateway("Upstream request failed").WithCause(err)
}
