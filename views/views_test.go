package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/formdesk/console/pkg/doctype"
	"github.com/formdesk/console/pkg/forms"
	"github.com/formdesk/console/pkg/record"
	"github.com/formdesk/console/views"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestFormEditPage(t *testing.T) {
	t.Parallel()

	data := &forms.PageData{Form: forms.Form{Record: record.MustNew(map[string]any{
		"id":    "f1",
		"title": "<Intake>",
	})}}

	out := render(t, views.FormEditPage(data, "<p>desc</p>"))
	require.Contains(t, out, `<title>&lt;Intake&gt; · Console</title>`)
	require.Contains(t, out, `data-form-id="f1"`)
	require.Contains(t, out, `<section class="description"><p>desc</p></section>`)
	require.NotContains(t, out, "<Intake>")
}

func TestDocTypesPage(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		out := render(t, views.DocTypesPage(nil))
		require.Contains(t, out, "No document types yet.")
		require.Contains(t, out, `action="/doctypes"`)
	})

	t.Run("rows", func(t *testing.T) {
		t.Parallel()

		d, err := doctype.New(map[string]any{"id": 7, "name": "Invoice", "fields": []string{"total"}})
		require.NoError(t, err)

		out := render(t, views.DocTypesPage([]doctype.DocType{d}))
		require.Contains(t, out, `<li data-id="7">`)
		require.Contains(t, out, `<strong>Invoice</strong>`)
		require.Contains(t, out, `action="/doctypes/7/delete"`)
		require.Contains(t, out, "1 total")
	})
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	out := render(t, views.ErrorPage(404, "Failed to load form"))
	require.Contains(t, out, "<h1>404</h1>")
	require.Contains(t, out, "<p>Failed to load form</p>")
	require.Contains(t, out, "<title>Not Found · Console</title>")

	out = render(t, views.ErrorPage(500, ""))
	require.Contains(t, out, "<p>Internal Server Error</p>")
}
