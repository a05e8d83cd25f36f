package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/formdesk/console/pkg/forms"
)

// FormEditPage shows a loaded form. descriptionHTML must already be sanitized.
func FormEditPage(data *forms.PageData, descriptionHTML string) templ.Component {
	title := data.Form.Title()
	if title == "" {
		title = "Untitled form"
	}
	raw, _ := data.Form.MarshalJSON()

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(ctx, w,
			`<article class="form-edit" data-form-id="`, templ.EscapeString(data.Form.ID()), `">`,
			`<h1>`, templ.EscapeString(title), `</h1>`,
			`<section class="description">`, descriptionHTML, `</section>`,
			`<pre class="definition">`, templ.EscapeString(string(raw)), `</pre>`,
			`</article>`,
		)
	})
	return Layout(title, body)
}
