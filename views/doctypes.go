package views

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/formdesk/console/pkg/doctype"
)

// DocTypesPage lists document types with edit and delete controls.
func DocTypesPage(items []doctype.DocType) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(ctx, w,
			`<h1>Document types</h1>`,
			`<p class="count">`, strconv.Itoa(len(items)), ` total</p>`,
		); err != nil {
			return err
		}

		if len(items) == 0 {
			if err := write(ctx, w, `<p class="empty">No document types yet.</p>`); err != nil {
				return err
			}
		} else {
			if err := write(ctx, w, `<ul class="doctypes">`); err != nil {
				return err
			}
			for _, d := range items {
				if err := docTypeRow(d).Render(ctx, w); err != nil {
					return err
				}
			}
			if err := write(ctx, w, `</ul>`); err != nil {
				return err
			}
		}

		return write(ctx, w,
			`<form method="post" action="/doctypes" class="create">`,
			`<label>Name <input name="name" required></label>`,
			`<label>JSON <textarea name="json" placeholder="{}"></textarea></label>`,
			`<button type="submit">Create</button></form>`,
		)
	})
	return Layout("Document types", body)
}

func docTypeRow(d doctype.DocType) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := d.ID()
		raw, _ := d.Without("id").MarshalJSON()
		action := templ.EscapeString("/doctypes/" + url.PathEscape(id))

		return write(ctx, w,
			`<li data-id="`, templ.EscapeString(id), `">`,
			`<strong>`, templ.EscapeString(d.String("name")), `</strong>`,
			`<form method="post" action="`, action, `" class="update">`,
			`<textarea name="json">`, templ.EscapeString(string(raw)), `</textarea>`,
			`<button type="submit">Save</button></form>`,
			`<form method="post" action="`, action, `/delete" class="delete">`,
			`<button type="submit">Delete</button></form>`,
			`</li>`,
		)
	})
}
