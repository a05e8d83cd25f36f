package views

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPage renders a status page with a short message.
func ErrorPage(code int, message string) templ.Component {
	if message == "" {
		message = http.StatusText(code)
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(ctx, w,
			`<section class="error"><h1>`, strconv.Itoa(code), `</h1>`,
			`<p>`, templ.EscapeString(message), `</p></section>`,
		)
	})
	return Layout(http.StatusText(code), body)
}
