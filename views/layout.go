// Package views renders the console's HTML pages as templ components.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// write renders a sequence of string fragments and components.
func write(ctx context.Context, w io.Writer, parts ...any) error {
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			if _, err := io.WriteString(w, v); err != nil {
				return err
			}
		case templ.Component:
			if v == nil {
				continue
			}
			if err := v.Render(ctx, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// Layout wraps body in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(ctx, w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, templ.EscapeString(title), ` · Console</title></head><body>`,
			`<nav><a href="/doctypes">Document types</a></nav><main>`,
			body,
			`</main></body></html>`,
		)
	})
}
