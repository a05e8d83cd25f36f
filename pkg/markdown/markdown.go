// Package markdown renders user-authored form descriptions to safe HTML.
package markdown

import (
	"bytes"
	"errors"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrRender is returned when goldmark fails to convert the source.
var ErrRender = errors.New("markdown: render failed")

var (
	md         goldmark.Markdown
	safePolicy *bluemonday.Policy
	initOnce   sync.Once
)

func setup() {
	initOnce.Do(func() {
		md = goldmark.New(goldmark.WithExtensions(extension.GFM))

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
		safePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// Render converts markdown to HTML and strips anything outside a small
// formatting allowlist. Raw HTML in the source never survives.
func Render(src string) (string, error) {
	setup()
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Join(ErrRender, err)
	}
	return safePolicy.Sanitize(buf.String()), nil
}
