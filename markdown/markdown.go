// Package markdown converts GitHub-flavored Markdown to HTML and exposes the
// result as a templ component.
package markdown

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ImageResolver maps an image destination found in a document to the one
// written to HTML. Returning false leaves the destination unchanged.
type ImageResolver func(dest string) (string, bool)

// Converter renders Markdown with tables, strikethrough, task lists and
// autolinks enabled. Raw HTML in the source is passed through. A Converter is
// safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// New returns a Converter configured for GitHub-flavored Markdown.
func New() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Component renders src as HTML, passing every image destination through
// resolve when it is non-nil.
func (c *Converter) Component(src string, resolve ImageResolver) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return c.convert(w, []byte(src), resolve)
	})
}

func (c *Converter) convert(w io.Writer, source []byte, resolve ImageResolver) error {
	doc := c.md.Parser().Parse(text.NewReader(source))
	if resolve != nil {
		err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			if img, ok := n.(*ast.Image); ok {
				if dest, ok := resolve(string(img.Destination)); ok {
					img.Destination = []byte(dest)
				}
			}
			return ast.WalkContinue, nil
		})
		if err != nil {
			return fmt.Errorf("markdown walk: %w", err)
		}
	}
	if err := c.md.Renderer().Render(w, source, doc); err != nil {
		return fmt.Errorf("markdown render: %w", err)
	}
	return nil
}

// IsLocal reports whether dest is a relative reference to a file next to the
// document: no scheme, no host, not rooted, not a fragment.
func IsLocal(dest string) bool {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") {
		return false
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.Path != ""
}
