package notepub

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/eringen/notepub/markdown"
)

// Template file names looked up in Config.TemplatesDir.
const (
	ArticleTemplate = "article.html"
	IndexTemplate   = "index.html"
)

// ArticleData is merged into the article template.
type ArticleData struct {
	Title   string
	Date    string
	Updated string
	Tags    []string
	Root    string // relative path from the article back to the output root
	Content template.HTML
}

// IndexData is merged into the index template. Tag is set when rendering a
// per-tag listing.
type IndexData struct {
	SiteName  string
	Tag       string
	Root      string
	YearPosts []YearGroup
}

// RenderError reports a note that could not be rendered. The note is skipped.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer holds the compiled article and index templates.
type Renderer struct {
	article  *template.Template
	index    *template.Template
	markdown *markdown.Converter
}

// NewRenderer compiles the two templates from source text.
func NewRenderer(articleSrc, indexSrc string) (*Renderer, error) {
	article, err := template.New(ArticleTemplate).Parse(articleSrc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ArticleTemplate, err)
	}
	index, err := template.New(IndexTemplate).Parse(indexSrc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", IndexTemplate, err)
	}
	return &Renderer{article: article, index: index, markdown: markdown.New()}, nil
}

// LoadRenderer reads and compiles the templates in dir.
func LoadRenderer(dir string) (*Renderer, error) {
	article, err := os.ReadFile(filepath.Join(dir, ArticleTemplate))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	index, err := os.ReadFile(filepath.Join(dir, IndexTemplate))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return NewRenderer(string(article), string(index))
}

// Markdown converts a note body to HTML. resolve may be nil.
func (r *Renderer) Markdown(ctx context.Context, body string, resolve markdown.ImageResolver) (template.HTML, error) {
	return templ.ToGoHTML(ctx, r.markdown.Component(body, resolve))
}

// RenderArticle converts body to HTML and merges it with the note metadata.
func (r *Renderer) RenderArticle(body, title, created, updated string) ([]byte, error) {
	content, err := r.Markdown(context.Background(), body, nil)
	if err != nil {
		return nil, err
	}
	return r.ExecArticle(ArticleData{Title: title, Date: created, Updated: updated, Root: "../", Content: content})
}

// ExecArticle executes the article template with pre-rendered content.
func (r *Renderer) ExecArticle(data ArticleData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.article.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", ArticleTemplate, err)
	}
	return buf.Bytes(), nil
}

// RenderIndex executes the index template.
func (r *Renderer) RenderIndex(data IndexData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", IndexTemplate, err)
	}
	return buf.Bytes(), nil
}
