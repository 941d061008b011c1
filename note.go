package notepub

import (
	"html/template"
	"path"
	"strings"
	"time"
)

// PublicTag marks a note for publication.
const PublicTag = "public"

// Note is one discovered Markdown file. Slug and Content are only set for
// public notes.
type Note struct {
	Path    string // relative to the notes root
	Title   string
	Created string // YYYY-MM-DD
	Updated string // YYYY-MM-DD
	Tags    []string
	Summary string
	Public  bool
	Slug    string
	Body    string
	Content template.HTML
}

// Year returns the year component of Created.
func (n Note) Year() string {
	year, _, _ := strings.Cut(n.Created, "-")
	return year
}

// Link is the article path relative to the output root.
func (n Note) Link() string {
	return "articles/" + n.Slug + ".html"
}

// FileTimes carries the filesystem timestamps of a note.
type FileTimes struct {
	Birth  time.Time
	Modify time.Time
}

// TitleFromPath returns the file name without its Markdown extension.
func TitleFromPath(p string) string {
	return strings.TrimSuffix(path.Base(p), MarkdownExt)
}

// BuildNote merges filesystem defaults with front matter. Header values win
// when present and non-empty.
func BuildNote(p string, times FileTimes, h Header, body string) Note {
	n := Note{
		Path:    p,
		Title:   TitleFromPath(p),
		Created: times.Birth.UTC().Format(DateLayout),
		Updated: times.Modify.UTC().Format(DateLayout),
		Tags:    h.Tags,
		Summary: h.Summary,
		Public:  h.HasTag(PublicTag),
		Body:    body,
	}
	if h.Title != "" {
		n.Title = h.Title
	}
	if h.Created != "" {
		n.Created = h.Created
	}
	if h.Updated != "" {
		n.Updated = h.Updated
	}
	if n.Public {
		n.Slug = Slugify(n.Title)
	}
	return n
}
