package notepub

import (
	"io/fs"
	"path"
	"strings"
)

// MarkdownExt is the file extension recognized as a note.
const MarkdownExt = ".md"

// Rule matches a directory entry by name.
type Rule func(name string) bool

// HasSuffix returns a Rule matching names that end with suffix.
func HasSuffix(suffix string) Rule {
	return func(name string) bool {
		return strings.HasSuffix(name, suffix)
	}
}

// File is a discovered note, addressed relative to the walked filesystem.
type File struct {
	Path string // slash-separated, relative to the notes root
}

// Walker lists note files in a tree. Entries matching a SkipDir rule are not
// descended into (or included); files matching any Include rule are returned.
type Walker struct {
	SkipDir []Rule
	Include []Rule
}

// DefaultWalker skips the configured tool-config directories and includes
// Markdown files.
func DefaultWalker(cfg Config) *Walker {
	w := &Walker{Include: []Rule{HasSuffix(MarkdownExt)}}
	for _, s := range cfg.SkipSuffixes {
		w.SkipDir = append(w.SkipDir, HasSuffix(s))
	}
	return w
}

// Discover walks fsys from its root and returns matching files in lexical order.
// Symlinked directories are not followed.
func (w *Walker) Discover(fsys fs.FS) ([]File, error) {
	var files []File
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		name := d.Name()
		if matchAny(w.SkipDir, name) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if matchAny(w.Include, name) {
			files = append(files, File{Path: p})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Dirs returns every directory under fsys (including the root, as ".") that
// Discover would descend into.
func (w *Walker) Dirs(fsys fs.FS) ([]string, error) {
	dirs := []string{"."}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." || !d.IsDir() {
			return nil
		}
		if matchAny(w.SkipDir, d.Name()) {
			return fs.SkipDir
		}
		dirs = append(dirs, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// Skipped reports whether any element of the slash-separated path p is
// excluded by a SkipDir rule.
func (w *Walker) Skipped(p string) bool {
	for _, part := range strings.Split(path.Clean(p), "/") {
		if matchAny(w.SkipDir, part) {
			return true
		}
	}
	return false
}

func matchAny(rules []Rule, name string) bool {
	for _, r := range rules {
		if r(name) {
			return true
		}
	}
	return false
}
