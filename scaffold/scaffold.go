// Package scaffold provides embedded project files for the notepub CLI
// `new` command.
package scaffold

import (
	"embed"
	"path"
)

// Templates contains all scaffold files under templates/. Files with a .tmpl
// suffix are Go text/templates; everything else is copied verbatim.
//
//go:embed all:templates
var Templates embed.FS

// Root is the directory inside Templates that maps to the project root.
const Root = "templates"

// DefaultTemplates returns the stock article and index page templates.
func DefaultTemplates() (article, index string, err error) {
	a, err := Templates.ReadFile(path.Join(Root, "templates", "article.html"))
	if err != nil {
		return "", "", err
	}
	i, err := Templates.ReadFile(path.Join(Root, "templates", "index.html"))
	if err != nil {
		return "", "", err
	}
	return string(a), string(i), nil
}
