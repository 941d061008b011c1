package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/eringen/notepub/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	ProjectName string
	SiteName    string
}

func runNew(name string) error {
	dirName := filepath.Base(filepath.Clean(name))

	// Check if directory already exists.
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("directory %q already exists", name)
	}

	data := scaffoldData{
		ProjectName: dirName,
		SiteName:    toTitle(dirName),
	}

	fmt.Printf("Creating new notepub project: %s\n\n", dirName)
	if err := writeScaffold(name, data); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", name)
	fmt.Println("  notepub publish --no-deploy")
	fmt.Println("  notepub serve --no-deploy")
	fmt.Println()
	fmt.Println("Edit templates/*.html to change the site layout.")
	fmt.Println("Set DEPLOY_COMMAND in .env to choose where the site is published.")
	return nil
}

// writeScaffold copies the embedded project into dir. Files ending in .tmpl
// are executed as text/templates with the suffix stripped.
func writeScaffold(dir string, data scaffoldData) error {
	return fs.WalkDir(scaffold.Templates, scaffold.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(scaffold.Root, path)
		if err != nil {
			return err
		}
		outPath := filepath.Join(dir, relPath)
		isTemplate := strings.HasSuffix(outPath, ".tmpl")
		outPath = strings.TrimSuffix(outPath, ".tmpl")

		switch filepath.Base(outPath) {
		case "dotenv":
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		case "gitignore":
			outPath = filepath.Join(filepath.Dir(outPath), ".gitignore")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}

		if !isTemplate {
			if err := os.WriteFile(outPath, content, 0o644); err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			fmt.Printf("  created %s\n", outPath)
			return nil
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}

		fmt.Printf("  created %s\n", outPath)
		return nil
	})
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-notes" -> "My Notes", "notes" -> "Notes"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
