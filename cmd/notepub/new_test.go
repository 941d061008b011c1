package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/notepub"
)

func TestToTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"notes", "Notes"},
		{"my-notes", "My Notes"},
		{"a--b", "A  B"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := toTitle(tt.input); got != tt.expected {
			t.Errorf("toTitle(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestWriteScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "garden")
	require.NoError(t, writeScaffold(dir, scaffoldData{ProjectName: "garden", SiteName: "Garden"}))

	for _, rel := range []string{
		".env.example",
		".gitignore",
		"templates/article.html",
		"templates/index.html",
		"sample-notes/welcome.md",
		"sample-notes/private.md",
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
	}
	assert.NoFileExists(t, filepath.Join(dir, "sample-notes", "welcome.md.tmpl"))

	env, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "SITE_NAME=Garden")
	assert.Contains(t, string(env), "https://garden.pages.dev")

	welcome, err := os.ReadFile(filepath.Join(dir, "sample-notes", "welcome.md"))
	require.NoError(t, err)
	assert.Contains(t, string(welcome), "title: Welcome to Garden")
}

func TestRunNewRefusesExistingDir(t *testing.T) {
	assert.Error(t, runNew(t.TempDir()))
}

func TestScaffoldedProjectPublishes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "garden")
	require.NoError(t, writeScaffold(dir, scaffoldData{ProjectName: "garden", SiteName: "Garden"}))

	app, err := notepub.New(notepub.Config{
		NotesDir:      filepath.Join(dir, "sample-notes"),
		OutputDir:     filepath.Join(dir, "output"),
		TemplatesDir:  filepath.Join(dir, "templates"),
		DeployCommand: []string{},
	}, notepub.WithoutHistory(), notepub.WithLog(notepub.NewLogger(os.Stderr, "error")))
	require.NoError(t, err)
	defer app.Close()

	run, err := app.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"welcome-to-garden"}, run.Articles)
	assert.FileExists(t, filepath.Join(dir, "output", "articles", "welcome-to-garden.html"))
}
