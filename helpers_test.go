package notepub

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"--already--hyphenated--", "already-hyphenated"},
		{"C++ & Go: a comparison!", "c-go-a-comparison"},
		{"Café au lait", "caf-au-lait"},
		{"2024 Review", "2024-review"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSlugifyShape(t *testing.T) {
	valid := regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)
	inputs := []string{
		"Hello, World", "ÜBER cool", "a\tb\nc", "___", "x--y", "-x-", "Mixed CASE 123", "日本語 title",
	}
	for _, in := range inputs {
		got := Slugify(in)
		assert.Regexp(t, valid, got, "Slugify(%q)", in)
		assert.Equal(t, got, Slugify(in), "Slugify(%q) must be stable", in)
	}
}

func TestSlugifyEquivalentTitles(t *testing.T) {
	assert.Equal(t, Slugify("Hello World"), Slugify("hello   WORLD!"))
}

func TestSlugSetClaim(t *testing.T) {
	s := slugSet{}

	got, renamed := s.claim("note")
	assert.Equal(t, "note", got)
	assert.False(t, renamed)

	got, renamed = s.claim("note")
	assert.Equal(t, "note-2", got)
	assert.True(t, renamed)

	got, _ = s.claim("note")
	assert.Equal(t, "note-3", got)

	got, _ = s.claim("")
	assert.Equal(t, "untitled", got)
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com/"},
		{"https://example.com/", nil, "https://example.com/"},
		{"https://example.com", []string{"articles/a.html"}, "https://example.com/articles/a.html"},
		{"https://example.com/notes/", []string{"tags", "go.html"}, "https://example.com/notes/tags/go.html"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}
