package notepub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTimes = FileTimes{
	Birth:  time.Date(2022, 3, 4, 23, 59, 0, 0, time.UTC),
	Modify: time.Date(2022, 6, 7, 12, 0, 0, 0, time.UTC),
}

func TestBuildNoteDefaultsFromFilesystem(t *testing.T) {
	n := BuildNote("journal/My First Note.md", testTimes, Header{Tags: []string{"public"}}, "body")

	assert.Equal(t, "journal/My First Note.md", n.Path)
	assert.Equal(t, "My First Note", n.Title)
	assert.Equal(t, "2022-03-04", n.Created)
	assert.Equal(t, "2022-06-07", n.Updated)
	assert.True(t, n.Public)
	assert.Equal(t, "my-first-note", n.Slug)
	assert.Equal(t, "body", n.Body)
}

func TestBuildNoteHeaderOverrides(t *testing.T) {
	h := Header{
		Tags:    []string{"go", "public"},
		Title:   "Custom",
		Created: "2021-01-02",
		Updated: "2021-02-03",
	}
	n := BuildNote("whatever.md", testTimes, h, "")

	assert.Equal(t, "Custom", n.Title)
	assert.Equal(t, "2021-01-02", n.Created)
	assert.Equal(t, "2021-02-03", n.Updated)
	assert.Equal(t, "custom", n.Slug)
	assert.Equal(t, []string{"go", "public"}, n.Tags)
}

func TestBuildNoteDatesAreUTC(t *testing.T) {
	loc := time.FixedZone("east", 10*60*60)
	times := FileTimes{
		Birth:  time.Date(2022, 3, 5, 8, 0, 0, 0, loc),
		Modify: time.Date(2022, 3, 5, 8, 0, 0, 0, loc),
	}
	n := BuildNote("a.md", times, Header{}, "")
	assert.Equal(t, "2022-03-04", n.Created)
	assert.Equal(t, "2022-03-04", n.Updated)
}

func TestBuildNotePrivateHasNoSlug(t *testing.T) {
	n := BuildNote("draft.md", testTimes, Header{Tags: []string{"draft"}}, "")
	assert.False(t, n.Public)
	assert.Empty(t, n.Slug)
}

func TestParseNoteWithoutHeaderIsPrivate(t *testing.T) {
	n, err := ParseNote("b.md", "no front matter here\n", testTimes)
	require.NoError(t, err)
	assert.False(t, n.Public)
	assert.Equal(t, "b", n.Title)
	assert.Equal(t, "no front matter here\n", n.Body)
}

func TestParseNoteInvalidDateIsHeaderError(t *testing.T) {
	_, err := ParseNote("a.md", "---\ntags: [public]\ncreated: someday\n---\n", testTimes)
	var he *HeaderError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "a.md", he.Path)
}

func TestNoteYearAndLink(t *testing.T) {
	n := Note{Created: "2024-01-10", Slug: "hello"}
	assert.Equal(t, "2024", n.Year())
	assert.Equal(t, "articles/hello.html", n.Link())
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a.md", "a"},
		{"dir/sub/Note Title.md", "Note Title"},
		{"weird.md.md", "weird.md"},
	}
	for _, tt := range tests {
		if got := TitleFromPath(tt.input); got != tt.expected {
			t.Errorf("TitleFromPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
