package notepub

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// HeaderError reports a note whose YAML header could not be used. The note is
// skipped; publishing continues with the remaining notes.
type HeaderError struct {
	Path string
	Err  error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("parse header %s: %v", e.Path, e.Err)
}

func (e *HeaderError) Unwrap() error { return e.Err }

// SplitFrontMatter splits raw into the text between the first two lines equal
// to "---" (ignoring surrounding whitespace) and the text after the second.
// With fewer than two delimiter lines ok is false and body is raw unchanged.
func SplitFrontMatter(raw string) (header, body string, ok bool) {
	lines := strings.Split(raw, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != frontMatterDelim {
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		return strings.Join(lines[start+1:i], "\n"), strings.Join(lines[i+1:], "\n"), true
	}
	return "", raw, false
}

// Header holds the recognized front-matter keys. Dates are normalized to
// YYYY-MM-DD; empty strings mean the key was absent.
type Header struct {
	Tags    []string
	Title   string
	Created string
	Updated string
	Summary string
}

// HasTag reports whether tags contains tag exactly.
func (h Header) HasTag(tag string) bool {
	for _, t := range h.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type rawHeader struct {
	Tags    tagList   `yaml:"tags"`
	Title   string    `yaml:"title"`
	Created yaml.Node `yaml:"created"`
	Updated yaml.Node `yaml:"updated"`
	Summary string    `yaml:"summary"`
}

// tagList accepts either a YAML sequence or a single scalar. Non-scalar
// items of a sequence are dropped.
type tagList []string

func (t *tagList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			*t = nil
			return nil
		}
		*t = tagList{n.Value}
		return nil
	case yaml.SequenceNode:
		out := make(tagList, 0, len(n.Content))
		for _, item := range n.Content {
			// Nested lists and maps can never equal a tag.
			if item.Kind == yaml.ScalarNode {
				out = append(out, item.Value)
			}
		}
		*t = out
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a list", n.Line)
	}
}

// ParseHeader decodes a YAML header. Unknown keys are ignored.
func ParseHeader(header string) (Header, error) {
	var raw rawHeader
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return Header{}, err
	}
	h := Header{
		Tags:    []string(raw.Tags),
		Title:   strings.TrimSpace(raw.Title),
		Summary: strings.TrimSpace(raw.Summary),
	}
	var err error
	if h.Created, err = headerDate(&raw.Created); err != nil {
		return Header{}, fmt.Errorf("created: %w", err)
	}
	if h.Updated, err = headerDate(&raw.Updated); err != nil {
		return Header{}, fmt.Errorf("updated: %w", err)
	}
	return h, nil
}

// DateLayout is the calendar-day format used for every note date.
const DateLayout = "2006-01-02"

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05.999999999 -07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// headerDate reads a created or updated value. An unquoted date-time
// without a zone is a YAML timestamp and therefore UTC; quoted text goes
// through normalizeDate like any other string.
func headerDate(n *yaml.Node) (string, error) {
	switch {
	case n.Kind == 0:
		return "", nil
	case n.Kind != yaml.ScalarNode:
		return "", fmt.Errorf("line %d: expected a date", n.Line)
	case n.ShortTag() == "!!null":
		return "", nil
	}
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0 {
		if t, ok := parseTimestamp(n.Value); ok {
			return t.UTC().Format(DateLayout), nil
		}
	}
	return normalizeDate(n.Value)
}

// timestampLayouts are the zoneless date-times YAML 1.1 resolves as
// timestamps. Seconds are required.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02t15:04:05.999999999",
}

func parseTimestamp(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeDate converts a front-matter date to its UTC calendar day. Bare
// dates are taken as UTC; date-times without a zone as local time.
func normalizeDate(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t.Format(DateLayout), nil
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC().Format(DateLayout), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t.UTC().Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", v)
}
