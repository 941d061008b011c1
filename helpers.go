package notepub

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

// Slugify converts a title to a URL-safe slug: lowercase ASCII letters and
// digits, with every other run of characters collapsed to a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) == 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// slugSet hands out unique slugs. The first claimant keeps a slug; later ones
// get a numeric suffix.
type slugSet map[string]struct{}

func (s slugSet) claim(slug string) (string, bool) {
	if slug == "" {
		slug = "untitled"
	}
	if _, taken := s[slug]; !taken {
		s[slug] = struct{}{}
		return slug, false
	}
	for i := 2; ; i++ {
		candidate := slug + "-" + strconv.Itoa(i)
		if _, taken := s[candidate]; !taken {
			s[candidate] = struct{}{}
			return candidate, true
		}
	}
}
