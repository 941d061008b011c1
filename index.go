package notepub

import (
	"sort"
)

// YearGroup is one section of the site index.
type YearGroup struct {
	Year  string
	Posts []Note
}

// GroupByYear groups notes by the year they were created. Years are ordered
// newest first; within a year notes are ordered by creation date descending,
// then by slug ascending.
func GroupByYear(notes []Note) []YearGroup {
	sorted := append([]Note(nil), notes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Created != sorted[j].Created {
			return sorted[i].Created > sorted[j].Created
		}
		return sorted[i].Slug < sorted[j].Slug
	})

	var groups []YearGroup
	for _, n := range sorted {
		year := n.Year()
		if len(groups) == 0 || groups[len(groups)-1].Year != year {
			groups = append(groups, YearGroup{Year: year})
		}
		last := &groups[len(groups)-1]
		last.Posts = append(last.Posts, n)
	}
	return groups
}

// FilterPublic returns the public notes in their original order.
func FilterPublic(notes []Note) []Note {
	var out []Note
	for _, n := range notes {
		if n.Public {
			out = append(out, n)
		}
	}
	return out
}

// TagPage lists the public notes sharing a tag.
type TagPage struct {
	Name  string
	Slug  string
	Notes []Note
}

// TagIndex collects a page per tag, excluding the public marker. Tags that
// slugify identically share a page named after the first spelling seen.
// Pages are ordered by slug.
func TagIndex(notes []Note) []TagPage {
	bySlug := make(map[string]*TagPage)
	for _, n := range notes {
		seen := make(map[string]struct{}, len(n.Tags))
		for _, t := range n.Tags {
			slug := Slugify(t)
			if t == PublicTag || slug == "" {
				continue
			}
			if _, dup := seen[slug]; dup {
				continue
			}
			seen[slug] = struct{}{}
			page, ok := bySlug[slug]
			if !ok {
				page = &TagPage{Name: t, Slug: slug}
				bySlug[slug] = page
			}
			page.Notes = append(page.Notes, n)
		}
	}
	pages := make([]TagPage, 0, len(bySlug))
	for _, p := range bySlug {
		pages = append(pages, *p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages
}
