package notepub

import (
	"bytes"
	"encoding/xml"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// RenderFeed builds an RSS 2.0 document for notes, which should already be in
// index order.
func RenderFeed(cfg Config, notes []Note) ([]byte, error) {
	items := make([]rssItem, 0, len(notes))
	for _, n := range notes {
		pubDate := ""
		if t, err := time.Parse(DateLayout, n.Created); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := BuildURL(cfg.SiteURL, n.Link())
		items = append(items, rssItem{
			Title:       n.Title,
			Link:        link,
			Description: n.Summary,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.SiteName,
			Link:        BuildURL(cfg.SiteURL),
			Description: cfg.SiteName,
			Items:       items,
		},
	}
	return encodeXML(feed)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// RenderSitemap builds a sitemap covering the index, every article and every
// tag page.
func RenderSitemap(cfg Config, notes []Note, tags []TagPage) ([]byte, error) {
	urls := []sitemapURL{
		{Loc: BuildURL(cfg.SiteURL)},
	}
	for _, n := range notes {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(cfg.SiteURL, n.Link()),
			LastMod: n.Updated,
		})
	}
	for _, t := range tags {
		urls = append(urls, sitemapURL{Loc: BuildURL(cfg.SiteURL, "tags", t.Slug+".html")})
	}
	return encodeXML(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func encodeXML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
