// internal/render/sitemap.go
// Sitemap and robots emitters. The page sitemap lists the root plus
// the deeper listing pages; the video sitemap lists detail pages with
// the video extension schema, capped at a configured entry count.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/videostream/videostream-edge-go/internal/model"
)

const (
	xmlnsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xmlnsVideo   = "http://www.google.com/schemas/sitemap-video/1.1"
)

type urlset struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	Video   string     `xml:"xmlns:video,attr,omitempty"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string        `xml:"loc"`
	ChangeFreq string        `xml:"changefreq,omitempty"`
	Priority   string        `xml:"priority,omitempty"`
	Video      *videoSitemap `xml:"video:video,omitempty"`
}

type videoSitemap struct {
	Title        string `xml:"video:title"`
	Description  string `xml:"video:description,omitempty"`
	ThumbnailLoc string `xml:"video:thumbnail_loc,omitempty"`
	PlayerLoc    string `xml:"video:player_loc,omitempty"`
	Duration     int    `xml:"video:duration,omitempty"`
	ViewCount    int64  `xml:"video:view_count,omitempty"`
	PubDate      string `xml:"video:publication_date,omitempty"`
}

// Sitemap emits the page sitemap: the root, then /page/2 onward.
func (r *Renderer) Sitemap(totalPages int) ([]byte, error) {
	set := urlset{Xmlns: xmlnsSitemap}
	set.URLs = append(set.URLs, urlEntry{
		Loc:        r.site.URL + "/",
		ChangeFreq: "hourly",
		Priority:   "1.0",
	})
	for n := 2; n <= totalPages; n++ {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/page/%d", r.site.URL, n),
			ChangeFreq: "daily",
			Priority:   "0.6",
		})
	}
	return marshalXML(set)
}

// VideoSitemap emits the video sitemap for the given records, at most
// limit entries.
func (r *Renderer) VideoSitemap(videos []model.Video, limit int) ([]byte, error) {
	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	set := urlset{Xmlns: xmlnsSitemap, Video: xmlnsVideo}
	for _, v := range videos {
		entry := urlEntry{Loc: r.site.URL + "/e/" + v.ID}
		vs := &videoSitemap{
			Title:        v.Title,
			Description:  v.Description,
			ThumbnailLoc: v.PosterImage(),
			PlayerLoc:    v.PlaybackURL,
			Duration:     v.Seconds,
			ViewCount:    int64(v.Views),
			PubDate:      v.Uploaded,
		}
		entry.Video = vs
		set.URLs = append(set.URLs, entry)
	}
	return marshalXML(set)
}

// Robots emits robots.txt pointing crawlers at both sitemaps. Search
// result pages are crawl-blocked; their content is reachable through
// the listing and detail pages.
func (r *Renderer) Robots() []byte {
	var b bytes.Buffer
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /f/\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", r.site.URL)
	fmt.Fprintf(&b, "Sitemap: %s/video-sitemap.xml\n", r.site.URL)
	return b.Bytes()
}

func marshalXML(v any) ([]byte, error) {
	raw, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sitemap: %w", err)
	}
	return append([]byte(xml.Header), raw...), nil
}
