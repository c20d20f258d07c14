// internal/render/seo.go
// JSON-LD structured data graphs. Objects are assembled as plain maps
// and marshalled once; the layout embeds the result verbatim inside
// the ld+json script tag.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/videostream/videostream-edge-go/internal/model"
)

func (r *Renderer) organization() map[string]any {
	return map[string]any{
		"@type": "Organization",
		"@id":   r.site.URL + "/#organization",
		"name":  r.site.Name,
		"url":   r.site.URL + "/",
		"logo":  r.absoluteURL(r.site.Logo),
	}
}

func (r *Renderer) website() map[string]any {
	return map[string]any{
		"@type": "WebSite",
		"@id":   r.site.URL + "/#website",
		"name":  r.site.Name,
		"url":   r.site.URL + "/",
		"potentialAction": map[string]any{
			"@type":       "SearchAction",
			"target":      r.site.URL + "/f/?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	}
}

// homeGraph is the structured data for the site root.
func (r *Renderer) homeGraph() []byte {
	return marshalGraph(r.organization(), r.website())
}

// detailGraph is the structured data for one video page.
func (r *Renderer) detailGraph(v model.Video) []byte {
	pageURL := r.site.URL + "/e/" + v.ID

	video := map[string]any{
		"@type":       "VideoObject",
		"@id":         pageURL + "#video",
		"name":        v.Title,
		"description": v.Description,
		"url":         pageURL,
	}
	if img := v.PosterImage(); img != "" {
		video["thumbnailUrl"] = img
	}
	if v.Uploaded != "" {
		video["uploadDate"] = v.Uploaded
	}
	if d := durationISO(v); d != "" {
		video["duration"] = d
	}
	if v.PlaybackURL != "" {
		video["embedUrl"] = v.PlaybackURL
	}
	if v.Views > 0 {
		video["interactionStatistic"] = map[string]any{
			"@type":                "InteractionCounter",
			"interactionType":      map[string]any{"@type": "WatchAction"},
			"userInteractionCount": int64(v.Views),
		}
	}

	webpage := map[string]any{
		"@type":    "WebPage",
		"@id":      pageURL,
		"url":      pageURL,
		"name":     v.Title,
		"isPartOf": map[string]any{"@id": r.site.URL + "/#website"},
	}

	breadcrumb := map[string]any{
		"@type": "BreadcrumbList",
		"@id":   pageURL + "#breadcrumb",
		"itemListElement": []map[string]any{
			{"@type": "ListItem", "position": 1, "name": r.site.Name, "item": r.site.URL + "/"},
			{"@type": "ListItem", "position": 2, "name": v.Title, "item": pageURL},
		},
	}

	return marshalGraph(r.organization(), r.website(), webpage, video, breadcrumb)
}

func marshalGraph(nodes ...map[string]any) []byte {
	doc := map[string]any{
		"@context": "https://schema.org",
		"@graph":   nodes,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	return raw
}

// durationISO returns the ISO-8601 duration, preferring the dataset's
// preformatted value over one derived from seconds.
func durationISO(v model.Video) string {
	if v.DurationISO != "" {
		return v.DurationISO
	}
	if v.Seconds > 0 {
		return fmt.Sprintf("PT%dS", v.Seconds)
	}
	return ""
}

func (r *Renderer) absoluteURL(path string) string {
	if path == "" {
		return ""
	}
	if len(path) > 0 && path[0] == '/' {
		return r.site.URL + path
	}
	return path
}
