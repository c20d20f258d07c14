// Package render composes complete HTML documents from resolved page
// content and the immutable site identity. Escaping happens here via
// html/template at every interpolation point; matching normalization
// lives in textnorm and the two are never conflated.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/videostream/videostream-edge-go/internal/model"
	"github.com/videostream/videostream-edge-go/internal/page"
	"github.com/videostream/videostream-edge-go/internal/textnorm"
)

// Site is the immutable site identity injected at startup.
type Site struct {
	Name        string
	URL         string // public origin, no trailing slash
	Logo        string
	Description string
	Minified    bool
}

// Meta carries the per-page SEO head fields.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string // empty means the default index,follow
	Image       string
	OGType      string
}

// Renderer renders the site's documents.
type Renderer struct {
	site Site
	tmpl *template.Template
}

// New parses the document templates and returns a Renderer for the
// given site.
func New(site Site) (*Renderer, error) {
	site.URL = strings.TrimSuffix(site.URL, "/")

	t := template.New("layout").Funcs(template.FuncMap{
		"slug": Slug,
	})
	for _, src := range []string{layoutTmpl, cardTmpl, listingTmpl, detailTmpl, searchTmpl, notFoundTmpl} {
		if _, err := t.Parse(src); err != nil {
			return nil, fmt.Errorf("parsing templates: %w", err)
		}
	}
	return &Renderer{site: site, tmpl: t}, nil
}

// Slug converts free text to the dash-joined form used in /f/ links.
func Slug(text string) string {
	return strings.ReplaceAll(textnorm.Normalize(text), " ", "-")
}

// videoVM wraps a record with presentation helpers for the templates.
type videoVM struct {
	model.Video
}

// ViewsLabel formats the view count the way the cards show it.
func (v videoVM) ViewsLabel() string {
	n := int64(v.Views)
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string { return strings.TrimSuffix(s, ".0") }

func wrapVideos(videos []model.Video) []videoVM {
	out := make([]videoVM, len(videos))
	for i, v := range videos {
		out[i] = videoVM{v}
	}
	return out
}

// layoutData is the root template context.
type layoutData struct {
	Site           Site
	Meta           Meta
	Query          string // current search input value
	StructuredData template.JS
	Body           template.HTML
}

func (r *Renderer) render(content string, contentData any, meta Meta, query string, jsonLD []byte) ([]byte, error) {
	if meta.OGType == "" {
		meta.OGType = "website"
	}

	var body bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&body, content, contentData); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", content, err)
	}

	data := layoutData{
		Site:  r.site,
		Meta:  meta,
		Query: query,
		Body:  template.HTML(body.String()),
	}
	if len(jsonLD) > 0 && !r.site.Minified {
		data.StructuredData = template.JS(jsonLD)
	}

	var out bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&out, "layout", data); err != nil {
		return nil, fmt.Errorf("rendering layout: %w", err)
	}
	return out.Bytes(), nil
}

type listingData struct {
	Heading  string
	Videos   []videoVM
	PrevPath string
	NextPath string
}

// Listing renders a page of the newest-first video listing. Page 1 is
// canonical at the site root and indexable; deeper pages carry
// noindex,follow so crawlers walk them without indexing duplicates.
func (r *Renderer) Listing(p *page.Page) ([]byte, error) {
	meta := Meta{
		Title:       fmt.Sprintf("%s - Nonton Video Terbaru", r.site.Name),
		Description: r.site.Description,
		Canonical:   r.site.URL + "/",
	}
	heading := "Video Terbaru"
	var jsonLD []byte
	if p.Number == 1 {
		jsonLD = r.homeGraph()
	} else {
		meta.Title = fmt.Sprintf("Video Terbaru Halaman %d - %s", p.Number, r.site.Name)
		meta.Canonical = fmt.Sprintf("%s/page/%d", r.site.URL, p.Number)
		meta.Robots = "noindex,follow"
		heading = fmt.Sprintf("Video Terbaru - Halaman %d", p.Number)
	}

	return r.render("listing", listingData{
		Heading:  heading,
		Videos:   wrapVideos(p.Videos),
		PrevPath: p.PrevPath,
		NextPath: p.NextPath,
	}, meta, "", jsonLD)
}

type detailData struct {
	Video   videoVM
	Related []videoVM
}

// Detail renders a video page with its related list.
func (r *Renderer) Detail(v model.Video, related []model.Video) ([]byte, error) {
	desc := v.Description
	if desc == "" {
		desc = fmt.Sprintf("Nonton %s di %s.", v.Title, r.site.Name)
	}
	meta := Meta{
		Title:       fmt.Sprintf("%s - %s", v.Title, r.site.Name),
		Description: desc,
		Canonical:   r.site.URL + "/e/" + v.ID,
		Image:       v.PosterImage(),
		OGType:      "video.other",
	}

	return r.render("detail", detailData{
		Video:   videoVM{v},
		Related: wrapVideos(related),
	}, meta, "", r.detailGraph(v))
}

type searchData struct {
	Heading      string
	Videos       []videoVM
	EmptyMessage string
}

// Search renders a result page. An empty result set is a valid page,
// not an error; it carries noindex so thin pages stay out of the
// index.
func (r *Renderer) Search(query string, results []model.Video) ([]byte, error) {
	meta := Meta{
		Title:       fmt.Sprintf("Cari: %s - %s", query, r.site.Name),
		Description: fmt.Sprintf("Hasil pencarian untuk %q di %s.", query, r.site.Name),
		Canonical:   r.site.URL + "/f/" + Slug(query),
	}
	if len(results) == 0 {
		meta.Robots = "noindex,follow"
	}

	return r.render("search", searchData{
		Heading:      fmt.Sprintf("Hasil pencarian: %s", query),
		Videos:       wrapVideos(results),
		EmptyMessage: fmt.Sprintf("Tidak ada hasil untuk %q. Coba kata kunci lain.", query),
	}, meta, query, nil)
}

// SearchPrompt renders the inline "query too short" prompt. Upstream
// convention serves this with a success status.
func (r *Renderer) SearchPrompt(query string) ([]byte, error) {
	meta := Meta{
		Title:  fmt.Sprintf("Cari Video - %s", r.site.Name),
		Robots: "noindex,follow",
	}
	return r.render("search", searchData{
		Heading:      "Cari Video",
		EmptyMessage: "Masukkan kata kunci minimal 2 karakter.",
	}, meta, query, nil)
}

// NotFound renders the shared 404 document. Missing and malformed
// data both land here.
func (r *Renderer) NotFound() ([]byte, error) {
	meta := Meta{
		Title:  fmt.Sprintf("Tidak Ditemukan - %s", r.site.Name),
		Robots: "noindex,follow",
	}
	return r.render("notfound", struct{}{}, meta, "", nil)
}
