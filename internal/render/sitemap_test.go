package render

import (
	"strings"
	"testing"

	"github.com/videostream/videostream-edge-go/internal/model"
)

func TestSitemapListsRootAndDeepPages(t *testing.T) {
	r := newRenderer(t, testSite())

	out, err := r.Sitemap(3)
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	xml := string(out)

	if !strings.Contains(xml, "<loc>https://videostream.example/</loc>") {
		t.Error("root entry missing")
	}
	if !strings.Contains(xml, "<loc>https://videostream.example/page/2</loc>") ||
		!strings.Contains(xml, "<loc>https://videostream.example/page/3</loc>") {
		t.Error("deep page entries missing")
	}
	if strings.Contains(xml, "/page/1<") {
		t.Error("page 1 must appear as the root, not /page/1")
	}
}

func TestVideoSitemapEntriesAndCap(t *testing.T) {
	r := newRenderer(t, testSite())

	videos := make([]model.Video, 5)
	for i := range videos {
		videos[i] = model.Video{
			ID:       string(rune('a' + i)),
			Title:    "Video " + string(rune('a'+i)),
			Splash:   "https://img/splash.jpg",
			Seconds:  60,
			Views:    100,
			Uploaded: "2026-07-01T10:00:00Z",
		}
	}

	out, err := r.VideoSitemap(videos, 3)
	if err != nil {
		t.Fatalf("VideoSitemap: %v", err)
	}
	xml := string(out)

	if got := strings.Count(xml, "<video:video>"); got != 3 {
		t.Fatalf("entries = %d, want capped at 3", got)
	}
	for _, want := range []string{
		"<loc>https://videostream.example/e/a</loc>",
		"<video:title>Video a</video:title>",
		"<video:thumbnail_loc>https://img/splash.jpg</video:thumbnail_loc>",
		"<video:duration>60</video:duration>",
		"<video:publication_date>2026-07-01T10:00:00Z</video:publication_date>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("video sitemap missing %q", want)
		}
	}
}

func TestRobots(t *testing.T) {
	r := newRenderer(t, testSite())

	out := string(r.Robots())
	for _, want := range []string{
		"User-agent: *",
		"Disallow: /f/",
		"Sitemap: https://videostream.example/sitemap.xml",
		"Sitemap: https://videostream.example/video-sitemap.xml",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("robots.txt missing %q", want)
		}
	}
}
