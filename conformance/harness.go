// Package conformance provides a test harness for verifying the edge
// renderer's HTTP contract: routes, headers, degrade behavior and
// navigation links.
package conformance

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/videostream/videostream-edge-go/internal/cache"
	"github.com/videostream/videostream-edge-go/internal/render"
	"github.com/videostream/videostream-edge-go/internal/resolve"
	"github.com/videostream/videostream-edge-go/internal/server"
	"github.com/videostream/videostream-edge-go/internal/store"
)

// Config holds configuration for the conformance test harness.
type Config struct {
	// Minified selects the compact rendering variant
	Minified bool

	// PageSize is the upstream listing page size
	PageSize int

	// Total is the advertised sitewide record count
	Total int
}

// Harness drives a fully wired edge server over a seeded dataset.
type Harness struct {
	server *httptest.Server
	site   render.Site
}

// NewHarness creates a new conformance test harness over an in-memory
// dataset seeded with a known set of records.
func NewHarness(cfg Config) (*Harness, error) {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	if cfg.Total <= 0 {
		cfg.Total = 401
	}

	records := []map[string]any{
		{"f": "abc123", "t": "Kucing Lucu", "kt": "Hewan", "vw": 4821, "d": 193},
		{"f": "def456", "t": "Kucing Tidur", "kt": "Hewan", "vw": 300},
	}
	lookup := map[string]string{
		// Points at a shard the store does not hold. Conformance
		// requires this id to render exactly like an unknown one.
		"ghost": "zz",
	}
	shards := make(map[string][]map[string]any)
	for _, rec := range records {
		id := rec["f"].(string)
		key := resolve.ShardKey(id)
		lookup[id] = key
		shards[key] = append(shards[key], rec)
	}

	docs := map[string]any{
		"/data/lookup_shard.json": lookup,
		"/data/index/ku.json":     records,
		"/data/meta.json":         map[string]any{"total": cfg.Total},
		"/data/list/1.json": map[string]any{
			"result": map[string]any{"files": []map[string]any{
				{"file_code": "abc123", "title": "Kucing Lucu", "views": 4821},
			}},
		},
		"/data/list/2.json": map[string]any{
			"result": map[string]any{"files": []map[string]any{
				{"file_code": "def456", "title": "Kucing Tidur", "views": 300},
			}},
		},
	}
	for key, shard := range shards {
		docs["/data/detail/"+key+".json"] = shard
	}

	site := render.Site{
		Name:        "VideoStream",
		URL:         "https://videostream.example",
		Logo:        "/images/logo.png",
		Description: "Video viral terbaru",
		Minified:    cfg.Minified,
	}
	renderer, err := render.New(site)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	mux := server.NewMux(server.Options{
		Store:        store.NewMemoryJSON(docs),
		Cache:        cache.NewMemory(),
		Renderer:     renderer,
		CacheTTL:     time.Hour,
		PageSize:     cfg.PageSize,
		SearchLimit:  50,
		RelatedLimit: 16,
		SitemapLimit: 1000,
	})

	return &Harness{server: httptest.NewServer(mux), site: site}, nil
}

// Close shuts down the harness server.
func (h *Harness) Close() {
	h.server.Close()
}

func (h *Harness) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(h.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return resp, string(raw)
}

// RunConformanceTests runs the HTTP contract suite.
func (h *Harness) RunConformanceTests(t *testing.T) {
	t.Run("CacheHeaders", func(t *testing.T) {
		resp, _ := h.get(t, "/")
		if cc := resp.Header.Get("Cache-Control"); cc != "public, max-age=3600, s-maxage=86400" {
			t.Fatalf("Cache-Control = %q", cc)
		}
	})

	t.Run("CorrelationID", func(t *testing.T) {
		resp, _ := h.get(t, "/")
		if resp.Header.Get("X-Correlation-Id") == "" {
			t.Fatal("missing X-Correlation-Id")
		}
	})

	t.Run("NotFoundDegrade", func(t *testing.T) {
		ghost, ghostBody := h.get(t, "/e/ghost")
		unknown, unknownBody := h.get(t, "/e/doesnotexist")
		if ghost.StatusCode != http.StatusNotFound || unknown.StatusCode != http.StatusNotFound {
			t.Fatalf("statuses = %d, %d", ghost.StatusCode, unknown.StatusCode)
		}
		if ghostBody != unknownBody {
			t.Fatal("shard outage and unknown id rendered different documents")
		}
	})

	t.Run("PaginationLinks", func(t *testing.T) {
		_, body := h.get(t, "/page/2")
		if !strings.Contains(body, `href="/" rel="prev"`) {
			t.Fatal("page 2 previous link must point at the root")
		}
	})

	t.Run("SearchContract", func(t *testing.T) {
		short, _ := h.get(t, "/f/a")
		if short.StatusCode != http.StatusOK {
			t.Fatalf("short query status = %d, want 200", short.StatusCode)
		}
		resp, body := h.get(t, "/f/kucing")
		if resp.StatusCode != http.StatusOK || !strings.Contains(body, "/e/abc123") {
			t.Fatalf("search failed: status %d", resp.StatusCode)
		}
	})

	t.Run("MachineDocuments", func(t *testing.T) {
		sm, body := h.get(t, "/sitemap.xml")
		if sm.StatusCode != http.StatusOK || !strings.Contains(body, "<urlset") {
			t.Fatalf("sitemap status = %d", sm.StatusCode)
		}
		vs, body := h.get(t, "/video-sitemap.xml")
		if vs.StatusCode != http.StatusOK || !strings.Contains(body, "video:video") {
			t.Fatalf("video sitemap status = %d", vs.StatusCode)
		}
		rb, body := h.get(t, "/robots.txt")
		if rb.StatusCode != http.StatusOK || !strings.Contains(body, "Sitemap:") {
			t.Fatalf("robots status = %d", rb.StatusCode)
		}
	})
}
