// internal/server/mux.go
// Package server implements the HTTP handlers and routing for the edge
// renderer. Incoming paths are classified by prefix into listing,
// detail, search and machine-document handlers; every handler converts
// failures into a rendered page, never into a leaked transport error.
package server

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/videostream/videostream-edge-go/internal/cache"
	vserrors "github.com/videostream/videostream-edge-go/internal/errors"
	"github.com/videostream/videostream-edge-go/internal/metrics"
	"github.com/videostream/videostream-edge-go/internal/model"
	"github.com/videostream/videostream-edge-go/internal/page"
	"github.com/videostream/videostream-edge-go/internal/rank"
	"github.com/videostream/videostream-edge-go/internal/render"
	"github.com/videostream/videostream-edge-go/internal/resolve"
	"github.com/videostream/videostream-edge-go/internal/store"
)

// ContextKey is used for context values to avoid collisions
// when storing values in request context
type ContextKey string

// ContextKeyCorrelationID stores the unique ID for request tracking
const ContextKeyCorrelationID ContextKey = "correlationId"

const (
	tracerName = "videostream-edge"

	htmlContentType = "text/html; charset=utf-8"
	xmlContentType  = "application/xml; charset=utf-8"

	// Edge cache policy for rendered pages: one hour fresh, up to a
	// day served stale by the CDN while revalidating.
	pageCacheControl = "public, max-age=3600, s-maxage=86400"
)

// Options carries the wired dependencies and bounds for the mux.
type Options struct {
	Store    store.Store
	Cache    cache.Cache
	Renderer *render.Renderer

	CacheTTL     time.Duration
	PageSize     int
	SearchLimit  int
	RelatedLimit int
	SitemapLimit int
}

// Mux handles HTTP requests for the edge renderer.
type Mux struct {
	mux      *http.ServeMux
	store    store.Store
	resolver *resolve.Resolver
	searcher *rank.Searcher
	pager    *page.Paginator
	renderer *render.Renderer
	cache    cache.Cache
	metrics  *metrics.Metrics

	cacheTTL     time.Duration
	pageSize     int
	searchLimit  int
	relatedLimit int
	sitemapLimit int
}

// NewMux creates the HTTP mux with all endpoints registered.
func NewMux(opts Options) *http.ServeMux {
	m := &Mux{
		mux:          http.NewServeMux(),
		store:        opts.Store,
		resolver:     resolve.New(opts.Store),
		searcher:     rank.NewSearcher(opts.Store),
		pager:        page.New(opts.Store, opts.PageSize),
		renderer:     opts.Renderer,
		cache:        opts.Cache,
		metrics:      metrics.NewMetrics(),
		cacheTTL:     opts.CacheTTL,
		pageSize:     opts.PageSize,
		searchLimit:  opts.SearchLimit,
		relatedLimit: opts.RelatedLimit,
		sitemapLimit: opts.SitemapLimit,
	}
	if m.searchLimit <= 0 {
		m.searchLimit = 50
	}
	if m.relatedLimit <= 0 {
		m.relatedLimit = 16
	}
	if m.sitemapLimit <= 0 {
		m.sitemapLimit = 1000
	}
	if m.cache == nil {
		m.cache = cache.NewNoop()
	}

	// Health and observability endpoints
	m.mux.HandleFunc("/healthz", m.handleHealthz)
	m.mux.HandleFunc("/readyz", m.handleReadyz)
	m.mux.Handle("/metrics", promhttp.Handler())

	// Rendered pages
	m.mux.HandleFunc("/", m.method("GET", m.withMiddleware("home", m.handleRoot)))
	m.mux.HandleFunc("/page/", m.method("GET", m.withMiddleware("page", m.handlePage)))
	m.mux.HandleFunc("/e/", m.method("GET", m.withMiddleware("detail", m.handleDetail)))
	m.mux.HandleFunc("/f/", m.method("GET", m.withMiddleware("search", m.handleSearch)))

	// Machine documents
	m.mux.HandleFunc("/sitemap.xml", m.method("GET", m.withMiddleware("sitemap", m.handleSitemap)))
	m.mux.HandleFunc("/video-sitemap.xml", m.method("GET", m.withMiddleware("video_sitemap", m.handleVideoSitemap)))
	m.mux.HandleFunc("/robots.txt", m.method("GET", m.withMiddleware("robots", m.handleRobots)))

	return m.mux
}

// method ensures the HTTP method matches the expected method
func (m *Mux) method(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// responseBuffer captures a handler's output so it can be stored in
// the response cache and measured before writing to the client.
type responseBuffer struct {
	status      int
	contentType string
	body        bytes.Buffer
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{status: http.StatusOK}
}

func (b *responseBuffer) write(status int, contentType string, body []byte) {
	b.status = status
	b.contentType = contentType
	b.body.Reset()
	b.body.Write(body)
}

// withMiddleware applies correlation IDs, the response cache, metrics
// and request logging around a page handler.
func (m *Mux) withMiddleware(route string, h func(ctx context.Context, r *http.Request, b *responseBuffer)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Add correlation ID if not present
		correlationID := r.Header.Get("X-Correlation-Id")
		if correlationID == "" {
			correlationID = uuid.New().String()
		}
		ctx := context.WithValue(r.Context(), ContextKeyCorrelationID, correlationID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Correlation-Id", correlationID)

		cacheKey := r.URL.Path
		if r.URL.RawQuery != "" {
			cacheKey += "?" + r.URL.RawQuery
		}

		// nocache bypasses the response cache for debugging
		bypass := r.URL.Query().Has("nocache")
		if bypass {
			m.metrics.CacheEventTotal.WithLabelValues("bypass").Inc()
		} else if entry, ok := m.cache.Get(ctx, cacheKey); ok {
			m.metrics.CacheEventTotal.WithLabelValues("hit").Inc()
			m.writeResponse(w, entry.Status, entry.ContentType, entry.Body)
			m.observe(r, route, entry.Status, time.Since(start), correlationID, nil)
			return
		} else {
			m.metrics.CacheEventTotal.WithLabelValues("miss").Inc()
		}

		buf := newResponseBuffer()
		h(ctx, r, buf)

		if !bypass && buf.status == http.StatusOK {
			m.cache.Set(ctx, cacheKey, &cache.Entry{
				Status:      buf.status,
				ContentType: buf.contentType,
				Body:        buf.body.Bytes(),
			}, m.cacheTTL)
		}

		m.writeResponse(w, buf.status, buf.contentType, buf.body.Bytes())
		m.observe(r, route, buf.status, time.Since(start), correlationID, nil)
	}
}

func (m *Mux) writeResponse(w http.ResponseWriter, status int, contentType string, body []byte) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if status == http.StatusOK {
		w.Header().Set("Cache-Control", pageCacheControl)
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// observe records metrics and the request completion log line.
func (m *Mux) observe(r *http.Request, route string, status int, duration time.Duration, correlationID string, err error) {
	statusLabel := strconv.Itoa(status)
	m.metrics.HTTPRequestTotal.WithLabelValues(r.Method, route, statusLabel).Inc()
	m.metrics.HTTPRequestDuration.WithLabelValues(r.Method, route, statusLabel).Observe(duration.Seconds())

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("route", route),
		slog.Int("status", status),
		slog.Duration("duration", duration),
		slog.String("user_agent", r.UserAgent()),
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("correlation_id", correlationID),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		slog.LogAttrs(r.Context(), slog.LevelError, "request completed with error", attrs...)
		return
	}
	slog.LogAttrs(r.Context(), slog.LevelInfo, "request completed", attrs...)
}

// renderNotFound writes the shared not-found document. Missing and
// malformed data land here alike.
func (m *Mux) renderNotFound(b *responseBuffer) {
	body, err := m.renderer.NotFound()
	if err != nil {
		b.write(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
		return
	}
	b.write(http.StatusNotFound, htmlContentType, body)
}

// renderError maps a typed error onto the right document.
func (m *Mux) renderError(b *responseBuffer, verr *vserrors.Error) {
	switch verr.Code {
	case vserrors.VS_NOT_FOUND, vserrors.VS_DATA_UNAVAILABLE:
		m.renderNotFound(b)
	default:
		b.write(verr.HTTPStatus, "text/plain; charset=utf-8", []byte("internal error"))
	}
}

func (m *Mux) renderListing(ctx context.Context, b *responseBuffer, n int) {
	p, verr := m.pager.Get(ctx, n)
	if verr != nil {
		m.renderError(b, verr)
		return
	}
	body, err := m.renderer.Listing(p)
	if err != nil {
		slog.Error("listing render failed", "page", n, "error", err)
		b.write(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
		return
	}
	b.write(http.StatusOK, htmlContentType, body)
}

// handleRoot serves the home page; anything else under / that no
// other route claimed is a 404.
func (m *Mux) handleRoot(ctx context.Context, r *http.Request, b *responseBuffer) {
	if r.URL.Path != "/" {
		m.renderNotFound(b)
		return
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "handleHome")
	defer span.End()

	m.renderListing(ctx, b, 1)
}

// handlePage serves /page/{n}.
func (m *Mux) handlePage(ctx context.Context, r *http.Request, b *responseBuffer) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "handlePage")
	defer span.End()

	raw := strings.TrimPrefix(r.URL.Path, "/page/")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		span.SetStatus(codes.Error, "invalid page number")
		m.renderNotFound(b)
		return
	}
	span.SetAttributes(attribute.Int("page", n))

	m.renderListing(ctx, b, n)
}

// handleDetail serves /e/{id}.
func (m *Mux) handleDetail(ctx context.Context, r *http.Request, b *responseBuffer) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "handleDetail")
	defer span.End()

	id := strings.TrimPrefix(r.URL.Path, "/e/")
	if id == "" || strings.Contains(id, "/") {
		span.SetStatus(codes.Error, "invalid id")
		m.renderNotFound(b)
		return
	}
	span.SetAttributes(attribute.String("video.id", id))

	rec, siblings, verr := m.resolver.Detail(ctx, id)
	if verr != nil {
		span.SetStatus(codes.Error, string(verr.Code))
		m.renderError(b, verr)
		return
	}

	rankStart := time.Now()
	related := rank.Related(rec, siblings, m.relatedLimit)
	m.metrics.RankDuration.WithLabelValues("related").Observe(time.Since(rankStart).Seconds())

	body, err := m.renderer.Detail(rec, related)
	if err != nil {
		slog.Error("detail render failed", "id", id, "error", err)
		b.write(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
		return
	}
	b.write(http.StatusOK, htmlContentType, body)
}

// handleSearch serves /f/{slug} and /f/?q={query}. Slug dashes map to
// spaces, so /f/kucing-lucu and /f/?q=kucing+lucu are the same query.
func (m *Mux) handleSearch(ctx context.Context, r *http.Request, b *responseBuffer) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "handleSearch")
	defer span.End()

	raw := r.URL.Query().Get("q")
	if raw == "" {
		slugged := strings.TrimPrefix(r.URL.Path, "/f/")
		raw = strings.ReplaceAll(slugged, "-", " ")
	}
	span.SetAttributes(attribute.String("search.query", raw))

	q, verr := rank.ParseQuery(raw)
	if verr != nil {
		// Too-short queries render an inline prompt with a success
		// status. No store fetch happens on this path.
		span.SetAttributes(attribute.Bool("search.invalid", true))
		body, err := m.renderer.SearchPrompt(strings.TrimSpace(raw))
		if err != nil {
			b.write(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
			return
		}
		b.write(verr.HTTPStatus, htmlContentType, body)
		return
	}

	rankStart := time.Now()
	results := m.searcher.Search(ctx, q, m.searchLimit)
	m.metrics.RankDuration.WithLabelValues("search").Observe(time.Since(rankStart).Seconds())
	m.metrics.SearchCandidates.Observe(float64(len(results)))
	span.SetAttributes(attribute.Int("search.results", len(results)))

	body, err := m.renderer.Search(q.Raw, results)
	if err != nil {
		slog.Error("search render failed", "query", q.Raw, "error", err)
		b.write(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
		return
	}
	b.write(http.StatusOK, htmlContentType, body)
}

// handleSitemap serves the page sitemap.
func (m *Mux) handleSitemap(ctx context.Context, r *http.Request, b *responseBuffer) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "handleSitemap")
	defer span.End()

	totalPages, verr := m.pager.TotalPages(ctx)
	if verr != nil {
		span.SetStatus(codes.Error, string(verr.Code))
		m.renderError(b, verr)
		return
	}

	body, err := m.renderer.Sitemap(totalPages)
	if err != nil {
		b.write(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
		return
	}
	b.write(http.StatusOK, xmlContentType, body)
}

// handleVideoSitemap serves the video sitemap, built from the newest
// listing pages up to the configured entry cap.
func (m *Mux) handleVideoSitemap(ctx context.Context, r *http.Request, b *responseBuffer) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "handleVideoSitemap")
	defer span.End()

	videos, verr := m.newestVideos(ctx, m.sitemapLimit)
	if verr != nil {
		span.SetStatus(codes.Error, string(verr.Code))
		m.renderError(b, verr)
		return
	}

	body, err := m.renderer.VideoSitemap(videos, m.sitemapLimit)
	if err != nil {
		b.write(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
		return
	}
	b.write(http.StatusOK, xmlContentType, body)
}

// newestVideos walks listing pages from the front until limit records
// are collected or pages run out.
func (m *Mux) newestVideos(ctx context.Context, limit int) ([]model.Video, *vserrors.Error) {
	var out []model.Video
	for n := 1; len(out) < limit; n++ {
		doc, err := m.store.ListPage(ctx, n)
		if err != nil {
			if n == 1 {
				return nil, vserrors.New(vserrors.VS_DATA_UNAVAILABLE,
					fmt.Sprintf("list page 1 unavailable: %v", err), "")
			}
			break
		}
		vs := doc.Videos()
		if len(vs) == 0 {
			break
		}
		out = append(out, vs...)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// handleRobots serves robots.txt.
func (m *Mux) handleRobots(ctx context.Context, r *http.Request, b *responseBuffer) {
	b.write(http.StatusOK, "text/plain; charset=utf-8", m.renderer.Robots())
}

// handleHealthz handles liveness health check requests
func (m *Mux) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReadyz handles readiness health check requests. The service
// is ready when the dataset meta document is reachable.
func (m *Mux) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if _, err := m.store.Meta(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("dataset unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
