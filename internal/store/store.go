// Package store fetches precomputed dataset documents from the static
// data origin. Documents are immutable JSON files produced by the
// offline builder; the store never writes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/videostream/videostream-edge-go/internal/metrics"
	"github.com/videostream/videostream-edge-go/internal/model"
)

// ErrUnavailable indicates the requested document could not be
// retrieved or decoded. Callers treat an unavailable document the
// same way as an absent one.
var ErrUnavailable = errors.New("store: document unavailable")

// Store retrieves dataset documents by logical kind.
type Store interface {
	// LookupMap returns the id to detail-shard-key map.
	LookupMap(ctx context.Context) (model.LookupMap, error)

	// DetailShard returns the detail shard for the given two-hex-char key.
	DetailShard(ctx context.Context, key string) (model.DetailShard, error)

	// IndexShard returns the two-character keyword index shard.
	IndexShard(ctx context.Context, prefix2 string) (model.IndexShard, error)

	// NestedIndexShard returns the three-character sub-shard under prefix2.
	NestedIndexShard(ctx context.Context, prefix2, prefix3 string) (model.IndexShard, error)

	// ListPage returns one page of the newest-first listing. Pages are
	// 1-based.
	ListPage(ctx context.Context, page int) (*model.ListPage, error)

	// Meta returns dataset-wide counters.
	Meta(ctx context.Context) (*model.Meta, error)
}

// fetcher is the transport seam: it retrieves the raw bytes of a
// document by its path under the data origin.
type fetcher interface {
	fetch(ctx context.Context, path string) ([]byte, error)
}

// Client implements Store on top of a fetcher.
type Client struct {
	f fetcher
	m *metrics.Metrics
}

func newClient(f fetcher) *Client {
	return &Client{f: f}
}

// SetMetrics attaches fetch instrumentation. Safe to leave unset in
// tests.
func (c *Client) SetMetrics(m *metrics.Metrics) { c.m = m }

func (c *Client) get(ctx context.Context, doc, path string, v any) error {
	start := time.Now()
	raw, err := c.f.fetch(ctx, path)
	if err == nil {
		if jerr := json.Unmarshal(raw, v); jerr != nil {
			err = fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, path, jerr)
		}
	}
	if c.m != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.m.StoreFetchTotal.WithLabelValues(doc, outcome).Inc()
		c.m.StoreFetchDuration.WithLabelValues(doc, outcome).Observe(time.Since(start).Seconds())
	}
	return err
}

func (c *Client) LookupMap(ctx context.Context) (model.LookupMap, error) {
	var m model.LookupMap
	if err := c.get(ctx, "lookup", "/data/lookup_shard.json", &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Client) DetailShard(ctx context.Context, key string) (model.DetailShard, error) {
	var s model.DetailShard
	if err := c.get(ctx, "detail", "/data/detail/"+key+".json", &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) IndexShard(ctx context.Context, prefix2 string) (model.IndexShard, error) {
	var s model.IndexShard
	if err := c.get(ctx, "index", "/data/index/"+prefix2+".json", &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) NestedIndexShard(ctx context.Context, prefix2, prefix3 string) (model.IndexShard, error) {
	var s model.IndexShard
	if err := c.get(ctx, "index_nested", "/data/index/"+prefix2+"/"+prefix3+".json", &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) ListPage(ctx context.Context, page int) (*model.ListPage, error) {
	var p model.ListPage
	if err := c.get(ctx, "list", fmt.Sprintf("/data/list/%d.json", page), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Meta(ctx context.Context) (*model.Meta, error) {
	var m model.Meta
	if err := c.get(ctx, "meta", "/data/meta.json", &m); err != nil {
		return nil, err
	}
	return &m, nil
}
