package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	e := &Entry{Status: 200, ContentType: "text/html; charset=utf-8", Body: []byte("<html>ok</html>")}
	c.Set(ctx, "GET /", e, time.Hour)

	got, ok := c.Get(ctx, "GET /")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Status != 200 || got.ContentType != e.ContentType || string(got.Body) != string(e.Body) {
		t.Fatalf("got %+v, want %+v", got, e)
	}

	// Stored entries are copies; mutating the original must not leak.
	e.Body[0] = 'X'
	got2, _ := c.Get(ctx, "GET /")
	if string(got2.Body) == string(e.Body) {
		t.Fatal("cache shares memory with caller")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemory()
	if _, ok := c.Get(context.Background(), "nope"); ok {
		t.Fatal("expected miss")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	now := time.Now()
	c.SetClock(func() time.Time { return now })
	c.Set(ctx, "k", &Entry{Status: 200, Body: []byte("x")}, time.Minute)

	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestNoopCacheNeverHits(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()

	c.Set(ctx, "k", &Entry{Status: 200, Body: []byte("x")}, time.Hour)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("noop cache returned a hit")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
