// internal/store/memory.go
// In-memory backend for the dataset store, used by tests and local
// development. Documents are seeded by logical path.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// memoryFetcher serves documents from an in-process map.
type memoryFetcher struct {
	mu   sync.RWMutex
	docs map[string][]byte // Logical path to raw JSON
}

// NewMemory creates a store serving the given documents. The map is
// keyed by logical path, e.g. "/data/meta.json".
func NewMemory(docs map[string][]byte) *Client {
	m := make(map[string][]byte, len(docs))
	for k, v := range docs {
		m[k] = v
	}
	return newClient(&memoryFetcher{docs: m})
}

// NewMemoryJSON is a test convenience: values are marshalled to JSON
// before seeding. Panics on unmarshallable values.
func NewMemoryJSON(docs map[string]any) *Client {
	m := make(map[string][]byte, len(docs))
	for k, v := range docs {
		raw, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		m[k] = raw
	}
	return newClient(&memoryFetcher{docs: m})
}

func (f *memoryFetcher) fetch(_ context.Context, path string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	raw, ok := f.docs[path]
	if !ok {
		return nil, fmt.Errorf("%w: no document at %s", ErrUnavailable, path)
	}
	return raw, nil
}
