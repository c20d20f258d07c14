package resolve

import (
	"context"
	"testing"

	vserrors "github.com/videostream/videostream-edge-go/internal/errors"
	"github.com/videostream/videostream-edge-go/internal/store"
)

func testStore() store.Store {
	return store.NewMemoryJSON(map[string]any{
		"/data/lookup_shard.json": map[string]string{
			"abc123": "9f",
			"def456": "9f",
			"ghi789": "3a",
			"stale1": "00", // shard missing from the store
			"stale2": "3a", // shard exists but dropped the record
		},
		"/data/detail/9f.json": []map[string]any{
			{"f": "abc123", "t": "Kucing Lucu", "vw": 4821},
			{"f": "def456", "t": "Anjing Pintar", "vw": 120},
		},
		"/data/detail/3a.json": []map[string]any{
			{"f": "ghi789", "t": "Burung Hantu", "vw": 7},
		},
	})
}

func TestDetailResolvesRecordAndSiblings(t *testing.T) {
	r := New(testStore())

	rec, siblings, verr := r.Detail(context.Background(), "abc123")
	if verr != nil {
		t.Fatalf("Detail: %v", verr)
	}
	if rec.ID != "abc123" || rec.Title != "Kucing Lucu" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(siblings) != 1 || siblings[0].ID != "def456" {
		t.Fatalf("unexpected siblings: %+v", siblings)
	}
}

func TestDetailSoleRecordHasNoSiblings(t *testing.T) {
	r := New(testStore())

	rec, siblings, verr := r.Detail(context.Background(), "ghi789")
	if verr != nil {
		t.Fatalf("Detail: %v", verr)
	}
	if rec.ID != "ghi789" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(siblings) != 0 {
		t.Fatalf("siblings = %+v, want none", siblings)
	}
}

func TestDetailUnknownID(t *testing.T) {
	r := New(testStore())

	_, _, verr := r.Detail(context.Background(), "nope")
	if verr == nil || verr.Code != vserrors.VS_NOT_FOUND {
		t.Fatalf("verr = %v, want VS_NOT_FOUND", verr)
	}
}

// An id whose shard cannot be fetched must resolve exactly like an
// unknown id.
func TestDetailMissingShardEqualsUnknownID(t *testing.T) {
	r := New(testStore())

	_, _, verr := r.Detail(context.Background(), "stale1")
	if verr == nil || verr.Code != vserrors.VS_NOT_FOUND {
		t.Fatalf("verr = %v, want VS_NOT_FOUND", verr)
	}
}

func TestDetailStaleMapEntry(t *testing.T) {
	r := New(testStore())

	_, _, verr := r.Detail(context.Background(), "stale2")
	if verr == nil || verr.Code != vserrors.VS_NOT_FOUND {
		t.Fatalf("verr = %v, want VS_NOT_FOUND", verr)
	}
}

func TestDetailLookupMapUnavailable(t *testing.T) {
	r := New(store.NewMemory(nil))

	_, _, verr := r.Detail(context.Background(), "abc123")
	if verr == nil || verr.Code != vserrors.VS_DATA_UNAVAILABLE {
		t.Fatalf("verr = %v, want VS_DATA_UNAVAILABLE", verr)
	}
}

func TestShardKey(t *testing.T) {
	key := ShardKey("abc123")
	if len(key) != 2 {
		t.Fatalf("len(ShardKey) = %d, want 2", len(key))
	}
	for _, c := range key {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Fatalf("ShardKey(%q) = %q, not lowercase hex", "abc123", key)
		}
	}
	if ShardKey("abc123") != key {
		t.Fatal("ShardKey not deterministic")
	}
}
