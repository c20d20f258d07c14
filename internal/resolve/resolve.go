// Package resolve turns a video id into its full record by way of the
// sharded lookup map. A record is only reachable through the map: the
// map names the detail shard, the shard holds the record.
package resolve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	vserrors "github.com/videostream/videostream-edge-go/internal/errors"
	"github.com/videostream/videostream-edge-go/internal/model"
	"github.com/videostream/videostream-edge-go/internal/store"
)

// Resolver resolves video ids against the dataset store.
type Resolver struct {
	store store.Store
}

// New creates a Resolver over the given store.
func New(s store.Store) *Resolver {
	return &Resolver{store: s}
}

// ShardKey returns the detail shard key for an id: the first two hex
// characters of its SHA-256 digest. The lookup map is authoritative at
// runtime; this derivation exists for dataset verification.
func ShardKey(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:1])
}

// Detail resolves id to its record and returns the record's shard
// siblings, the candidate pool for related ranking. The returned
// *vserrors.Error is VS_NOT_FOUND when the id is unknown and
// VS_DATA_UNAVAILABLE when the lookup map itself cannot be fetched.
// An id that is present in the map but whose shard is unavailable or
// no longer contains it resolves the same as an unknown id.
func (r *Resolver) Detail(ctx context.Context, id string) (model.Video, []model.Video, *vserrors.Error) {
	lookup, err := r.store.LookupMap(ctx)
	if err != nil {
		return model.Video{}, nil, vserrors.New(vserrors.VS_DATA_UNAVAILABLE,
			fmt.Sprintf("lookup map unavailable: %v", err), "")
	}

	shardKey, ok := lookup[id]
	if !ok {
		return model.Video{}, nil, vserrors.New(vserrors.VS_NOT_FOUND,
			fmt.Sprintf("unknown video id %q", id), "")
	}

	shard, err := r.store.DetailShard(ctx, shardKey)
	if err != nil {
		// The shard is named by the map but cannot be read. From the
		// visitor's point of view the video does not exist.
		return model.Video{}, nil, vserrors.New(vserrors.VS_NOT_FOUND,
			fmt.Sprintf("detail shard %s unavailable: %v", shardKey, err), "")
	}

	idx := -1
	for i := range shard {
		if shard[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Stale map entry: the shard exists but dropped the record.
		return model.Video{}, nil, vserrors.New(vserrors.VS_NOT_FOUND,
			fmt.Sprintf("id %q missing from shard %s", id, shardKey), "")
	}

	siblings := make([]model.Video, 0, len(shard)-1)
	for i := range shard {
		if i != idx {
			siblings = append(siblings, shard[i])
		}
	}
	return shard[idx], siblings, nil
}
