// internal/rank/search.go
// Free-text search: shard selection, concurrent shard fetch, additive
// scoring, deterministic ordering.
package rank

import (
	"context"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	vserrors "github.com/videostream/videostream-edge-go/internal/errors"
	"github.com/videostream/videostream-edge-go/internal/model"
	"github.com/videostream/videostream-edge-go/internal/store"
	"github.com/videostream/videostream-edge-go/internal/textnorm"
)

// Search-mode scoring weights.
const (
	searchExactBonus      = 10000 // normalized title equals normalized query
	searchSubstringBonus  = 5000  // normalized title contains normalized query
	searchKeywordScore    = 100   // per matched keyword
	searchBoundaryBonus   = 50    // keyword at title start or after a space
	searchAllMatchedBonus = 2000  // every keyword matched
	searchPopularityScale = 10    // multiplier on log10(views+1)

	// At most this many keywords contribute prefix keys. Further
	// keywords still score, they just never select shards.
	maxPrefixKeywords = 5
)

// Query is a parsed and validated search query.
type Query struct {
	Raw        string   // trimmed user input
	Normalized string   // canonical form used for matching
	Keywords   []string // non-empty normalized terms
	prefixes   []prefixPair
}

// prefixPair carries both sharding tiers for one keyword. The nested
// 3-character key is only consulted when the 2-character shard is
// absent (dense prefixes overflow into a directory of sub-shards).
type prefixPair struct {
	p2, p3 string
}

// ParseQuery validates and normalizes raw user input. It returns a
// VS_INVALID_QUERY error when the trimmed input is shorter than two
// characters or normalization leaves no keywords. Validation happens
// before any store access.
func ParseQuery(raw string) (Query, *vserrors.Error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 2 {
		return Query{}, vserrors.New(vserrors.VS_INVALID_QUERY, "query too short", "")
	}

	normalized := textnorm.Normalize(trimmed)
	keywords := textnorm.Keywords(normalized)
	if len(keywords) == 0 {
		return Query{}, vserrors.New(vserrors.VS_INVALID_QUERY, "query empty after normalization", "")
	}

	// Prefix keys from the first few keywords, deduplicated on the
	// primary tier while preserving order.
	var prefixes []prefixPair
	seen := make(map[string]bool)
	for i, kw := range keywords {
		if i >= maxPrefixKeywords {
			break
		}
		p2 := textnorm.PrefixKey(kw, 2)
		if seen[p2] {
			continue
		}
		seen[p2] = true
		prefixes = append(prefixes, prefixPair{p2: p2, p3: textnorm.PrefixKey(kw, 3)})
	}

	return Query{
		Raw:        trimmed,
		Normalized: normalized,
		Keywords:   keywords,
		prefixes:   prefixes,
	}, nil
}

// Searcher executes search queries against the sharded index.
type Searcher struct {
	store store.Store
}

// NewSearcher creates a Searcher over the given store.
func NewSearcher(s store.Store) *Searcher {
	return &Searcher{store: s}
}

// Search fetches the index shards selected by the query, scores the
// candidate union and returns at most limit records. An empty result
// is a valid outcome, not an error: individual shard failures degrade
// to an empty shard rather than failing the whole search.
func (s *Searcher) Search(ctx context.Context, q Query, limit int) []model.Video {
	shards := s.fetchShards(ctx, q)

	// Union by record id; first occurrence wins.
	seen := make(map[string]bool)
	var pool []model.Video
	for _, shard := range shards {
		for _, v := range shard {
			if v.ID == "" || seen[v.ID] {
				continue
			}
			seen[v.ID] = true
			pool = append(pool, v)
		}
	}

	return scoreSearch(q, pool, limit)
}

// fetchShards issues one concurrent fetch per unique prefix key. Each
// fetch tries the primary 2-character shard first and falls back to
// the nested 3-character sub-shard.
func (s *Searcher) fetchShards(ctx context.Context, q Query) []model.IndexShard {
	shards := make([]model.IndexShard, len(q.prefixes))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range q.prefixes {
		i, p := i, p
		g.Go(func() error {
			shard, err := s.store.IndexShard(gctx, p.p2)
			if err != nil {
				shard, err = s.store.NestedIndexShard(gctx, p.p2, p.p3)
			}
			if err == nil {
				shards[i] = shard
			}
			// A missing shard is an empty shard.
			return nil
		})
	}
	g.Wait()

	return shards
}

func scoreSearch(q Query, pool []model.Video, limit int) []model.Video {
	type scored struct {
		video model.Video
		score float64
	}
	var ranked []scored
	for _, cand := range pool {
		title := textnorm.Normalize(cand.Title)

		var sc float64
		if title == q.Normalized {
			sc += searchExactBonus
		} else if strings.Contains(title, q.Normalized) {
			sc += searchSubstringBonus
		}

		matched := 0
		for _, kw := range q.Keywords {
			if !strings.Contains(title, kw) {
				continue
			}
			matched++
			sc += searchKeywordScore
			if strings.HasPrefix(title, kw) || strings.Contains(title, " "+kw) {
				sc += searchBoundaryBonus
			}
		}
		if matched == 0 {
			continue
		}
		if matched == len(q.Keywords) {
			sc += searchAllMatchedBonus
		}

		sc += math.Log10(float64(cand.Views)+1) * searchPopularityScale

		ranked = append(ranked, scored{video: cand, score: sc})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].video.Views > ranked[j].video.Views
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]model.Video, len(ranked))
	for i, r := range ranked {
		out[i] = r.video
	}
	return out
}
