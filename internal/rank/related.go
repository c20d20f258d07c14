// Package rank scores candidate video records against a query and
// returns a deterministically ordered, size-bounded result. Two modes
// exist: relatedness to an anchor record, and free-text search.
package rank

import (
	"sort"
	"strings"

	"github.com/videostream/videostream-edge-go/internal/model"
	"github.com/videostream/videostream-edge-go/internal/textnorm"
)

// Related-mode scoring weights.
const (
	relatedCategoryBonus   = 20 // shared category
	relatedWordScore       = 10 // per anchor title word found in candidate title
	relatedMultiWordBonus  = 30 // two or more words matched
	relatedMinWordLen      = 3  // anchor title words shorter than this are ignored
	relatedMultiWordNeeded = 2
)

// Related ranks the candidate pool by similarity to the anchor record
// and returns at most limit records. There is no minimum score:
// zero-overlap candidates still surface when the pool is small, which
// keeps detail pages visually full.
func Related(anchor model.Video, pool []model.Video, limit int) []model.Video {
	anchorCategory := textnorm.Normalize(anchor.Category)

	var anchorWords []string
	for _, w := range textnorm.Keywords(textnorm.Normalize(anchor.Title)) {
		if len(w) >= relatedMinWordLen {
			anchorWords = append(anchorWords, w)
		}
	}

	type scored struct {
		video model.Video
		score int
	}
	ranked := make([]scored, 0, len(pool))
	for _, cand := range pool {
		s := 0
		if anchorCategory != "" && textnorm.Normalize(cand.Category) == anchorCategory {
			s += relatedCategoryBonus
		}

		candTitle := textnorm.Normalize(cand.Title)
		matched := 0
		for _, w := range anchorWords {
			if strings.Contains(candTitle, w) {
				matched++
			}
		}
		s += matched * relatedWordScore
		if matched >= relatedMultiWordNeeded {
			s += relatedMultiWordBonus
		}

		ranked = append(ranked, scored{video: cand, score: s})
	}

	// Total order: score descending, then view count descending.
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
