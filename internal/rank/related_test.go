package rank

import (
	"testing"

	"github.com/videostream/videostream-edge-go/internal/model"
)

func TestRelatedSharedCategoryScoresAtLeastCategoryBonus(t *testing.T) {
	anchor := model.Video{ID: "a", Title: "Stand Up Malam", Category: "Komedi"}
	pool := []model.Video{
		{ID: "b", Title: "Dokumenter Alam", Category: "Komedi", Views: 10},
		{ID: "c", Title: "Dokumenter Alam", Category: "Horor", Views: 999999},
	}

	got := Related(anchor, pool, 16)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Identical titles, so only the category bonus separates them.
	// The shared-category candidate must win despite far fewer views.
	if got[0].ID != "b" {
		t.Fatalf("got[0] = %s, want b (category bonus must dominate views)", got[0].ID)
	}
}

func TestRelatedTitleOverlapScoring(t *testing.T) {
	anchor := model.Video{ID: "a", Title: "Kucing Lucu Banget"}
	pool := []model.Video{
		{ID: "two", Title: "Video Kucing Paling Lucu", Views: 1},   // kucing + lucu: 10+10+30
		{ID: "one", Title: "Kompilasi Kucing", Views: 1_000_000},   // kucing: 10
		{ID: "zero", Title: "Resep Masakan Padang", Views: 50_000}, // no overlap
	}

	got := Related(anchor, pool, 16)
	if got[0].ID != "two" || got[1].ID != "one" || got[2].ID != "zero" {
		t.Fatalf("order = %s,%s,%s; want two,one,zero", got[0].ID, got[1].ID, got[2].ID)
	}
}

// Words shorter than three characters never count toward overlap.
func TestRelatedIgnoresShortAnchorWords(t *testing.T) {
	anchor := model.Video{ID: "a", Title: "Di TV"}
	pool := []model.Video{
		{ID: "b", Title: "Acara di TV Nasional", Views: 5},
		{ID: "c", Title: "Tanpa Kecocokan", Views: 10},
	}

	got := Related(anchor, pool, 16)
	// Neither candidate scores, so ordering falls back to views.
	if got[0].ID != "c" {
		t.Fatalf("got[0] = %s, want c (views tie-break)", got[0].ID)
	}
}

// Zero-score candidates still surface: detail pages stay full even
// when nothing in the shard is actually similar.
func TestRelatedNoMinimumScore(t *testing.T) {
	anchor := model.Video{ID: "a", Title: "Kucing"}
	pool := []model.Video{
		{ID: "b", Title: "Sama Sekali Beda", Views: 3},
	}

	got := Related(anchor, pool, 16)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("got = %+v, want the zero-score candidate", got)
	}
}

func TestRelatedTruncatesToLimit(t *testing.T) {
	anchor := model.Video{ID: "a", Title: "Kucing"}
	pool := make([]model.Video, 40)
	for i := range pool {
		pool[i] = model.Video{ID: string(rune('a' + i)), Title: "Kucing", Views: model.FlexInt(i)}
	}

	got := Related(anchor, pool, 16)
	if len(got) != 16 {
		t.Fatalf("len = %d, want 16", len(got))
	}
	// Highest views first among equal scores.
	if got[0].Views != 39 {
		t.Fatalf("got[0].Views = %d, want 39", got[0].Views)
	}
}
