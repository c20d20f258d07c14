// Package model provides tests for dataset document decoding.
package model

import (
	"encoding/json"
	"testing"
)

// TestFlexIntCoercion tests that view counts decode from numbers, numeric
// strings, and garbage, with failures coercing to 0.
func TestFlexIntCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int64
	}{
		{"number", `{"vw": 5000}`, 5000},
		{"string", `{"vw": "5000"}`, 5000},
		{"padded string", `{"vw": " 42 "}`, 42},
		{"garbage string", `{"vw": "lots"}`, 0},
		{"null", `{"vw": null}`, 0},
		{"missing", `{}`, 0},
		{"negative", `{"vw": -3}`, 0},
		{"float", `{"vw": 12.5}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v Video
			if err := json.Unmarshal([]byte(tc.in), &v); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tc.in, err)
			}
			if got := v.Views.Int64(); got != tc.want {
				t.Errorf("Views = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestVideoDecode tests decoding a full detail-shard record with abbreviated keys.
func TestVideoDecode(t *testing.T) {
	raw := `{"f":"abc123","t":"Kucing Lucu Banget","kt":"Komedi","si":"https://img/si.jpg","sp":"https://img/sp.jpg","vw":"4100","up":"2024-03-01T10:00:00Z","d":193,"tg":["kucing","lucu"],"pe":"https://play/abc123"}`

	var v Video
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if v.ID != "abc123" {
		t.Errorf("ID = %q, want %q", v.ID, "abc123")
	}
	if v.Category != "Komedi" {
		t.Errorf("Category = %q, want %q", v.Category, "Komedi")
	}
	if v.Views.Int64() != 4100 {
		t.Errorf("Views = %d, want 4100", v.Views.Int64())
	}
	if got := v.DurationLabel(); got != "3:13" {
		t.Errorf("DurationLabel() = %q, want %q", got, "3:13")
	}
	if got := v.PosterImage(); got != "https://img/sp.jpg" {
		t.Errorf("PosterImage() = %q, want splash first", got)
	}
	if got := v.CardImage(); got != "https://img/si.jpg" {
		t.Errorf("CardImage() = %q, want single image first", got)
	}
}

// TestDurationLabelPrecedence tests that a preformatted label wins over seconds.
func TestDurationLabelPrecedence(t *testing.T) {
	v := Video{Seconds: 125, Length: "10:30"}
	if got := v.DurationLabel(); got != "10:30" {
		t.Errorf("DurationLabel() = %q, want preformatted label", got)
	}
	v = Video{Seconds: 125}
	if got := v.DurationLabel(); got != "2:05" {
		t.Errorf("DurationLabel() = %q, want %q", got, "2:05")
	}
	v = Video{}
	if got := v.DurationLabel(); got != "" {
		t.Errorf("DurationLabel() = %q, want empty", got)
	}
}

// TestListPageDecode tests the long-key listing page shape.
func TestListPageDecode(t *testing.T) {
	raw := `{"result":{"files":[{"file_code":"x1","title":"First","single_img":"https://img/1.jpg","length":"10:30","views":"900"}]}}`

	var p ListPage
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	vids := p.Videos()
	if len(vids) != 1 {
		t.Fatalf("Videos() len = %d, want 1", len(vids))
	}
	if vids[0].ID != "x1" || vids[0].Title != "First" || vids[0].Views.Int64() != 900 {
		t.Errorf("converted record = %+v", vids[0])
	}
	if vids[0].CardImage() != "https://img/1.jpg" {
		t.Errorf("CardImage() = %q", vids[0].CardImage())
	}
}
