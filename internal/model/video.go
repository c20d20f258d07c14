// internal/model/video.go
// Package model defines the data structures for the precomputed video dataset.
// All entities are immutable, externally produced JSON documents; this service
// only reads them. The abbreviated field names mirror the dataset builder's
// output format and must not change.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt is a non-negative integer that may arrive as a JSON number or as a
// string. Anything that fails to parse coerces to 0 rather than failing the
// whole document.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil || n < 0 {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	v, err := n.Int64()
	if err != nil || v < 0 {
		*f = 0
		return nil
	}
	*f = FlexInt(v)
	return nil
}

// Int64 returns the coerced value.
func (f FlexInt) Int64() int64 { return int64(f) }

// Video represents one video record from a detail shard or search index shard.
// Field tags use the dataset's abbreviated keys.
type Video struct {
	ID          string   `json:"f"`            // file code (unique identity)
	Title       string   `json:"t"`            // display title, possibly empty
	Category    string   `json:"kt,omitempty"` // coarse genre/topic tag
	Description string   `json:"ds,omitempty"` // description text
	Thumbnail   string   `json:"si,omitempty"` // single image
	Splash      string   `json:"sp,omitempty"` // splash image (wide)
	Views       FlexInt  `json:"vw"`           // view count, coerced
	Uploaded    string   `json:"up,omitempty"` // ISO-8601 upload timestamp
	Seconds     int      `json:"d,omitempty"`  // duration in seconds
	Length      string   `json:"ln,omitempty"` // preformatted "MM:SS" label
	DurationISO string   `json:"dr,omitempty"` // ISO-8601 duration (PT…S)
	Tags        []string `json:"tg,omitempty"`
	PlaybackURL string   `json:"pe,omitempty"` // embed/player URL
	DownloadURL string   `json:"dl,omitempty"`
	ProtectedDL string   `json:"pd,omitempty"` // alternate download field
	Size        string   `json:"sz,omitempty"` // human-readable file size
}

// PosterImage returns the large player placeholder image, preferring the
// splash variant.
func (v Video) PosterImage() string {
	if v.Splash != "" {
		return v.Splash
	}
	return v.Thumbnail
}

// CardImage returns the grid-card image, preferring the single image variant.
func (v Video) CardImage() string {
	if v.Thumbnail != "" {
		return v.Thumbnail
	}
	return v.Splash
}

// Download returns the best available download link, or empty.
func (v Video) Download() string {
	if v.DownloadURL != "" {
		return v.DownloadURL
	}
	return v.ProtectedDL
}

// DurationLabel returns the "MM:SS" badge text. The preformatted label wins;
// otherwise it is derived from the duration in seconds.
func (v Video) DurationLabel() string {
	if v.Length != "" {
		return v.Length
	}
	if v.Seconds > 0 {
		return fmt.Sprintf("%d:%02d", v.Seconds/60, v.Seconds%60)
	}
	return ""
}

// LookupMap maps a video id to the 2-hex-character detail shard key holding
// its full record. It is the only way to reach a record: resolve the shard
// first, then scan it.
type LookupMap map[string]string

// DetailShard is the ordered record sequence sharing one shard key.
type DetailShard []Video

// IndexShard is the lightweight record sequence for one search prefix.
type IndexShard []Video

// ListVideo is a record as it appears in precomputed listing pages, which use
// the long-key shape produced by the upstream file API.
type ListVideo struct {
	FileCode string  `json:"file_code"`
	Title    string  `json:"title"`
	Image    string  `json:"single_img"`
	Length   string  `json:"length"`
	Views    FlexInt `json:"views"`
}

// Video converts a listing record to the canonical Video shape.
func (l ListVideo) Video() Video {
	return Video{
		ID:        l.FileCode,
		Title:     l.Title,
		Thumbnail: l.Image,
		Length:    l.Length,
		Views:     l.Views,
	}
}

// ListPage is one precomputed listing page: { result: { files: [...] } }.
type ListPage struct {
	Result struct {
		Files []ListVideo `json:"files"`
	} `json:"result"`
}

// Videos returns the page's records in canonical form.
func (p ListPage) Videos() []Video {
	out := make([]Video, 0, len(p.Result.Files))
	for _, f := range p.Result.Files {
		out = append(out, f.Video())
	}
	return out
}

// Meta is the sitewide aggregate document used for page-count math.
type Meta struct {
	Total int `json:"total"`
}
