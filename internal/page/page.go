// Package page indexes into the precomputed listing pages and derives
// the navigation links between them. Pages are split upstream at a
// fixed size; no in-process pagination math happens over the full set.
package page

import (
	"context"
	"fmt"

	vserrors "github.com/videostream/videostream-edge-go/internal/errors"
	"github.com/videostream/videostream-edge-go/internal/model"
	"github.com/videostream/videostream-edge-go/internal/store"
)

// DefaultPageSize is the fixed upstream page size.
const DefaultPageSize = 200

// Page is one resolved listing page with its navigation links.
type Page struct {
	Number     int
	TotalPages int
	Videos     []model.Video
	PrevPath   string // empty on the first page
	NextPath   string // empty on the last page
}

// Paginator resolves listing pages against the dataset store.
type Paginator struct {
	store    store.Store
	pageSize int
}

// New creates a Paginator. pageSize must match the upstream build; a
// non-positive value falls back to DefaultPageSize.
func New(s store.Store, pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{store: s, pageSize: pageSize}
}

// Get fetches listing page n. Page numbers are 1-based and are not
// validated against the total before fetching: an out-of-range page
// simply has no document, which surfaces as VS_NOT_FOUND. A missing
// meta document also renders not-found since navigation cannot be
// built without the total.
func (p *Paginator) Get(ctx context.Context, n int) (*Page, *vserrors.Error) {
	if n < 1 {
		return nil, vserrors.New(vserrors.VS_NOT_FOUND, fmt.Sprintf("invalid page number %d", n), "")
	}

	doc, err := p.store.ListPage(ctx, n)
	if err != nil {
		return nil, vserrors.New(vserrors.VS_NOT_FOUND, fmt.Sprintf("list page %d unavailable: %v", n, err), "")
	}

	meta, err := p.store.Meta(ctx)
	if err != nil {
		return nil, vserrors.New(vserrors.VS_DATA_UNAVAILABLE, fmt.Sprintf("meta unavailable: %v", err), "")
	}

	totalPages := (meta.Total + p.pageSize - 1) / p.pageSize

	out := &Page{
		Number:     n,
		TotalPages: totalPages,
		Videos:     doc.Videos(),
	}
	if n > 1 {
		// Page 2 points back at the root, not /page/1.
		if n == 2 {
			out.PrevPath = "/"
		} else {
			out.PrevPath = fmt.Sprintf("/page/%d", n-1)
		}
	}
	if n < totalPages {
		out.NextPath = fmt.Sprintf("/page/%d", n+1)
	}
	return out, nil
}

// TotalPages reports the page count for navigation and sitemaps.
func (p *Paginator) TotalPages(ctx context.Context) (int, *vserrors.Error) {
	meta, err := p.store.Meta(ctx)
	if err != nil {
		return 0, vserrors.New(vserrors.VS_DATA_UNAVAILABLE, fmt.Sprintf("meta unavailable: %v", err), "")
	}
	return (meta.Total + p.pageSize - 1) / p.pageSize, nil
}
