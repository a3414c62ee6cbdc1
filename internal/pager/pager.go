// Package pager provides a single pagination abstraction shared by every
// paged surface, parameterized by the index base its callers expect.
package pager

// Base is the index of the first page. The full-page notification list
// counts pages from 1; the compact dropdown counts rows-per-page blocks
// from 0. Both conventions share this one implementation.
type Base int

const (
	ZeroBased Base = 0
	OneBased  Base = 1
)

// Pager tracks the active page for a paged collection. It holds no
// items itself; callers pass the current total (or slice) to each query
// so the pager stays valid as the underlying collection changes.
type Pager struct {
	size int
	base Base
	page int
}

// New creates a Pager with the given page size and index base. The
// active page starts at the first page.
func New(size int, base Base) *Pager {
	if size <= 0 {
		size = 1
	}
	return &Pager{size: size, base: base, page: int(base)}
}

// Page returns the active page number in the pager's base convention.
func (p *Pager) Page() int {
	return p.page
}

// PageSize returns the configured page size.
func (p *Pager) PageSize() int {
	return p.size
}

// PageCount returns ceil(total / pageSize).
func (p *Pager) PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.size - 1) / p.size
}

// SetPage moves to the given page. Pages outside the valid range for
// the current total are a no-op: the active page is retained, neither
// clamped nor wrapped.
func (p *Pager) SetPage(page, total int) {
	first := int(p.base)
	last := p.PageCount(total) - 1 + int(p.base)
	if page < first || page > last {
		return
	}
	p.page = page
}

// Next advances to the following page if one exists.
func (p *Pager) Next(total int) {
	p.SetPage(p.page+1, total)
}

// Prev moves back one page if possible.
func (p *Pager) Prev(total int) {
	p.SetPage(p.page-1, total)
}

// SetPageSize changes the page size and resets the active page to the
// first page. Non-positive sizes are ignored.
func (p *Pager) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.size = size
	p.page = int(p.base)
}

// Reset returns the pager to the first page.
func (p *Pager) Reset() {
	p.page = int(p.base)
}

// Clamp pulls the active page back into the valid range after the
// collection shrank underneath it. Unlike SetPage this is not a no-op:
// a page invalidated by the shrink moves to the last valid page so the
// view is never stranded on an empty page. An in-range page is left
// unchanged.
func (p *Pager) Clamp(total int) {
	first := int(p.base)
	last := p.PageCount(total) - 1 + first
	if last < first {
		last = first
	}
	if p.page > last {
		p.page = last
	}
	if p.page < first {
		p.page = first
	}
}

// Bounds returns the half-open [start, end) item range of the active
// page within a collection of the given total size.
func (p *Pager) Bounds(total int) (start, end int) {
	start = (p.page - int(p.base)) * p.size
	if start >= total {
		return 0, 0
	}
	end = start + p.size
	if end > total {
		end = total
	}
	return start, end
}

// Slice returns the items on the pager's active page.
func Slice[T any](p *Pager, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}
