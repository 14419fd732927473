package paginate

// Info summarizes the current position of a Paginator.
type Info struct {
	// Page is the zero-based index of the current page.
	Page       int
	PageSize   PageSize
	Total      int
	TotalPages int
}

// HasPrev reports whether a page precedes the current one.
func (i Info) HasPrev() bool {
	return i.Page > 0
}

// HasNext reports whether a page follows the current one.
func (i Info) HasNext() bool {
	return i.Page+1 < i.TotalPages
}

// Paginator is a stateful page view over a filtered sequence.
// It is not safe for concurrent use.
type Paginator[T any] struct {
	items      []T
	generation uint64
	observed   bool
	size       PageSize
	index      int
}

// NewPaginator creates a paginator with the given page size.
func NewPaginator[T any](size PageSize) *Paginator[T] {
	if size < All {
		size = Default
	}
	return &Paginator[T]{size: size}
}

// SetItems replaces the sequence being paged. The page index returns to the
// first page when generation differs from the last one observed.
func (p *Paginator[T]) SetItems(items []T, generation uint64) {
	if !p.observed || generation != p.generation {
		p.index = 0
	}
	p.items = items
	p.generation = generation
	p.observed = true
	p.clamp()
}

// Generation returns the last filter generation passed to SetItems.
func (p *Paginator[T]) Generation() uint64 {
	return p.generation
}

// SetPageSize changes the page size and returns to the first page.
func (p *Paginator[T]) SetPageSize(size PageSize) {
	if size < All {
		size = Default
	}
	p.size = size
	p.index = 0
}

// PageSize returns the current page size.
func (p *Paginator[T]) PageSize() PageSize {
	return p.size
}

// SetPage moves to page index, clamped to the available pages.
func (p *Paginator[T]) SetPage(index int) {
	p.index = index
	p.clamp()
}

func (p *Paginator[T]) clamp() {
	last := p.PageCount() - 1
	if p.index > last {
		p.index = last
	}
	if p.index < 0 {
		p.index = 0
	}
}

// Page returns the items on the current page.
func (p *Paginator[T]) Page() []T {
	page, _ := Slice(p.items, p.index, p.size)
	return page
}

// PageCount returns the number of pages for the current items and size.
func (p *Paginator[T]) PageCount() int {
	_, count := Slice(p.items, 0, p.size)
	return count
}

// PageIndex returns the zero-based index of the current page.
func (p *Paginator[T]) PageIndex() int {
	return p.index
}

// Info returns the current pagination summary.
func (p *Paginator[T]) Info() Info {
	return Info{
		Page:       p.index,
		PageSize:   p.size,
		Total:      len(p.items),
		TotalPages: p.PageCount(),
	}
}
