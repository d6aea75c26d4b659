package feed

// DefaultGroupSize is how many page numbers the pagination control shows at once
const DefaultGroupSize = 10

// Range is an inclusive span of page numbers. First > Last means empty.
type Range struct {
	First int
	Last  int
}

// Empty reports whether the range holds no pages
func (r Range) Empty() bool {
	return r.Last < r.First
}

// Len returns the number of pages in the range, never negative
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

// Pager tracks the current page and the visible page group. The single
// size value drives both the group boundary check and the visible range.
type Pager struct {
	size       int
	current    int
	group      int
	totalPages int
}

// NewPager creates a pager on page 1, group 0
func NewPager(groupSize int) *Pager {
	if groupSize <= 0 {
		groupSize = DefaultGroupSize
	}
	return &Pager{size: groupSize, current: 1}
}

// Current returns the selected page, 1-based
func (p *Pager) Current() int {
	return p.current
}

// Group returns the index of the visible page group, 0-based
func (p *Pager) Group() int {
	return p.group
}

// TotalPages returns the page count of the last fetch
func (p *Pager) TotalPages() int {
	return p.totalPages
}

// GroupSize returns how many page numbers a group shows
func (p *Pager) GroupSize() int {
	return p.size
}

// SelectPage makes n current and moves the group so n is visible.
// It reports whether anything changed.
func (p *Pager) SelectPage(n int) bool {
	if n < 1 {
		n = 1
	}
	if p.totalPages > 0 && n > p.totalPages {
		n = p.totalPages
	}
	group := (n - 1) / p.size
	changed := n != p.current || group != p.group
	p.current = n
	p.group = group
	return changed
}

// AdvanceGroup shows the next group of page numbers, if one exists.
// The current page does not change.
func (p *Pager) AdvanceGroup() bool {
	if (p.group+1)*p.size >= p.totalPages {
		return false
	}
	p.group++
	return true
}

// RetreatGroup shows the previous group of page numbers, if one exists
func (p *Pager) RetreatGroup() bool {
	if p.group <= 0 {
		return false
	}
	p.group--
	return true
}

// SetGroup jumps to group g when it is in bounds. The web UI uses it to
// restore the window from the query string.
func (p *Pager) SetGroup(g int) bool {
	if g < 0 || (g > 0 && g*p.size >= p.totalPages) {
		return false
	}
	changed := g != p.group
	p.group = g
	return changed
}

// HasNextGroup reports whether AdvanceGroup would move
func (p *Pager) HasNextGroup() bool {
	return (p.group+1)*p.size < p.totalPages
}

// HasPrevGroup reports whether RetreatGroup would move
func (p *Pager) HasPrevGroup() bool {
	return p.group > 0
}

// VisibleRange returns the page numbers of the current group, clipped to
// the total. It is empty when there are no pages.
func (p *Pager) VisibleRange() Range {
	if p.totalPages <= 0 {
		return Range{First: 1, Last: 0}
	}
	first := p.group*p.size + 1
	last := (p.group + 1) * p.size
	if last > p.totalPages {
		last = p.totalPages
	}
	return Range{First: first, Last: last}
}

// Pages lists the visible page numbers
func (p *Pager) Pages() []int {
	r := p.VisibleRange()
	pages := make([]int, 0, r.Len())
	for n := r.First; n <= r.Last; n++ {
		pages = append(pages, n)
	}
	return pages
}

// Reset returns to page 1, group 0
func (p *Pager) Reset() {
	p.current = 1
	p.group = 0
}

// SetTotal records the page count of the latest fetch and clamps the
// current page to it (page 1 when there are no pages). It reports whether
// the current page was clamped, in which case the caller must refetch.
func (p *Pager) SetTotal(total int) bool {
	if total < 0 {
		total = 0
	}
	p.totalPages = total

	clamped := false
	if total == 0 {
		clamped = p.current != 1
		p.current = 1
	} else if p.current > total {
		p.current = total
		clamped = true
	}

	if p.group*p.size >= total && p.group > 0 {
		p.group = (p.current - 1) / p.size
	}
	return clamped
}
