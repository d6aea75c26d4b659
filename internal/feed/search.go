package feed

// FilterKind tells what occupies the single filter slot
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterDomain
	FilterChip
)

// Filter is the selected domain or topic chip. Only one can be active.
type Filter struct {
	Kind  FilterKind
	Value string
}

// Search holds the text box buffer, the committed query and the filter
// slot. Every committed change resets paging through the change hook.
// Committing or changing the filter cancels a pending debounced commit, so
// the latest write always wins.
type Search struct {
	local     string
	committed string
	filter    Filter

	debounce *Debouncer
	changed  func()
}

// NewSearch creates an empty search. changed runs after every committed
// change, on the loop.
func NewSearch(debounce *Debouncer, changed func()) *Search {
	if changed == nil {
		changed = func() {}
	}
	return &Search{debounce: debounce, changed: changed}
}

// Local returns the text in the search input
func (s *Search) Local() string {
	return s.local
}

// Committed returns the query the list is fetched with
func (s *Search) Committed() string {
	return s.committed
}

// Filter returns the active chip or domain filter
func (s *Search) Filter() Filter {
	return s.filter
}

// Domain returns the active domain filter, or ""
func (s *Search) Domain() string {
	if s.filter.Kind != FilterDomain {
		return ""
	}
	return s.filter.Value
}

// Chip returns the active chip, or ""
func (s *Search) Chip() string {
	if s.filter.Kind != FilterChip {
		return ""
	}
	return s.filter.Value
}

// InputChanged records a keystroke and schedules a debounced commit of text
func (s *Search) InputChanged(text string) {
	s.local = text
	if s.debounce == nil {
		return
	}
	s.debounce.Trigger(func() { s.Commit(text) })
}

// Commit makes q the query sent to the backend. A typed query replaces an
// active chip; a domain filter stays.
func (s *Search) Commit(q string) {
	s.cancelPending()
	s.local = q
	s.committed = q
	if s.filter.Kind == FilterChip {
		s.filter = Filter{}
	}
	s.changed()
}

// SelectChip toggles a topic chip. Selecting the active chip clears the
// filter and the query; selecting another searches for its tag.
func (s *Search) SelectChip(tag string) {
	s.cancelPending()
	if s.filter.Kind == FilterChip && s.filter.Value == tag {
		s.filter = Filter{}
		s.committed = ""
	} else {
		s.filter = Filter{Kind: FilterChip, Value: tag}
		s.committed = tag
	}
	s.local = s.committed
	s.changed()
}

// SelectDomain sets the domain filter; "" clears it. Any chip is dropped
// together with the tag it had put in the query.
func (s *Search) SelectDomain(domain string) {
	s.cancelPending()
	if s.filter.Kind == FilterChip {
		s.committed = ""
		s.local = ""
	}
	if domain == "" {
		s.filter = Filter{}
	} else {
		s.filter = Filter{Kind: FilterDomain, Value: domain}
	}
	s.changed()
}

// Restore sets the state directly, without the change hook. The web UI
// rebuilds the search from the query string this way.
func (s *Search) Restore(query string, filter Filter) {
	s.cancelPending()
	if filter.Kind == FilterChip {
		query = filter.Value
	}
	s.local = query
	s.committed = query
	s.filter = filter
}

// Reset clears the query and the filter without the change hook
func (s *Search) Reset() {
	s.Restore("", Filter{})
}

func (s *Search) cancelPending() {
	if s.debounce != nil {
		s.debounce.Cancel()
	}
}
