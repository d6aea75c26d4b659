// Package loop models the single UI event loop the controllers run on.
//
// Controller state is only touched from functions running on the loop.
// Blocking work (network calls) runs off the loop through Go; the function
// it returns is the completion, and it is posted back onto the loop.
package loop

import "sync"

// Scheduler runs functions on the UI loop
type Scheduler interface {
	// Post queues fn to run on the loop.
	Post(fn func())
	// Go runs work off the loop and posts the completion it returns.
	// A nil completion is ignored.
	Go(work func() func())
}

// Inline runs everything synchronously on the caller's goroutine. The web UI
// uses it per request: each handler is its own short-lived loop.
type Inline struct{}

// Post runs fn immediately
func (Inline) Post(fn func()) {
	if fn != nil {
		fn()
	}
}

// Go runs work and then its completion, both on the caller's goroutine
func (Inline) Go(work func() func()) {
	if done := work(); done != nil {
		done()
	}
}

// Manual holds work and completions until a test releases them, so
// completions can be delivered in any order.
type Manual struct {
	mu      sync.Mutex
	posted  []func()
	pending []func() func()
}

// Post queues fn until Flush
func (m *Manual) Post(fn func()) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.posted = append(m.posted, fn)
	m.mu.Unlock()
}

// Go parks work until Complete
func (m *Manual) Go(work func() func()) {
	m.mu.Lock()
	m.pending = append(m.pending, work)
	m.mu.Unlock()
}

// Pending returns how many units of work wait for Complete
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Complete runs the i-th parked work item and its completion, in that order.
// Indices refer to the order Go was called among the items still parked.
func (m *Manual) Complete(i int) {
	m.mu.Lock()
	work := m.pending[i]
	m.pending = append(m.pending[:i:i], m.pending[i+1:]...)
	m.mu.Unlock()

	if done := work(); done != nil {
		done()
	}
}

// CompleteAll runs parked work in FIFO order, including work parked while
// completing.
func (m *Manual) CompleteAll() {
	for m.Pending() > 0 {
		m.Complete(0)
	}
}

// Posted returns how many posted functions wait for Flush
func (m *Manual) Posted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posted)
}

// Flush runs posted functions in order, including ones posted while flushing
func (m *Manual) Flush() {
	for {
		m.mu.Lock()
		if len(m.posted) == 0 {
			m.mu.Unlock()
			return
		}
		fn := m.posted[0]
		m.posted = m.posted[1:]
		m.mu.Unlock()
		fn()
	}
}
