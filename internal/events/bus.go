// Package events carries cache-invalidation and notice events between
// mutating actions and the views that display the affected data.
package events

import "sync"

// Event is anything published on the bus
type Event interface {
	eventName() string
}

// ArticlesChanged is published after a confirmed article mutation
type ArticlesChanged struct {
	ArticleID string
}

// CommentsChanged is published after a confirmed comment mutation
type CommentsChanged struct {
	ArticleID string
}

// Notice is a transient message for the user, such as a failed upvote
type Notice struct {
	Message string
}

func (ArticlesChanged) eventName() string { return "articles-changed" }
func (CommentsChanged) eventName() string { return "comments-changed" }
func (Notice) eventName() string          { return "notice" }

// Name returns the wire name of an event, used in logs
func Name(e Event) string {
	return e.eventName()
}

// Handler receives published events
type Handler func(Event)

// Bus delivers events synchronously, in subscription order, on the
// publisher's goroutine. Publishers run on the UI loop, so handlers do too.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
	order    []int
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers h and returns a function that removes it
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers e to every current subscriber
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
