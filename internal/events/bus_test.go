package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(func(e Event) { got = append(got, "first:"+Name(e)) })
	unsubscribe := bus.Subscribe(func(e Event) { got = append(got, "second:"+Name(e)) })

	bus.Publish(ArticlesChanged{ArticleID: "a1"})
	unsubscribe()
	unsubscribe()
	bus.Publish(Notice{Message: "hi"})

	assert.Equal(t, []string{
		"first:articles-changed",
		"second:articles-changed",
		"first:notice",
	}, got)
}

func TestBusSubscribeDuringPublish(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(func(e Event) {
		calls++
		bus.Subscribe(func(Event) { calls++ })
	})

	bus.Publish(CommentsChanged{ArticleID: "a1"})
	assert.Equal(t, 1, calls)

	bus.Publish(CommentsChanged{ArticleID: "a1"})
	assert.Equal(t, 3, calls)
}
