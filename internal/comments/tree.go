// Package comments holds the threaded discussion of an article: traversal
// of the reply forest, reply and edit state, and the thread controller.
package comments

import "github.com/amiyamandal-dev/bizbrief/internal/domain"

// Row is one comment in display order with its nesting depth
type Row struct {
	Comment *domain.Comment
	Depth   int
}

type frame struct {
	node  *domain.Comment
	depth int
}

// Walk visits the forest in pre-order, parents before their replies and
// siblings in order. It keeps an explicit stack, so thread depth is bounded
// only by memory. Returning false from fn stops the walk.
func Walk(forest []domain.Comment, fn func(c *domain.Comment, depth int) bool) {
	stack := make([]frame, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: &forest[i], depth: 0})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(top.node, top.depth) {
			return
		}

		replies := top.node.Replies
		for i := len(replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &replies[i], depth: top.depth + 1})
		}
	}
}

// Flatten lists the forest in display order
func Flatten(forest []domain.Comment) []Row {
	var rows []Row
	Walk(forest, func(c *domain.Comment, depth int) bool {
		rows = append(rows, Row{Comment: c, Depth: depth})
		return true
	})
	return rows
}

// Find returns the comment with the given id
func Find(forest []domain.Comment, id string) (*domain.Comment, bool) {
	var found *domain.Comment
	Walk(forest, func(c *domain.Comment, _ int) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// Count returns the number of comments in the forest
func Count(forest []domain.Comment) int {
	n := 0
	Walk(forest, func(*domain.Comment, int) bool {
		n++
		return true
	})
	return n
}
