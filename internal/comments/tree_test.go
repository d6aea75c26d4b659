package comments

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

func node(id string, replies ...domain.Comment) domain.Comment {
	return domain.Comment{ID: id, Content: "body of " + id, Replies: replies}
}

type flatRow struct {
	ID    string
	Depth int
}

func flat(rows []Row) []flatRow {
	out := make([]flatRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, flatRow{ID: r.Comment.ID, Depth: r.Depth})
	}
	return out
}

func TestFlattenPreOrder(t *testing.T) {
	forest := []domain.Comment{
		node("a",
			node("a1", node("a1x")),
			node("a2"),
		),
		node("b"),
		node("c", node("c1")),
	}

	want := []flatRow{
		{"a", 0}, {"a1", 1}, {"a1x", 2}, {"a2", 1},
		{"b", 0},
		{"c", 0}, {"c1", 1},
	}
	if diff := cmp.Diff(want, flat(Flatten(forest))); diff != "" {
		t.Fatalf("Flatten() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 7, Count(forest))
}

func TestWalkDeepThread(t *testing.T) {
	const depth = 100000

	root := node("n0")
	cur := &root
	for i := 1; i < depth; i++ {
		cur.Replies = []domain.Comment{{ID: "deeper"}}
		cur = &cur.Replies[0]
	}

	rows := Flatten([]domain.Comment{root})
	assert.Len(t, rows, depth)
	assert.Equal(t, depth-1, rows[len(rows)-1].Depth)
}

func TestFindStopsEarly(t *testing.T) {
	forest := []domain.Comment{node("a", node("target")), node("b")}

	visited := 0
	Walk(forest, func(c *domain.Comment, _ int) bool {
		visited++
		return c.ID != "target"
	})
	assert.Equal(t, 2, visited)

	c, ok := Find(forest, "target")
	assert.True(t, ok)
	assert.Equal(t, "body of target", c.Content)

	_, ok = Find(forest, "missing")
	assert.False(t, ok)
	assert.Empty(t, Flatten(nil))
}
