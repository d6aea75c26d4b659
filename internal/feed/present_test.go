package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, 1, Number(1, 0))
	assert.Equal(t, 21, Number(2, 0))
	assert.Equal(t, 35, Number(2, 14))
	assert.Equal(t, 1, Number(0, 0))
}

func TestTruncate(t *testing.T) {
	short := strings.TrimSpace(strings.Repeat("word ", 50))
	assert.Equal(t, short, Truncate(short))

	long := strings.TrimSpace(strings.Repeat("market ", 51))
	got := Truncate(long)
	assert.Equal(t, long[:100]+"...(click to read more)", got)
	assert.Len(t, got, 100+len(ReadMoreCue))
}

func TestHighlightStem(t *testing.T) {
	segs := Highlight("Banks and banking stocks rally", "Banking")

	var marked []string
	var text strings.Builder
	for _, s := range segs {
		text.WriteString(s.Text)
		if s.Highlight {
			marked = append(marked, s.Text)
		}
	}
	assert.Equal(t, []string{"Banks", "banking"}, marked)
	assert.Equal(t, "Banks and banking stocks rally", text.String())
}

func TestHighlightUnicodeAndSymbols(t *testing.T) {
	cases := []struct {
		headline, query string
		want            []Segment
	}{
		{"Über Cabs raises funds", "über", []Segment{{Text: "Über", Highlight: true}, {Text: " Cabs raises funds"}}},
		{"Économie française en hausse", "économie", []Segment{{Text: "Économie", Highlight: true}, {Text: " française en hausse"}}},
		{"Stock hits $100 mark", "$100", []Segment{{Text: "Stock hits "}, {Text: "$100", Highlight: true}, {Text: " mark"}}},
		{"Gold at ₹500 per gram", "₹500", []Segment{{Text: "Gold at "}, {Text: "₹500", Highlight: true}, {Text: " per gram"}}},
		{"Sensex jumps 500 points", "sens", []Segment{{Text: "Sensex", Highlight: true}, {Text: " jumps 500 points"}}},
		{"Consensus builds", "sens", []Segment{{Text: "Consensus builds"}}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, Highlight(tc.headline, tc.query))
		})
	}
}

func TestHighlightNoQuery(t *testing.T) {
	assert.Equal(t, []Segment{{Text: "Rates rise"}}, Highlight("Rates rise", "  "))
	assert.Equal(t, []Segment{{Text: "C++ (and more)"}}, Highlight("C++ (and more)", "zzzz"))
}

func TestDomainName(t *testing.T) {
	assert.Equal(t, "livemint", DomainName("https://www.livemint.com"))
	assert.Equal(t, "economictimes", DomainName("https://economictimes.indiatimes.com/markets"))
	assert.Equal(t, "moneycontrol", DomainName("moneycontrol"))
	assert.Equal(t, "", DomainName(""))
}

func TestUpvoteLabel(t *testing.T) {
	assert.Equal(t, "0 upvotes", UpvoteLabel(0))
	assert.Equal(t, "1 upvote", UpvoteLabel(1))
	assert.Equal(t, "7 upvotes", UpvoteLabel(7))
}

func TestAgoFrom(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "5 mins ago", AgoFrom(now.Add(-5*time.Minute), now))
	assert.Equal(t, "1 min ago", AgoFrom(now.Add(-90*time.Second), now))
	assert.Equal(t, "3 hours ago", AgoFrom(now.Add(-3*time.Hour), now))
	assert.Equal(t, "", AgoFrom(time.Time{}, now))
}
