package feed

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

const (
	truncateWords = 50
	truncateChars = 100
	// ReadMoreCue is appended to truncated headlines
	ReadMoreCue = "...(click to read more)"
	stemLength  = 4
)

// Number is the 1-based position of the i-th article of a page across the
// whole result set
func Number(page, i int) int {
	if page < 1 {
		page = 1
	}
	return (page-1)*domain.PageSize + i + 1
}

// Truncate shortens headlines of more than 50 words to their first 100
// characters followed by the read-more cue
func Truncate(headline string) string {
	if len(strings.Split(headline, " ")) <= truncateWords {
		return headline
	}
	if utf8.RuneCountInString(headline) <= truncateChars {
		return headline + ReadMoreCue
	}
	return string([]rune(headline)[:truncateChars]) + ReadMoreCue
}

// Segment is a run of headline text, highlighted or not
type Segment struct {
	Text      string
	Highlight bool
}

// Highlight splits headline into segments, marking every word that starts
// with the first four characters of query, case-insensitively
func Highlight(headline, query string) []Segment {
	re := stemPattern(query)
	if re == nil {
		return []Segment{{Text: headline}}
	}

	var segments []Segment
	pos := 0
	for _, m := range re.FindAllStringSubmatchIndex(headline, -1) {
		start, end := m[2], m[1]
		if start > pos {
			segments = append(segments, Segment{Text: headline[pos:start]})
		}
		segments = append(segments, Segment{Text: headline[start:end], Highlight: true})
		pos = end
	}
	if pos < len(headline) {
		segments = append(segments, Segment{Text: headline[pos:]})
	}
	return segments
}

func stemPattern(query string) *regexp.Regexp {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	if utf8.RuneCountInString(q) > stemLength {
		q = string([]rune(q)[:stemLength])
	}
	// word boundaries on Unicode letters and digits; group 1 starts the match
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(` + regexp.QuoteMeta(q) + `)[\p{L}\p{N}_]*`)
}

// DomainName shortens a website URL to its name: "https://www.livemint.com"
// becomes "livemint". Input that does not parse comes back unchanged.
func DomainName(website string) string {
	u, err := url.Parse(website)
	if err != nil || u.Hostname() == "" {
		return website
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	return strings.SplitN(host, ".", 2)[0]
}

// UpvoteLabel renders an upvote count
func UpvoteLabel(n int) string {
	if n == 1 {
		return "1 upvote"
	}
	return fmt.Sprintf("%d upvotes", n)
}

// Ago renders t relative to now, with minutes shortened: "5 mins ago"
func Ago(t time.Time) string {
	return AgoFrom(t, time.Now())
}

// AgoFrom renders t relative to now
func AgoFrom(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	s := humanize.RelTime(t, now, "ago", "from now")
	s = strings.Replace(s, "minutes", "mins", 1)
	s = strings.Replace(s, "minute", "min", 1)
	return s
}
