package web

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/amiyamandal-dev/bizbrief/internal/comments"
	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/feed"
)

// listState is the article list as it appears in the query string
type listState struct {
	Q      string
	Chip   string
	Domain string
	Page   int
	Group  int
}

func (s listState) values() url.Values {
	v := url.Values{}
	if s.Chip != "" {
		v.Set("chip", s.Chip)
	} else if s.Q != "" {
		v.Set("q", s.Q)
	}
	if s.Domain != "" {
		v.Set("domain", s.Domain)
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.Group > 0 {
		v.Set("group", strconv.Itoa(s.Group))
	}
	return v
}

// URL renders the state as a link to the list
func (s listState) URL() string {
	v := s.values()
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// PageURL links to page n, with its group visible
func (s listState) PageURL(n int) string {
	s.Page = n
	s.Group = -1
	return s.URL()
}

// GroupURL shows group g without changing the page
func (s listState) GroupURL(g int) string {
	s.Group = g
	return s.URL()
}

// ChipURL toggles a chip: the active one clears query and filter
func (s listState) ChipURL(tag string) string {
	if s.Chip == tag {
		return "/"
	}
	return listState{Chip: tag}.URL()
}

// listItem is one rendered row of an article list
type listItem struct {
	Number   int
	Article  domain.Article
	Headline []feed.Segment
	Domain   string
	Ago      string
	Upvotes  string
}

func listItems(articles []domain.Article, page int, query string) []listItem {
	items := make([]listItem, 0, len(articles))
	for i, a := range articles {
		items = append(items, listItem{
			Number:   feed.Number(page, i),
			Article:  a,
			Headline: feed.Highlight(feed.Truncate(a.Headline), query),
			Domain:   feed.DomainName(a.Website),
			Ago:      feed.Ago(a.CreatedAt),
			Upvotes:  feed.UpvoteLabel(a.UpvoteCount),
		})
	}
	return items
}

// commentRow is one rendered comment with its reply and edit boxes
type commentRow struct {
	Comment *domain.Comment
	Indent  int
	Body    template.HTML
	Ago     string
	Mode    comments.Mode
	CanEdit bool
	Draft   string
}

// Replying reports whether the reply box is open under the row
func (r commentRow) Replying() bool {
	return r.Mode == comments.ModeReplying
}

// Editing reports whether the row is being edited
func (r commentRow) Editing() bool {
	return r.Mode == comments.ModeEditing
}

const indentPerLevel = 24

func commentRows(th *comments.Thread, renderer *comments.Renderer) []commentRow {
	ed := th.Editor()
	rows := th.Rows()
	out := make([]commentRow, 0, len(rows))
	for _, r := range rows {
		row := commentRow{
			Comment: r.Comment,
			Indent:  r.Depth * indentPerLevel,
			Body:    renderer.HTML(r.Comment.Content),
			Ago:     feed.Ago(r.Comment.CreatedAt),
			Mode:    ed.ModeOf(r.Comment.ID),
			CanEdit: th.CanEdit(r.Comment),
		}
		if row.Editing() {
			row.Draft = ed.EditDraft(r.Comment.ID)
		}
		out = append(out, row)
	}
	return out
}

// safeReturn keeps redirects on this site
func safeReturn(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

// withNotice appends a notice to a local URL
func withNotice(target, notice string) string {
	if notice == "" {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
