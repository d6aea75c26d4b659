package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/amiyamandal-dev/bizbrief/internal/config"
	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/feed"
)

const listHelp = "/ search • t topic • d source • ↑/↓ select • enter comments • u upvote • s save • " +
	"n/p page • [/] pages • 1-0 jump • h home • a account • q quit"

// listPage is the article list with its search box, filters and pagination
type listPage struct {
	app     *App
	browser *feed.Browser
	input   textinput.Model

	searching bool
	cursor    int
	width     int
}

func newListPage(a *App) *listPage {
	browser := feed.NewBrowser(a.ctx, feed.Options{
		API:       a.opts.API,
		Session:   a.opts.Session,
		Scheduler: a.opts.Scheduler,
		Bus:       a.bus,
		Logger:    a.opts.Logger,
		Clock:     a.opts.Clock,
		GroupSize: a.opts.UI.PageGroupSize,
		Debounce:  a.opts.UI.SearchDebounce,
	})

	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.CharLimit = 200
	ti.Width = 40

	return &listPage{
		app:     a,
		browser: browser,
		input:   ti,
		width:   a.width,
	}
}

func (p *listPage) setWidth(w int) {
	p.width = w
	p.input.Width = max(10, w/2)
}

func (p *listPage) selected() (domain.Article, bool) {
	articles := p.browser.List().Articles()
	if p.cursor < 0 || p.cursor >= len(articles) {
		return domain.Article{}, false
	}
	return articles[p.cursor], true
}

func (p *listPage) update(msg tea.KeyMsg) tea.Cmd {
	if p.searching {
		return p.updateSearch(msg)
	}

	pager := p.browser.Pager()
	switch key := msg.String(); key {
	case "q":
		return tea.Quit
	case "/":
		p.searching = true
		p.input.SetValue(p.browser.Search().Local())
		p.input.CursorEnd()
		return p.input.Focus()
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.browser.List().Articles())-1 {
			p.cursor++
		}
	case "enter", "o":
		if a, ok := p.selected(); ok {
			p.app.openComments(a.ID)
		}
	case "u":
		if a, ok := p.selected(); ok && !a.UserUpvoted {
			p.browser.Upvote(a.ID, nil)
		}
	case "s":
		if a, ok := p.selected(); ok {
			p.browser.Save(a.ID, nil)
		}
	case "n", "right":
		if pager.Current() < pager.TotalPages() {
			p.selectPage(pager.Current() + 1)
		}
	case "p", "left":
		if pager.Current() > 1 {
			p.selectPage(pager.Current() - 1)
		}
	case "]":
		p.browser.AdvanceGroup()
	case "[":
		p.browser.RetreatGroup()
	case "t":
		p.cycleChip()
	case "d":
		p.cycleDomain()
	case "h":
		p.cursor = 0
		p.browser.Reset()
	case "r":
		p.browser.Refresh()
	case "a":
		if p.app.opts.Session.LoggedIn() {
			if err := p.app.opts.Session.Logout(); err != nil {
				p.app.logger.Error("Failed to log out", "error", err)
				p.app.notice = "Could not log out: " + err.Error()
				return nil
			}
			p.browser.Refresh()
		} else {
			p.app.showLogin()
		}
	default:
		// digits jump within the visible window of page numbers; 0 is the tenth
		if n, err := strconv.Atoi(key); err == nil && len(key) == 1 {
			if n == 0 {
				n = 10
			}
			pages := pager.Pages()
			if n <= len(pages) {
				p.selectPage(pages[n-1])
			}
		}
	}
	return nil
}

func (p *listPage) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		p.searching = false
		p.input.Blur()
		p.cursor = 0
		p.browser.Commit(strings.TrimSpace(p.input.Value()))
		return nil
	case tea.KeyEsc:
		p.searching = false
		p.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != p.browser.Search().Local() {
		p.browser.InputChanged(p.input.Value())
	}
	return cmd
}

func (p *listPage) selectPage(n int) {
	p.cursor = 0
	p.browser.SelectPage(n)
}

// cycleChip steps through the topic chips; past the last one the filter clears
func (p *listPage) cycleChip() {
	chips := p.app.opts.UI.Chips
	if len(chips) == 0 {
		return
	}
	p.cursor = 0
	active := p.browser.Search().Chip()
	i := indexOf(chips, active)
	if i == len(chips)-1 {
		p.browser.SelectChip(active)
		return
	}
	p.browser.SelectChip(chips[i+1])
}

func (p *listPage) cycleDomain() {
	domains := p.app.opts.UI.Domains
	if len(domains) == 0 {
		return
	}
	p.cursor = 0
	i := -1
	for j, d := range domains {
		if d.Value == p.browser.Search().Domain() {
			i = j
		}
	}
	if i == len(domains)-1 {
		p.browser.SelectDomain("")
		return
	}
	p.browser.SelectDomain(domains[i+1].Value)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func domainLabel(domains []config.Domain, value string) string {
	for _, d := range domains {
		if d.Value == value {
			return d.Label
		}
	}
	return value
}

func (p *listPage) view() string {
	st := p.app.styles
	var sb strings.Builder

	sb.WriteString(st.Input.Render(p.input.View()))
	sb.WriteString("\n")

	search := p.browser.Search()
	chips := make([]string, 0, len(p.app.opts.UI.Chips))
	for _, c := range p.app.opts.UI.Chips {
		if c == search.Chip() {
			chips = append(chips, st.Active.Render(c))
		} else {
			chips = append(chips, st.Chip.Render(c))
		}
	}
	sb.WriteString(strings.Join(chips, " "))
	sb.WriteString("\n")

	source := "All sources"
	if d := search.Domain(); d != "" {
		source = domainLabel(p.app.opts.UI.Domains, d)
	}
	sb.WriteString(st.Meta.Render("Source: " + source))
	sb.WriteString("\n\n")

	list := p.browser.List()
	switch list.View() {
	case feed.ViewLoading:
		sb.WriteString(st.Meta.Render("Loading..."))
	case feed.ViewError:
		sb.WriteString(st.Error.Render(list.ErrorMessage()))
	case feed.ViewEmpty:
		sb.WriteString(feed.EmptyMessage)
	default:
		sb.WriteString(p.rows(list.Articles()))
		sb.WriteString("\n")
		sb.WriteString(p.pagination())
	}

	sb.WriteString("\n\n")
	sb.WriteString(st.Help.Render(listHelp))
	return sb.String()
}

func (p *listPage) rows(articles []domain.Article) string {
	st := p.app.styles
	page := p.browser.Pager().Current()
	query := p.browser.Search().Committed()

	var sb strings.Builder
	for i, a := range articles {
		prefix := fmt.Sprintf("  %d. ", feed.Number(page, i))
		if i == p.cursor {
			prefix = st.Selected.Render(">") + prefix[1:]
		}

		avail := p.width - runewidth.StringWidth(prefix)
		headline := feed.Truncate(a.Headline)
		if avail > 0 {
			headline = runewidth.Truncate(headline, avail, "…")
		}

		sb.WriteString(prefix)
		sb.WriteString(renderSegments(feed.Highlight(headline, query), st))
		sb.WriteString("\n")

		meta := []string{feed.UpvoteLabel(a.UpvoteCount), feed.DomainName(a.Website), feed.Ago(a.CreatedAt)}
		if a.UserUpvoted {
			meta = append(meta, "upvoted")
		}
		if a.UserSaved {
			meta = append(meta, "saved")
		}
		sb.WriteString(strings.Repeat(" ", runewidth.StringWidth(prefix)))
		sb.WriteString(st.Meta.Render(strings.Join(meta, " | ")))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderSegments(segments []feed.Segment, st Styles) string {
	var sb strings.Builder
	for _, s := range segments {
		if s.Highlight {
			sb.WriteString(st.Mark.Render(s.Text))
		} else {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func (p *listPage) pagination() string {
	st := p.app.styles
	pager := p.browser.Pager()

	var parts []string
	if pager.HasPrevGroup() {
		parts = append(parts, "«")
	}
	for _, n := range pager.Pages() {
		label := strconv.Itoa(n)
		if n == pager.Current() {
			label = st.Active.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	if pager.HasNextGroup() {
		parts = append(parts, "»")
	}
	return strings.Join(parts, " ")
}
