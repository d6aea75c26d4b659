package feed

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/events"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
	"github.com/amiyamandal-dev/bizbrief/internal/session"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// ArticleAPI is the part of the backend the article list needs
type ArticleAPI interface {
	ArticleFetcher
	ArticleMutator
}

// Options configures a Browser
type Options struct {
	API       ArticleAPI
	Session   *session.Session
	Scheduler loop.Scheduler
	Bus       *events.Bus
	Logger    *logger.Logger
	Clock     clock.Clock
	GroupSize int
	Debounce  time.Duration
}

// Browser is the article list screen: pagination, search and the fetched
// page. It is reactive: after every operation it derives the query from
// its state and fetches only when that query differs from the last one.
// All methods must be called on the loop.
type Browser struct {
	ctx     context.Context
	pager   *Pager
	search  *Search
	list    *List
	actions *Actions
	last    *domain.ArticleQuery
	logger  *logger.Logger

	unsubscribe func()
}

// NewBrowser wires a browser. ctx bounds every fetch it issues.
func NewBrowser(ctx context.Context, opts Options) *Browser {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	b := &Browser{
		ctx:    ctx,
		pager:  NewPager(opts.GroupSize),
		logger: log.WithComponent("browser"),
	}
	debounce := NewDebouncer(opts.Clock, opts.Scheduler, opts.Debounce)
	b.search = NewSearch(debounce, func() {
		b.pager.Reset()
		b.reconcile()
	})
	b.list = NewList(opts.API, opts.Scheduler, opts.Session.Token, log)
	b.list.OnLoaded(b.loaded)
	b.actions = NewActions(opts.API, opts.Session, opts.Scheduler, bus, log)

	b.unsubscribe = bus.Subscribe(func(e events.Event) {
		if _, ok := e.(events.ArticlesChanged); ok {
			b.Refresh()
		}
	})
	return b
}

// Pager returns the pagination state
func (b *Browser) Pager() *Pager {
	return b.pager
}

// Search returns the search state
func (b *Browser) Search() *Search {
	return b.search
}

// List returns the article list state
func (b *Browser) List() *List {
	return b.list
}

// Query derives the fetch parameters from the current state
func (b *Browser) Query() domain.ArticleQuery {
	return domain.ArticleQuery{
		Page:    b.pager.Current(),
		Keyword: b.search.Committed(),
		Website: b.search.Domain(),
	}
}

// Start issues the first fetch
func (b *Browser) Start() {
	b.reconcile()
}

// Close stops listening for article changes
func (b *Browser) Close() {
	b.search.cancelPending()
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
}

// SelectPage shows page n
func (b *Browser) SelectPage(n int) {
	b.pager.SelectPage(n)
	b.reconcile()
}

// AdvanceGroup shows the next window of page numbers
func (b *Browser) AdvanceGroup() bool { return b.pager.AdvanceGroup() }

// RetreatGroup shows the previous window of page numbers
func (b *Browser) RetreatGroup() bool { return b.pager.RetreatGroup() }

// InputChanged feeds a keystroke of the search box
func (b *Browser) InputChanged(text string) { b.search.InputChanged(text) }

// Commit searches for q right away
func (b *Browser) Commit(q string) { b.search.Commit(q) }

// SelectChip toggles a topic chip
func (b *Browser) SelectChip(tag string) { b.search.SelectChip(tag) }

// SelectDomain filters by source domain
func (b *Browser) SelectDomain(domain string) { b.search.SelectDomain(domain) }

// Reset is the home action: no query, no filter, page 1
func (b *Browser) Reset() {
	b.search.Reset()
	b.pager.Reset()
	b.reconcile()
}

// Refresh refetches the current query even if nothing changed
func (b *Browser) Refresh() {
	b.last = nil
	b.reconcile()
}

// Upvote upvotes an article of the current page
func (b *Browser) Upvote(id string, done func(error)) {
	b.actions.Upvote(b.ctx, id, done)
}

// Save saves an article. Saving is terminal: an already saved article is
// left alone.
func (b *Browser) Save(id string, done func(error)) {
	if a, ok := b.list.Article(id); ok && a.UserSaved {
		if done != nil {
			done(nil)
		}
		return
	}
	b.actions.Save(b.ctx, id, done)
}

func (b *Browser) reconcile() {
	q := b.Query()
	if b.last != nil && *b.last == q {
		return
	}
	b.last = &q
	b.list.Load(b.ctx, q)
}

// loaded runs after a current fetch landed. A shrunken result set clamps
// the page, which refetches the clamped page.
func (b *Browser) loaded(q domain.ArticleQuery, res *domain.PaginatedResult) {
	if b.pager.SetTotal(res.TotalPages) {
		b.logger.Debug("Clamped current page", "requested", q.Page, "page", b.pager.Current(), "total_pages", res.TotalPages)
		b.reconcile()
	}
}
