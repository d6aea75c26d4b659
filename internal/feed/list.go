package feed

import (
	"context"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// ArticleFetcher loads one page of articles
type ArticleFetcher interface {
	FetchArticles(ctx context.Context, q domain.ArticleQuery, token string) (*domain.PaginatedResult, error)
}

// ViewState is what the list area shows. Exactly one applies at a time.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewList
	ViewEmpty
	ViewError
)

func (v ViewState) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewList:
		return "list"
	case ViewEmpty:
		return "empty"
	case ViewError:
		return "error"
	}
	return "unknown"
}

// EmptyMessage is shown when a fetch returns no articles
const EmptyMessage = "No articles to display."

// List owns the fetched page and its loading and error state. Each Load is
// tagged with a sequence number; a completion that is not the latest is
// dropped, so an older response never overwrites a newer one.
type List struct {
	api    ArticleFetcher
	sched  loop.Scheduler
	token  func() string
	logger *logger.Logger

	seq      uint64
	loading  bool
	loaded   bool
	result   *domain.PaginatedResult
	query    domain.ArticleQuery
	err      error
	onLoaded func(q domain.ArticleQuery, res *domain.PaginatedResult)
}

// NewList creates an empty list. token supplies the optional credential.
func NewList(api ArticleFetcher, sched loop.Scheduler, token func() string, log *logger.Logger) *List {
	if token == nil {
		token = func() string { return "" }
	}
	if log == nil {
		log = logger.Nop()
	}
	return &List{
		api:    api,
		sched:  sched,
		token:  token,
		logger: log.WithComponent("article-list"),
	}
}

// OnLoaded registers the hook run after a successful, current fetch
func (l *List) OnLoaded(fn func(q domain.ArticleQuery, res *domain.PaginatedResult)) {
	l.onLoaded = fn
}

// Load fetches q. The previous page stays visible until the answer lands.
func (l *List) Load(ctx context.Context, q domain.ArticleQuery) {
	l.seq++
	seq := l.seq
	l.loading = true
	token := l.token()

	l.sched.Go(func() func() {
		res, err := l.api.FetchArticles(ctx, q, token)
		return func() {
			if seq != l.seq {
				l.logger.Debug("Dropping stale article page", "seq", seq, "latest", l.seq)
				return
			}
			l.complete(q, res, err)
		}
	})
}

func (l *List) complete(q domain.ArticleQuery, res *domain.PaginatedResult, err error) {
	defer func() { l.loading = false }()

	l.loaded = true
	l.query = q
	if err != nil {
		l.logger.Warn("Failed to fetch articles", "page", q.Page, "error", err)
		l.err = err
		l.result = nil
		return
	}

	l.err = nil
	l.result = res
	if l.onLoaded != nil {
		l.onLoaded(q, res)
	}
}

// Loading reports whether the latest fetch is still in flight
func (l *List) Loading() bool { return l.loading }

// Err returns the failure of the latest fetch
func (l *List) Err() error { return l.err }

// ErrorMessage returns the text shown in place of the list
func (l *List) ErrorMessage() string { return domain.UserMessage(l.err) }

// Query returns the parameters of the page currently held
func (l *List) Query() domain.ArticleQuery { return l.query }

// Articles returns the current page, possibly empty
func (l *List) Articles() []domain.Article {
	if l.result == nil {
		return nil
	}
	return l.result.Articles
}

// Article finds an article of the current page
func (l *List) Article(id string) (domain.Article, bool) {
	for _, a := range l.Articles() {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Article{}, false
}

// View picks what to show. Loading wins over the empty state so "no
// results" never flashes before the first answer.
func (l *List) View() ViewState {
	switch {
	case l.loading || !l.loaded:
		if l.result != nil && len(l.result.Articles) > 0 && l.err == nil {
			return ViewList
		}
		return ViewLoading
	case l.err != nil:
		return ViewError
	case l.result == nil || l.result.Empty():
		return ViewEmpty
	default:
		return ViewList
	}
}
