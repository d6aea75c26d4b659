package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/events"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
	"github.com/amiyamandal-dev/bizbrief/internal/session"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// ErrNotOwner is returned when editing somebody else's comment
var ErrNotOwner = errors.New("only your own comments can be edited")

// API is the part of the backend a thread needs
type API interface {
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	GetComments(ctx context.Context, articleID string) ([]domain.Comment, error)
	PostComment(ctx context.Context, token, articleID string, req domain.CommentCreateRequest) (*domain.Comment, error)
	EditComment(ctx context.Context, token, articleID, commentID string, req domain.CommentUpdateRequest) (*domain.Comment, error)
	Me(ctx context.Context, token string) (*domain.User, error)
}

// ThreadOptions configures a Thread
type ThreadOptions struct {
	API       API
	Session   *session.Session
	Scheduler loop.Scheduler
	Bus       *events.Bus
	Logger    *logger.Logger
}

// Thread is the comment page of one article. Mutations never splice the
// forest locally: a confirmed write publishes events.CommentsChanged and
// the thread reloads everything. All methods run on the loop.
type Thread struct {
	ctx       context.Context
	articleID string
	api       API
	session   *session.Session
	sched     loop.Scheduler
	bus       *events.Bus
	editor    *Editor
	logger    *logger.Logger

	seq     uint64
	loading bool
	loaded  bool
	article *domain.Article
	forest  []domain.Comment
	viewer  string
	err     error

	unsubscribe func()
}

// NewThread creates the thread of articleID. ctx bounds every load.
func NewThread(ctx context.Context, articleID string, opts ThreadOptions) *Thread {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	t := &Thread{
		ctx:       ctx,
		articleID: articleID,
		api:       opts.API,
		session:   opts.Session,
		sched:     opts.Scheduler,
		bus:       bus,
		editor:    NewEditor(),
		logger:    log.WithComponent("comment-thread"),
	}
	t.unsubscribe = bus.Subscribe(func(e events.Event) {
		if changed, ok := e.(events.CommentsChanged); ok && changed.ArticleID == t.articleID {
			t.Load()
		}
	})
	return t
}

// Close stops listening for comment changes
func (t *Thread) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
	}
}

// ArticleID returns the article the thread belongs to
func (t *Thread) ArticleID() string {
	return t.articleID
}

// Article returns the loaded article, nil until the first load
func (t *Thread) Article() *domain.Article {
	return t.article
}

// Forest returns the top-level comments with their replies
func (t *Thread) Forest() []domain.Comment {
	return t.forest
}

// Rows returns the comments in display order with their depth
func (t *Thread) Rows() []Row {
	return Flatten(t.forest)
}

// Editor returns the reply and edit state
func (t *Thread) Editor() *Editor {
	return t.editor
}

// Loading reports whether the first load or a reload is in flight
func (t *Thread) Loading() bool {
	return t.loading || !t.loaded
}

// Err returns the error of the last load
func (t *Thread) Err() error {
	return t.err
}

// Viewer returns the username of the logged in reader, if known
func (t *Thread) Viewer() string {
	return t.viewer
}

// Load fetches the article, its comments and the viewer in parallel
func (t *Thread) Load() {
	t.seq++
	seq := t.seq
	t.loading = true
	token := t.session.Token()

	t.sched.Go(func() func() {
		var (
			article *domain.Article
			forest  []domain.Comment
			viewer  string
		)

		g, ctx := errgroup.WithContext(t.ctx)
		g.Go(func() error {
			var err error
			article, err = t.api.GetArticle(ctx, t.articleID)
			return err
		})
		g.Go(func() error {
			var err error
			forest, err = t.api.GetComments(ctx, t.articleID)
			return err
		})
		if token != "" {
			g.Go(func() error {
				user, err := t.api.Me(ctx, token)
				if err != nil {
					t.logger.Debug("Viewer lookup failed", "error", err)
					return nil
				}
				viewer = user.Username
				return nil
			})
		}
		err := g.Wait()

		return func() {
			if seq != t.seq {
				return
			}
			defer func() { t.loading = false }()

			t.loaded = true
			if err != nil {
				t.logger.Warn("Failed to load thread", "article_id", t.articleID, "error", err)
				t.err = err
				return
			}
			if viewer == "" {
				viewer = t.session.Username()
			}
			t.err = nil
			t.article = article
			t.forest = forest
			t.viewer = viewer
		}
	})
}

// CanEdit reports whether the viewer wrote c
func (t *Thread) CanEdit(c *domain.Comment) bool {
	return t.viewer != "" && c.Username == t.viewer
}

// Reply posts the reply draft of parentID. An empty draft does nothing.
func (t *Thread) Reply(ctx context.Context, parentID string, done func(error)) {
	content := strings.TrimSpace(t.editor.ReplyDraft(parentID))
	if content == "" {
		finish(done, nil)
		return
	}

	parent := parentID
	t.mutate(ctx, "reply", done, func(token string) error {
		_, err := t.api.PostComment(ctx, token, t.articleID, domain.CommentCreateRequest{
			Content:         content,
			ParentCommentID: &parent,
		})
		return err
	}, func() { t.editor.ReplySent(parentID) })
}

// Comment posts the root comment draft
func (t *Thread) Comment(ctx context.Context, done func(error)) {
	content := strings.TrimSpace(t.editor.RootDraft())
	if content == "" {
		finish(done, nil)
		return
	}

	t.mutate(ctx, "comment", done, func(token string) error {
		_, err := t.api.PostComment(ctx, token, t.articleID, domain.CommentCreateRequest{Content: content})
		return err
	}, t.editor.RootSent)
}

// Edit saves the edit draft of commentID
func (t *Thread) Edit(ctx context.Context, commentID string, done func(error)) {
	content := strings.TrimSpace(t.editor.EditDraft(commentID))
	if content == "" {
		finish(done, nil)
		return
	}
	if c, ok := Find(t.forest, commentID); ok && !t.CanEdit(c) {
		finish(done, ErrNotOwner)
		return
	}

	t.mutate(ctx, "edit", done, func(token string) error {
		_, err := t.api.EditComment(ctx, token, t.articleID, commentID, domain.CommentUpdateRequest{Content: content})
		return err
	}, func() { t.editor.EditSent(commentID) })
}

func (t *Thread) mutate(ctx context.Context, op string, done func(error), call func(token string) error, sent func()) {
	token, err := t.session.RequireAuth()
	if err != nil {
		finish(done, err)
		return
	}

	t.sched.Go(func() func() {
		err := call(token)
		return func() {
			switch {
			case err == nil:
				sent()
				t.bus.Publish(events.CommentsChanged{ArticleID: t.articleID})
			case errors.Is(err, domain.ErrUnauthorized):
				t.session.OnUnauthorized()
			default:
				t.logger.Error("Comment mutation failed", "op", op, "article_id", t.articleID, "error", err)
				t.bus.Publish(events.Notice{Message: fmt.Sprintf("Could not %s: %s", op, domain.UserMessage(err))})
			}
			finish(done, err)
		}
	})
}

func finish(done func(error), err error) {
	if done != nil {
		done(err)
	}
}
