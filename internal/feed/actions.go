package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/events"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
	"github.com/amiyamandal-dev/bizbrief/internal/session"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// ArticleMutator performs the authenticated article mutations
type ArticleMutator interface {
	Upvote(ctx context.Context, token, id string) error
	Save(ctx context.Context, token, id string) error
}

// Actions runs upvote and save. It never touches the list directly: a
// confirmed mutation publishes events.ArticlesChanged and the list refetches.
type Actions struct {
	api     ArticleMutator
	session *session.Session
	sched   loop.Scheduler
	bus     *events.Bus
	logger  *logger.Logger
}

// NewActions creates the article actions
func NewActions(api ArticleMutator, sess *session.Session, sched loop.Scheduler, bus *events.Bus, log *logger.Logger) *Actions {
	if log == nil {
		log = logger.Nop()
	}
	return &Actions{
		api:     api,
		session: sess,
		sched:   sched,
		bus:     bus,
		logger:  log.WithComponent("article-actions"),
	}
}

// Upvote records the viewer's upvote on id. done, when set, receives the
// outcome on the loop.
func (a *Actions) Upvote(ctx context.Context, id string, done func(error)) {
	a.run(ctx, "upvote", id, a.api.Upvote, done)
}

// Save adds id to the viewer's saved articles
func (a *Actions) Save(ctx context.Context, id string, done func(error)) {
	a.run(ctx, "save", id, a.api.Save, done)
}

func (a *Actions) run(ctx context.Context, op, id string, call func(context.Context, string, string) error, done func(error)) {
	if done == nil {
		done = func(error) {}
	}

	token, err := a.session.RequireAuth()
	if err != nil {
		done(err)
		return
	}

	a.sched.Go(func() func() {
		err := call(ctx, token, id)
		return func() {
			a.finish(op, id, err)
			done(err)
		}
	})
}

func (a *Actions) finish(op, id string, err error) {
	switch {
	case err == nil:
		a.logger.Debug("Article mutation confirmed", "op", op, "article_id", id)
		a.bus.Publish(events.ArticlesChanged{ArticleID: id})
	case errors.Is(err, domain.ErrUnauthorized):
		a.session.OnUnauthorized()
	default:
		a.logger.Error("Article mutation failed", "op", op, "article_id", id, "error", err)
		a.bus.Publish(events.Notice{Message: fmt.Sprintf("Could not %s the article: %s", op, domain.UserMessage(err))})
	}
}
