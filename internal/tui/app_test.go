package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/bizbrief/internal/config"
	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
	"github.com/amiyamandal-dev/bizbrief/internal/session"
)

type fakeBackend struct {
	mu         sync.Mutex
	queries    []domain.ArticleQuery
	upvotes    []string
	posted     []domain.CommentCreateRequest
	logins     []domain.LoginRequest
	totalPages int
	upvoteErr  error
	loginErr   error
}

func (f *fakeBackend) FetchArticles(ctx context.Context, q domain.ArticleQuery, token string) (*domain.PaginatedResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)

	res := &domain.PaginatedResult{TotalPages: f.totalPages, CurrentPage: q.Page, PageSize: domain.PageSize}
	for i := 0; i < 3 && f.totalPages > 0; i++ {
		res.Articles = append(res.Articles, domain.Article{
			ID:       fmt.Sprintf("p%d-a%d", q.Page, i),
			Headline: fmt.Sprintf("Banking story %d", i),
			Website:  "https://www.livemint.com",
		})
	}
	if res.Articles == nil {
		res.Articles = []domain.Article{}
	}
	return res, nil
}

func (f *fakeBackend) Upvote(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upvotes = append(f.upvotes, id)
	return f.upvoteErr
}

func (f *fakeBackend) Save(ctx context.Context, token, id string) error { return nil }

func (f *fakeBackend) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	return &domain.Article{ID: id, Headline: "RBI holds rates", Link: "https://example.com/rbi"}, nil
}

func (f *fakeBackend) GetComments(ctx context.Context, articleID string) ([]domain.Comment, error) {
	return []domain.Comment{{
		ID: "c1", Username: "asha", Content: "Expected move",
		Replies: []domain.Comment{{ID: "c2", Username: "ravi", Content: "Agreed"}},
	}}, nil
}

func (f *fakeBackend) PostComment(ctx context.Context, token, articleID string, req domain.CommentCreateRequest) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, req)
	return &domain.Comment{ID: "c9"}, nil
}

func (f *fakeBackend) EditComment(ctx context.Context, token, articleID, commentID string, req domain.CommentUpdateRequest) (*domain.Comment, error) {
	return &domain.Comment{ID: commentID}, nil
}

func (f *fakeBackend) Me(ctx context.Context, token string) (*domain.User, error) {
	return &domain.User{Username: "asha"}, nil
}

func (f *fakeBackend) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, req)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &domain.AuthResult{Token: "tok-" + req.Identifier}, nil
}

func (f *fakeBackend) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	return &domain.AuthResult{Message: "Check your inbox"}, nil
}

func (f *fakeBackend) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeBackend) lastQuery() domain.ArticleQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

type harness struct {
	app   *App
	api   *fakeBackend
	sched *loop.Manual
	sess  *session.Session
}

func newHarness(t *testing.T, token string) *harness {
	t.Helper()
	return newHarnessWithStore(t, session.NewMemoryStore(token))
}

func newHarnessWithStore(t *testing.T, store session.TokenStore) *harness {
	t.Helper()
	api := &fakeBackend{totalPages: 12}
	sched := &loop.Manual{}
	sess := session.New(store, nil)

	app := New(context.Background(), Options{
		API:       api,
		Session:   sess,
		Scheduler: sched,
		Clock:     clock.NewMock(),
		UI: config.UIConfig{
			PageGroupSize: 10,
			Chips:         []string{"Banking", "Markets"},
			Domains:       []config.Domain{{Value: "livemint", Label: "Livemint"}},
		},
	})
	t.Cleanup(app.Close)

	h := &harness{app: app, api: api, sched: sched, sess: sess}
	h.send(app.Init()())
	sched.CompleteAll()
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.app.Update(msg)
}

func (h *harness) key(s string) {
	switch s {
	case "enter":
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		h.send(tea.KeyMsg{Type: tea.KeyTab})
	case "ctrl+s":
		h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func TestStartShowsFirstPage(t *testing.T) {
	h := newHarness(t, "")

	view := h.app.View()
	assert.Contains(t, view, "1. ")
	assert.Contains(t, view, "Banking story 0")
	assert.Contains(t, view, "[1]")
	assert.Contains(t, view, "»")
	assert.Equal(t, 1, h.api.lastQuery().Page)
}

func TestNextPageNumbersAcrossPages(t *testing.T) {
	h := newHarness(t, "")

	h.key("n")
	h.sched.CompleteAll()

	assert.Equal(t, 2, h.api.lastQuery().Page)
	view := h.app.View()
	assert.Contains(t, view, "21. ")
	assert.Contains(t, view, "[2]")
}

func TestDigitJumpsWithinVisibleWindow(t *testing.T) {
	h := newHarness(t, "")

	h.key("]")
	h.key("2")
	h.sched.CompleteAll()

	assert.Equal(t, 12, h.api.lastQuery().Page)
}

func TestEmptyList(t *testing.T) {
	h := newHarness(t, "")
	h.api.totalPages = 0

	h.key("r")
	h.sched.CompleteAll()

	view := h.app.View()
	assert.Contains(t, view, "No articles to display.")
	assert.NotContains(t, view, "[1]")
}

func TestSearchCommitsOnEnter(t *testing.T) {
	h := newHarness(t, "")
	h.key("n")
	h.sched.CompleteAll()

	h.key("/")
	h.key("bank")
	h.key("enter")
	h.sched.CompleteAll()

	q := h.api.lastQuery()
	assert.Equal(t, "bank", q.Keyword)
	assert.Equal(t, 1, q.Page)
}

func TestTopicChipCycles(t *testing.T) {
	h := newHarness(t, "")

	h.key("t")
	h.sched.CompleteAll()
	assert.Equal(t, "Banking", h.api.lastQuery().Keyword)

	h.key("t")
	h.sched.CompleteAll()
	assert.Equal(t, "Markets", h.api.lastQuery().Keyword)

	h.key("t")
	h.sched.CompleteAll()
	assert.Equal(t, "", h.api.lastQuery().Keyword)
}

func TestSourceFilter(t *testing.T) {
	h := newHarness(t, "")

	h.key("d")
	h.sched.CompleteAll()
	assert.Equal(t, "livemint", h.api.lastQuery().Website)
	assert.Contains(t, h.app.View(), "Source: Livemint")

	h.key("d")
	h.sched.CompleteAll()
	assert.Equal(t, "", h.api.lastQuery().Website)
}

func TestUpvoteWithoutTokenShowsLogin(t *testing.T) {
	h := newHarness(t, "")

	h.key("u")

	assert.Equal(t, pageLogin, h.app.page)
	assert.Contains(t, h.app.View(), "Username or email")
	assert.Zero(t, h.sched.Pending())
}

func TestUpvoteUnauthorizedClearsCredential(t *testing.T) {
	h := newHarness(t, "stale")
	h.api.upvoteErr = &domain.StatusError{Code: 401}

	h.key("u")
	h.sched.CompleteAll()

	assert.Equal(t, []string{"p1-a0"}, h.api.upvotes)
	assert.False(t, h.sess.LoggedIn())
	assert.Equal(t, pageLogin, h.app.page)
}

func TestUpvoteFailureShowsNotice(t *testing.T) {
	h := newHarness(t, "tok")
	h.api.upvoteErr = &domain.StatusError{Code: 500}

	h.key("u")
	h.sched.CompleteAll()

	assert.Equal(t, pageList, h.app.page)
	assert.Contains(t, h.app.View(), "Could not upvote the article")
}

func TestLoginStoresTokenAndRefetches(t *testing.T) {
	h := newHarness(t, "")
	h.key("a")
	require.Equal(t, pageLogin, h.app.page)
	fetches := len(h.api.queries)

	h.key("asha")
	h.key("tab")
	h.key("secret")
	h.key("enter")
	h.sched.CompleteAll()

	require.Len(t, h.api.logins, 1)
	assert.Equal(t, domain.LoginRequest{Identifier: "asha", Password: "secret"}, h.api.logins[0])
	assert.Equal(t, "tok-asha", h.sess.Token())
	assert.Equal(t, pageList, h.app.page)
	assert.Greater(t, len(h.api.queries), fetches)
	assert.Contains(t, h.app.View(), "Logged in")
}

func TestLoginUnknownUserSwitchesToSignup(t *testing.T) {
	h := newHarness(t, "")
	h.api.loginErr = &domain.StatusError{Code: 404}
	h.key("a")

	h.key("ghost")
	h.key("tab")
	h.key("pw")
	h.key("enter")
	h.sched.CompleteAll()

	assert.True(t, h.app.login.signup)
	view := h.app.View()
	assert.Contains(t, view, "User not found. Please sign up.")
	assert.Contains(t, view, "Sign up")
}

func TestLoginValidation(t *testing.T) {
	h := newHarness(t, "")
	h.key("a")

	h.key("asha")
	h.key("tab")
	h.key("enter")

	assert.Empty(t, h.api.logins)
	assert.Contains(t, h.app.View(), "Password is required")
}

func TestReplyFromCommentsPage(t *testing.T) {
	h := newHarness(t, "tok")

	h.key("enter")
	h.sched.CompleteAll()
	require.Equal(t, pageComments, h.app.page)

	view := h.app.View()
	assert.Contains(t, view, "RBI holds rates")
	assert.Contains(t, view, "2 comments")
	assert.Contains(t, view, "Agreed")

	h.key("j")
	h.key("r")
	h.key("Same here")
	h.key("ctrl+s")
	h.sched.CompleteAll()

	require.Len(t, h.api.posted, 1)
	assert.Equal(t, "Same here", h.api.posted[0].Content)
	require.NotNil(t, h.api.posted[0].ParentCommentID)
	assert.Equal(t, "c2", *h.api.posted[0].ParentCommentID)

	assert.Equal(t, composeNone, h.app.comments.composing)
	assert.Empty(t, h.app.comments.thread.Editor().ReplyDraft("c2"))

	h.key("esc")
	assert.Equal(t, pageList, h.app.page)
	assert.Nil(t, h.app.comments)
}

func TestEditOnlyOwnComments(t *testing.T) {
	h := newHarness(t, "tok")
	h.key("enter")
	h.sched.CompleteAll()

	// c2 belongs to ravi
	h.key("j")
	h.key("e")
	assert.Equal(t, composeNone, h.app.comments.composing)

	h.key("k")
	h.key("e")
	assert.Equal(t, composeEdit, h.app.comments.composing)
	assert.Equal(t, "Expected move", h.app.comments.area.Value())

	h.key("esc")
	assert.Equal(t, composeNone, h.app.comments.composing)
}

func TestCommentWithoutTokenShowsLogin(t *testing.T) {
	h := newHarness(t, "")
	h.key("enter")
	h.sched.CompleteAll()

	h.key("c")
	assert.Equal(t, pageLogin, h.app.page)

	h.key("esc")
	assert.Equal(t, pageComments, h.app.page)
}

func TestProgramSchedulerDropsBeforeAttach(t *testing.T) {
	s := NewProgramScheduler()
	ran := false
	s.Post(func() { ran = true })
	s.Go(func() func() { return nil })
	s.Wait()
	assert.False(t, ran)
}

func TestHeaderShowsLoggedIn(t *testing.T) {
	h := newHarness(t, "tok")
	assert.True(t, strings.Contains(h.app.View(), "Logged in"))

	h.key("a")
	h.sched.CompleteAll()
	assert.False(t, h.sess.LoggedIn())
	assert.NotContains(t, h.app.View(), "Logged in")
}

// brokenStore holds a token it cannot forget
type brokenStore struct{ token string }

func (s *brokenStore) Load() (string, error) { return s.token, nil }

func (s *brokenStore) Store(token string) error {
	s.token = token
	return nil
}

func (s *brokenStore) Clear() error { return fmt.Errorf("disk full") }

func TestLogoutFailureShowsNotice(t *testing.T) {
	h := newHarnessWithStore(t, &brokenStore{token: "tok"})
	calls := h.api.fetchCount()

	h.key("a")
	h.sched.CompleteAll()

	assert.Contains(t, h.app.View(), "Could not log out: disk full")
	assert.Equal(t, calls, h.api.fetchCount())
}
