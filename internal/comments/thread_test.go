package comments

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/events"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
	"github.com/amiyamandal-dev/bizbrief/internal/session"
)

type fakeAPI struct {
	mu          sync.Mutex
	forestCalls []string
	posts       []domain.CommentCreateRequest
	edits       []string
	postErr     error
	forest      []domain.Comment
}

func (f *fakeAPI) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	return &domain.Article{ID: id, Headline: "Rates rise"}, nil
}

func (f *fakeAPI) GetComments(ctx context.Context, articleID string) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forestCalls = append(f.forestCalls, articleID)
	return f.forest, nil
}

func (f *fakeAPI) PostComment(ctx context.Context, token, articleID string, req domain.CommentCreateRequest) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return nil, f.postErr
	}
	f.posts = append(f.posts, req)
	return &domain.Comment{ID: "new", Content: req.Content}, nil
}

func (f *fakeAPI) EditComment(ctx context.Context, token, articleID, commentID string, req domain.CommentUpdateRequest) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, commentID+"="+req.Content)
	return &domain.Comment{ID: commentID, Content: req.Content}, nil
}

func (f *fakeAPI) Me(ctx context.Context, token string) (*domain.User, error) {
	return &domain.User{Username: "asha"}, nil
}

func newThread(t *testing.T, token string) (*Thread, *fakeAPI, *loop.Manual, *session.Session) {
	t.Helper()
	parent := "c1"
	api := &fakeAPI{forest: []domain.Comment{{
		ID: "c1", Username: "asha", Content: "root",
		Replies: []domain.Comment{{ID: "c2", Username: "ravi", Content: "child", ParentCommentID: &parent}},
	}}}
	sched := &loop.Manual{}
	sess := session.New(session.NewMemoryStore(token), nil)

	th := NewThread(context.Background(), "a1", ThreadOptions{
		API:       api,
		Session:   sess,
		Scheduler: sched,
		Bus:       events.NewBus(),
	})
	t.Cleanup(th.Close)

	th.Load()
	sched.CompleteAll()
	return th, api, sched, sess
}

func TestThreadLoad(t *testing.T) {
	th, _, _, _ := newThread(t, "tok")

	require.NoError(t, th.Err())
	assert.False(t, th.Loading())
	assert.Equal(t, "Rates rise", th.Article().Headline)
	assert.Equal(t, "asha", th.Viewer())
	assert.Len(t, th.Rows(), 2)
	assert.Equal(t, 1, th.Rows()[1].Depth)
}

func TestReplyClearsDraftAndRefetches(t *testing.T) {
	th, api, sched, _ := newThread(t, "tok")
	require.Len(t, api.forestCalls, 1)

	th.Editor().StartReply("c2")
	th.Editor().SetReplyDraft("c2", "  well said  ")

	var got error
	th.Reply(context.Background(), "c2", func(err error) { got = err })
	sched.CompleteAll()

	require.NoError(t, got)
	require.Len(t, api.posts, 1)
	assert.Equal(t, "well said", api.posts[0].Content)
	assert.Equal(t, "c2", *api.posts[0].ParentCommentID)

	assert.Equal(t, "", th.Editor().ReplyDraft("c2"))
	assert.Equal(t, "", th.Editor().Replying())
	assert.Equal(t, []string{"a1", "a1"}, api.forestCalls)
}

func TestRootCommentAndEmptyDraft(t *testing.T) {
	th, api, sched, _ := newThread(t, "tok")

	th.Comment(context.Background(), nil)
	assert.Zero(t, sched.Pending())

	th.Editor().SetRootDraft("first")
	th.Comment(context.Background(), nil)
	sched.CompleteAll()

	require.Len(t, api.posts, 1)
	assert.Nil(t, api.posts[0].ParentCommentID)
	assert.Equal(t, "", th.Editor().RootDraft())
}

func TestEditOwnCommentOnly(t *testing.T) {
	th, api, sched, _ := newThread(t, "tok")

	assert.True(t, th.CanEdit(&th.Forest()[0]))
	assert.False(t, th.CanEdit(&th.Forest()[0].Replies[0]))

	th.Editor().StartEdit("c2", "child")
	var got error
	th.Edit(context.Background(), "c2", func(err error) { got = err })
	assert.True(t, errors.Is(got, ErrNotOwner))

	th.Editor().StartEdit("c1", "root")
	th.Editor().SetEditDraft("c1", "root, revised")
	th.Edit(context.Background(), "c1", nil)
	sched.CompleteAll()

	assert.Equal(t, []string{"c1=root, revised"}, api.edits)
	assert.Equal(t, "", th.Editor().Editing())
}

func TestReplyWithoutToken(t *testing.T) {
	th, api, sched, sess := newThread(t, "")

	redirects := 0
	sess.OnAuthRequired(func() { redirects++ })

	th.Editor().SetReplyDraft("c1", "hi")
	var got error
	th.Reply(context.Background(), "c1", func(err error) { got = err })

	assert.True(t, errors.Is(got, domain.ErrAuthRequired))
	assert.Equal(t, 1, redirects)
	assert.Zero(t, sched.Pending())
	assert.Empty(t, api.posts)
	assert.Equal(t, "hi", th.Editor().ReplyDraft("c1"))
}

func TestReplyUnauthorizedKeepsDraft(t *testing.T) {
	th, api, sched, sess := newThread(t, "stale")
	api.postErr = &domain.StatusError{Code: 401}

	th.Editor().SetReplyDraft("c1", "hi")
	th.Reply(context.Background(), "c1", nil)
	sched.CompleteAll()

	assert.Empty(t, sess.Token())
	assert.Equal(t, "hi", th.Editor().ReplyDraft("c1"))
	assert.Len(t, api.forestCalls, 1)
}
