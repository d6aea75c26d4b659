package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/bizbrief/internal/comments"
	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/events"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
)

func articlePath(id string) string {
	return "/articles/" + url.PathEscape(id)
}

func (h *WebHandler) newThread(c *gin.Context, bus *events.Bus) *comments.Thread {
	return comments.NewThread(c.Request.Context(), c.Param("id"), comments.ThreadOptions{
		API:       h.api,
		Session:   GetSession(c),
		Scheduler: loop.Inline{},
		Bus:       bus,
		Logger:    h.logger,
	})
}

// ArticlePage renders an article with its comment thread. The reply and
// edit query parameters open a box under a comment; edit wins when both
// are given.
func (h *WebHandler) ArticlePage(c *gin.Context) {
	thread := h.newThread(c, events.NewBus())
	defer thread.Close()

	thread.Load()
	if err := thread.Err(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.ErrorPage(c, http.StatusNotFound, "Article not found")
			return
		}
		h.ErrorPage(c, http.StatusBadGateway, domain.UserMessage(err))
		return
	}

	ed := thread.Editor()
	if id := c.Query("edit"); id != "" {
		if target, ok := comments.Find(thread.Forest(), id); ok && thread.CanEdit(target) {
			ed.StartEdit(id, target.Content)
		}
	} else if id := c.Query("reply"); id != "" {
		if _, ok := comments.Find(thread.Forest(), id); ok {
			ed.StartReply(id)
		}
	}

	article := thread.Article()
	h.render(c, http.StatusOK, "article", gin.H{
		"Title":    article.Headline,
		"Article":  article,
		"Path":     articlePath(article.ID),
		"Rows":     commentRows(thread, h.renderer),
		"Count":    comments.Count(thread.Forest()),
		"CanWrite": GetSession(c).LoggedIn(),
	})
}

// PostComment creates a root comment, or a reply when the form names a parent
func (h *WebHandler) PostComment(c *gin.Context) {
	bus := events.NewBus()
	notice := noticeCollector(bus)
	thread := h.newThread(c, bus)
	// the redirect below reloads the thread
	thread.Close()

	content := c.PostForm("content")
	parent := c.PostForm("parent")
	if parent != "" {
		thread.Editor().SetReplyDraft(parent, content)
		thread.Reply(c.Request.Context(), parent, nil)
	} else {
		thread.Editor().SetRootDraft(content)
		thread.Comment(c.Request.Context(), nil)
	}

	if authRedirected(c) {
		return
	}
	c.Redirect(http.StatusSeeOther, withNotice(articlePath(thread.ArticleID()), *notice))
}

// EditComment saves an edited comment
func (h *WebHandler) EditComment(c *gin.Context) {
	bus := events.NewBus()
	notice := noticeCollector(bus)
	thread := h.newThread(c, bus)

	// ownership is checked against the loaded thread
	thread.Load()
	thread.Close()

	commentID := c.Param("commentId")
	thread.Editor().SetEditDraft(commentID, c.PostForm("content"))

	var editErr error
	thread.Edit(c.Request.Context(), commentID, func(err error) { editErr = err })

	if authRedirected(c) {
		return
	}
	if errors.Is(editErr, comments.ErrNotOwner) {
		*notice = editErr.Error()
	}
	c.Redirect(http.StatusSeeOther, withNotice(articlePath(thread.ArticleID()), *notice))
}
