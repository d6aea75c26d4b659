package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/search"
)

// ProfilePage lists the viewer's saved articles, filtered by ?q=
func (h *WebHandler) ProfilePage(c *gin.Context) {
	ctx := c.Request.Context()
	sess := GetSession(c)

	token, err := sess.RequireAuth()
	if err != nil {
		authRedirected(c)
		return
	}

	saved, err := h.api.SavedArticles(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			sess.OnUnauthorized()
			authRedirected(c)
			return
		}
		h.logger.Error("Failed to load saved articles", "error", err)
		h.ErrorPage(c, http.StatusBadGateway, domain.UserMessage(err))
		return
	}

	username := sess.Username()
	if username == "" {
		if me, err := h.api.Me(ctx, token); err == nil {
			username = me.Username
		}
	}

	query := strings.TrimSpace(c.Query("q"))
	idx, err := search.NewSavedIndex(h.logger)
	if err != nil {
		h.ErrorPage(c, http.StatusInternalServerError, domain.UnexpectedMessage)
		return
	}
	defer idx.Close()

	if err := idx.Load(ctx, saved); err != nil {
		h.ErrorPage(c, http.StatusInternalServerError, domain.UnexpectedMessage)
		return
	}
	matches, err := idx.Search(ctx, query)
	if err != nil {
		h.ErrorPage(c, http.StatusInternalServerError, domain.UnexpectedMessage)
		return
	}

	articles := make([]domain.Article, 0, len(matches))
	for _, m := range matches {
		articles = append(articles, m.Article)
	}

	h.render(c, http.StatusOK, "profile", gin.H{
		"Title":   "Saved articles",
		"Profile": username,
		"Query":   query,
		"Total":   len(saved),
		"Items":   listItems(articles, 1, query),
		"Empty":   "No saved articles.",
	})
}
