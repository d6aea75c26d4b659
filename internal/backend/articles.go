package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

// FetchArticles loads one page of articles for the given query. The token is
// optional; when present the backend fills in the viewer flags.
func (c *Client) FetchArticles(ctx context.Context, q domain.ArticleQuery, token string) (*domain.PaginatedResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(domain.PageSize))
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.Website != "" {
		params.Set("website", q.Website)
	}

	var res domain.PaginatedResult
	if err := c.do(ctx, "fetch articles", http.MethodGet, c.endpoint("/articles", params), token, nil, &res); err != nil {
		return nil, err
	}
	if res.Articles == nil {
		res.Articles = []domain.Article{}
	}
	return &res, nil
}

// GetArticle loads a single article
func (c *Client) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	var article domain.Article
	if err := c.do(ctx, "get article", http.MethodGet, c.endpoint("/articles/"+url.PathEscape(id), nil), "", nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// Upvote records the viewer's upvote
func (c *Client) Upvote(ctx context.Context, token, id string) error {
	return c.do(ctx, "upvote", http.MethodPost, c.endpoint("/articles/"+url.PathEscape(id)+"/upvote", nil), token, struct{}{}, nil)
}

// Save adds the article to the viewer's saved list
func (c *Client) Save(ctx context.Context, token, id string) error {
	return c.do(ctx, "save", http.MethodPost, c.endpoint("/articles/"+url.PathEscape(id)+"/save", nil), token, nil, nil)
}

// SavedArticles lists the viewer's saved articles
func (c *Client) SavedArticles(ctx context.Context, token string) ([]domain.SavedArticle, error) {
	var saved []domain.SavedArticle
	if err := c.do(ctx, "saved articles", http.MethodGet, c.endpoint("/user/saved", nil), token, nil, &saved); err != nil {
		return nil, err
	}
	if saved == nil {
		saved = []domain.SavedArticle{}
	}
	return saved, nil
}
