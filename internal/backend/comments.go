package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

// GetComments loads the already nested comment forest of an article
func (c *Client) GetComments(ctx context.Context, articleID string) ([]domain.Comment, error) {
	var forest []domain.Comment
	if err := c.do(ctx, "get comments", http.MethodGet, c.endpoint("/articles/"+url.PathEscape(articleID)+"/comments", nil), "", nil, &forest); err != nil {
		return nil, err
	}
	if forest == nil {
		forest = []domain.Comment{}
	}
	return forest, nil
}

// PostComment creates a root comment, or a reply when req.ParentCommentID is set
func (c *Client) PostComment(ctx context.Context, token, articleID string, req domain.CommentCreateRequest) (*domain.Comment, error) {
	var created domain.Comment
	target := c.endpoint("/articles/"+url.PathEscape(articleID)+"/comment", nil)
	if err := c.do(ctx, "post comment", http.MethodPost, target, token, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// EditComment replaces the content of an existing comment
func (c *Client) EditComment(ctx context.Context, token, articleID, commentID string, req domain.CommentUpdateRequest) (*domain.Comment, error) {
	var updated domain.Comment
	target := c.endpoint("/articles/"+url.PathEscape(articleID)+"/comment/"+url.PathEscape(commentID), nil)
	if err := c.do(ctx, "edit comment", http.MethodPut, target, token, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
