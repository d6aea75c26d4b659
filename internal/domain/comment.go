package domain

import "time"

// Comment is one node of an article's discussion forest. A nil
// ParentCommentID marks a root comment.
type Comment struct {
	ID              string    `json:"id"`
	ArticleID       string    `json:"article_id"`
	UserID          string    `json:"user_id"`
	Username        string    `json:"username"`
	Content         string    `json:"content"`
	ParentCommentID *string   `json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	Replies         []Comment `json:"replies,omitempty"`
}

// IsRoot reports whether the comment hangs directly off the article
func (c *Comment) IsRoot() bool {
	return c.ParentCommentID == nil || *c.ParentCommentID == ""
}

// CommentCreateRequest is the body of a new root comment or reply
type CommentCreateRequest struct {
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parent_comment_id,omitempty"`
}

// CommentUpdateRequest is the body of an edit
type CommentUpdateRequest struct {
	Content string `json:"content"`
}
