package domain

import (
	"encoding/json"
	"time"
)

// PageSize is the fixed number of articles per page
const PageSize = 20

// Article represents a news article as served by the backend.
// UpvoteCount, UserUpvoted and UserSaved are relative to the viewer and only
// change through a server-confirmed mutation followed by a refetch.
type Article struct {
	ID          string    `json:"id"`
	Headline    string    `json:"headline"`
	Link        string    `json:"link"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpvoteCount int       `json:"upvote_count"`
	UserUpvoted bool      `json:"user_upvoted"`
	UserSaved   bool      `json:"user_saved"`
}

// PaginatedResult is one page of articles plus pagination metadata
type PaginatedResult struct {
	Articles    []Article `json:"articles"`
	TotalItems  int       `json:"totalItems"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
}

// UnmarshalJSON normalizes a null article list to an empty one
func (r *PaginatedResult) UnmarshalJSON(data []byte) error {
	type raw PaginatedResult
	var decoded raw
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = PaginatedResult(decoded)
	if r.Articles == nil {
		r.Articles = []Article{}
	}
	if r.TotalPages < 0 {
		r.TotalPages = 0
	}
	return nil
}

// Empty reports the canonical "no results" state
func (r *PaginatedResult) Empty() bool {
	return len(r.Articles) == 0
}

// ArticleQuery is the parameter set of one list fetch
type ArticleQuery struct {
	Page    int
	Keyword string
	// Website is the domain filter; empty means all sources.
	Website string
}

// SavedArticle is one entry of the viewer's saved list
type SavedArticle struct {
	ArticleID string  `json:"article_id"`
	UserID    string  `json:"user_id"`
	Article   Article `json:"article"`
}
