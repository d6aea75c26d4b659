// Package search filters the viewer's saved articles locally
package search

import (
	"time"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/feed"
)

// SavedDocument is what gets indexed for one saved article
type SavedDocument struct {
	Headline  string    `json:"headline"`
	Website   string    `json:"website"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedToDocument converts a saved article. The website is indexed by its
// short name so "livemint" matches "https://www.livemint.com".
func SavedToDocument(s domain.SavedArticle) SavedDocument {
	return SavedDocument{
		Headline:  s.Article.Headline,
		Website:   feed.DomainName(s.Article.Website),
		CreatedAt: s.Article.CreatedAt,
	}
}

// savedID is the document id of a saved entry
func savedID(s domain.SavedArticle) string {
	if s.ArticleID != "" {
		return s.ArticleID
	}
	return s.Article.ID
}
