package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

func saved(id, headline, website string) domain.SavedArticle {
	return domain.SavedArticle{
		ArticleID: id,
		UserID:    "u1",
		Article:   domain.Article{ID: id, Headline: headline, Website: website},
	}
}

func ids(entries []domain.SavedArticle) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ArticleID)
	}
	return out
}

func newIndex(t *testing.T) *SavedIndex {
	t.Helper()
	idx, err := NewSavedIndex(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	require.NoError(t, idx.Load(context.Background(), []domain.SavedArticle{
		saved("a1", "RBI keeps repo rate unchanged", "https://www.livemint.com"),
		saved("a2", "Banking stocks rally on strong earnings", "https://www.moneycontrol.com"),
		saved("a3", "Banks raise deposit rates", "https://www.livemint.com"),
	}))
	return idx
}

func TestSavedSearchAll(t *testing.T) {
	idx := newIndex(t)

	got, err := idx.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(got))
	assert.Equal(t, 3, idx.Count())
}

func TestSavedSearchPrefix(t *testing.T) {
	idx := newIndex(t)

	got, err := idx.Search(context.Background(), "Bank")
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a3"}, ids(got))

	got, err = idx.Search(context.Background(), "livemint rate")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a3"}, ids(got))

	got, err = idx.Search(context.Background(), "crypto")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSavedLoadReplaces(t *testing.T) {
	idx := newIndex(t)

	require.NoError(t, idx.Load(context.Background(), []domain.SavedArticle{
		saved("a9", "Budget boosts capex", "https://www.businesstoday.in"),
	}))

	got, err := idx.Search(context.Background(), "bank")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = idx.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a9"}, ids(got))
}
