package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/feed"
	"github.com/amiyamandal-dev/bizbrief/internal/search"
)

var savedQuery string

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved articles",
	Long: `Lists the articles saved by the logged in user. --query keeps the ones
whose headline words start with the query terms or whose source matches.`,
	Args: cobra.NoArgs,
	RunE: runSaved,
}

func init() {
	savedCmd.Flags().StringVarP(&savedQuery, "query", "q", "", "filter saved articles")
}

func runSaved(cmd *cobra.Command, args []string) error {
	sess, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	token, err := sess.RequireAuth()
	if err != nil {
		return errors.New(`not logged in, run "bizbrief login" first`)
	}

	client, err := newBackend()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	saved, err := client.SavedArticles(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			sess.OnUnauthorized()
			return errors.New("session expired, please log in again")
		}
		return errors.New(domain.UserMessage(err))
	}

	idx, err := search.NewSavedIndex(log)
	if err != nil {
		return err
	}
	defer idx.Close()

	if err := idx.Load(ctx, saved); err != nil {
		return err
	}
	matches, err := idx.Search(ctx, strings.TrimSpace(savedQuery))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No saved articles.")
		return nil
	}
	for i, m := range matches {
		a := m.Article
		fmt.Fprintf(out, "%d. %s\n", feed.Number(1, i), feed.Truncate(a.Headline))
		fmt.Fprintf(out, "   %s | %s | %s\n", feed.UpvoteLabel(a.UpvoteCount), feed.DomainName(a.Website), feed.Ago(a.CreatedAt))
	}
	return nil
}
