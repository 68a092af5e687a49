package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordpractice/internal/adapter/postgres"
	"github.com/heartmarshall/wordpractice/internal/app"
)

func newRevisionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revisions",
		Short: "List a user's stored catalogue revisions, newest first",
	}
	user := userFlag(cmd)
	limit := cmd.Flags().Uint64("limit", 20, "maximum number of revisions to list")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if *limit == 0 {
			return errors.New("--limit must be positive")
		}
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			_, userID, err := asUser(ctx, *user)
			if err != nil {
				return err
			}
			if userID == uuid.Nil {
				return errors.New("--user is required: the guest catalogue has no revisions")
			}
			if a.Revisions == nil {
				return errors.New("revisions needs the postgres remote backend")
			}

			revs, err := a.Revisions.Revisions(ctx, userID, *limit)
			if err != nil {
				return err
			}
			return writeRevisions(cmd.OutOrStdout(), revs)
		})
	}
	return cmd
}

func writeRevisions(w io.Writer, revs []postgres.Revision) error {
	if len(revs) == 0 {
		_, err := fmt.Fprintln(w, "no revisions")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWORDS\tCREATED")
	for _, r := range revs {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", r.ID, r.WordCount, r.CreatedAt.UTC().Format(time.RFC3339))
	}
	return tw.Flush()
}
