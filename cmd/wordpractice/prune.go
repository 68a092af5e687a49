package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordpractice/internal/app"
)

// newPruneCmd removes catalogue revisions older than the configured retention
// period. It is meant to be run by an external cron job.
func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete old catalogue revisions from the postgres backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				if a.Revisions == nil {
					return errors.New("prune needs the postgres remote backend")
				}

				threshold := time.Now().AddDate(0, 0, -a.Config.Remote.Database.RevisionRetentionDays)
				deleted, err := a.Revisions.PruneRevisions(ctx, threshold)
				if err != nil {
					a.Log.Error("prune failed",
						slog.String("error", err.Error()),
						slog.Time("threshold", threshold),
					)
					return err
				}

				a.Log.Info("prune completed",
					slog.Int64("deleted", deleted),
					slog.Time("threshold", threshold),
				)
				return nil
			})
		},
	}
}
