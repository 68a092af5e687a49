package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordpractice/internal/app"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile a user's local catalogue with the remote store",
	}
	user := userFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			ctx, userID, err := asUser(ctx, *user)
			if err != nil {
				return err
			}
			if userID == uuid.Nil {
				return errors.New("--user is required: the guest catalogue is never synced")
			}
			if !a.Sync.Enabled() {
				return errors.New("no remote backend configured")
			}

			res, err := a.Sync.Sync(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words\n", res.Outcome, len(res.Catalogue))
			if res.Err != nil {
				return fmt.Errorf("remote store: %w", res.Err)
			}
			return nil
		})
	}
	return cmd
}
