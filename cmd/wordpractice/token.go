package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordpractice/internal/app"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user",
	}
	user := cmd.Flags().String("user", "", "user ID (default: a new random ID)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		userID := uuid.New()
		if *user != "" {
			id, err := uuid.Parse(*user)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			userID = id
		}

		return withApp(cmd.Context(), func(_ context.Context, a *app.App) error {
			if a.JWT == nil {
				return errors.New("authentication is disabled (set AUTH_JWT_SECRET)")
			}
			tok, err := a.JWT.IssueAccessToken(userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user:    %s\nexpires: %s\ntoken:   %s\n", tok.UserID, tok.ExpiresAt.Format(time.RFC3339), tok.Token)
			return nil
		})
	}
	return cmd
}
