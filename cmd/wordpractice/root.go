package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordpractice/internal/app"
	"github.com/heartmarshall/wordpractice/internal/config"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

// configPath is the --config flag shared by every subcommand.
var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wordpractice",
		Short:         "Vocabulary practice and scoring service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	root.AddCommand(
		newServeCmd(),
		newExportCmd(),
		newImportCmd(),
		newSyncCmd(),
		newTokenCmd(),
		newPruneCmd(),
		newRevisionsCmd(),
		newEnvCmd(),
		newVersionCmd(),
	)
	return root
}

// withApp loads the configuration, wires the application and runs fn.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg.Log)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("wire application", slog.String("error", err.Error()))
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

// userFlag adds --user; an empty value means the guest catalogue.
func userFlag(cmd *cobra.Command) *string {
	return cmd.Flags().String("user", "", "user ID (empty for the guest catalogue)")
}

func asUser(ctx context.Context, raw string) (context.Context, uuid.UUID, error) {
	if raw == "" {
		return ctx, uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid --user: %w", err)
	}
	return ctxutil.WithUserID(ctx, id), id, nil
}
