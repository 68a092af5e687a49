package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordpractice/internal/app"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), configPath)
		},
	}
}
