package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordpractice/internal/config"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables read by the configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			desc, err := config.Describe()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), desc)
			return nil
		},
	}
}
