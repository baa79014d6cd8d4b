package main

import (
	"time"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	baseURL string
	token   string
	timeout time.Duration
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.baseURL, o.token, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "fintrack-cli",
		Short:         "Fintrack CLI tool",
		Long:          `A command line interface for recording transactions and reading analytics from the Fintrack API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("FINTRACK_URL", "http://localhost:8080"), "Base URL of the Fintrack API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", envOr("FINTRACK_TOKEN", ""), "Bearer token (see the token command)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		tokenCmd(),
		reportCmd(opts),
		transactionsCmd(opts),
		migrateCmd(),
	)

	return rootCmd
}
