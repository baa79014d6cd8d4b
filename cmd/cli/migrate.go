package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/gofintrack/internal/infrastructure/postgres"
)

// migrator functions are replaced in tests.
var (
	migrateUp   = postgres.RunMigrations
	migrateDown = postgres.RunMigrationsDown
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations (uses DATABASE_URL)",
	}

	run := func(fn func(databaseURL, migrationsPath string, logger zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			return fn(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", Args: cobra.NoArgs, RunE: run(migrateUp)},
		&cobra.Command{Use: "down", Short: "Roll back the last migration", Args: cobra.NoArgs, RunE: run(migrateDown)},
	)

	return cmd
}
