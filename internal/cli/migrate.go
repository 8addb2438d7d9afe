package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/sprachtrainer/internal/adapter/postgres"
	"github.com/heartmarshall/sprachtrainer/internal/config"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply Postgres migrations",
		Long:  "Apply the embedded goose migrations to the database at --dsn or DATABASE_DSN.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, _ := cmd.Flags().GetString("dsn")
			if dsn == "" {
				dsn = os.Getenv("DATABASE_DSN")
			}
			if dsn == "" {
				return errors.New("migrate: no DSN, pass --dsn or set DATABASE_DSN")
			}

			log := cliLogger(cmd, config.LogConfig{})
			if err := postgres.Migrate(cmd.Context(), dsn, log); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().String("dsn", "", "Postgres DSN (default: $DATABASE_DSN)")
	return cmd
}
