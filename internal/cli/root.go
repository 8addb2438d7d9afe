// Package cli implements trainerctl, the maintenance and local chat tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/sprachtrainer/internal/app"
	"github.com/heartmarshall/sprachtrainer/internal/config"
)

// NewRootCmd builds the trainerctl command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "trainerctl",
		Short:         "Maintenance and local chat for the German trainer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       app.BuildVersion(),
	}
	root.SetOut(out)
	root.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level to stderr")

	root.AddCommand(
		newMigrateCmd(),
		newLevelCmd(),
		newChatCmd(),
	)
	return root
}

// Execute runs trainerctl with args.
func Execute(ctx context.Context, out io.Writer, args []string) error {
	root := NewRootCmd(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func cliLogger(cmd *cobra.Command, cfg config.LogConfig) *slog.Logger {
	cfg.Format = "text"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Level = "debug"
	} else {
		cfg.Level = "warn"
	}
	return app.NewLoggerTo(cmd.ErrOrStderr(), cfg)
}

// openStorage loads the storage part of the configuration and opens it.
func openStorage(cmd *cobra.Command) (*config.Config, *app.Storage, *slog.Logger, error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, nil, nil, err
	}
	log := cliLogger(cmd, cfg.Log)

	store, err := app.OpenStorage(cmd.Context(), cfg, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return cfg, store, log, nil
}
