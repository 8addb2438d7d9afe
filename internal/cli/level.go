package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
	"github.com/heartmarshall/sprachtrainer/internal/service/difficulty"
)

func newLevelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Inspect or change the stored difficulty level",
	}
	cmd.AddCommand(newLevelShowCmd(), newLevelSetCmd())
	return cmd
}

func newLevelShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored level and fact count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, log, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			levels := difficulty.NewService(log, store.Facts, store.Tx)
			fact, err := levels.GetCurrent(cmd.Context(), cfg.Trainer.LearnerID)
			if err != nil {
				return fmt.Errorf("read level: %w", err)
			}
			rows, err := levels.FactCount(cmd.Context(), cfg.Trainer.LearnerID)
			if err != nil {
				return fmt.Errorf("count facts: %w", err)
			}

			printFact(cmd.OutOrStdout(), store.Backend, fact, rows)
			return nil
		},
	}
}

func newLevelSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <1-6|descriptor>",
		Short: "Overwrite the stored level",
		Example: `
# Move the learner to level 3
trainerctl level set 3

# Same, with the full descriptor
trainerctl level set "Kyrills aktuelle Schwierigkeitsstufe ist 3"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseLevelArg(strings.Join(args, " "))
			if err != nil {
				return err
			}

			cfg, store, log, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			levels := difficulty.NewService(log, store.Facts, store.Tx)
			fact, err := levels.SetCurrent(cmd.Context(), cfg.Trainer.LearnerID, value)
			if err != nil {
				return err
			}

			rows, err := levels.FactCount(cmd.Context(), cfg.Trainer.LearnerID)
			if err != nil {
				return fmt.Errorf("count facts: %w", err)
			}
			printFact(cmd.OutOrStdout(), store.Backend, fact, rows)
			return nil
		},
	}
}

// parseLevelArg accepts a level number or a full descriptor.
func parseLevelArg(arg string) (domain.Descriptor, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(arg); err == nil {
		l := domain.Level(n)
		if !l.IsValid() {
			return "", fmt.Errorf("level %d: %w", n, domain.ErrInvalidLevel)
		}
		return l.Descriptor(), nil
	}

	d := domain.Descriptor(arg)
	if !d.IsValid() {
		return "", fmt.Errorf("%q: %w", arg, domain.ErrInvalidLevel)
	}
	return d, nil
}

func printFact(w io.Writer, backend string, f domain.DifficultyFact, rows int) {
	label := color.New(color.FgCyan).SprintFunc()
	level, _ := f.Level()

	fmt.Fprintf(w, "%s %s\n", label("learner:"), f.LearnerID)
	fmt.Fprintf(w, "%s %s (%s)\n", label("level:  "), color.New(color.Bold).Sprint(level), f.Value)
	fmt.Fprintf(w, "%s %d\n", label("version:"), f.Version)
	fmt.Fprintf(w, "%s %s\n", label("updated:"), f.UpdatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "%s %d (%s)\n", label("rows:   "), rows, backend)
}
