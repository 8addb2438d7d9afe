package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/sprachtrainer/internal/app"
	"github.com/heartmarshall/sprachtrainer/internal/config"
	"github.com/heartmarshall/sprachtrainer/internal/service/trainer"
)

type lineReader interface {
	Readline() (string, error)
}

type chatTrainer interface {
	HandleTurn(ctx context.Context, sessionKey, message string) (trainer.Reply, error)
	Snapshot(ctx context.Context) trainer.ActiveConfig
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Drill with the trainer in the terminal",
		Long: "Start a local conversation with the same trainer the server runs. " +
			"Type /level to see the current level, /quit or Ctrl+D to leave.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := cliLogger(cmd, cfg.Log)

			store, err := app.OpenStorage(cmd.Context(), cfg, log)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer store.Close()

			svcs := app.NewServices(cfg, log, store)
			svcs.Trainer.Start(cmd.Context())
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), cfg.Trainer.ReviewTimeout)
				defer cancel()
				if err := svcs.Worker.Close(ctx); err != nil {
					log.Warn("review worker not drained", "error", err)
				}
			}()

			rl, err := readline.NewEx(&readline.Config{
				Prompt:            color.New(color.FgCyan).Sprint(cfg.Trainer.LearnerName + "> "),
				InterruptPrompt:   "^C",
				EOFPrompt:         "/quit",
				HistorySearchFold: true,
				Stdin:             io.NopCloser(cmd.InOrStdin()),
				Stdout:            cmd.OutOrStdout(),
				Stderr:            cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("create readline: %w", err)
			}
			defer rl.Close()

			key := trainer.SessionKey(trainer.TransportCLI, cfg.Trainer.LearnerID, time.Now())
			return chatLoop(cmd.Context(), rl, cmd.OutOrStdout(), svcs.Trainer, key)
		},
	}
}

// chatLoop reads learner lines until EOF or /quit and prints the replies.
func chatLoop(ctx context.Context, in lineReader, out io.Writer, t chatTrainer, sessionKey string) error {
	trainerLabel := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(out, "%s level %s, session %s\n", dim("trainer ready:"), t.Snapshot(ctx).Level, sessionKey)

	for {
		line, err := in.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/level":
			ac := t.Snapshot(ctx)
			fmt.Fprintf(out, "%s %s (%s)\n", dim("level"), ac.Level, ac.Bundle.Title)
			continue
		}

		reply, err := t.HandleTurn(ctx, sessionKey, line)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", red("Error:"), err)
			continue
		}

		fmt.Fprintf(out, "%s %s\n", trainerLabel("Trainer:"), reply.Text)
		if reply.Fallback {
			continue
		}
		fmt.Fprintln(out, dim(fmt.Sprintf("turn %d, level %s", reply.Turn, reply.Level)))
	}
}
